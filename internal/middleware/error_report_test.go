package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type captureTransport struct {
	events []*sentry.Event
}

func (t *captureTransport) Flush(_ time.Duration) bool              { return true }
func (t *captureTransport) FlushWithContext(_ context.Context) bool { return true }
func (t *captureTransport) Configure(_ sentry.ClientOptions)        {}
func (t *captureTransport) SendEvent(event *sentry.Event)           { t.events = append(t.events, event) }
func (t *captureTransport) Close()                                  {}

func TestErrorReporterCapturesServerErrorsOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	transport := &captureTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{Dsn: "https://public@example.com/1", Transport: transport})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())

	r := gin.New()
	r.Use(ErrorReporter(hub))
	r.GET("/boom", func(c *gin.Context) {
		response.Error(c, errors.New("pq: connection refused"))
	})
	r.GET("/missing", func(c *gin.Context) {
		response.Error(c, appErrors.ErrNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Len(t, transport.events, 1)
	assert.Equal(t, "/boom", transport.events[0].Tags["route"])
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type stubValidator struct {
	claims *models.JWTClaims
}

func (s stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return s.claims, nil
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/protected/:id", handlers...)
	return r
}

func serve(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected/abc", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware(t *testing.T) {
	r := newEngine(JWT(stubValidator{claims: &models.JWTClaims{Role: models.RoleAdmin}}))

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Token good").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Bearer bad").Code)

	w := serve(r, "Bearer good")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireRoles(t *testing.T) {
	admin := newEngine(JWT(stubValidator{claims: &models.JWTClaims{Role: models.RoleAdmin}}), RequireRoles(models.RoleAdmin))
	student := newEngine(JWT(stubValidator{claims: &models.JWTClaims{Role: models.RoleStudent}}), RequireRoles(models.RoleAdmin))
	noJWT := newEngine(RequireRoles(models.RoleAdmin))

	assert.Equal(t, http.StatusNoContent, serve(admin, "Bearer good").Code)

	w := serve(student, "Bearer good")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"insufficient role"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(noJWT, "").Code)
}

type recordingAudit struct {
	logs []*models.AuditLog
	err  error
}

func (r *recordingAudit) Create(ctx context.Context, log *models.AuditLog) error {
	r.logs = append(r.logs, log)
	return r.err
}

func TestAuditRecordsSuccessfulRequestsOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	writer := &recordingAudit{}
	r := gin.New()
	r.Use(JWT(stubValidator{claims: &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin, Name: "Ada"}}))
	r.PUT("/swaps/:id/approve", Audit(writer, nil, models.AuditActionSwapApprove, "swaps"), func(c *gin.Context) {
		if c.Param("id") == "bad" {
			response.Error(c, appErrors.ErrNotFound)
			return
		}
		c.Status(http.StatusOK)
	})

	for _, id := range []string{"sw1", "bad"} {
		req := httptest.NewRequest(http.MethodPut, "/swaps/"+id+"/approve", nil)
		req.Header.Set("Authorization", "Bearer good")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Len(t, writer.logs, 1)
	entry := writer.logs[0]
	assert.Equal(t, models.AuditActionSwapApprove, entry.Action)
	require.NotNil(t, entry.Actor)
	assert.Equal(t, "u1", *entry.Actor)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, "sw1", *entry.ResourceID)
	assert.Contains(t, string(entry.Details), `"status":200`)
}

func TestAuditFailureDoesNotChangeResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/schedules", Audit(&recordingAudit{err: errors.New("insert failed")}, nil, models.AuditActionScheduleClear, "schedules"), func(c *gin.Context) {
		response.Message(c, http.StatusOK, "All schedules deleted")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/schedules", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

type recordingObserver struct {
	paths []string
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.paths = append(r.paths, method+" "+path)
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	obs := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/grades/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/grades/123", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, []string{"GET /grades/:id", "GET unmatched"}, obs.paths)
}

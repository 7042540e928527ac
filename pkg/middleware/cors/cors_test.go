package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.GET("/grades", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestPreflightShortCircuits(t *testing.T) {
	r := newRouter(nil)
	req := httptest.NewRequest(http.MethodOptions, "/grades", nil)
	req.Header.Set("Origin", "http://ui.test")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://ui.test", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownOriginIsNotEchoed(t *testing.T) {
	r := newRouter([]string{"http://ui.test/"})

	req := httptest.NewRequest(http.MethodGet, "/grades", nil)
	req.Header.Set("Origin", "http://evil.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/grades", nil)
	req.Header.Set("Origin", "http://ui.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://ui.test", w.Header().Get("Access-Control-Allow-Origin"))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"calendar-assistant/pkg/log"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mw := New(log.NewNop(), Config{})

	var seen string
	r := gin.New()
	r.Use(mw.RequestID())
	r.GET("/", func(c *gin.Context) {
		seen = log.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("propagates caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if seen != "abc-123" || w.Header().Get(RequestIDHeader) != "abc-123" {
			t.Errorf("seen=%q header=%q", seen, w.Header().Get(RequestIDHeader))
		}
	})

	t.Run("generates one", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if seen == "" || seen == "abc-123" || w.Header().Get(RequestIDHeader) != seen {
			t.Errorf("seen=%q header=%q", seen, w.Header().Get(RequestIDHeader))
		}
	})
}

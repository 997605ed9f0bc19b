package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"calendar-assistant/pkg/response"
)

const maxPeekBytes = 64 << 10

// RateLimit limits chat requests per user. The user is taken from the
// user_id of the JSON body, the user_id query or path param, and finally the
// client IP. It returns nil when rate limiting is disabled.
func (mw Middleware) RateLimit() gin.HandlerFunc {
	if mw.limiter == nil {
		return nil
	}
	return func(c *gin.Context) {
		key := requestUserID(c)
		if err := mw.limiter.Allow(key); err != nil {
			mw.l.Warnf(c.Request.Context(), "middleware.RateLimit: %v for %s", err, key)
			response.Error(c, response.ErrTooManyRequests, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func requestUserID(c *gin.Context) string {
	if c.Request.Body != nil && c.ContentType() == gin.MIMEJSON {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPeekBytes))
		c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), c.Request.Body))
		if err == nil {
			var body struct {
				UserID string `json:"user_id"`
			}
			if json.Unmarshal(raw, &body) == nil && body.UserID != "" {
				return body.UserID
			}
		}
	}
	if id := c.Query("user_id"); id != "" {
		return id
	}
	if id := c.Param("user_id"); id != "" {
		return id
	}
	return "ip:" + c.ClientIP()
}

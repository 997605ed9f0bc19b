package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"calendar-assistant/pkg/response"
)

const (
	ServiceName        = "calendar-assistant"
	ServiceVersion     = "1.0.0"
	readyCheckTimeout  = 3 * time.Second
	notReadyStatusText = "not_ready"
)

// ReadyCheck reports whether the dependencies behind the dialogue pipeline
// can take traffic.
type ReadyCheck func(ctx context.Context) error

type probeResp struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Reason  string `json:"reason,omitempty"`
}

func (srv HTTPServer) probe(status string) probeResp {
	return probeResp{
		Status:  status,
		Service: ServiceName,
		Version: ServiceVersion,
		Uptime:  time.Since(srv.startedAt).Truncate(time.Second).String(),
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, srv.probe("healthy"))
}

// readyCheck runs the configured ReadyCheck; without one the server is ready
// as soon as it is up.
// @Summary Readiness Check
// @Description Check if the LLM providers and calendar are usable
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is ready"
// @Failure 503 {object} response.Resp "A dependency is not ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if srv.ready == nil {
		response.OK(c, srv.probe("ready"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readyCheckTimeout)
	defer cancel()

	if err := srv.ready(ctx); err != nil {
		srv.l.Warnf(ctx, "httpserver.readyCheck: %v", err)
		body := srv.probe(notReadyStatusText)
		body.Reason = err.Error()
		c.JSON(http.StatusServiceUnavailable, response.Resp{
			ErrorCode: http.StatusServiceUnavailable,
			Message:   "Service not ready",
			Data:      body,
		})
		return
	}
	response.OK(c, srv.probe("ready"))
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the process is alive
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.probe("alive"))
}

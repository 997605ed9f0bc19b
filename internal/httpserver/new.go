package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	chatHTTP "calendar-assistant/internal/conversation/delivery/http"
	tgDelivery "calendar-assistant/internal/conversation/delivery/telegram"
	wsDelivery "calendar-assistant/internal/conversation/delivery/websocket"
	"calendar-assistant/internal/middleware"
	"calendar-assistant/internal/test"
	"calendar-assistant/pkg/log"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 120 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	registry    *prometheus.Registry
	middleware  middleware.Middleware
	ready       ReadyCheck
	startedAt   time.Time

	// Conversation domain
	chatHandler     chatHTTP.Handler
	wsHandler       wsDelivery.Handler
	telegramHandler tgDelivery.Handler

	// Test domain
	testHandler test.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Registry is served on /metrics when set.
	Registry   *prometheus.Registry
	Middleware middleware.Middleware
	// ReadyCheck backs /ready when set.
	ReadyCheck ReadyCheck

	// Conversation domain
	ChatHandler     chatHTTP.Handler
	WSHandler       wsDelivery.Handler
	TelegramHandler tgDelivery.Handler

	// Test domain, never mounted in production
	TestHandler test.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		registry:        cfg.Registry,
		middleware:      cfg.Middleware,
		ready:           cfg.ReadyCheck,
		startedAt:       time.Now(),
		chatHandler:     cfg.ChatHandler,
		wsHandler:       cfg.WSHandler,
		telegramHandler: cfg.TelegramHandler,
		testHandler:     cfg.TestHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.chatHandler == nil {
		return errors.New("chat handler is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}

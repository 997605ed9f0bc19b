package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"calendar-assistant/config"
	_ "calendar-assistant/docs" // Swagger docs
	"calendar-assistant/internal/calendar"
	googleRepo "calendar-assistant/internal/calendar/repository/google"
	sqliteRepo "calendar-assistant/internal/calendar/repository/sqlite"
	"calendar-assistant/internal/continuation"
	chatHTTP "calendar-assistant/internal/conversation/delivery/http"
	tgDelivery "calendar-assistant/internal/conversation/delivery/telegram"
	wsDelivery "calendar-assistant/internal/conversation/delivery/websocket"
	"calendar-assistant/internal/conversation/usecase"
	"calendar-assistant/internal/dispatcher"
	"calendar-assistant/internal/httpserver"
	"calendar-assistant/internal/intent"
	"calendar-assistant/internal/middleware"
	"calendar-assistant/internal/nlu"
	"calendar-assistant/internal/resolver"
	"calendar-assistant/internal/session"
	"calendar-assistant/internal/test"
	"calendar-assistant/internal/validator"
	"calendar-assistant/pkg/datemath"
	"calendar-assistant/pkg/gcalendar"
	"calendar-assistant/pkg/llmprovider"
	"calendar-assistant/pkg/log"
	"calendar-assistant/pkg/telegram"
)

// @title       Calendar Assistant API
// @description Conversational calendar assistant over HTTP, WebSocket and Telegram.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Calendar Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Timezone: %s", cfg.Dialogue.Timezone)

	// 3. LLM providers
	providers, warnings, err := llmprovider.InitializeProviders(&cfg.LLM)
	for _, w := range warnings {
		logger.Warn(ctx, w)
	}
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize LLM providers: %v", err)
		return
	}
	retryDelay, maxTotal := cfg.LLM.Durations()
	llmManager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotal,
	}, logger)
	for _, p := range llmManager.Providers() {
		logger.Infof(ctx, "LLM provider ready: %s", p.Name())
	}
	nluClient := nlu.New(llmManager, logger, cfg.Dialogue.Timezone)

	// 4. Calendar
	dateMathParser, err := datemath.NewParser(cfg.Dialogue.Timezone)
	if err != nil {
		logger.Errorf(ctx, "Invalid timezone: %v", err)
		return
	}

	cal, closeCalendar, err := newCalendar(ctx, cfg, dateMathParser, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize calendar: %v", err)
		return
	}
	defer closeCalendar()

	// 5. Dialogue pipeline
	sessions := session.NewMemoryStore(logger, session.Config{HistoryLimit: cfg.Dialogue.HistoryLimit})
	session.StartSweeper(ctx, logger, sessions, cfg.Dialogue.SweepInterval, cfg.Dialogue.SessionTTL)

	intentCfg := intent.Config{
		ConfidenceThreshold: cfg.Dialogue.ConfidenceThreshold,
		ContextTurns:        cfg.Dialogue.ContextTurns,
	}
	extractor := intent.NewExtractor(nluClient, logger, intentCfg)
	splitter := intent.NewSplitter(nluClient, logger, intentCfg)

	res := resolver.New(logger, cal, nluClient, resolver.Config{
		ConfidenceFloor: cfg.Dialogue.MatchConfidenceFloor,
		ContextTurns:    cfg.Dialogue.ContextTurns,
	})
	val := validator.New(logger, res)
	disp := dispatcher.New(logger, cal, nluClient, dateMathParser, dispatcher.Config{
		DefaultDurationMinutes: cfg.Dialogue.DefaultDurationMinutes,
		FollowupDays:           cfg.Dialogue.FollowupDays,
		ContextTurns:           cfg.Dialogue.ContextTurns,
	})
	cont := continuation.New(logger, disp, cfg.Dialogue.ActiveContextTTL)

	// 6. Metrics
	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	chatUC := usecase.New(logger, usecase.Deps{
		Sessions:     sessions,
		Extractor:    extractor,
		Splitter:     splitter,
		Validator:    val,
		Dispatcher:   disp,
		Continuation: cont,
		Metrics:      usecase.NewMetrics(registry, sessions.Len),
	}, usecase.Config{
		HistoryLimit:   cfg.Dialogue.HistoryLimit,
		PendingTTL:     cfg.Dialogue.PendingTTL,
		MessageTimeout: cfg.Dialogue.MessageTimeout,
	})

	// 7. Deliveries
	perMin := 0
	if cfg.RateLimit.Enabled {
		perMin = cfg.RateLimit.PerMin
	}
	mw := middleware.New(logger, middleware.Config{RateLimitPerMin: perMin})

	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, chatUC, bot, tgDelivery.Config{
			SecretToken:    cfg.Telegram.WebhookSecret,
			ProcessTimeout: cfg.Dialogue.MessageTimeout,
			Limiter:        mw.Limiter(),
		})
		go registerWebhook(ctx, cfg.Telegram, bot, logger)
	} else {
		logger.Warn(ctx, "Telegram skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		Registry:        registry,
		Middleware:      mw,
		ReadyCheck:      llmManager.Ready,
		ChatHandler:     chatHTTP.New(logger, chatUC),
		WSHandler:       wsDelivery.New(logger, chatUC, wsDelivery.Config{Limiter: mw.Limiter()}),
		TelegramHandler: telegramHandler,
		TestHandler:     test.New(logger, chatUC, extractor, splitter),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// newCalendar picks Google Calendar when credentials are configured and
// falls back to the local SQLite calendar otherwise.
func newCalendar(ctx context.Context, cfg *config.Config, dm *datemath.Parser, logger log.Logger) (calendar.Repository, func(), error) {
	if cfg.GoogleCalendar.CredentialsPath != "" {
		client, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if err == nil {
			logger.Info(ctx, "✅ Google Calendar initialized")
			return googleRepo.New(client, cfg.GoogleCalendar.CalendarID, cfg.Dialogue.Timezone, logger), func() {}, nil
		}
		logger.Warnf(ctx, "Google Calendar not available, using local calendar: %v", err)
		logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
	}

	repo, err := sqliteRepo.New(ctx, cfg.LocalCalendar.Path, dm.Location(), logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Infof(ctx, "✅ Local calendar at %s", cfg.LocalCalendar.Path)
	return repo, func() {
		if err := repo.Close(); err != nil {
			logger.Warnf(ctx, "Failed to close local calendar: %v", err)
		}
	}, nil
}

// registerWebhook registers the Telegram webhook: configured URL first, then
// an auto-detected ngrok tunnel.
func registerWebhook(ctx context.Context, cfg config.TelegramConfig, bot *telegram.Bot, logger log.Logger) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" {
		ngrokURL, err := detectNgrokURL(ctx, "http://ngrok:4040")
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
			return
		}
		webhookURL = ngrokURL + "/webhook/telegram"
		logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
	}

	if err := bot.SetWebhook(ctx, webhookURL, cfg.WebhookSecret); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
}

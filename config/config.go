package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Transports and calendar backends
	Telegram       TelegramConfig
	GoogleCalendar GoogleCalendarConfig
	LocalCalendar  LocalCalendarConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Dialogue engine
	Dialogue  DialogueConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken      string
	WebhookURL    string
	WebhookSecret string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
}

// LocalCalendarConfig configures the SQLite calendar used when Google
// Calendar credentials are absent.
type LocalCalendarConfig struct {
	Path string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // Global timeout for entire fallback chain
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// DialogueConfig holds the thresholds and lifetimes of the dialogue engine.
type DialogueConfig struct {
	Timezone               string
	ConfidenceThreshold    float64
	MatchConfidenceFloor   float64
	HistoryLimit           int
	ContextTurns           int
	SessionTTL             time.Duration
	SweepInterval          time.Duration
	PendingTTL             time.Duration
	ActiveContextTTL       time.Duration
	DefaultDurationMinutes int
	FollowupDays           int
	MessageTimeout         time.Duration
}

type RateLimitConfig struct {
	Enabled bool
	PerMin  int
}

type MetricsConfig struct {
	Enabled bool
}

// Load loads configuration using Viper.
// A .env file is applied to the process environment first when present.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = viper.GetString("telegram.webhook_secret")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	cfg.LocalCalendar.Path = viper.GetString("local_calendar.path")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	if viper.IsSet("llm.providers") {
		cfg.LLM.Providers = parseProviders(viper.Get("llm.providers"))
	}

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, fmt.Errorf("invalid llm config: %w", err)
	}

	// Dialogue
	cfg.Dialogue = DialogueConfig{
		Timezone:               viper.GetString("dialogue.timezone"),
		ConfidenceThreshold:    viper.GetFloat64("dialogue.confidence_threshold"),
		MatchConfidenceFloor:   viper.GetFloat64("dialogue.match_confidence_floor"),
		HistoryLimit:           viper.GetInt("dialogue.history_limit"),
		ContextTurns:           viper.GetInt("dialogue.context_turns"),
		SessionTTL:             viper.GetDuration("dialogue.session_ttl"),
		SweepInterval:          viper.GetDuration("dialogue.sweep_interval"),
		PendingTTL:             viper.GetDuration("dialogue.pending_ttl"),
		ActiveContextTTL:       viper.GetDuration("dialogue.active_context_ttl"),
		DefaultDurationMinutes: viper.GetInt("dialogue.default_duration_minutes"),
		FollowupDays:           viper.GetInt("dialogue.followup_days"),
		MessageTimeout:         viper.GetDuration("dialogue.message_timeout"),
	}
	if err := validateDialogueConfig(&cfg.Dialogue); err != nil {
		return nil, fmt.Errorf("invalid dialogue config: %w", err)
	}

	cfg.RateLimit.Enabled = viper.GetBool("rate_limit.enabled")
	cfg.RateLimit.PerMin = viper.GetInt("rate_limit.per_min")
	cfg.Metrics.Enabled = viper.GetBool("metrics.enabled")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("google_calendar.calendar_id", "primary")
	viper.SetDefault("local_calendar.path", "./data/calendar.db")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")

	// Dialogue defaults
	viper.SetDefault("dialogue.timezone", "UTC")
	viper.SetDefault("dialogue.confidence_threshold", 0.7)
	viper.SetDefault("dialogue.match_confidence_floor", 0.6)
	viper.SetDefault("dialogue.history_limit", 20)
	viper.SetDefault("dialogue.context_turns", 6)
	viper.SetDefault("dialogue.session_ttl", "24h")
	viper.SetDefault("dialogue.sweep_interval", "5m")
	viper.SetDefault("dialogue.pending_ttl", "10m")
	viper.SetDefault("dialogue.active_context_ttl", "30m")
	viper.SetDefault("dialogue.default_duration_minutes", 60)
	viper.SetDefault("dialogue.followup_days", 7)
	viper.SetDefault("dialogue.message_timeout", "90s")

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.per_min", 30)
	viper.SetDefault("metrics.enabled", true)
}

func parseProviders(raw any) []ProviderConfig {
	var providers []ProviderConfig
	providersList, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	for _, p := range providersList {
		providerMap, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		providers = append(providers, ProviderConfig{
			Name:     getStringFromMap(providerMap, "name"),
			Enabled:  getBoolFromMap(providerMap, "enabled"),
			Priority: getIntFromMap(providerMap, "priority"),
			APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
			BaseURL:  getStringFromMap(providerMap, "base_url"),
			Model:    getStringFromMap(providerMap, "model"),
			Timeout:  getStringFromMap(providerMap, "timeout"),
		})
	}
	return providers
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	for _, d := range []string{cfg.RetryDelay, cfg.MaxTotalTimeout} {
		if d == "" {
			continue
		}
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("invalid duration %q: %w", d, err)
		}
	}

	return nil
}

func validateDialogueConfig(cfg *DialogueConfig) error {
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be within [0,1], got %v", cfg.ConfidenceThreshold)
	}
	if cfg.MatchConfidenceFloor < 0 || cfg.MatchConfidenceFloor > 1 {
		return fmt.Errorf("match_confidence_floor must be within [0,1], got %v", cfg.MatchConfidenceFloor)
	}
	if cfg.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive")
	}
	if cfg.ContextTurns <= 0 || cfg.ContextTurns > cfg.HistoryLimit {
		return fmt.Errorf("context_turns must be within (0, history_limit]")
	}
	return nil
}

// Durations parses the LLM retry delay and global timeout.
func (c LLMConfig) Durations() (retryDelay, maxTotal time.Duration) {
	retryDelay, _ = time.ParseDuration(c.RetryDelay)
	maxTotal, _ = time.ParseDuration(c.MaxTotalTimeout)
	return retryDelay, maxTotal
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}

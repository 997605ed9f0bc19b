package llmprovider_test

import (
	"testing"
	"time"

	"calendar-assistant/config"
	"calendar-assistant/pkg/llmprovider"
	"calendar-assistant/pkg/log"
)

// TestIntegration_ConfigToManagerFlow verifies that configuration,
// provider initialization, and manager work together
func TestIntegration_ConfigToManagerFlow(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "qwen", Enabled: true, Priority: 1, APIKey: "test-qwen-key", Model: "qwen-plus"},
			{Name: "gemini", Enabled: true, Priority: 2, APIKey: "test-gemini-key", Model: "gemini-2.5-flash"},
			{Name: "anthropic", Enabled: true, Priority: 3, APIKey: "test-anthropic-key", Model: "claude-3-5-haiku-latest"},
		},
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      "1s",
	}

	providers, warnings, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize providers: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
	if len(providers) != 3 {
		t.Fatalf("Expected 3 providers, got %d", len(providers))
	}

	want := []string{"qwen", "gemini", "anthropic"}
	for i, name := range want {
		if providers[i].Name() != name {
			t.Errorf("provider[%d] = %s, want %s", i, providers[i].Name(), name)
		}
	}

	retryDelay, _ := time.ParseDuration(cfg.RetryDelay)
	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      retryDelay,
	}, log.NewNop())
	if len(manager.Providers()) != 3 {
		t.Errorf("Expected manager to keep 3 providers, got %d", len(manager.Providers()))
	}
}

// TestIntegration_ConfigValidation verifies that invalid configurations
// are caught during initialization
func TestIntegration_ConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		providers []config.ProviderConfig
		wantErr   bool
	}{
		{
			name:      "valid config",
			providers: []config.ProviderConfig{{Name: "deepseek", Enabled: true, Priority: 1, APIKey: "k", Model: "deepseek-chat"}},
		},
		{
			name:    "no providers",
			wantErr: true,
		},
		{
			name:      "all providers disabled",
			providers: []config.ProviderConfig{{Name: "qwen", Priority: 1, APIKey: "k", Model: "qwen-plus"}},
			wantErr:   true,
		},
		{
			name:      "missing API key",
			providers: []config.ProviderConfig{{Name: "qwen", Enabled: true, Priority: 1, Model: "qwen-plus"}},
			wantErr:   true,
		},
		{
			name:      "unknown provider",
			providers: []config.ProviderConfig{{Name: "mystery", Enabled: true, Priority: 1, APIKey: "k", Model: "m"}},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := llmprovider.InitializeProviders(&config.LLMConfig{Providers: tt.providers})
			if (err != nil) != tt.wantErr {
				t.Errorf("InitializeProviders() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestIntegration_PartialInitialization verifies a broken provider is
// skipped with a warning while the rest still load
func TestIntegration_PartialInitialization(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "openrouter", Enabled: true, Priority: 1, Model: "meta-llama/llama-3.1-8b-instruct"},
			{Name: "openai", Enabled: true, Priority: 2, APIKey: "k", Model: "gpt-4o-mini"},
		},
	}

	providers, warnings, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(providers) != 1 || providers[0].Name() != "openai" {
		t.Fatalf("Expected only openai to load, got %v", providers)
	}
	if len(warnings) != 1 {
		t.Errorf("Expected 1 warning, got %v", warnings)
	}
}

// TestIntegration_ProviderPriorityOrdering verifies that providers
// are ordered correctly by priority
func TestIntegration_ProviderPriorityOrdering(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "gemini", Enabled: true, Priority: 10, APIKey: "test-gemini-key", Model: "gemini-2.5-flash"},
			{Name: "qwen", Enabled: true, Priority: 1, APIKey: "test-qwen-key", Model: "qwen-plus"},
		},
	}

	providers, _, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize providers: %v", err)
	}
	if providers[0].Name() != "qwen" {
		t.Errorf("Expected first provider (priority 1) to be qwen, got %s", providers[0].Name())
	}
	if providers[1].Name() != "gemini" {
		t.Errorf("Expected second provider (priority 10) to be gemini, got %s", providers[1].Name())
	}
}

package anthropic

import (
	"errors"
	"net/http"
)

// Config configures the client.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("anthropic: API key is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	return nil
}

// Message is one conversation message.
type Message struct {
	Role    string // user | assistant
	Content string
}

// Request is a Messages API request.
type Request struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Response is a Messages API response reduced to its text.
type Response struct {
	Content string
	Model   string
	Usage   Usage
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

package openai

import "context"

// IOpenAI is a chat-completions client for OpenAI and API-compatible vendors
// (DeepSeek, Qwen, OpenRouter).
type IOpenAI interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}

// New creates a client from cfg.
func New(cfg Config) (IOpenAI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newOpenAIImpl(cfg), nil
}

package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type anthropicImpl struct {
	client *anthropicsdk.Client
	model  string
}

func newAnthropicImpl(cfg Config) *anthropicImpl {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &anthropicImpl{
		client: anthropicsdk.NewClient(opts...),
		model:  cfg.Model,
	}
}

func (a *anthropicImpl) Model() string {
	return a.model
}

func (a *anthropicImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	params := anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.F(a.model),
		MaxTokens: anthropicsdk.F(int64(maxTokens)),
		Messages:  anthropicsdk.F(toMessages(req.Messages)),
	}
	if req.System != "" {
		params.System = anthropicsdk.F([]anthropicsdk.TextBlockParam{
			{
				Type: anthropicsdk.F(anthropicsdk.TextBlockParamTypeText),
				Text: anthropicsdk.F(req.System),
			},
		})
	}
	if req.Temperature > 0 {
		params.Temperature = anthropicsdk.F(req.Temperature)
	}

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic: messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		switch b := block.AsUnion().(type) {
		case anthropicsdk.TextBlock:
			sb.WriteString(b.Text)
		}
	}

	return &Response{
		Content: sb.String(),
		Model:   string(message.Model),
		Usage: Usage{
			InputTokens:  int(message.Usage.InputTokens),
			OutputTokens: int(message.Usage.OutputTokens),
		},
	}, nil
}

// The Messages API requires alternating turns starting with the user, so
// consecutive same-role messages are folded together.
func toMessages(msgs []Message) []anthropicsdk.MessageParam {
	var out []anthropicsdk.MessageParam
	var lastRole string
	var buf []string

	flush := func() {
		if len(buf) == 0 {
			return
		}
		text := strings.Join(buf, "\n")
		if lastRole == "assistant" {
			out = append(out, anthropicsdk.NewAssistantMessage(anthropicsdk.NewTextBlock(text)))
		} else {
			out = append(out, anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(text)))
		}
		buf = nil
	}

	for _, m := range msgs {
		role := m.Role
		if role != "assistant" {
			role = "user"
		}
		if len(out) == 0 && len(buf) == 0 && role == "assistant" {
			continue
		}
		if role != lastRole {
			flush()
			lastRole = role
		}
		buf = append(buf, m.Content)
	}
	flush()
	return out
}

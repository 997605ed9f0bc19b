package nlu

import (
	"context"
	"encoding/json"

	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/llmprovider"
	"calendar-assistant/pkg/log"
)

// Client is the natural-language collaborator of the dialogue engine.
// Every method may fail or return nonsense; callers degrade to safe defaults.
type Client interface {
	// ExtractIntent runs a structured extraction and returns the JSON object
	// found in the model output.
	ExtractIntent(ctx context.Context, req ExtractRequest) (json.RawMessage, error)

	// GenerateText returns a free-form reply to prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// FindMatchingEvent picks the candidate the query refers to.
	FindMatchingEvent(ctx context.Context, query string, candidates []model.Event, turns []model.Turn) (MatchResult, error)
}

// Generator is the part of llmprovider.Manager the client needs.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

var _ Client = (*implClient)(nil)

// New creates an LLM-backed Client. timezone is used for the time context
// block and candidate rendering.
func New(llm Generator, l log.Logger, timezone string) *implClient {
	return &implClient{
		llm:      llm,
		l:        l,
		location: loadLocation(timezone),
	}
}

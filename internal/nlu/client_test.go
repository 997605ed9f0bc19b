package nlu

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/llmprovider"
	"calendar-assistant/pkg/log"
)

type fakeGenerator struct {
	reply string
	err   error
	reqs  []*llmprovider.Request
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llmprovider.Response{Content: llmprovider.NewTextMessage(llmprovider.RoleAssistant, f.reply)}, nil
}

func newTestClient(gen *fakeGenerator) *implClient {
	c := New(gen, log.NewNop(), "UTC")
	c.now = func() time.Time { return time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC) }
	return c
}

func TestExtractIntent(t *testing.T) {
	t.Run("strips fences and keeps turn order", func(t *testing.T) {
		gen := &fakeGenerator{reply: "Sure!\n```json\n{\"intent\": \"create_event\"}\n```"}
		c := newTestClient(gen)

		raw, err := c.ExtractIntent(context.Background(), ExtractRequest{
			SystemPrompt: "SYSTEM",
			Message:      "book lunch",
			Turns: []model.Turn{
				{Role: model.RoleUser, Text: "hi"},
				{Role: model.RoleAssistant, Text: "hello"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(raw) != `{"intent": "create_event"}` {
			t.Errorf("unexpected raw: %s", raw)
		}

		req := gen.reqs[0]
		if !req.JSONMode {
			t.Error("extraction must request JSON mode")
		}
		if !strings.HasPrefix(req.SystemInstruction.Text(), "SYSTEM") || !strings.Contains(req.SystemInstruction.Text(), "2025-11-03") {
			t.Errorf("system prompt missing parts: %q", req.SystemInstruction.Text())
		}
		if len(req.Messages) != 3 || req.Messages[1].Role != llmprovider.RoleAssistant || req.Messages[2].Text() != "book lunch" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
	})

	t.Run("prose only is malformed", func(t *testing.T) {
		c := newTestClient(&fakeGenerator{reply: "I could not understand that."})
		_, err := c.ExtractIntent(context.Background(), ExtractRequest{Message: "?"})
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("expected ErrMalformedResponse, got %v", err)
		}
	})

	t.Run("provider failure is wrapped", func(t *testing.T) {
		c := newTestClient(&fakeGenerator{err: llmprovider.ErrAllProvidersFailed})
		_, err := c.ExtractIntent(context.Background(), ExtractRequest{Message: "?"})
		if !errors.Is(err, llmprovider.ErrAllProvidersFailed) {
			t.Errorf("expected wrapped provider error, got %v", err)
		}
	})
}

func TestGenerateText(t *testing.T) {
	c := newTestClient(&fakeGenerator{reply: "  Hello there  "})
	got, err := c.GenerateText(context.Background(), "say hi")
	if err != nil || got != "Hello there" {
		t.Fatalf("GenerateText() = %q, %v", got, err)
	}

	c = newTestClient(&fakeGenerator{reply: "   "})
	if _, err := c.GenerateText(context.Background(), "say hi"); !errors.Is(err, llmprovider.ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestFindMatchingEvent(t *testing.T) {
	candidates := []model.Event{
		{
			ID: "ev-1", Title: "Sync",
			Start:       time.Date(2025, 11, 3, 14, 0, 0, 0, time.UTC),
			End:         time.Date(2025, 11, 3, 14, 45, 0, 0, time.UTC),
			Location:    "Room 1",
			Description: "Q4 budget\nreview " + strings.Repeat("x", 300),
		},
		{ID: "ev-2", Title: "Lunch", Start: time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)},
	}

	tests := []struct {
		name       string
		reply      string
		wantStatus MatchStatus
		wantID     string
		wantConf   float64
		wantErr    bool
	}{
		{name: "match", reply: `{"status":"match","event_id":"ev-1","confidence":0.9}`, wantStatus: MatchFound, wantID: "ev-1", wantConf: 0.9},
		{name: "none", reply: `{"status":"none","confidence":0.2}`, wantStatus: MatchNone, wantConf: 0.2},
		{name: "multiple", reply: `{"status":"multiple","confidence":0.5}`, wantStatus: MatchMultiple, wantConf: 0.5},
		{name: "legacy id only", reply: `{"event_id":"ev-2","confidence":1.7}`, wantStatus: MatchFound, wantID: "ev-2", wantConf: 1},
		{name: "garbage", reply: `no idea`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{reply: tt.reply}
			c := newTestClient(gen)

			got, err := c.FindMatchingEvent(context.Background(), "the sync", candidates, []model.Turn{{Role: model.RoleUser, Text: "about the sync"}})
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Status != tt.wantStatus || got.EventID != tt.wantID || got.Confidence != tt.wantConf {
				t.Errorf("got %+v", got)
			}

			prompt := gen.reqs[0].Messages[0].Text()
			for _, want := range []string{"id=ev-1", "id=ev-2", "Room 1", "to 14:45", "notes: Q4 budget review", "about the sync", `"the sync"`} {
				if !strings.Contains(prompt, want) {
					t.Errorf("prompt missing %q:\n%s", want, prompt)
				}
			}
		})
	}

	t.Run("long notes are cut", func(t *testing.T) {
		if got := []rune(shortDescription(strings.Repeat("y", 500))); len(got) != CandidateDescriptionLimit+1 {
			t.Errorf("length = %d", len(got))
		}
		if got := shortDescription(" a\n\tb "); got != "a b" {
			t.Errorf("flattened = %q", got)
		}
	})

	t.Run("no candidates skips the call", func(t *testing.T) {
		gen := &fakeGenerator{}
		c := newTestClient(gen)
		if _, err := c.FindMatchingEvent(context.Background(), "x", nil, nil); !errors.Is(err, ErrNoCandidates) {
			t.Errorf("expected ErrNoCandidates, got %v", err)
		}
		if len(gen.reqs) != 0 {
			t.Error("expected no LLM call")
		}
	})
}

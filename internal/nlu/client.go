package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/llmprovider"
)

var matchSchema = SchemaFor(matchPayload{})

func (c *implClient) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// ExtractIntent sends the system prompt, recent turns and the message, and
// returns the JSON object found in the answer.
func (c *implClient) ExtractIntent(ctx context.Context, req ExtractRequest) (json.RawMessage, error) {
	system := req.SystemPrompt + "\n\n" + BuildTimeContext(c.clock(), c.location)

	messages := toMessages(req.Turns)
	messages = append(messages, llmprovider.NewTextMessage(llmprovider.RoleUser, req.Message))

	resp, err := c.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{Parts: []llmprovider.Part{{Text: system}}},
		Messages:          messages,
		Temperature:       ExtractTemperature,
		MaxTokens:         ExtractMaxTokens,
		JSONMode:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", LogPrefixExtract, ErrMsgLLMCallFailed, err)
	}

	raw, err := extractJSON(resp.Text())
	if err != nil {
		c.l.Warnf(ctx, "%s: %v raw=%q", LogPrefixExtract, err, resp.Text())
		return nil, err
	}
	return raw, nil
}

// GenerateText returns a free-form answer to prompt.
func (c *implClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages:    []llmprovider.Message{llmprovider.NewTextMessage(llmprovider.RoleUser, prompt)},
		Temperature: TextTemperature,
		MaxTokens:   TextMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", LogPrefixText, ErrMsgLLMCallFailed, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%s: %w", LogPrefixText, llmprovider.ErrEmptyResponse)
	}
	return text, nil
}

// FindMatchingEvent asks the model which candidate the query refers to.
// The returned id is not checked against the candidates here.
func (c *implClient) FindMatchingEvent(ctx context.Context, query string, candidates []model.Event, turns []model.Turn) (MatchResult, error) {
	if len(candidates) == 0 {
		return MatchResult{Status: MatchNone}, ErrNoCandidates
	}

	resp, err := c.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{Parts: []llmprovider.Part{{
			Text: fmt.Sprintf(PromptMatchSystem, matchSchema) + "\n\n" + BuildTimeContext(c.clock(), c.location),
		}}},
		Messages: []llmprovider.Message{
			llmprovider.NewTextMessage(llmprovider.RoleUser, c.buildMatchPrompt(query, candidates, turns)),
		},
		Temperature: MatchTemperature,
		MaxTokens:   ExtractMaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		return MatchResult{}, fmt.Errorf("%s: %s: %w", LogPrefixMatch, ErrMsgLLMCallFailed, err)
	}

	raw, err := extractJSON(resp.Text())
	if err != nil {
		return MatchResult{}, err
	}

	var payload matchPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return MatchResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	result := MatchResult{
		Status:     MatchStatus(strings.ToLower(strings.TrimSpace(payload.Status))),
		EventID:    strings.TrimSpace(payload.EventID),
		Confidence: clamp01(payload.Confidence),
		Reasoning:  payload.Reasoning,
	}
	switch result.Status {
	case MatchFound, MatchNone, MatchMultiple:
	default:
		// Older prompts answered with an id and no status.
		if result.EventID != "" {
			result.Status = MatchFound
		} else {
			result.Status = MatchNone
		}
	}

	c.l.Debugf(ctx, "%s: status=%s id=%s confidence=%.2f", LogPrefixMatch, result.Status, result.EventID, result.Confidence)
	return result, nil
}

func (c *implClient) buildMatchPrompt(query string, candidates []model.Event, turns []model.Turn) string {
	var sb strings.Builder

	sb.WriteString(PromptCandidatesHeader)
	for _, ev := range candidates {
		start := ev.Start.In(c.location)
		fmt.Fprintf(&sb, "- id=%s | %q | %s", ev.ID, ev.Title, start.Format(CandidateTimeFormat))
		if !ev.End.IsZero() {
			end := ev.End.In(c.location)
			if end.YearDay() == start.YearDay() && end.Year() == start.Year() {
				fmt.Fprintf(&sb, " to %s", end.Format(CandidateClockFormat))
			} else {
				fmt.Fprintf(&sb, " to %s", end.Format(CandidateTimeFormat))
			}
		}
		if ev.Location != "" {
			fmt.Fprintf(&sb, " | at %s", ev.Location)
		}
		if len(ev.Attendees) > 0 {
			fmt.Fprintf(&sb, " | with %s", strings.Join(ev.Attendees, ", "))
		}
		if desc := shortDescription(ev.Description); desc != "" {
			fmt.Fprintf(&sb, " | notes: %s", desc)
		}
		sb.WriteString("\n")
	}

	if len(turns) > 0 {
		sb.WriteString("\n")
		sb.WriteString(PromptHistoryHeader)
		for _, t := range turns {
			fmt.Fprintf(&sb, "%s: %s\n", t.Role, t.Text)
		}
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, PromptQueryHeader, query)
	return sb.String()
}

func toMessages(turns []model.Turn) []llmprovider.Message {
	out := make([]llmprovider.Message, 0, len(turns)+1)
	for _, t := range turns {
		role := llmprovider.RoleUser
		if t.Role == model.RoleAssistant {
			role = llmprovider.RoleAssistant
		}
		out = append(out, llmprovider.NewTextMessage(role, t.Text))
	}
	return out
}

// extractJSON returns the first JSON value embedded in text.
func extractJSON(text string) (json.RawMessage, error) {
	cleaned := SanitizeJSON(text)
	if cleaned == "" || !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, ErrMsgNotJSON)
	}
	return json.RawMessage(cleaned), nil
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// shortDescription flattens d to one line of at most CandidateDescriptionLimit runes.
func shortDescription(d string) string {
	d = strings.Join(strings.Fields(d), " ")
	runes := []rune(d)
	if len(runes) <= CandidateDescriptionLimit {
		return d
	}
	return string(runes[:CandidateDescriptionLimit]) + "…"
}

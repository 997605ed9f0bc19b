package intent

import (
	"context"
	"encoding/json"
	"errors"

	"calendar-assistant/internal/model"
	"calendar-assistant/internal/nlu"
)

// scriptedNLU answers ExtractIntent with canned payloads in order.
type scriptedNLU struct {
	replies []string
	err     error
	reqs    []nlu.ExtractRequest
}

func (s *scriptedNLU) ExtractIntent(ctx context.Context, req nlu.ExtractRequest) (json.RawMessage, error) {
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.replies) == 0 {
		return nil, errors.New("no scripted reply")
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return json.RawMessage(reply), nil
}

func (s *scriptedNLU) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("not scripted")
}

func (s *scriptedNLU) FindMatchingEvent(ctx context.Context, query string, candidates []model.Event, turns []model.Turn) (nlu.MatchResult, error) {
	return nlu.MatchResult{}, errors.New("not scripted")
}

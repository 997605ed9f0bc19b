package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/calendar/repository/sqlite"
	"calendar-assistant/internal/continuation"
	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/dispatcher"
	"calendar-assistant/internal/intent"
	"calendar-assistant/internal/model"
	"calendar-assistant/internal/nlu"
	"calendar-assistant/internal/resolver"
	"calendar-assistant/internal/session"
	"calendar-assistant/internal/validator"
	"calendar-assistant/pkg/datemath"
	"calendar-assistant/pkg/log"
)

// fakeNLU answers split calls with splitReply, extraction calls from a
// queue, and matches events by title substring.
type fakeNLU struct {
	splitReply   string
	extractions  []string
	text         string
	prompts      []string
	extractCalls int
	matchCalls   int
}

func (f *fakeNLU) ExtractIntent(ctx context.Context, req nlu.ExtractRequest) (json.RawMessage, error) {
	if strings.Contains(req.SystemPrompt, "several independent actions") {
		if f.splitReply == "" {
			return json.RawMessage(`{"compound":false,"confidence":1}`), nil
		}
		return json.RawMessage(f.splitReply), nil
	}
	f.extractCalls++
	if len(f.extractions) == 0 {
		return nil, errors.New("no scripted extraction")
	}
	next := f.extractions[0]
	f.extractions = f.extractions[1:]
	return json.RawMessage(next), nil
}

func (f *fakeNLU) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.text == "" {
		return "", errors.New("no scripted text")
	}
	return f.text, nil
}

func (f *fakeNLU) FindMatchingEvent(ctx context.Context, query string, candidates []model.Event, turns []model.Turn) (nlu.MatchResult, error) {
	f.matchCalls++
	var hits []model.Event
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.Title), strings.ToLower(query)) {
			hits = append(hits, c)
		}
	}
	switch len(hits) {
	case 0:
		return nlu.MatchResult{Status: nlu.MatchNone}, nil
	case 1:
		return nlu.MatchResult{Status: nlu.MatchFound, EventID: hits[0].ID, Confidence: 0.9}, nil
	}
	return nlu.MatchResult{Status: nlu.MatchMultiple, Confidence: 0.8}, nil
}

type testEnv struct {
	uc       *implUseCase
	nlu      *fakeNLU
	cal      calendar.Repository
	sessions *session.MemoryStore
	registry *prometheus.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	l := log.NewNop()

	cal, err := sqlite.New(ctx, filepath.Join(t.TempDir(), "calendar.db"), time.UTC, l)
	if err != nil {
		t.Fatalf("open calendar: %v", err)
	}
	t.Cleanup(func() { cal.Close() })

	dm, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("parser: %v", err)
	}

	fake := &fakeNLU{}
	store := session.NewMemoryStore(l, session.Config{})
	registry := prometheus.NewRegistry()
	disp := dispatcher.New(l, cal, fake, dm, dispatcher.Config{})

	uc := New(l, Deps{
		Sessions:     store,
		Extractor:    intent.NewExtractor(fake, l, intent.Config{}),
		Splitter:     intent.NewSplitter(fake, l, intent.Config{}),
		Validator:    validator.New(l, resolver.New(l, cal, fake, resolver.Config{})),
		Dispatcher:   disp,
		Continuation: continuation.New(l, disp, 0),
		Metrics:      NewMetrics(registry, store.Len),
	}, Config{}).(*implUseCase)

	return &testEnv{uc: uc, nlu: fake, cal: cal, sessions: store, registry: registry}
}

func (e *testEnv) send(t *testing.T, text string) conversation.ProcessMessageOutput {
	t.Helper()
	out, err := e.uc.ProcessMessage(context.Background(), conversation.ProcessMessageInput{UserID: "u1", Text: text})
	if err != nil {
		t.Fatalf("ProcessMessage(%q): %v", text, err)
	}
	return out
}

func (e *testEnv) session(t *testing.T) model.ConversationSession {
	t.Helper()
	sess, err := e.uc.Session(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	return sess
}

func (e *testEnv) events(t *testing.T) []model.Event {
	t.Helper()
	events, err := e.cal.ListEvents(context.Background(), calendar.WindowAround(time.Now(), 365*24*time.Hour))
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	return events
}

func tomorrow() string {
	return time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
}

func TestProcessMessage_RejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.uc.ProcessMessage(ctx, conversation.ProcessMessageInput{UserID: "u1", Text: "   "}); !errors.Is(err, conversation.ErrEmptyMessage) {
		t.Errorf("blank text: err = %v", err)
	}
	if _, err := env.uc.ProcessMessage(ctx, conversation.ProcessMessageInput{Text: "hi"}); !errors.Is(err, conversation.ErrEmptyUserID) {
		t.Errorf("blank user: err = %v", err)
	}
	long := strings.Repeat("a", DefaultMaxMessageLen+1)
	if _, err := env.uc.ProcessMessage(ctx, conversation.ProcessMessageInput{UserID: "u1", Text: long}); !errors.Is(err, conversation.ErrMessageTooLong) {
		t.Errorf("long text: err = %v", err)
	}
}

func TestProcessMessage_LowConfidenceBecomesChat(t *testing.T) {
	env := newTestEnv(t)
	env.nlu.extractions = []string{`{"intent":"cancel_event","confidence":0.5,"fields":{"event_identifier":"Sync"}}`}
	env.nlu.text = "Happy to help!"

	out := env.send(t, "maybe cancel?")

	if out.Intent != string(model.IntentGeneralChat) || out.Kind != model.KindChat {
		t.Errorf("output = %+v", out)
	}
	if env.nlu.matchCalls != 0 {
		t.Error("no event resolution expected")
	}
	if got := testutil.ToFloat64(env.uc.metrics.fallbacks.WithLabelValues(intent.ReasonLowConfidence)); got != 1 {
		t.Errorf("fallback counter = %v", got)
	}
}

func TestProcessMessage_CreateCancelList(t *testing.T) {
	env := newTestEnv(t)
	day := tomorrow()
	env.nlu.text = "Nothing scheduled."

	env.nlu.extractions = []string{`{"intent":"create_event","confidence":0.95,"fields":{"title":"Sync","date":"` + day + `","time":"14:00"}}`}
	created := env.send(t, "book Sync tomorrow at 2pm")
	if !created.Success || created.Kind != model.KindCalendarAction {
		t.Fatalf("create: %+v", created)
	}
	event := created.Payload.(model.Event)

	env.nlu.extractions = []string{`{"intent":"cancel_event","confidence":0.9,"fields":{"event_identifier":"Sync"}}`}
	cancelled := env.send(t, "cancel Sync")
	if !cancelled.Success {
		t.Fatalf("cancel: %+v", cancelled)
	}
	if got := cancelled.Payload.(model.CancelledEvent).EventID; got != event.ID {
		t.Errorf("cancelled %s, want %s", got, event.ID)
	}

	env.nlu.extractions = []string{`{"intent":"list_events","confidence":0.9,"fields":{"date":"` + day + `"}}`}
	listed := env.send(t, "what's on tomorrow?")
	for _, e := range listed.Payload.([]model.Event) {
		if e.ID == event.ID {
			t.Errorf("cancelled event still listed: %+v", e)
		}
	}

	if got := len(env.session(t).Turns); got != 6 {
		t.Errorf("turns = %d, want 6", got)
	}
}

func TestProcessMessage_ClarifyAndResume(t *testing.T) {
	env := newTestEnv(t)

	env.nlu.extractions = []string{`{"intent":"create_event","confidence":0.9,"fields":{"title":"Sync"}}`}
	first := env.send(t, "schedule a Sync")

	if first.Success || first.Kind != model.KindClarification {
		t.Fatalf("first: %+v", first)
	}
	if !strings.Contains(first.Response, "date") || !strings.Contains(first.Response, "time") {
		t.Errorf("clarification = %q", first.Response)
	}
	pending := env.session(t).Pending
	if pending == nil || !reflect.DeepEqual(pending.Missing, []string{"date", "time"}) {
		t.Fatalf("pending = %+v", pending)
	}

	env.nlu.extractions = []string{`{"intent":"create_event","confidence":0.85,"fields":{"date":"` + tomorrow() + `","time":"09:30"}}`}
	second := env.send(t, "tomorrow 9:30")

	if !second.Success || second.Intent != string(model.IntentCreateEvent) {
		t.Fatalf("second: %+v", second)
	}
	if title := second.Payload.(model.Event).Title; title != "Sync" {
		t.Errorf("title = %q, want the pending title", title)
	}
	if env.session(t).Pending != nil {
		t.Error("pending intent should be cleared")
	}
}

func TestProcessMessage_LowConfidenceNeverResumesPending(t *testing.T) {
	env := newTestEnv(t)
	env.nlu.text = "Could you say that again?"

	env.nlu.extractions = []string{
		`{"intent":"create_event","confidence":0.9,"fields":{"title":"Sync"}}`,
		`{"intent":"cancel_event","confidence":0.3,"fields":{"event_identifier":"Sync","date":"` + tomorrow() + `","time":"09:30"}}`,
	}
	env.send(t, "schedule a Sync")
	out := env.send(t, "hmm tomorrow 9:30 or cancel?")

	if out.Intent != string(model.IntentGeneralChat) || out.Kind != model.KindChat {
		t.Errorf("output = %+v", out)
	}
	if events := env.events(t); len(events) != 0 {
		t.Errorf("no event should be created, got %+v", events)
	}
}

func TestProcessMessage_LowConfidenceListIsNotRun(t *testing.T) {
	env := newTestEnv(t)
	env.nlu.text = "Tell me more."
	env.nlu.extractions = []string{`{"intent":"create_event","confidence":0.2,"multiple_intents":[
		{"intent":"create_event","fields":{"title":"A","date":"` + tomorrow() + `","time":"09:00"}},
		{"intent":"create_event","fields":{"title":"B","date":"` + tomorrow() + `","time":"10:00"}}
	]}`}

	out := env.send(t, "A at 9 B at 10")

	if out.Intent != string(model.IntentGeneralChat) {
		t.Errorf("output = %+v", out)
	}
	if events := env.events(t); len(events) != 0 {
		t.Errorf("no event should be created, got %+v", events)
	}
}

func TestProcessMessage_OtherIntentDiscardsPending(t *testing.T) {
	env := newTestEnv(t)
	env.nlu.text = "Nothing."

	env.nlu.extractions = []string{
		`{"intent":"create_event","confidence":0.9,"fields":{"title":"Sync"}}`,
		`{"intent":"list_events","confidence":0.9}`,
	}
	env.send(t, "schedule a Sync")
	env.send(t, "show my calendar")

	if env.session(t).Pending != nil {
		t.Error("list_events should discard the pending create")
	}
}

func TestProcessMessage_ContinuationAfterUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	seeded, err := env.cal.CreateEvent(ctx, calendar.CreateEventOptions{Title: "Sync", Start: start, End: start.Add(time.Hour)})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	env.nlu.extractions = []string{`{"intent":"update_event","confidence":0.9,"fields":{"event_identifier":"Sync","time":"15:00"}}`}
	updated := env.send(t, "move Sync to 3pm")
	if !updated.Success {
		t.Fatalf("update: %+v", updated)
	}
	if active := env.session(t).Active; active == nil || active.EventID != seeded.ID {
		t.Fatalf("active context = %+v", active)
	}

	extractCalls, matchCalls := env.nlu.extractCalls, env.nlu.matchCalls
	patched := env.send(t, "add sarah@x.com")

	if !patched.Success || patched.Intent != string(model.IntentUpdateEvent) {
		t.Fatalf("patch: %+v", patched)
	}
	if env.nlu.extractCalls != extractCalls || env.nlu.matchCalls != matchCalls {
		t.Error("continuation must bypass extraction and resolution")
	}
	stored, _ := env.cal.GetEvent(ctx, seeded.ID)
	if !reflect.DeepEqual(stored.Attendees, []string{"sarah@x.com"}) {
		t.Errorf("attendees = %v", stored.Attendees)
	}
	if env.session(t).Active != nil {
		t.Error("context should be consumed")
	}

	env.nlu.extractions = []string{
		`{"intent":"update_event","confidence":0.9,"fields":{"event_identifier":"Sync","time":"16:00"}}`,
		`{"intent":"general_chat","confidence":0.9}`,
	}
	env.nlu.text = "Sunny!"
	env.send(t, "actually 4pm")
	chat := env.send(t, "how is the weather?")

	if chat.Intent != string(model.IntentGeneralChat) {
		t.Errorf("unrelated message: %+v", chat)
	}
	if env.session(t).Active != nil {
		t.Error("unrelated message should clear the context")
	}
}

func TestProcessMessage_MultiStep(t *testing.T) {
	env := newTestEnv(t)
	env.nlu.text = "You have Lunch tomorrow."
	env.nlu.splitReply = `{"compound":true,"confidence":0.9,"intents":[
		{"intent":"create_event","fields":{"title":"Lunch","date":"` + tomorrow() + `","time":"13:00"}},
		{"intent":"cancel_event","fields":{"event_identifier":"Ghost meeting"}},
		{"intent":"create_event","fields":{"title":"Gym"}},
		{"intent":"list_events"}
	]}`

	out := env.send(t, "book lunch tomorrow at 1, cancel the ghost meeting, add gym and show my day")

	report, ok := out.Payload.(model.MultiStepReport)
	if !ok {
		t.Fatalf("payload = %T", out.Payload)
	}
	if report.TotalIntents != 4 || report.SuccessfulIntents != 2 || len(report.Steps) != 4 {
		t.Errorf("report = %d/%d with %d steps", report.SuccessfulIntents, report.TotalIntents, len(report.Steps))
	}
	wantOrder := []model.Intent{model.IntentCreateEvent, model.IntentCancelEvent, model.IntentCreateEvent, model.IntentListEvents}
	for i, step := range report.Steps {
		if step.Intent != wantOrder[i] {
			t.Errorf("step %d = %s, want %s", i, step.Intent, wantOrder[i])
		}
	}
	if out.Success || out.Intent != conversation.IntentMultiStep {
		t.Errorf("output = %+v", out)
	}
	if env.nlu.extractCalls != 0 {
		t.Error("split messages skip single extraction")
	}
	if env.session(t).Pending != nil {
		t.Error("steps must not leave a pending intent")
	}
	if !strings.HasPrefix(out.Response, "I handled 2 of 4 requests:") {
		t.Errorf("response = %q", out.Response)
	}
}

func TestProcessMessage_MultiStepListAsksOnlyItsPart(t *testing.T) {
	env := newTestEnv(t)
	env.nlu.text = "Nothing on Friday."
	env.nlu.splitReply = `{"compound":true,"confidence":0.9,"intents":[
		{"intent":"cancel_event","fields":{"event_identifier":"standup"}},
		{"intent":"list_events","fields":{"query":"what do I have","date":"` + tomorrow() + `"}}
	]}`

	env.send(t, "cancel the standup and show me what I have tomorrow")

	if len(env.nlu.prompts) != 1 {
		t.Fatalf("expected one list prompt, got %d", len(env.nlu.prompts))
	}
	prompt := env.nlu.prompts[0]
	if !strings.Contains(prompt, "Question: what do I have (on ") {
		t.Errorf("list prompt lacks the list question:\n%s", prompt)
	}
	if strings.Contains(prompt, "cancel the standup") {
		t.Errorf("list prompt carries the other request:\n%s", prompt)
	}
}

func TestProcessMessage_HistoryIsCapped(t *testing.T) {
	env := newTestEnv(t)
	env.nlu.text = "hi"
	for i := 0; i < 15; i++ {
		env.nlu.extractions = append(env.nlu.extractions, `{"intent":"general_chat","confidence":0.9}`)
	}

	for i := 0; i < 15; i++ {
		env.send(t, "hello")
	}

	if got := len(env.session(t).Turns); got != session.DefaultHistoryLimit {
		t.Errorf("turns = %d, want %d", got, session.DefaultHistoryLimit)
	}
}

func TestResetSession(t *testing.T) {
	env := newTestEnv(t)
	env.nlu.extractions = []string{`{"intent":"create_event","confidence":0.9,"fields":{"title":"Sync"}}`}
	env.send(t, "schedule a Sync")

	if err := env.uc.ResetSession(context.Background(), "u1"); err != nil {
		t.Fatalf("ResetSession: %v", err)
	}

	sess := env.session(t)
	if len(sess.Turns) != 0 || sess.Pending != nil {
		t.Errorf("session not reset: %+v", sess)
	}
	if err := env.uc.ResetSession(context.Background(), " "); !errors.Is(err, conversation.ErrEmptyUserID) {
		t.Errorf("blank user: err = %v", err)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveMessage("x", "chat", true, time.Second)
	m.IncrementClarification("x")
	m.IncrementStep("x", false)
	m.IncrementFallback("x")

	if NewMetrics(nil, nil) != nil {
		t.Error("nil registry should disable metrics")
	}
}

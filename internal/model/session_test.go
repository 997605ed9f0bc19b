package model

import (
	"fmt"
	"testing"
	"time"
)

func TestConversationSession_AppendTurnTrimsOldest(t *testing.T) {
	s := &ConversationSession{UserID: "u"}
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 21; i++ {
		s.AppendTurn(Turn{Role: RoleUser, Text: fmt.Sprintf("m%d", i), Timestamp: base.Add(time.Duration(i) * time.Second)}, 20)
	}

	if len(s.Turns) != 20 {
		t.Fatalf("expected 20 turns, got %d", len(s.Turns))
	}
	if s.Turns[0].Text != "m1" {
		t.Errorf("expected oldest retained turn m1, got %s", s.Turns[0].Text)
	}
	if s.Turns[19].Text != "m20" {
		t.Errorf("expected newest turn m20, got %s", s.Turns[19].Text)
	}
	if !s.LastActivity.Equal(base.Add(20 * time.Second)) {
		t.Errorf("last activity not advanced: %v", s.LastActivity)
	}
}

func TestConversationSession_RecentTurns(t *testing.T) {
	s := &ConversationSession{}
	for i := 0; i < 3; i++ {
		s.AppendTurn(Turn{Text: fmt.Sprintf("m%d", i)}, 20)
	}

	got := s.RecentTurns(6)
	if len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}

	got[0].Text = "changed"
	if s.Turns[0].Text != "m0" {
		t.Errorf("RecentTurns must return a copy")
	}

	if s.RecentTurns(0) != nil {
		t.Errorf("expected nil for n=0")
	}
}

func TestPendingIntent_Expired(t *testing.T) {
	now := time.Now()
	var nilPending *PendingIntent
	if !nilPending.Expired(now, time.Minute) {
		t.Errorf("nil pending intent must be expired")
	}

	p := &PendingIntent{CreatedAt: now.Add(-2 * time.Minute)}
	if !p.Expired(now, time.Minute) {
		t.Errorf("expected expired")
	}
	if p.Expired(now, time.Hour) {
		t.Errorf("expected fresh")
	}
}

func TestIntent_Classification(t *testing.T) {
	if !IntentCancelEvent.NeedsEventResolution() {
		t.Errorf("cancel_event targets an existing event")
	}
	if IntentCreateEvent.NeedsEventResolution() {
		t.Errorf("create_event does not target an existing event")
	}
	if !IntentHelpRequest.IsConversational() {
		t.Errorf("help_request is conversational")
	}
	if Intent("book_flight").IsValid() {
		t.Errorf("unknown intent must be invalid")
	}
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/intent"
	"calendar-assistant/internal/model"
	"calendar-assistant/internal/validator"
	pkgLog "calendar-assistant/pkg/log"
)

var tracer = otel.Tracer("calendar-assistant/internal/conversation")

func (uc *implUseCase) ProcessMessage(ctx context.Context, input conversation.ProcessMessageInput) (conversation.ProcessMessageOutput, error) {
	text := strings.TrimSpace(input.Text)
	userID := strings.TrimSpace(input.UserID)
	switch {
	case userID == "":
		return conversation.ProcessMessageOutput{}, conversation.ErrEmptyUserID
	case text == "":
		return conversation.ProcessMessageOutput{}, conversation.ErrEmptyMessage
	case utf8.RuneCountInString(text) > uc.cfg.MaxMessageLen:
		return conversation.ProcessMessageOutput{}, conversation.ErrMessageTooLong
	}

	ctx = pkgLog.WithUserID(ctx, userID)
	ctx, span := tracer.Start(ctx, "process message")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("message.channel", string(input.Channel)),
	)

	if uc.cfg.MessageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.MessageTimeout)
		defer cancel()
	}

	started := uc.now()

	sess, release, err := uc.sessions.Acquire(ctx, userID)
	if err != nil {
		uc.l.Errorf(ctx, "%s: failed to acquire session: %v", LogPrefixProcess, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "session unavailable")
		return conversation.ProcessMessageOutput{}, fmt.Errorf("acquire session: %w", err)
	}
	defer release()

	out := uc.process(ctx, sess, text)

	now := uc.now()
	sess.AppendTurn(model.Turn{Role: model.RoleUser, Text: text, Timestamp: now}, uc.cfg.HistoryLimit)
	sess.AppendTurn(model.Turn{Role: model.RoleAssistant, Text: out.Response, Timestamp: now}, uc.cfg.HistoryLimit)

	span.SetAttributes(
		attribute.String("intent", out.Intent),
		attribute.String("result.kind", string(out.Kind)),
		attribute.Bool("result.success", out.Success),
	)
	uc.metrics.ObserveMessage(out.Intent, string(out.Kind), out.Success, now.Sub(started))
	uc.l.Infof(ctx, "%s: intent=%s kind=%s success=%t", LogPrefixProcess, out.Intent, out.Kind, out.Success)

	return out, nil
}

// process runs the pipeline on the live session.
func (uc *implUseCase) process(ctx context.Context, sess *model.ConversationSession, text string) conversation.ProcessMessageOutput {
	if res, handled := uc.continuation.Handle(ctx, text, sess); handled {
		return toOutput(string(model.IntentUpdateEvent), 1, res)
	}

	if subs := uc.splitter.Split(ctx, text, sess.Turns); len(subs) >= 2 {
		return uc.runSteps(ctx, sess, subs)
	}

	if sess.Pending.Expired(uc.now(), uc.cfg.PendingTTL) {
		sess.Pending = nil
	}

	outcome := uc.extractor.Extract(ctx, text, intent.Context{History: sess.Turns, Pending: sess.Pending})
	if multi, ok := outcome.(intent.Multiple); ok {
		return uc.runSteps(ctx, sess, multi.Intents)
	}
	if fb, ok := outcome.(intent.Fallback); ok {
		uc.metrics.IncrementFallback(fb.Reason)
	}

	extracted := uc.resume(ctx, sess, outcome)

	v := uc.validator.Validate(ctx, extracted, sess, validator.ModeSingle)
	if v.Clarification != "" {
		uc.metrics.IncrementClarification(string(v.Intent))
	}

	res := uc.execute(ctx, sess, v)
	return toOutput(string(extracted.Name), extracted.Confidence, res)
}

// execute dispatches v and arms the continuation context after an update.
func (uc *implUseCase) execute(ctx context.Context, sess *model.ConversationSession, v model.ValidationResult) model.ActionResult {
	res, err := uc.dispatcher.Execute(ctx, v, sess.Turns)
	if err != nil {
		uc.l.Errorf(ctx, "%s: dispatch %s: %v", LogPrefixProcess, v.Intent, err)
	}

	if v.Intent == model.IntentUpdateEvent && res.Success {
		if event, ok := res.Payload.(model.Event); ok {
			sess.Active = &model.ActiveContext{
				Type:      model.ActiveContextEventUpdate,
				EventID:   event.ID,
				CreatedAt: uc.now(),
			}
		}
	}
	return res
}

func toOutput(intentName string, confidence float64, res model.ActionResult) conversation.ProcessMessageOutput {
	return conversation.ProcessMessageOutput{
		Success:    res.Success,
		Intent:     intentName,
		Confidence: confidence,
		Kind:       res.Kind,
		Response:   res.Message,
		Payload:    res.Payload,
	}
}

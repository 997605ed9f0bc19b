package usecase

import (
	"context"
	"fmt"
	"strings"

	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/model"
	"calendar-assistant/internal/validator"
)

// runSteps validates and executes subs in order. A failed or unclear step
// never stops the following ones and earlier steps are not undone.
func (uc *implUseCase) runSteps(ctx context.Context, sess *model.ConversationSession, subs []model.ExtractedIntent) conversation.ProcessMessageOutput {
	report := model.MultiStepReport{
		Steps:        make([]model.StepResult, 0, len(subs)),
		TotalIntents: len(subs),
	}

	lines := make([]string, 0, len(subs)+1)
	for i, sub := range subs {
		v := uc.validator.Validate(ctx, sub, sess, validator.ModeStep)
		res := uc.execute(ctx, sess, v)

		report.Steps = append(report.Steps, model.StepResult{
			Intent:  sub.Name,
			Success: res.Success,
			Kind:    res.Kind,
			Message: res.Message,
			Payload: res.Payload,
		})
		uc.metrics.IncrementStep(string(sub.Name), res.Success)

		if res.Success {
			report.SuccessfulIntents++
			lines = append(lines, fmt.Sprintf(MsgStepDone, i+1, res.Message))
		} else {
			lines = append(lines, fmt.Sprintf(MsgStepFailed, i+1, res.Message))
		}
	}

	uc.l.Infof(ctx, "%s: %d/%d steps succeeded", LogPrefixMultiStep, report.SuccessfulIntents, report.TotalIntents)

	header := fmt.Sprintf(MsgStepsHeader, report.SuccessfulIntents, report.TotalIntents)
	return conversation.ProcessMessageOutput{
		Success:    report.SuccessfulIntents == report.TotalIntents,
		Intent:     conversation.IntentMultiStep,
		Confidence: minConfidence(subs),
		Kind:       model.KindCalendarAction,
		Response:   header + "\n" + strings.Join(lines, "\n"),
		Payload:    report,
	}
}

func minConfidence(subs []model.ExtractedIntent) float64 {
	lowest := 1.0
	for _, s := range subs {
		if s.Confidence < lowest {
			lowest = s.Confidence
		}
	}
	return lowest
}

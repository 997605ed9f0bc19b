package resolver

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/model"
	"calendar-assistant/internal/nlu"
)

var tracer = otel.Tracer("calendar-assistant/internal/resolver")

// Resolve lists every event within the window around now and asks the
// matcher which one identifier refers to. Any failure resolves to not_found.
func (r *implResolver) Resolve(ctx context.Context, identifier string, history []model.Turn) Resolution {
	ctx, span := tracer.Start(ctx, "resolve event")
	defer span.End()

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return notFound()
	}

	candidates, err := r.cal.ListEvents(ctx, calendar.WindowAround(r.now(), r.cfg.Window))
	if err != nil {
		r.l.Errorf(ctx, "%s: failed to list candidates: %v", LogPrefix, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		return notFound()
	}
	span.SetAttributes(attribute.Int("resolver.candidates", len(candidates)))
	if len(candidates) == 0 {
		r.l.Infof(ctx, "%s: calendar is empty, nothing matches %q", LogPrefix, identifier)
		return notFound()
	}

	match, err := r.matcher.FindMatchingEvent(ctx, identifier, candidates, lastTurns(history, r.cfg.ContextTurns))
	if err != nil {
		r.l.Errorf(ctx, "%s: failed to match %q: %v", LogPrefix, identifier, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "match failed")
		return notFound()
	}

	switch match.Status {
	case nlu.MatchMultiple:
		r.l.Infof(ctx, "%s: %q is ambiguous", LogPrefix, identifier)
		span.SetAttributes(attribute.String("resolver.status", string(StatusAmbiguous)))
		return Resolution{Status: StatusAmbiguous}
	case nlu.MatchFound:
	default:
		return notFound()
	}

	if match.Confidence < r.cfg.ConfidenceFloor {
		r.l.Infof(ctx, "%s: match for %q below floor (%.2f)", LogPrefix, identifier, match.Confidence)
		return notFound()
	}

	for i := range candidates {
		if candidates[i].ID == match.EventID {
			event := candidates[i]
			span.SetAttributes(attribute.String("resolver.status", string(StatusFound)))
			return Resolution{Status: StatusFound, Event: &event}
		}
	}

	r.l.Warnf(ctx, "%s: matcher returned unknown event id %q", LogPrefix, match.EventID)
	return notFound()
}

func notFound() Resolution {
	return Resolution{Status: StatusNotFound}
}

func lastTurns(history []model.Turn, n int) []model.Turn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

package intent

import "calendar-assistant/internal/model"

// Outcome is the result of one extraction: Single, Multiple or Fallback.
type Outcome interface {
	outcome()
}

// Single is one confidently recognised intent with normalized fields.
type Single struct {
	Intent model.ExtractedIntent
}

// Multiple is a compound message the extraction call already decomposed.
type Multiple struct {
	Intents []model.ExtractedIntent
}

// Fallback means the message is treated as general chat whatever the model
// claimed. Reason is one of the Reason constants.
type Fallback struct {
	Intent model.ExtractedIntent
	Reason string
}

func (Single) outcome()   {}
func (Multiple) outcome() {}
func (Fallback) outcome() {}

// Effective returns the intent the rest of the pipeline acts on.
func Effective(o Outcome) model.ExtractedIntent {
	switch v := o.(type) {
	case Single:
		return v.Intent
	case Fallback:
		return v.Intent
	case Multiple:
		if len(v.Intents) > 0 {
			return v.Intents[0]
		}
	}
	return model.ExtractedIntent{Name: model.IntentGeneralChat, Confidence: FallbackConfidence}
}

// Context is what the extractor knows about the conversation.
type Context struct {
	History []model.Turn
	Pending *model.PendingIntent
}

// Config tunes the extractor and splitter.
type Config struct {
	ConfidenceThreshold float64
	ContextTurns        int
}

// extractionPayload is the JSON object the extraction prompt asks for.
type extractionPayload struct {
	Intent          string           `json:"intent" jsonschema:"description=one of the intent names listed above"`
	Confidence      float64          `json:"confidence" jsonschema:"minimum=0,maximum=1"`
	Fields          map[string]any   `json:"fields,omitempty" jsonschema:"description=field name to value; omit fields the user did not mention"`
	MultipleIntents []subIntentEntry `json:"multiple_intents,omitempty" jsonschema:"description=only when the message asks for two or more separate actions"`
}

type subIntentEntry struct {
	Intent     string         `json:"intent"`
	Confidence float64        `json:"confidence,omitempty" jsonschema:"minimum=0,maximum=1"`
	Fields     map[string]any `json:"fields,omitempty"`
}

// splitPayload is the JSON object the splitter prompt asks for.
type splitPayload struct {
	Compound   bool             `json:"compound" jsonschema:"description=true only for two or more independent actions"`
	Confidence float64          `json:"confidence" jsonschema:"minimum=0,maximum=1"`
	Intents    []subIntentEntry `json:"intents,omitempty" jsonschema:"description=actions in the order the user wants them done"`
}

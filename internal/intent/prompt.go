package intent

import (
	"encoding/json"
	"fmt"
	"strings"

	"calendar-assistant/internal/model"
	"calendar-assistant/internal/nlu"
)

var (
	extractionSchema = nlu.SchemaFor(extractionPayload{})
	splitSchema      = nlu.SchemaFor(splitPayload{})
	intentTable      = buildIntentTable()
)

func buildIntentTable() string {
	var sb strings.Builder
	for _, i := range model.AllIntents {
		spec := registry[i]
		fields := make([]string, 0, len(spec.Required)+len(spec.Optional))
		for _, f := range spec.Required {
			fields = append(fields, f+"*")
		}
		fields = append(fields, spec.Optional...)
		if len(fields) == 0 {
			fmt.Fprintf(&sb, "- %s\n", i)
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s\n", i, strings.Join(fields, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func buildExtractPrompt(pending *model.PendingIntent) string {
	prompt := fmt.Sprintf(PromptExtractSystem, intentTable, extractionSchema)
	if pending == nil {
		return prompt
	}

	collected, _ := json.Marshal(pending.Fields)
	return prompt + fmt.Sprintf(PromptPendingBlock,
		pending.Intent,
		strings.Join(pending.Missing, ", "),
		string(collected),
		pending.Intent,
	)
}

func buildSplitPrompt() string {
	return fmt.Sprintf(PromptSplitSystem, intentTable, splitSchema)
}

package nlu

import (
	"github.com/invopop/jsonschema"
)

// SchemaFor renders the JSON schema of v for embedding in a prompt.
func SchemaFor(v any) string {
	reflector := jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(v)
	// Prompts only need the shape; the $schema/$id noise costs tokens.
	schema.Version = ""
	schema.ID = ""

	b, err := schema.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}

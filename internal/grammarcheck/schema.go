package grammarcheck

import "github.com/abhisek/hanzidrill/internal/llm"

// VerdictSchema is the structured answer expected from the model.
var VerdictSchema = &llm.Schema{
	Name:        "sentence-verdict",
	Description: "Whether a learner's Chinese sentence is correct, with a short explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type":        "boolean",
				"description": "True when the sentence is grammatical, natural and uses the target word correctly",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "One or two sentences in Vietnamese explaining the verdict",
			},
			"corrected": map[string]any{
				"type":        "string",
				"description": "A corrected sentence in simplified Chinese, or an empty string when already correct",
			},
		},
		"required":             []any{"correct", "explanation", "corrected"},
		"additionalProperties": false,
	},
}

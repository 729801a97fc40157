package lessongen

import "github.com/abhisek/vocabiz/internal/llm"

// LessonSchema is the structured output shape for a generated lesson.
var LessonSchema = &llm.Schema{
	Name:        "vocab-lesson",
	Description: "A titled vocabulary lesson made of source/target word pairs",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short lesson title",
			},
			"pairs": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"source": map[string]any{"type": "string", "minLength": 1},
						"target": map[string]any{"type": "string", "minLength": 1},
					},
					"required":             []any{"source", "target"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "pairs"},
		"additionalProperties": false,
	},
}

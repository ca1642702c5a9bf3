package rag

// JSON schemas handed to the provider's schema-constrained generation mode.
// These are contracts, not hints: the synthesizer validates what comes back.

var intentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"response_type": map[string]any{
			"type": "string",
			"enum": []string{"structured", "conversational"},
		},
		"search_query": map[string]any{"type": "string"},
	},
	"required": []string{"response_type", "search_query"},
}

var briefSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"summaryOfRights": map[string]any{"type": "string"},
		"relevantActsAndArticles": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string"},
					"explanation": map[string]any{"type": "string"},
				},
			},
		},
		"similarCaseLaw": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":      map[string]any{"type": "string"},
					"principle": map[string]any{"type": "string"},
				},
			},
		},
		"nextSteps": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
}

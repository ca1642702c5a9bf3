package rag

import (
	"context"
	"encoding/json"

	"github.com/legalsahayak/sahayak/provider"
)

// IntentAnalyzer classifies a conversation into a response shape and a
// reformulated, self-contained search query.
type IntentAnalyzer struct {
	provider provider.Provider
}

func NewIntentAnalyzer(p provider.Provider) *IntentAnalyzer {
	return &IntentAnalyzer{provider: p}
}

// Analyze asks the model for {response_type, search_query}. Fields the model
// omits come back zero-valued; the orchestrator applies the fallback
// defaults, so a degraded call never blocks the turn on its own.
func (a *IntentAnalyzer) Analyze(ctx context.Context, history []Message) (Intent, error) {
	raw, err := a.provider.GenerateJSON(ctx, intentPrompt(history), intentSchema)
	if err != nil {
		return Intent{}, &ProviderError{Op: "intent", Err: err}
	}

	var intent Intent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return Intent{}, &SchemaViolationError{Op: "intent", Err: err}
	}
	return intent, nil
}

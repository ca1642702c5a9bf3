package rag

import (
	"context"
	"encoding/json"

	"github.com/legalsahayak/sahayak/provider"
)

// Synthesizer produces the final answer from the query and both retrieval
// contexts. Two-state dispatch keyed by response type, nothing more.
type Synthesizer struct {
	provider provider.Provider
}

func NewSynthesizer(p provider.Provider) *Synthesizer {
	return &Synthesizer{provider: p}
}

func (s *Synthesizer) Synthesize(ctx context.Context, query, localContext, webContext string, responseType ResponseType) (Response, error) {
	if responseType == ResponseStructured {
		return s.structured(ctx, query, localContext, webContext)
	}
	return s.conversational(ctx, query, localContext, webContext)
}

func (s *Synthesizer) structured(ctx context.Context, query, localContext, webContext string) (Response, error) {
	raw, err := s.provider.GenerateJSON(ctx, structuredPrompt(query, localContext, webContext), briefSchema)
	if err != nil {
		return Response{}, &ProviderError{Op: "synthesize", Err: err}
	}

	var brief StructuredResponse
	if err := json.Unmarshal(raw, &brief); err != nil {
		return Response{}, &SchemaViolationError{Op: "synthesize", Err: err}
	}
	// Absent fields are valid; emit them as empty, not null.
	if brief.RelevantActsAndArticles == nil {
		brief.RelevantActsAndArticles = []ActArticle{}
	}
	if brief.SimilarCaseLaw == nil {
		brief.SimilarCaseLaw = []CaseLaw{}
	}
	if brief.NextSteps == nil {
		brief.NextSteps = []string{}
	}
	return Response{Type: ResponseStructured, Structured: &brief}, nil
}

func (s *Synthesizer) conversational(ctx context.Context, query, localContext, webContext string) (Response, error) {
	text, err := s.provider.Generate(ctx, conversationalPrompt(query, localContext, webContext))
	if err != nil {
		return Response{}, &ProviderError{Op: "synthesize", Err: err}
	}
	return Response{Type: ResponseConversational, Conversational: &ConversationalResponse{ResponseText: text}}, nil
}

package rag

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/legalsahayak/sahayak/internal/telemetry"
	"github.com/legalsahayak/sahayak/internal/vectorstore"
	"github.com/legalsahayak/sahayak/provider"
)

// NotEnoughConversation is returned by Summarize for histories shorter than
// two messages, without invoking the model.
const NotEnoughConversation = "Not enough conversation to summarize."

// Orchestrator coordinates one turn: intent analysis, local retrieval, web
// search, and response synthesis. It holds only read-only shared state and is
// safe for concurrent use; every request runs the sequence independently.
type Orchestrator struct {
	provider provider.Provider
	analyzer *IntentAnalyzer
	store    *vectorstore.Store
	web      *ContextSearcher
	synth    *Synthesizer
	topK     int
	logger   *log.Logger
	metrics  *telemetry.Metrics
}

func NewOrchestrator(p provider.Provider, store *vectorstore.Store, web *ContextSearcher, topK int, logger *log.Logger, metrics *telemetry.Metrics) *Orchestrator {
	if logger == nil {
		logger = log.New(log.Writer(), "[RAG] ", log.LstdFlags)
	}
	if topK <= 0 {
		topK = 5
	}
	return &Orchestrator{
		provider: p,
		analyzer: NewIntentAnalyzer(p),
		store:    store,
		web:      web,
		synth:    NewSynthesizer(p),
		topK:     topK,
		logger:   logger,
		metrics:  metrics,
	}
}

// HandleTurn runs the full pipeline for one conversation turn. Embedding and
// generation failures are terminal; web search failure only degrades the
// context. No partial result is ever returned.
func (o *Orchestrator) HandleTurn(ctx context.Context, history []Message) (Response, error) {
	if len(history) == 0 {
		return Response{}, ErrEmptyHistory
	}
	start := time.Now()
	latest := history[len(history)-1]

	intent, err := o.analyzer.Analyze(ctx, history)
	if err != nil {
		o.fail(err, start)
		return Response{}, err
	}
	// A degraded intent call never blocks the turn: default the type and
	// fall back to the latest message verbatim as the search query.
	if intent.ResponseType != ResponseStructured && intent.ResponseType != ResponseConversational {
		intent.ResponseType = ResponseConversational
	}
	if intent.SearchQuery == "" {
		intent.SearchQuery = latest.Content
	}
	o.logger.Printf("intent analysis: type=%s query=%q", intent.ResponseType, intent.SearchQuery)

	localContext, err := o.searchLocal(ctx, intent.SearchQuery)
	if err != nil {
		o.fail(err, start)
		return Response{}, err
	}

	webContext := o.web.SearchContext(ctx, intent.SearchQuery)

	resp, err := o.synth.Synthesize(ctx, latest.Content, localContext, webContext, intent.ResponseType)
	if err != nil {
		o.fail(err, start)
		return Response{}, err
	}

	o.metrics.ObserveTurn(string(intent.ResponseType), "success", time.Since(start))
	return resp, nil
}

// searchLocal embeds the query and joins the top-k nearest chunk texts.
func (o *Orchestrator) searchLocal(ctx context.Context, query string) (string, error) {
	vec, err := o.provider.Embed(ctx, query)
	if err != nil {
		return "", &ProviderError{Op: "embed", Err: err}
	}
	hits, err := o.store.Search(vec, o.topK)
	if err != nil {
		return "", fmt.Errorf("local search: %w", err)
	}
	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Chunk.Text
	}
	return strings.Join(texts, "\n\n"), nil
}

// Summarize produces a concise summary of the conversation. Histories with
// fewer than two messages get a fixed message and no model call.
func (o *Orchestrator) Summarize(ctx context.Context, history []Message) (string, error) {
	if len(history) < 2 {
		return NotEnoughConversation, nil
	}
	text, err := o.provider.Generate(ctx, summaryPrompt(history))
	if err != nil {
		o.metrics.ObserveProviderError("summarize")
		return "", &ProviderError{Op: "summarize", Err: err}
	}
	return text, nil
}

func (o *Orchestrator) fail(err error, start time.Time) {
	var pe *ProviderError
	var se *SchemaViolationError
	switch {
	case errors.As(err, &pe):
		o.metrics.ObserveProviderError(pe.Op)
	case errors.As(err, &se):
		o.metrics.ObserveProviderError(se.Op)
	}
	o.metrics.ObserveTurn("unknown", "error", time.Since(start))
	o.logger.Printf("turn failed: %v", err)
}

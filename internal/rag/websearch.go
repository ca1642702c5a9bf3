package rag

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/legalsahayak/sahayak/internal/telemetry"
	"github.com/legalsahayak/sahayak/tools/web_search"
)

// Sentinel strings returned in place of web context. Web search is
// best-effort enrichment: a provider failure degrades the context, it never
// fails the turn.
const (
	NoWebResults     = "No relevant web results found."
	WebSearchFailure = "Could not perform a web search at this time."
)

// ContextSearcher wraps a WebSearcher and renders its results as a context
// block for prompts, absorbing provider errors into a sentinel.
type ContextSearcher struct {
	searcher web_search.WebSearcher
	k        int
	logger   *log.Logger
	metrics  *telemetry.Metrics
}

func NewContextSearcher(searcher web_search.WebSearcher, k int, logger *log.Logger, metrics *telemetry.Metrics) *ContextSearcher {
	if logger == nil {
		logger = log.New(log.Writer(), "[WEB] ", log.LstdFlags)
	}
	if k <= 0 {
		k = 3
	}
	return &ContextSearcher{searcher: searcher, k: k, logger: logger, metrics: metrics}
}

// SearchContext returns formatted snippets for the query, or a sentinel when
// there is nothing usable. It never returns an error.
func (s *ContextSearcher) SearchContext(ctx context.Context, query string) string {
	results, err := s.searcher.Discover(ctx, query, s.k)
	if err != nil {
		s.logger.Printf("web search failed: %v", err)
		if s.metrics != nil {
			s.metrics.WebSearchDegraded.Inc()
		}
		return WebSearchFailure
	}
	if len(results) == 0 {
		return NoWebResults
	}

	snippets := make([]string, len(results))
	for i, r := range results {
		snippets[i] = fmt.Sprintf("Source: %s\nSnippet: %s", r.URL, r.Snippet)
	}
	return strings.Join(snippets, "\n\n")
}

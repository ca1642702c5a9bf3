package web_search

import (
	"context"

	"github.com/legalsahayak/sahayak/tools/web_search/googlecse"
	"github.com/legalsahayak/sahayak/tools/web_search/models"
	"github.com/legalsahayak/sahayak/tools/web_search/serper"
)

// WebSearcher issues a query to an external search API and returns at most k
// snippet results. Errors are surfaced to the caller; the rag layer decides
// how much a failed search matters.
type WebSearcher interface {
	Discover(ctx context.Context, q string, k int) ([]models.Result, error)
}

type Provider string

const (
	GoogleCSEProvider Provider = "googlecse"
	SerperProvider    Provider = "serper"
)

type Error struct{ Msg string }

func (e *Error) Error() string { return e.Msg }

var ErrUnsupportedProvider = &Error{"unsupported provider"}

// NewWebSearcher creates a search adapter. engineID is only used by the
// Google Custom Search provider.
func NewWebSearcher(provider Provider, apiKey, engineID string) (WebSearcher, error) {
	switch provider {
	case GoogleCSEProvider:
		return googlecse.Search{ApiKey: apiKey, EngineID: engineID}, nil
	case SerperProvider:
		return serper.Search{ApiKey: apiKey}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}

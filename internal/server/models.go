package server

import "github.com/legalsahayak/sahayak/internal/rag"

// ChatRequest is the turn request: the caller owns and sends the whole
// conversation history every time.
type ChatRequest struct {
	History []rag.Message `json:"history"`
}

// ChatResponse wraps the tagged response union.
type ChatResponse struct {
	Response rag.Response `json:"response"`
}

type SummarizeRequest struct {
	History []rag.Message `json:"history"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

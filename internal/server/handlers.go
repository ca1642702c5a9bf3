package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/legalsahayak/sahayak/internal/rag"
)

// Handler is the thin transport adapter over the orchestrator: it translates
// request/response shapes and maps the error taxonomy to status codes. All
// provider detail stays in logs; callers see opaque messages.
type Handler struct {
	Orchestrator *rag.Orchestrator
	Logger       *log.Logger
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":     "healthy",
		"rag_system": h.Orchestrator != nil,
	})
}

func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.Orchestrator.HandleTurn(c.Request().Context(), req.History)
	if err != nil {
		if errors.Is(err, rag.ErrEmptyHistory) {
			return echo.NewHTTPError(http.StatusBadRequest, "History cannot be empty")
		}
		h.Logger.Printf("chat turn failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "An internal error occurred")
	}
	return c.JSON(http.StatusOK, ChatResponse{Response: resp})
}

func (h *Handler) Summarize(c echo.Context) error {
	var req SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	summary, err := h.Orchestrator.Summarize(c.Request().Context(), req.History)
	if err != nil {
		h.Logger.Printf("summarize failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "An internal error occurred")
	}
	return c.JSON(http.StatusOK, SummarizeResponse{Summary: summary})
}

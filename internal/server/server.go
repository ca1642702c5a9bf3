package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/legalsahayak/sahayak/config"
	"github.com/legalsahayak/sahayak/internal/rag"
	"github.com/legalsahayak/sahayak/internal/telemetry"
	"github.com/legalsahayak/sahayak/internal/vectorstore"
	"github.com/legalsahayak/sahayak/provider"
	"github.com/legalsahayak/sahayak/tools/web_search"
)

// Run wires the shared read-only dependencies once, then serves. Any
// configuration problem, including a missing vector store, is fatal before
// the listener starts.
func Run(cfg *config.Config) error {
	logger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)

	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	prov, err := provider.NewProvider(cfg.Provider)
	if err != nil {
		return err
	}
	store, err := vectorstore.Load(cfg.Store.Dir, cfg.Store.IndexFile, cfg.Store.ChunksFile)
	if err != nil {
		return err
	}
	searcher, err := web_search.NewWebSearcher(web_search.Provider(cfg.WebSearch.Provider), cfg.WebSearch.APIKey, cfg.WebSearch.EngineID)
	if err != nil {
		return err
	}

	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)
	web := rag.NewContextSearcher(searcher, cfg.WebSearch.MaxResults, nil, metrics)
	orch := rag.NewOrchestrator(prov, store, web, cfg.Store.TopK, nil, metrics)
	logger.Printf("RAG system initialized: %d chunks, dim %d", store.Len(), store.Dim())

	e := newEcho(logger)
	registerRoutes(e, &Handler{Orchestrator: orch, Logger: logger})

	return e.Start(cfg.Server.Address)
}

// newEcho builds the echo instance with the shared middleware stack and the
// unified error handler. Split out so handler tests can reuse it.
func newEcho(logger *log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		logger.Printf("%d %s %s rid=%s from %s: %v", code, req.Method, req.URL.Path, rid, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]any{"error": msg})
		}
	}
	return e
}

func registerRoutes(e *echo.Echo, h *Handler) {
	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	api := e.Group("/api")
	api.POST("/chat", h.Chat)
	api.POST("/summarize", h.Summarize)
}

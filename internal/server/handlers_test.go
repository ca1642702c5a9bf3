package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/legalsahayak/sahayak/internal/rag"
	"github.com/legalsahayak/sahayak/internal/vectorstore"
	"github.com/legalsahayak/sahayak/tools/web_search/models"
)

type scriptedProvider struct {
	intentJSON string
	briefJSON  string
	genText    string
}

func (p *scriptedProvider) Generate(context.Context, string) (string, error) {
	return p.genText, nil
}

func (p *scriptedProvider) GenerateJSON(_ context.Context, _ string, schema map[string]any) (json.RawMessage, error) {
	props, _ := schema["properties"].(map[string]any)
	if _, isIntent := props["search_query"]; isIntent {
		return json.RawMessage(p.intentJSON), nil
	}
	return json.RawMessage(p.briefJSON), nil
}

func (p *scriptedProvider) Embed(context.Context, string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (p *scriptedProvider) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func (p *scriptedProvider) EmbeddingDim() int { return 2 }

type staticSearcher struct{}

func (staticSearcher) Discover(context.Context, string, int) ([]models.Result, error) {
	return []models.Result{{Title: "case", URL: "https://example.com", Snippet: "snippet"}}, nil
}

func testServer(t *testing.T, p *scriptedProvider) *echo.Echo {
	t.Helper()
	store, err := vectorstore.New(
		[]vectorstore.Chunk{{Source: "acts.txt", Text: "Notice periods are mandatory.", ChunkID: 0}},
		[][]float32{{1, 0}},
	)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	logger := log.New(io.Discard, "", 0)
	web := rag.NewContextSearcher(staticSearcher{}, 3, logger, nil)
	orch := rag.NewOrchestrator(p, store, web, 5, logger, nil)

	e := newEcho(logger)
	registerRoutes(e, &Handler{Orchestrator: orch, Logger: logger})
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	e := testServer(t, &scriptedProvider{})
	rec := doJSON(t, e, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "healthy" || body["rag_system"] != true {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestChat_StructuredResponse(t *testing.T) {
	e := testServer(t, &scriptedProvider{
		intentJSON: `{"response_type":"structured","search_query":"notice period law"}`,
		briefJSON:  `{"summaryOfRights":"You must receive notice.","nextSteps":["Consult a lawyer"]}`,
	})
	rec := doJSON(t, e, http.MethodPost, "/api/chat",
		`{"history":[{"role":"user","content":"Was my eviction legal?"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Response struct {
			SummaryOfRights string   `json:"summaryOfRights"`
			NextSteps       []string `json:"nextSteps"`
		} `json:"response"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Response.SummaryOfRights != "You must receive notice." {
		t.Errorf("unexpected summary %q", body.Response.SummaryOfRights)
	}
	if len(body.Response.NextSteps) != 1 {
		t.Errorf("expected one next step, got %v", body.Response.NextSteps)
	}
}

func TestChat_ConversationalResponse(t *testing.T) {
	e := testServer(t, &scriptedProvider{
		intentJSON: `{"response_type":"conversational","search_query":"deposit"}`,
		genText:    "Your deposit should come back to you.",
	})
	rec := doJSON(t, e, http.MethodPost, "/api/chat",
		`{"history":[{"role":"user","content":"and my deposit?"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Response struct {
			ResponseText string `json:"response_text"`
		} `json:"response"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Response.ResponseText == "" {
		t.Error("expected non-empty response_text")
	}
}

func TestChat_EmptyHistory(t *testing.T) {
	e := testServer(t, &scriptedProvider{})
	rec := doJSON(t, e, http.MethodPost, "/api/chat", `{"history":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["error"] != "History cannot be empty" {
		t.Errorf("unexpected error message %q", body["error"])
	}
}

func TestChat_MalformedBody(t *testing.T) {
	e := testServer(t, &scriptedProvider{})
	rec := doJSON(t, e, http.MethodPost, "/api/chat", `{"history":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSummarize_ShortHistory(t *testing.T) {
	e := testServer(t, &scriptedProvider{genText: "should not appear"})
	rec := doJSON(t, e, http.MethodPost, "/api/summarize",
		`{"history":[{"role":"user","content":"hello"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body SummarizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Summary != rag.NotEnoughConversation {
		t.Errorf("unexpected summary %q", body.Summary)
	}
}

func TestSummarize_FullHistory(t *testing.T) {
	e := testServer(t, &scriptedProvider{genText: "User asked about eviction."})
	rec := doJSON(t, e, http.MethodPost, "/api/summarize",
		`{"history":[{"role":"user","content":"q"},{"role":"assistant","content":"a"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body SummarizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Summary != "User asked about eviction." {
		t.Errorf("unexpected summary %q", body.Summary)
	}
}

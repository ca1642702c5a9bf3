package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeEmbedder is a deterministic provider for builder tests: each text
// embeds to [len, count of spaces].
type fakeEmbedder struct {
	batchErr  error
	failTexts map[string]bool
}

func (f *fakeEmbedder) embed(text string) []float32 {
	return []float32{float32(len(text)), float32(strings.Count(text, " "))}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.failTexts[text] {
		return nil, fmt.Errorf("embed refused")
	}
	return f.embed(text), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.embed(t)
	}
	return out, nil
}

func (f *fakeEmbedder) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("not used")
}

func (f *fakeEmbedder) GenerateJSON(context.Context, string, map[string]any) (json.RawMessage, error) {
	return nil, fmt.Errorf("not used")
}

func (f *fakeEmbedder) EmbeddingDim() int { return 2 }

func testBuilder(f *fakeEmbedder) *Builder {
	return NewBuilder(f, ChunkPolicy{Size: 80, CollapseWhitespace: true}, log.New(io.Discard, "", 0))
}

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestBuild_AlignedStore(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"rent.txt":     "Tenants must receive notice before eviction.\nDeposits are refundable.",
		"contract.txt": "A contract requires offer and acceptance.",
	})
	f := &fakeEmbedder{}
	store, err := testBuilder(f).Build(context.Background(), dir)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if store.Len() == 0 {
		t.Fatal("expected chunks in store")
	}
	if store.Dim() != 2 {
		t.Fatalf("expected dim 2, got %d", store.Dim())
	}

	// index[i] must be the embedding of chunks[i].text: searching with one
	// chunk's own embedding must return that chunk at distance 0.
	hits, err := store.Search(f.embed("A contract requires offer and acceptance."), 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if hits[0].Chunk.Source != "contract.txt" || hits[0].Distance != 0 {
		t.Errorf("expected contract chunk at distance 0, got %q at %v", hits[0].Chunk.Source, hits[0].Distance)
	}
}

func TestBuild_SkipsUnsupportedAndBrokenFiles(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"good.txt":   "Some legal text about property rights.",
		"notes.md":   "unsupported format",
		"broken.pdf": "this is not a pdf",
	})
	store, err := testBuilder(&fakeEmbedder{}).Build(context.Background(), dir)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 chunk from the one good file, got %d", store.Len())
	}
}

func TestBuild_MissingCorpusDir(t *testing.T) {
	_, err := testBuilder(&fakeEmbedder{}).Build(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing corpus directory")
	}
}

func TestBuild_EmptyCorpusDir(t *testing.T) {
	_, err := testBuilder(&fakeEmbedder{}).Build(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("expected error for empty corpus directory")
	}
}

func TestBuild_ZeroVectorFallbackKeepsAlignment(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"a.txt": "First document text.",
		"b.txt": "Second document text.",
	})
	f := &fakeEmbedder{
		batchErr:  fmt.Errorf("batch quota exceeded"),
		failTexts: map[string]bool{"First document text.": true},
	}
	store, err := testBuilder(f).Build(context.Background(), dir)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected both chunks kept, got %d", store.Len())
	}
	// The failed chunk got a zero vector, so a zero query finds it first.
	hits, err := store.Search([]float32{0, 0}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if hits[0].Chunk.Source != "a.txt" || hits[0].Distance != 0 {
		t.Errorf("expected zero-vector chunk from a.txt, got %q at %v", hits[0].Chunk.Source, hits[0].Distance)
	}
}

func TestBuild_AllEmbeddingsFailedIsFatal(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"a.txt": "Only document."})
	f := &fakeEmbedder{
		batchErr:  fmt.Errorf("batch down"),
		failTexts: map[string]bool{"Only document.": true},
	}
	if _, err := testBuilder(f).Build(context.Background(), dir); err == nil {
		t.Fatal("expected error when every embedding fails")
	}
}

package indexer

import (
	"reflect"
	"strings"
	"testing"
)

func TestChunkDocument_FixedWindows(t *testing.T) {
	text := strings.Repeat("a", 25)
	chunks := chunkDocument("doc.txt", text, ChunkPolicy{Size: 10})
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0].Text) != 10 || len(chunks[1].Text) != 10 || len(chunks[2].Text) != 5 {
		t.Errorf("unexpected chunk sizes: %d %d %d", len(chunks[0].Text), len(chunks[1].Text), len(chunks[2].Text))
	}
	for i, c := range chunks {
		if c.ChunkID != i {
			t.Errorf("chunk %d has id %d", i, c.ChunkID)
		}
		if c.Source != "doc.txt" {
			t.Errorf("chunk %d has source %q", i, c.Source)
		}
	}
}

func TestChunkDocument_OverlapAdvancesAndTerminates(t *testing.T) {
	text := "abcdefghij" // 10 chars
	chunks := chunkDocument("doc.txt", text, ChunkPolicy{Size: 4, Overlap: 2})
	// Window starts advance by size-overlap = 2: 0,2,4,6,8.
	want := []string{"abcd", "cdef", "efgh", "ghij", "ij"}
	var got []string
	for _, c := range chunks {
		got = append(got, c.Text)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected windows %v, got %v", want, got)
	}
}

func TestChunkDocument_CollapseWhitespace(t *testing.T) {
	chunks := chunkDocument("doc.txt", "line one\nline two\n", ChunkPolicy{Size: 100, CollapseWhitespace: true})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "line one line two" {
		t.Errorf("expected newlines collapsed, got %q", chunks[0].Text)
	}
}

func TestChunkDocument_NewlinesKeptWithoutPolicy(t *testing.T) {
	chunks := chunkDocument("doc.txt", "line one\nline two", ChunkPolicy{Size: 100})
	if chunks[0].Text != "line one\nline two" {
		t.Errorf("expected original text preserved, got %q", chunks[0].Text)
	}
}

func TestChunkDocument_Idempotent(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 30)
	policy := ChunkPolicy{Size: 50, Overlap: 10, CollapseWhitespace: true}
	first := chunkDocument("doc.txt", text, policy)
	second := chunkDocument("doc.txt", text, policy)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("re-chunking identical input with identical policy produced different chunks")
	}
}

func TestChunkDocument_EmptyInput(t *testing.T) {
	if chunks := chunkDocument("doc.txt", "   \n  ", ChunkPolicy{Size: 10, CollapseWhitespace: true}); chunks != nil {
		t.Fatalf("expected no chunks for blank input, got %d", len(chunks))
	}
}

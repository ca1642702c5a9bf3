package vectorstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrStoreNotFound is returned by Load when either backing artifact is
// missing. The index and the chunk file are one logical unit; loading one
// without the other is an error.
var ErrStoreNotFound = errors.New("vector store not found, run 'sahayak index' to build it")

// Chunk is a bounded substring of a source document, the unit of retrieval.
// Chunks are immutable once written by the index builder.
type Chunk struct {
	Source  string `json:"source"`
	Text    string `json:"text"`
	ChunkID int    `json:"chunk_id"`
}

// Hit is a single nearest-neighbour search result.
type Hit struct {
	Chunk    Chunk
	Distance float32
}

// Store pairs an ordinal-indexed collection of embeddings with the chunks
// they were computed from: vector i is always the embedding of chunk i.
// Read-only after construction, safe for concurrent searches.
type Store struct {
	chunks  []Chunk
	vectors [][]float32
	dim     int
}

// New builds a store from aligned chunks and vectors.
func New(chunks []Chunk, vectors [][]float32) (*Store, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("misaligned store: %d chunks, %d vectors", len(chunks), len(vectors))
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty store")
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("zero-dimension vectors")
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), dim)
		}
	}
	return &Store{chunks: chunks, vectors: vectors, dim: dim}, nil
}

// Len returns the number of indexed chunks.
func (s *Store) Len() int { return len(s.chunks) }

// Dim returns the embedding dimension.
func (s *Store) Dim() int { return s.dim }

// Search returns the min(k, Len) chunks nearest to the query vector, ordered
// by non-decreasing squared Euclidean distance (the flat L2 contract).
func (s *Store) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != s.dim {
		return nil, fmt.Errorf("query has dimension %d, index has %d", len(query), s.dim)
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be > 0")
	}
	if k > len(s.vectors) {
		k = len(s.vectors)
	}

	hits := make([]Hit, len(s.vectors))
	for i, v := range s.vectors {
		var d float32
		for j := range v {
			diff := v[j] - query[j]
			d += diff * diff
		}
		hits[i] = Hit{Chunk: s.chunks[i], Distance: d}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits[:k], nil
}

// Load reads the paired artifacts from dir. Both files must exist.
func Load(dir, indexFile, chunksFile string) (*Store, error) {
	indexPath := filepath.Join(dir, indexFile)
	chunksPath := filepath.Join(dir, chunksFile)
	for _, p := range []string{indexPath, chunksPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("%w (missing %s)", ErrStoreNotFound, p)
		}
	}

	vectors, err := readIndex(indexPath)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	data, err := os.ReadFile(chunksPath)
	if err != nil {
		return nil, fmt.Errorf("read chunks: %w", err)
	}
	var chunks []Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("parse chunks: %w", err)
	}

	return New(chunks, vectors)
}

// Save persists both artifacts as a single logical commit: each file is
// written to a temp path first and both are renamed into place only after
// both writes succeeded, so a failure leaves no partially valid store.
func (s *Store) Save(dir, indexFile, chunksFile string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	indexPath := filepath.Join(dir, indexFile)
	chunksPath := filepath.Join(dir, chunksFile)
	indexTmp := indexPath + ".tmp"
	chunksTmp := chunksPath + ".tmp"

	cleanup := func() {
		os.Remove(indexTmp)
		os.Remove(chunksTmp)
	}

	if err := writeIndex(indexTmp, s.vectors, s.dim); err != nil {
		cleanup()
		return fmt.Errorf("write index: %w", err)
	}
	data, err := json.MarshalIndent(s.chunks, "", "  ")
	if err != nil {
		cleanup()
		return fmt.Errorf("marshal chunks: %w", err)
	}
	if err := os.WriteFile(chunksTmp, data, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("write chunks: %w", err)
	}

	if err := os.Rename(indexTmp, indexPath); err != nil {
		cleanup()
		return fmt.Errorf("commit index: %w", err)
	}
	if err := os.Rename(chunksTmp, chunksPath); err != nil {
		cleanup()
		os.Remove(indexPath)
		return fmt.Errorf("commit chunks: %w", err)
	}
	return nil
}

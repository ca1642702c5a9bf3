package indexer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/legalsahayak/sahayak/internal/vectorstore"
	"github.com/legalsahayak/sahayak/provider"
)

// Builder turns a corpus directory into a persisted vector store: extract,
// chunk, embed, commit. Per-file and per-chunk failures are absorbed so a
// long build is not aborted by one bad input; only an empty corpus or a
// wholly failed embedding pass is fatal.
type Builder struct {
	provider provider.Provider
	policy   ChunkPolicy
	logger   *log.Logger
}

func NewBuilder(p provider.Provider, policy ChunkPolicy, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.New(log.Writer(), "[INDEX] ", log.LstdFlags)
	}
	return &Builder{provider: p, policy: policy, logger: logger}
}

// Build reads every supported document under corpusDir and produces an
// aligned store where vector i is the embedding of chunk i.
func (b *Builder) Build(ctx context.Context, corpusDir string) (*vectorstore.Store, error) {
	entries, err := os.ReadDir(corpusDir)
	if err != nil {
		return nil, fmt.Errorf("corpus directory not found at %q, create it and add documents: %w", corpusDir, err)
	}

	b.logger.Printf("scanning files in %q", corpusDir)
	var chunks []vectorstore.Chunk
	docs := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(corpusDir, entry.Name())
		text, err := extractText(path)
		if err != nil {
			if errors.Is(err, errUnsupportedFormat) {
				continue
			}
			b.logger.Printf("failed to parse %s: %v", entry.Name(), err)
			continue
		}
		if text == "" {
			continue
		}
		docs++
		chunks = append(chunks, chunkDocument(entry.Name(), text, b.policy)...)
		b.logger.Printf("parsed %s", entry.Name())
	}
	if docs == 0 {
		return nil, fmt.Errorf("no documents found in corpus directory %q", corpusDir)
	}
	b.logger.Printf("split %d documents into %d chunks", docs, len(chunks))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := b.embedAll(ctx, texts)
	if err != nil {
		return nil, err
	}

	return vectorstore.New(chunks, vectors)
}

// embedAll tries one batch call first. If the batch fails it degrades to
// per-text embedding, substituting a zero vector for any text that still
// fails: that keeps ordinal alignment intact at the cost of silently poor
// retrieval for the affected chunk, so every substitution is warned about.
func (b *Builder) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := b.provider.EmbedBatch(ctx, texts)
	if err == nil {
		return vecs, nil
	}
	b.logger.Printf("batch embedding failed (%v), falling back to per-text embedding", err)

	dim := b.provider.EmbeddingDim()
	out := make([][]float32, len(texts))
	failed := 0
	for i, t := range texts {
		v, err := b.provider.Embed(ctx, t)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			b.logger.Printf("WARNING: embedding chunk %d failed (%v), using zero vector; retrieval for this chunk will be degraded", i, err)
			v = make([]float32, dim)
			failed++
		}
		out[i] = v
	}
	if failed == len(texts) {
		return nil, fmt.Errorf("embedding failed for all %d chunks", len(texts))
	}
	return out, nil
}

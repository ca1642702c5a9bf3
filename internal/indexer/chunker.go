package indexer

import (
	"strings"

	"github.com/legalsahayak/sahayak/internal/vectorstore"
)

// ChunkPolicy controls how extracted text is split into chunks.
type ChunkPolicy struct {
	Size               int
	Overlap            int  // characters shared between consecutive windows
	CollapseWhitespace bool // collapse newlines before chunking
}

// chunkDocument splits one document into fixed-size windows. The window
// start advances by Size-Overlap each step and the loop stops once it
// reaches the end of the text, so it terminates for any Overlap < Size.
// Same input and policy always yield the same chunk sequence.
func chunkDocument(source, text string, policy ChunkPolicy) []vectorstore.Chunk {
	if policy.CollapseWhitespace {
		text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := policy.Size - policy.Overlap
	if step <= 0 {
		step = policy.Size
	}

	var chunks []vectorstore.Chunk
	id := 0
	for start := 0; start < len(runes); start += step {
		end := start + policy.Size
		if end > len(runes) {
			end = len(runes)
		}
		piece := strings.TrimSpace(string(runes[start:end]))
		if piece == "" {
			continue
		}
		chunks = append(chunks, vectorstore.Chunk{
			Source:  source,
			Text:    piece,
			ChunkID: id,
		})
		id++
	}
	return chunks
}

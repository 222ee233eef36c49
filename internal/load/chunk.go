// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package load

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"
)

// DefaultChunkSize is the default character budget per chunk.
const DefaultChunkSize = 12000

// Chunk splits text into slices of at most size characters. Splitting is
// naive sequential slicing that prefers paragraph, then line, then word
// boundaries, falling back to character position when a run has no
// whitespace; chunks do not overlap, so every line of input appears in
// exactly one chunk. Text at or under the budget comes back as one chunk.
func Chunk(text string, size int) ([]string, error) {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if len(text) <= size {
		return []string{text}, nil
	}

	// The empty separator is the character-level fallback: without it,
	// whitespace-free text (URLs, base64 runs) never splits and blows the
	// budget.
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(size),
		textsplitter.WithChunkOverlap(0),
		textsplitter.WithSeparators([]string{"\n\n", "\n", " ", ""}),
	)

	chunks, err := splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("chunking text: %w", err)
	}
	return chunks, nil
}

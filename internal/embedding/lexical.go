package embedding

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/tahcohcat/gofigure-interrogation/internal/nlp"
)

const DefaultLexicalDimension = 512

// LexicalEmbedder hashes content-word stems into a fixed number of buckets.
// It works offline and is deterministic.
type LexicalEmbedder struct {
	dimension int
	keep      map[string]bool
}

func NewLexicalEmbedder(dimension int, keep map[string]bool) *LexicalEmbedder {
	if dimension <= 0 {
		dimension = DefaultLexicalDimension
	}
	return &LexicalEmbedder{dimension: dimension, keep: keep}
}

func (e *LexicalEmbedder) Name() string {
	return fmt.Sprintf("lexical-%d", e.dimension)
}

func (e *LexicalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dimension)
	for _, term := range nlp.Terms(text, e.keep) {
		h := fnv.New32a()
		h.Write([]byte(term))
		vec[h.Sum32()%uint32(e.dimension)]++
	}
	return vec, nil
}

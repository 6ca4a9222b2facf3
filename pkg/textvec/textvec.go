// Package textvec turns raw text corpora into fixed-width numeric
// representations: word-by-context co-occurrence vectors and
// document-by-ngram vectors. The package itself is an orchestration
// layer, wiring stage selectors to concrete pipeline stages from the
// tokenize, contract, vectorize and weighting packages and chaining
// their outputs in a fixed order.
//
// Vectorizer instances are cheap configuration holders; Fit produces an
// immutable fitted model. Models are safe for concurrent reads, but a
// single vectorizer must not be fitted from multiple goroutines at once.
package textvec

import (
	"strings"

	"github.com/cognicore/textvec/pkg/textvec/sparse"
)

// Tokenizer turns raw documents into token sequences.
type Tokenizer interface {
	Tokenize(docs []string) [][]string
}

// TokenTransformer rewrites token sequences, learning state during fit.
type TokenTransformer interface {
	FitTransform(seqs [][]string) ([][]string, error)
	Transform(seqs [][]string) ([][]string, error)
}

// DocTermVectorizer turns token sequences into a document-by-term matrix
// and exposes the learned term dictionary.
type DocTermVectorizer interface {
	FitTransform(docs [][]string) (*sparse.Matrix, error)
	Transform(docs [][]string) (*sparse.Matrix, error)
	Terms() []string
	TermIndex() map[string]int
}

// WordContextVectorizer turns token sequences into a word-by-context
// matrix and exposes the learned row and column dictionaries.
type WordContextVectorizer interface {
	FitTransform(sents [][]string) (*sparse.Matrix, error)
	Tokens() []string
	TokenIndex() map[string]int
	Columns() []string
	ColumnIndex() map[string]int
}

// MatrixTransformer rescales or corrects a sparse representation.
type MatrixTransformer interface {
	FitTransform(m *sparse.Matrix) (*sparse.Matrix, error)
	Transform(m *sparse.Matrix) (*sparse.Matrix, error)
}

// dedupeSequences drops exact duplicate sequences, keeping the first
// occurrence of each so the result is deterministic.
func dedupeSequences(seqs [][]string) [][]string {
	seen := make(map[string]struct{}, len(seqs))
	out := make([][]string, 0, len(seqs))
	for _, seq := range seqs {
		// \x1f never appears in tokens produced by the tokenizers.
		key := strings.Join(seq, "\x1f")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, seq)
	}
	return out
}

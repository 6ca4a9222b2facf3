package textvec

import (
	"fmt"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
	"github.com/cognicore/textvec/pkg/textvec/sparse"
	"github.com/cognicore/textvec/pkg/textvec/tokenize"
)

// WordVectorizerOptions configures the word embedding pipeline.
type WordVectorizerOptions struct {
	Tokenizer  TokenizerSpec
	Contractor ContractorSpec
	Vectorizer CooccurrenceSpec
	// Normalize L1-normalizes each word's context distribution.
	Normalize bool
	// DedupeSentences drops exact duplicate sentences before counting.
	// Repeated sentences (signature blocks, boilerplate) carry no extra
	// information about word usage.
	DedupeSentences bool
}

// DefaultWordVectorizerOptions returns the default pipeline configuration:
// unicode sentence tokenization, conservative contraction, flat
// co-occurrence windows, deduplication and normalization on.
func DefaultWordVectorizerOptions() *WordVectorizerOptions {
	return &WordVectorizerOptions{
		Normalize:       true,
		DedupeSentences: true,
	}
}

// WordVectorizer embeds the words of a corpus into a vector space where
// words used in similar contexts end up close together. The pipeline is
// tokenize (by sentence) -> contract -> dedupe -> co-occurrence count ->
// normalize, each stage resolved through the stage registries.
type WordVectorizer struct {
	opts *WordVectorizerOptions
}

// NewWordVectorizer creates a word vectorizer. A nil opts uses
// DefaultWordVectorizerOptions.
func NewWordVectorizer(opts *WordVectorizerOptions) *WordVectorizer {
	if opts == nil {
		opts = DefaultWordVectorizerOptions()
	}
	return &WordVectorizer{opts: opts}
}

// Fit learns a word representation from a corpus of raw documents and
// returns the fitted model.
func (v *WordVectorizer) Fit(corpus []string) (*WordModel, error) {
	tok, err := resolveTokenizer(v.opts.Tokenizer, tokenize.BySentence)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, fmt.Errorf(
			"tokenizer skipped; pass pre-tokenized sentences to FitTokens: %w",
			internalerr.ErrInvalidConfig)
	}
	return v.fitTokens(tok.Tokenize(corpus))
}

// FitTokens learns a word representation from pre-tokenized sentences,
// bypassing the tokenizer stage.
func (v *WordVectorizer) FitTokens(sents [][]string) (*WordModel, error) {
	return v.fitTokens(sents)
}

// FitTransform fits the model and returns its representation matrix.
func (v *WordVectorizer) FitTransform(corpus []string) (*sparse.Matrix, error) {
	model, err := v.Fit(corpus)
	if err != nil {
		return nil, err
	}
	return model.Representation(), nil
}

func (v *WordVectorizer) fitTokens(sents [][]string) (*WordModel, error) {
	contractor, err := resolveContractor(v.opts.Contractor)
	if err != nil {
		return nil, err
	}
	if contractor != nil {
		sents, err = contractor.FitTransform(sents)
		if err != nil {
			return nil, err
		}
	}

	if v.opts.DedupeSentences {
		sents = dedupeSequences(sents)
	}

	vec, err := resolveCooccurrence(v.opts.Vectorizer)
	if err != nil {
		return nil, err
	}
	rep, err := vec.FitTransform(sents)
	if err != nil {
		return nil, err
	}

	if v.opts.Normalize {
		rep = rep.NormalizeRowsL1()
	}

	return &WordModel{
		rep:         rep,
		tokens:      vec.Tokens(),
		tokenIndex:  vec.TokenIndex(),
		columns:     vec.Columns(),
		columnIndex: vec.ColumnIndex(),
	}, nil
}

// WordModel is the fitted result of a WordVectorizer: the word-by-context
// representation and its row and column dictionaries. A model is
// immutable and safe for concurrent reads.
type WordModel struct {
	rep         *sparse.Matrix
	tokens      []string
	tokenIndex  map[string]int
	columns     []string
	columnIndex map[string]int
}

// Representation returns the word-by-context matrix, one row per
// vocabulary word.
func (m *WordModel) Representation() *sparse.Matrix { return m.rep }

// Vocabulary returns the fitted words in row order.
func (m *WordModel) Vocabulary() []string { return m.tokens }

// TokenIndex maps a word to its row. The map must not be modified.
func (m *WordModel) TokenIndex() map[string]int { return m.tokenIndex }

// Columns returns the context feature names in column order.
func (m *WordModel) Columns() []string { return m.columns }

// ColumnIndex maps a context feature name to its column. The map must
// not be modified.
func (m *WordModel) ColumnIndex() map[string]int { return m.columnIndex }

// Lookup returns the words from the query present in the fitted
// vocabulary, in query order, together with their representation rows.
// Unknown words are silently dropped; a fully unknown query yields an
// empty slice and an empty matrix.
func (m *WordModel) Lookup(words []string) ([]string, *sparse.Matrix) {
	var present []string
	var rows []int
	for _, w := range words {
		if i, ok := m.tokenIndex[w]; ok {
			present = append(present, w)
			rows = append(rows, i)
		}
	}
	return present, m.rep.SelectRows(rows)
}

// Table densifies the representation rows of the given words (all
// vocabulary words when words is nil) into a labelled table. Returns a
// *CapacityError when rows x columns exceeds maxEntries; a budget of
// zero or less disables the guard.
func (m *WordModel) Table(maxEntries int, words []string) (*Table, error) {
	if words == nil {
		words = m.tokens
	}
	present, sub := m.Lookup(words)
	return denseTable(present, m.columns, sub, maxEntries)
}

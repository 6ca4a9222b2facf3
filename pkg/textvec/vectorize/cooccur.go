package vectorize

import (
	"fmt"
	"sort"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
	"github.com/cognicore/textvec/pkg/textvec/sparse"
)

// Direction selects which side of a target token a window covers.
type Direction int

const (
	// Before counts context tokens preceding the target.
	Before Direction = iota
	// After counts context tokens following the target.
	After
)

// WindowBlock describes one directional co-occurrence window. Each block
// contributes a full vocabulary-wide column group to the representation,
// with column names prefixed by Label.
type WindowBlock struct {
	Direction Direction
	Radius    int
	Label     string
}

// CooccurrenceOptions configures the co-occurrence vectorizer.
type CooccurrenceOptions struct {
	Blocks []WindowBlock
}

// DefaultCooccurrenceOptions returns before/after windows of radius 5,
// labelled pre and post.
func DefaultCooccurrenceOptions() CooccurrenceOptions {
	return CooccurrenceOptions{Blocks: []WindowBlock{
		{Direction: Before, Radius: 5, Label: "pre"},
		{Direction: After, Radius: 5, Label: "post"},
	}}
}

// Cooccurrence builds a word-by-context matrix: one row per vocabulary
// word, one column group per window block.
type Cooccurrence struct {
	opts        CooccurrenceOptions
	tokens      []string
	tokenIndex  map[string]int
	columns     []string
	columnIndex map[string]int
	fitted      bool
}

// NewCooccurrence creates a co-occurrence vectorizer. Empty options fall
// back to the default window blocks.
func NewCooccurrence(opts CooccurrenceOptions) *Cooccurrence {
	if len(opts.Blocks) == 0 {
		opts = DefaultCooccurrenceOptions()
	}
	return &Cooccurrence{opts: opts}
}

// FitTransform learns the vocabulary from the sentences and returns the
// stacked co-occurrence matrix.
func (c *Cooccurrence) FitTransform(sents [][]string) (*sparse.Matrix, error) {
	vocabSet := make(map[string]struct{})
	for _, sent := range sents {
		for _, tok := range sent {
			vocabSet[tok] = struct{}{}
		}
	}
	vocab := make([]string, 0, len(vocabSet))
	for tok := range vocabSet {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)

	c.tokens = vocab
	c.tokenIndex = make(map[string]int, len(vocab))
	for i, tok := range vocab {
		c.tokenIndex[tok] = i
	}

	blocks := make([]*sparse.Matrix, len(c.opts.Blocks))
	c.columns = nil
	for b, block := range c.opts.Blocks {
		if block.Radius <= 0 {
			return nil, fmt.Errorf("window block %d: radius %d: %w",
				b, block.Radius, internalerr.ErrInvalidConfig)
		}
		blocks[b] = c.countBlock(sents, block)
		for _, tok := range vocab {
			c.columns = append(c.columns, block.Label+"_"+tok)
		}
	}

	c.columnIndex = make(map[string]int, len(c.columns))
	for j, col := range c.columns {
		c.columnIndex[col] = j
	}
	c.fitted = true

	return sparse.HStack(blocks...)
}

// Tokens returns the vocabulary in row order.
func (c *Cooccurrence) Tokens() []string { return c.tokens }

// TokenIndex returns the word to row index mapping.
func (c *Cooccurrence) TokenIndex() map[string]int { return c.tokenIndex }

// Columns returns the context feature names in column order.
func (c *Cooccurrence) Columns() []string { return c.columns }

// ColumnIndex returns the context feature to column index mapping.
func (c *Cooccurrence) ColumnIndex() map[string]int { return c.columnIndex }

func (c *Cooccurrence) countBlock(sents [][]string, block WindowBlock) *sparse.Matrix {
	v := len(c.tokens)
	rows := make([]map[int]float64, v)
	for i := range rows {
		rows[i] = make(map[int]float64)
	}

	for _, sent := range sents {
		for i, tok := range sent {
			target := c.tokenIndex[tok]
			lo, hi := windowBounds(i, len(sent), block)
			for j := lo; j < hi; j++ {
				rows[target][c.tokenIndex[sent[j]]]++
			}
		}
	}

	b := sparse.NewBuilder(v)
	for _, row := range rows {
		b.AppendRow(row)
	}
	return b.Build()
}

// windowBounds returns the half-open context index range for position i.
func windowBounds(i, n int, block WindowBlock) (int, int) {
	if block.Direction == Before {
		lo := i - block.Radius
		if lo < 0 {
			lo = 0
		}
		return lo, i
	}
	hi := i + block.Radius + 1
	if hi > n {
		hi = n
	}
	return i + 1, hi
}

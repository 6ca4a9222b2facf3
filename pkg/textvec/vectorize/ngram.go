// Package vectorize turns token sequences into sparse numeric matrices:
// document-by-ngram counts and word-by-context co-occurrence counts.
package vectorize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
	"github.com/cognicore/textvec/pkg/textvec/sparse"
)

// NgramOptions configures the n-gram counter.
type NgramOptions struct {
	// NgramSize is the number of adjacent tokens per feature.
	NgramSize int
	// MinFrequency prunes n-grams whose share of all n-gram occurrences
	// falls below this proportion. Zero keeps everything.
	MinFrequency float64
	// ExcludedTokenRegex drops matching tokens before n-grams are formed.
	ExcludedTokenRegex string
	// Joiner glues tokens into an n-gram feature name.
	Joiner string
}

// DefaultNgramOptions returns plain bag-of-words settings.
func DefaultNgramOptions() NgramOptions {
	return NgramOptions{NgramSize: 1, Joiner: " "}
}

// Ngram counts n-gram occurrences per document. The n-gram dictionary is
// learned at fit time; Transform maps new documents onto it, ignoring
// n-grams that were never seen.
type Ngram struct {
	opts    NgramOptions
	exclude *regexp.Regexp
	index   map[string]int
	terms   []string
	fitted  bool
}

// NewNgram creates an n-gram vectorizer. Returns an error if the excluded
// token regex does not compile.
func NewNgram(opts NgramOptions) (*Ngram, error) {
	if opts.NgramSize <= 0 {
		opts.NgramSize = 1
	}
	if opts.Joiner == "" {
		opts.Joiner = " "
	}
	v := &Ngram{opts: opts}
	if opts.ExcludedTokenRegex != "" {
		re, err := regexp.Compile(opts.ExcludedTokenRegex)
		if err != nil {
			return nil, fmt.Errorf("excluded token regex: %v: %w", err,
				internalerr.ErrInvalidConfig)
		}
		v.exclude = re
	}
	return v, nil
}

// FitTransform learns the n-gram dictionary from the documents and returns
// their count matrix.
func (v *Ngram) FitTransform(docs [][]string) (*sparse.Matrix, error) {
	counts := make(map[string]int)
	total := 0
	grams := make([][]string, len(docs))
	for i, doc := range docs {
		grams[i] = v.ngrams(doc)
		for _, g := range grams[i] {
			counts[g]++
			total++
		}
	}

	kept := make([]string, 0, len(counts))
	for g, c := range counts {
		if v.opts.MinFrequency > 0 && total > 0 &&
			float64(c)/float64(total) < v.opts.MinFrequency {
			continue
		}
		kept = append(kept, g)
	}
	sort.Strings(kept)

	v.terms = kept
	v.index = make(map[string]int, len(kept))
	for j, g := range kept {
		v.index[g] = j
	}
	v.fitted = true

	return v.count(grams), nil
}

// Transform counts n-grams of new documents against the fitted dictionary.
func (v *Ngram) Transform(docs [][]string) (*sparse.Matrix, error) {
	if !v.fitted {
		return nil, fmt.Errorf("ngram vectorizer: %w", internalerr.ErrNotFitted)
	}
	grams := make([][]string, len(docs))
	for i, doc := range docs {
		grams[i] = v.ngrams(doc)
	}
	return v.count(grams), nil
}

// Terms returns the n-gram feature names in column order.
func (v *Ngram) Terms() []string { return v.terms }

// TermIndex returns the n-gram to column index mapping.
func (v *Ngram) TermIndex() map[string]int { return v.index }

func (v *Ngram) ngrams(doc []string) []string {
	tokens := doc
	if v.exclude != nil {
		tokens = make([]string, 0, len(doc))
		for _, tok := range doc {
			if !v.exclude.MatchString(tok) {
				tokens = append(tokens, tok)
			}
		}
	}
	n := v.opts.NgramSize
	if len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], v.opts.Joiner))
	}
	return out
}

func (v *Ngram) count(grams [][]string) *sparse.Matrix {
	b := sparse.NewBuilder(len(v.terms))
	for _, docGrams := range grams {
		row := make(map[int]float64)
		for _, g := range docGrams {
			if j, ok := v.index[g]; ok {
				row[j]++
			}
		}
		b.AppendRow(row)
	}
	return b.Build()
}

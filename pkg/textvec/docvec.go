package textvec

import (
	"fmt"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
	"github.com/cognicore/textvec/pkg/textvec/sparse"
	"github.com/cognicore/textvec/pkg/textvec/tokenize"
)

// DocVectorizerOptions configures the document embedding pipeline.
type DocVectorizerOptions struct {
	Tokenizer  TokenizerSpec
	Contractor ContractorSpec
	Vectorizer NgramSpec
	Weighting  WeightingSpec
	Effects    EffectsSpec
	// Normalize L1-normalizes each document row after all other stages.
	Normalize bool
	// DocumentIDs labels the rows of the fitted representation. When
	// empty, ULIDs are generated at fit time. When set, the length must
	// match the corpus.
	DocumentIDs []string
}

// DefaultDocVectorizerOptions returns the default pipeline configuration:
// unicode tokenization, conservative contraction, bag-of-words counts,
// information weighting, effect removal and normalization on.
func DefaultDocVectorizerOptions() *DocVectorizerOptions {
	return &DocVectorizerOptions{Normalize: true}
}

// DocVectorizer converts documents into a fixed-width representation
// suitable for comparing documents with each other. The pipeline is
// tokenize -> contract -> n-gram count -> information weight -> remove
// effects -> normalize, each stage resolved through the stage registries.
//
// When effect removal is active, rows are L1-normalized immediately
// before it regardless of the Normalize flag, since the background model
// is estimated over distributions rather than raw counts.
type DocVectorizer struct {
	opts *DocVectorizerOptions
}

// NewDocVectorizer creates a document vectorizer. A nil opts uses
// DefaultDocVectorizerOptions.
func NewDocVectorizer(opts *DocVectorizerOptions) *DocVectorizer {
	if opts == nil {
		opts = DefaultDocVectorizerOptions()
	}
	return &DocVectorizer{opts: opts}
}

// Fit learns a document representation from a corpus of raw documents
// and returns the fitted model.
func (v *DocVectorizer) Fit(corpus []string) (*DocModel, error) {
	tok, err := resolveTokenizer(v.opts.Tokenizer, tokenize.ByDocument)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, fmt.Errorf(
			"tokenizer skipped; pass pre-tokenized documents to FitTokens: %w",
			internalerr.ErrInvalidConfig)
	}
	return v.fitTokens(tok, tok.Tokenize(corpus))
}

// FitTokens learns a document representation from pre-tokenized
// documents, bypassing the tokenizer stage. The resulting model cannot
// Transform raw strings, only token sequences.
func (v *DocVectorizer) FitTokens(docs [][]string) (*DocModel, error) {
	return v.fitTokens(nil, docs)
}

// FitTransform fits the model and returns its representation matrix.
func (v *DocVectorizer) FitTransform(corpus []string) (*sparse.Matrix, error) {
	model, err := v.Fit(corpus)
	if err != nil {
		return nil, err
	}
	return model.Representation(), nil
}

func (v *DocVectorizer) fitTokens(tok Tokenizer, docs [][]string) (*DocModel, error) {
	contractor, err := resolveContractor(v.opts.Contractor)
	if err != nil {
		return nil, err
	}
	vec, err := resolveNgram(v.opts.Vectorizer)
	if err != nil {
		return nil, err
	}
	weighter, err := resolveWeighting(v.opts.Weighting)
	if err != nil {
		return nil, err
	}
	remover, err := resolveEffects(v.opts.Effects)
	if err != nil {
		return nil, err
	}

	ids := v.opts.DocumentIDs
	if len(ids) == 0 {
		ids = newDocumentIDs(len(docs))
	} else if len(ids) != len(docs) {
		return nil, fmt.Errorf("%d document IDs for %d documents: %w",
			len(ids), len(docs), internalerr.ErrInvalidInput)
	}

	model := &DocModel{
		tokenizer:  tok,
		contractor: contractor,
		vectorizer: vec,
		weighter:   weighter,
		remover:    remover,
		normalize:  v.opts.Normalize,
	}

	if contractor != nil {
		docs, err = contractor.FitTransform(docs)
		if err != nil {
			return nil, err
		}
	}

	rep, err := vec.FitTransform(docs)
	if err != nil {
		return nil, err
	}
	if weighter != nil {
		rep, err = weighter.FitTransform(rep)
		if err != nil {
			return nil, err
		}
	}
	if remover != nil {
		rep, err = remover.FitTransform(rep.NormalizeRowsL1())
		if err != nil {
			return nil, err
		}
	}
	if v.opts.Normalize {
		rep = rep.NormalizeRowsL1()
	}

	model.rep = rep
	model.ids = ids
	model.idIndex = make(map[string]int, len(ids))
	for i, id := range ids {
		model.idIndex[id] = i
	}
	return model, nil
}

// DocModel is the fitted result of a DocVectorizer or JointVectorizer:
// the document-by-ngram representation, its dictionaries and the fitted
// stage instances used to transform new data. A model is immutable and
// safe for concurrent reads.
type DocModel struct {
	rep     *sparse.Matrix
	ids     []string
	idIndex map[string]int

	tokenizer  Tokenizer
	contractor TokenTransformer
	vectorizer DocTermVectorizer
	weighter   MatrixTransformer
	remover    MatrixTransformer
	normalize  bool
}

// Representation returns the document-by-ngram matrix, one row per
// training document.
func (m *DocModel) Representation() *sparse.Matrix { return m.rep }

// DocumentIDs returns the row labels in row order.
func (m *DocModel) DocumentIDs() []string { return m.ids }

// Terms returns the n-gram feature names in column order.
func (m *DocModel) Terms() []string { return m.vectorizer.Terms() }

// TermIndex maps an n-gram to its column. The map must not be modified.
func (m *DocModel) TermIndex() map[string]int { return m.vectorizer.TermIndex() }

// Vocabulary returns the n-gram feature names; alias of Terms.
func (m *DocModel) Vocabulary() []string { return m.vectorizer.Terms() }

// Transform converts new documents into the fitted representation space
// using the already-fitted stages; nothing is re-learned. The tokenizer
// stage is a pure transform, tokenizers hold no fitted state.
func (m *DocModel) Transform(corpus []string) (*sparse.Matrix, error) {
	if m.tokenizer == nil {
		return nil, fmt.Errorf(
			"model was fitted on pre-tokenized input; use TransformTokens: %w",
			internalerr.ErrInvalidConfig)
	}
	return m.TransformTokens(m.tokenizer.Tokenize(corpus))
}

// TransformTokens converts new pre-tokenized documents into the fitted
// representation space.
func (m *DocModel) TransformTokens(docs [][]string) (*sparse.Matrix, error) {
	var err error
	if m.contractor != nil {
		docs, err = m.contractor.Transform(docs)
		if err != nil {
			return nil, err
		}
	}
	rep, err := m.vectorizer.Transform(docs)
	if err != nil {
		return nil, err
	}
	if m.weighter != nil {
		rep, err = m.weighter.Transform(rep)
		if err != nil {
			return nil, err
		}
	}
	if m.remover != nil {
		rep, err = m.remover.Transform(rep.NormalizeRowsL1())
		if err != nil {
			return nil, err
		}
	}
	if m.normalize {
		rep = rep.NormalizeRowsL1()
	}
	return rep, nil
}

// Table densifies the representation rows of the given document IDs (all
// documents when ids is nil) into a labelled table. Unknown IDs are
// silently dropped. Returns a *CapacityError when rows x columns exceeds
// maxEntries; a budget of zero or less disables the guard.
func (m *DocModel) Table(maxEntries int, ids []string) (*Table, error) {
	if ids == nil {
		ids = m.ids
	}
	var present []string
	var rows []int
	for _, id := range ids {
		if i, ok := m.idIndex[id]; ok {
			present = append(present, id)
			rows = append(rows, i)
		}
	}
	return denseTable(present, m.vectorizer.Terms(), m.rep.SelectRows(rows), maxEntries)
}

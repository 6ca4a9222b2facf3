package textvec

import (
	"fmt"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
	"github.com/cognicore/textvec/pkg/textvec/sparse"
)

// JointVectorizerOptions configures a document pipeline built from
// prebuilt delegates. Unlike DocVectorizerOptions there is no name or
// registry resolution: every stage is an instance, nil means skip.
type JointVectorizerOptions struct {
	Tokenizer  Tokenizer
	Contractor TokenTransformer
	Vectorizer DocTermVectorizer // required
	Weighting  MatrixTransformer
	Effects    MatrixTransformer
	// Normalize L1-normalizes each document row after all other stages.
	Normalize bool
	// DedupeFit fits the stages on deduplicated documents, then maps the
	// full corpus through the fitted stages. Row order and count of the
	// representation still match the input corpus.
	DedupeFit bool
	// DocumentIDs labels representation rows; ULIDs when empty.
	DocumentIDs []string
}

// JointVectorizer runs the document pipeline with directly supplied
// delegates. Behavior mirrors DocVectorizer, including the forced L1
// normalization before effect removal.
type JointVectorizer struct {
	opts *JointVectorizerOptions
}

// NewJointVectorizer creates a joint vectorizer from prebuilt stages.
func NewJointVectorizer(opts *JointVectorizerOptions) *JointVectorizer {
	if opts == nil {
		opts = &JointVectorizerOptions{Normalize: true}
	}
	return &JointVectorizer{opts: opts}
}

// Fit learns a document representation from a corpus of raw documents
// and returns the fitted model.
func (v *JointVectorizer) Fit(corpus []string) (*DocModel, error) {
	if v.opts.Tokenizer == nil {
		return nil, fmt.Errorf(
			"no tokenizer; pass pre-tokenized documents to FitTokens: %w",
			internalerr.ErrInvalidConfig)
	}
	return v.fitTokens(v.opts.Tokenizer, v.opts.Tokenizer.Tokenize(corpus))
}

// FitTokens learns a document representation from pre-tokenized
// documents.
func (v *JointVectorizer) FitTokens(docs [][]string) (*DocModel, error) {
	return v.fitTokens(nil, docs)
}

func (v *JointVectorizer) fitTokens(tok Tokenizer, docs [][]string) (*DocModel, error) {
	if v.opts.Vectorizer == nil {
		return nil, fmt.Errorf("joint vectorizer requires a vectorizer stage: %w",
			internalerr.ErrInvalidConfig)
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
		contractor: v.opts.Contractor,
		vectorizer: v.opts.Vectorizer,
		weighter:   v.opts.Weighting,
		remover:    v.opts.Effects,
		normalize:  v.opts.Normalize,
	}

	fitDocs := docs
	if v.opts.DedupeFit {
		fitDocs = dedupeSequences(docs)
	}

	// Fit every stage on the (possibly deduplicated) corpus.
	var err error
	contracted := fitDocs
	if model.contractor != nil {
		contracted, err = model.contractor.FitTransform(fitDocs)
		if err != nil {
			return nil, err
		}
	}
	rep, err := model.vectorizer.FitTransform(contracted)
	if err != nil {
		return nil, err
	}
	if model.weighter != nil {
		rep, err = model.weighter.FitTransform(rep)
		if err != nil {
			return nil, err
		}
	}
	if model.remover != nil {
		rep, err = model.remover.FitTransform(rep.NormalizeRowsL1())
		if err != nil {
			return nil, err
		}
	}
	if model.normalize {
		rep = rep.NormalizeRowsL1()
	}

	// With deduplicated fitting the fit-time matrix covers only unique
	// documents; rebuild the representation for the full corpus through
	// the now-fitted stages.
	if v.opts.DedupeFit && len(fitDocs) != len(docs) {
		rep, err = model.TransformTokens(docs)
		if err != nil {
			return nil, err
		}
	}

	model.rep = rep
	model.ids = ids
	model.idIndex = make(map[string]int, len(ids))
	for i, id := range ids {
		model.idIndex[id] = i
	}
	return model, nil
}

// FitTransform fits the model and returns its representation matrix.
func (v *JointVectorizer) FitTransform(corpus []string) (*sparse.Matrix, error) {
	model, err := v.Fit(corpus)
	if err != nil {
		return nil, err
	}
	return model.Representation(), nil
}

package textvec

import (
	"github.com/cognicore/textvec/pkg/textvec/tokenize"
)

// The resolve functions turn a stage spec into a ready delegate, or nil
// for a skipped stage. Unknown names fail with a *ConfigError listing the
// registered alternatives.

func resolveTokenizer(spec TokenizerSpec, granularity tokenize.Granularity) (Tokenizer, error) {
	switch spec.kind {
	case specSkip:
		return nil, nil
	case specPrebuilt:
		return spec.instance, nil
	}
	name := spec.name
	if spec.kind == specDefault {
		name = defaultTokenizerName
	}
	entry, ok := tokenizerRegistry[name]
	if !ok {
		return nil, &ConfigError{Slot: "tokenizer", Name: name, Valid: registryNames(tokenizerRegistry)}
	}
	opts := entry.defaults
	opts.Granularity = granularity
	if spec.configure != nil {
		spec.configure(&opts)
	}
	return entry.build(opts), nil
}

func resolveContractor(spec ContractorSpec) (TokenTransformer, error) {
	switch spec.kind {
	case specSkip:
		return nil, nil
	case specPrebuilt:
		return spec.instance, nil
	}
	name := spec.name
	if spec.kind == specDefault {
		name = defaultContractorName
	}
	entry, ok := contractorRegistry[name]
	if !ok {
		return nil, &ConfigError{Slot: "contractor", Name: name, Valid: registryNames(contractorRegistry)}
	}
	opts := entry.defaults
	if spec.configure != nil {
		spec.configure(&opts)
	}
	return entry.build(opts), nil
}

func resolveNgram(spec NgramSpec) (DocTermVectorizer, error) {
	if spec.kind == specPrebuilt {
		return spec.instance, nil
	}
	name := spec.name
	if spec.kind == specDefault {
		name = defaultNgramName
	}
	entry, ok := ngramRegistry[name]
	if !ok {
		return nil, &ConfigError{Slot: "vectorizer", Name: name, Valid: registryNames(ngramRegistry)}
	}
	opts := entry.defaults
	if spec.configure != nil {
		spec.configure(&opts)
	}
	return entry.build(opts)
}

func resolveCooccurrence(spec CooccurrenceSpec) (WordContextVectorizer, error) {
	if spec.kind == specPrebuilt {
		return spec.instance, nil
	}
	name := spec.name
	if spec.kind == specDefault {
		name = defaultCooccurrenceName
	}
	entry, ok := cooccurrenceRegistry[name]
	if !ok {
		return nil, &ConfigError{Slot: "vectorizer", Name: name, Valid: registryNames(cooccurrenceRegistry)}
	}
	opts := entry.defaults
	if spec.configure != nil {
		spec.configure(&opts)
	}
	return entry.build(opts), nil
}

func resolveWeighting(spec WeightingSpec) (MatrixTransformer, error) {
	switch spec.kind {
	case specSkip:
		return nil, nil
	case specPrebuilt:
		return spec.instance, nil
	}
	name := spec.name
	if spec.kind == specDefault {
		name = defaultWeightingName
	}
	entry, ok := weightingRegistry[name]
	if !ok {
		return nil, &ConfigError{Slot: "info weighting", Name: name, Valid: registryNames(weightingRegistry)}
	}
	opts := entry.defaults
	if spec.configure != nil {
		spec.configure(&opts)
	}
	return entry.build(opts), nil
}

func resolveEffects(spec EffectsSpec) (MatrixTransformer, error) {
	switch spec.kind {
	case specSkip:
		return nil, nil
	case specPrebuilt:
		return spec.instance, nil
	}
	name := spec.name
	if spec.kind == specDefault {
		name = defaultEffectsName
	}
	entry, ok := effectsRegistry[name]
	if !ok {
		return nil, &ConfigError{Slot: "effect removal", Name: name, Valid: registryNames(effectsRegistry)}
	}
	opts := entry.defaults
	if spec.configure != nil {
		spec.configure(&opts)
	}
	return entry.build(opts), nil
}

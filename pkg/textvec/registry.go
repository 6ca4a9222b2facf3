package textvec

import (
	"sort"

	"github.com/cognicore/textvec/pkg/textvec/contract"
	"github.com/cognicore/textvec/pkg/textvec/tokenize"
	"github.com/cognicore/textvec/pkg/textvec/vectorize"
	"github.com/cognicore/textvec/pkg/textvec/weighting"
)

// Default stage names per slot.
const (
	defaultTokenizerName    = "unicode"
	defaultContractorName   = "conservative"
	defaultNgramName        = "bow"
	defaultCooccurrenceName = "flat"
	defaultWeightingName    = "default"
	defaultEffectsName      = "default"
)

type tokenizerEntry struct {
	defaults tokenize.Options
	build    func(tokenize.Options) Tokenizer
}

var tokenizerRegistry = map[string]tokenizerEntry{
	"unicode": {
		defaults: tokenize.DefaultOptions(),
		build:    func(o tokenize.Options) Tokenizer { return tokenize.NewUnicode(o) },
	},
	"whitespace": {
		defaults: tokenize.DefaultOptions(),
		build:    func(o tokenize.Options) Tokenizer { return tokenize.NewWhitespace(o) },
	},
	"html": {
		defaults: tokenize.DefaultOptions(),
		build:    func(o tokenize.Options) Tokenizer { return tokenize.NewHTML(o) },
	},
}

type contractorEntry struct {
	defaults contract.Options
	build    func(contract.Options) TokenTransformer
}

var contractorRegistry = map[string]contractorEntry{
	"conservative": {
		defaults: contract.DefaultOptions(),
		build:    func(o contract.Options) TokenTransformer { return contract.New(o) },
	},
	"aggressive": {
		defaults: aggressiveContractorDefaults(),
		build:    func(o contract.Options) TokenTransformer { return contract.New(o) },
	},
}

func aggressiveContractorDefaults() contract.Options {
	o := contract.DefaultOptions()
	o.MaxIterations = 6
	return o
}

type ngramEntry struct {
	defaults vectorize.NgramOptions
	build    func(vectorize.NgramOptions) (DocTermVectorizer, error)
}

var ngramRegistry = map[string]ngramEntry{
	"bow": {
		defaults: vectorize.NgramOptions{
			NgramSize:          1,
			MinFrequency:       1e-5,
			ExcludedTokenRegex: `^\W+$`,
		},
		build: buildNgram,
	},
	"bigram": {
		defaults: vectorize.NgramOptions{
			NgramSize:          2,
			MinFrequency:       1e-5,
			ExcludedTokenRegex: `^\W+$`,
		},
		build: buildNgram,
	},
}

func buildNgram(o vectorize.NgramOptions) (DocTermVectorizer, error) {
	return vectorize.NewNgram(o)
}

type cooccurrenceEntry struct {
	defaults vectorize.CooccurrenceOptions
	build    func(vectorize.CooccurrenceOptions) WordContextVectorizer
}

var cooccurrenceRegistry = map[string]cooccurrenceEntry{
	"flat": {
		defaults: vectorize.DefaultCooccurrenceOptions(),
		build:    buildCooccurrence,
	},
	"flat15": {
		defaults: vectorize.CooccurrenceOptions{Blocks: []vectorize.WindowBlock{
			{Direction: vectorize.Before, Radius: 1, Label: "pre1"},
			{Direction: vectorize.After, Radius: 1, Label: "post1"},
			{Direction: vectorize.Before, Radius: 5, Label: "pre5"},
			{Direction: vectorize.After, Radius: 5, Label: "post5"},
		}},
		build: buildCooccurrence,
	},
}

func buildCooccurrence(o vectorize.CooccurrenceOptions) WordContextVectorizer {
	return vectorize.NewCooccurrence(o)
}

type weightingEntry struct {
	defaults weighting.InformationWeightOptions
	build    func(weighting.InformationWeightOptions) MatrixTransformer
}

var weightingRegistry = map[string]weightingEntry{
	"default": {
		defaults: weighting.DefaultInformationWeightOptions(),
		build: func(o weighting.InformationWeightOptions) MatrixTransformer {
			return weighting.NewInformationWeight(o)
		},
	},
}

type effectsEntry struct {
	defaults weighting.RemoveEffectsOptions
	build    func(weighting.RemoveEffectsOptions) MatrixTransformer
}

var effectsRegistry = map[string]effectsEntry{
	"default": {
		defaults: weighting.DefaultRemoveEffectsOptions(),
		build: func(o weighting.RemoveEffectsOptions) MatrixTransformer {
			return weighting.NewRemoveEffects(o)
		},
	},
}

func registryNames[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

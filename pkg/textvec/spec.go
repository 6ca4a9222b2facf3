package textvec

import (
	"github.com/cognicore/textvec/pkg/textvec/contract"
	"github.com/cognicore/textvec/pkg/textvec/tokenize"
	"github.com/cognicore/textvec/pkg/textvec/vectorize"
	"github.com/cognicore/textvec/pkg/textvec/weighting"
)

// Stage selectors are small sum types: a stage is either the slot
// default, a registered name with typed option overrides, a prebuilt
// instance, or skipped. The zero value of every spec type selects the
// slot default.

type specKind int

const (
	specDefault specKind = iota
	specNamed
	specPrebuilt
	specSkip
)

// TokenizerSpec selects the tokenizer stage.
type TokenizerSpec struct {
	kind      specKind
	name      string
	configure func(*tokenize.Options)
	instance  Tokenizer
}

// NamedTokenizer selects a registered tokenizer with its default options.
func NamedTokenizer(name string) TokenizerSpec {
	return TokenizerSpec{kind: specNamed, name: name}
}

// NamedTokenizerWith selects a registered tokenizer and lets configure
// adjust a copy of its default options.
func NamedTokenizerWith(name string, configure func(*tokenize.Options)) TokenizerSpec {
	return TokenizerSpec{kind: specNamed, name: name, configure: configure}
}

// PrebuiltTokenizer uses an already constructed tokenizer as-is.
func PrebuiltTokenizer(t Tokenizer) TokenizerSpec {
	return TokenizerSpec{kind: specPrebuilt, instance: t}
}

// SkipTokenizer disables tokenization; the caller must then supply
// pre-tokenized input through FitTokens.
func SkipTokenizer() TokenizerSpec {
	return TokenizerSpec{kind: specSkip}
}

// ContractorSpec selects the token contraction stage.
type ContractorSpec struct {
	kind      specKind
	name      string
	configure func(*contract.Options)
	instance  TokenTransformer
}

// NamedContractor selects a registered contractor with its default options.
func NamedContractor(name string) ContractorSpec {
	return ContractorSpec{kind: specNamed, name: name}
}

// NamedContractorWith selects a registered contractor and lets configure
// adjust a copy of its default options.
func NamedContractorWith(name string, configure func(*contract.Options)) ContractorSpec {
	return ContractorSpec{kind: specNamed, name: name, configure: configure}
}

// PrebuiltContractor uses an already constructed contractor as-is.
func PrebuiltContractor(t TokenTransformer) ContractorSpec {
	return ContractorSpec{kind: specPrebuilt, instance: t}
}

// SkipContractor disables token contraction.
func SkipContractor() ContractorSpec {
	return ContractorSpec{kind: specSkip}
}

// NgramSpec selects the document vectorizer stage. This stage always
// runs, so there is no skip variant.
type NgramSpec struct {
	kind      specKind
	name      string
	configure func(*vectorize.NgramOptions)
	instance  DocTermVectorizer
}

// NamedNgram selects a registered document vectorizer.
func NamedNgram(name string) NgramSpec {
	return NgramSpec{kind: specNamed, name: name}
}

// NamedNgramWith selects a registered document vectorizer and lets
// configure adjust a copy of its default options.
func NamedNgramWith(name string, configure func(*vectorize.NgramOptions)) NgramSpec {
	return NgramSpec{kind: specNamed, name: name, configure: configure}
}

// PrebuiltNgram uses an already constructed document vectorizer as-is.
func PrebuiltNgram(v DocTermVectorizer) NgramSpec {
	return NgramSpec{kind: specPrebuilt, instance: v}
}

// CooccurrenceSpec selects the word vectorizer stage. This stage always
// runs, so there is no skip variant.
type CooccurrenceSpec struct {
	kind      specKind
	name      string
	configure func(*vectorize.CooccurrenceOptions)
	instance  WordContextVectorizer
}

// NamedCooccurrence selects a registered word vectorizer.
func NamedCooccurrence(name string) CooccurrenceSpec {
	return CooccurrenceSpec{kind: specNamed, name: name}
}

// NamedCooccurrenceWith selects a registered word vectorizer and lets
// configure adjust a copy of its default options.
func NamedCooccurrenceWith(name string, configure func(*vectorize.CooccurrenceOptions)) CooccurrenceSpec {
	return CooccurrenceSpec{kind: specNamed, name: name, configure: configure}
}

// PrebuiltCooccurrence uses an already constructed word vectorizer as-is.
func PrebuiltCooccurrence(v WordContextVectorizer) CooccurrenceSpec {
	return CooccurrenceSpec{kind: specPrebuilt, instance: v}
}

// WeightingSpec selects the information weighting stage.
type WeightingSpec struct {
	kind      specKind
	name      string
	configure func(*weighting.InformationWeightOptions)
	instance  MatrixTransformer
}

// NamedWeighting selects a registered information weighter.
func NamedWeighting(name string) WeightingSpec {
	return WeightingSpec{kind: specNamed, name: name}
}

// NamedWeightingWith selects a registered information weighter and lets
// configure adjust a copy of its default options.
func NamedWeightingWith(name string, configure func(*weighting.InformationWeightOptions)) WeightingSpec {
	return WeightingSpec{kind: specNamed, name: name, configure: configure}
}

// PrebuiltWeighting uses an already constructed transformer as-is.
func PrebuiltWeighting(t MatrixTransformer) WeightingSpec {
	return WeightingSpec{kind: specPrebuilt, instance: t}
}

// SkipWeighting disables information weighting.
func SkipWeighting() WeightingSpec {
	return WeightingSpec{kind: specSkip}
}

// EffectsSpec selects the background effect removal stage.
type EffectsSpec struct {
	kind      specKind
	name      string
	configure func(*weighting.RemoveEffectsOptions)
	instance  MatrixTransformer
}

// NamedEffects selects a registered effect remover.
func NamedEffects(name string) EffectsSpec {
	return EffectsSpec{kind: specNamed, name: name}
}

// NamedEffectsWith selects a registered effect remover and lets configure
// adjust a copy of its default options.
func NamedEffectsWith(name string, configure func(*weighting.RemoveEffectsOptions)) EffectsSpec {
	return EffectsSpec{kind: specNamed, name: name, configure: configure}
}

// PrebuiltEffects uses an already constructed transformer as-is.
func PrebuiltEffects(t MatrixTransformer) EffectsSpec {
	return EffectsSpec{kind: specPrebuilt, instance: t}
}

// SkipEffects disables background effect removal.
func SkipEffects() EffectsSpec {
	return EffectsSpec{kind: specSkip}
}

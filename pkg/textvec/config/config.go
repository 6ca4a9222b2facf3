// Package config loads declarative pipeline configuration from YAML and
// converts it into textvec vectorizer options.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/textvec/pkg/textvec"
	"github.com/cognicore/textvec/pkg/textvec/contract"
	"github.com/cognicore/textvec/pkg/textvec/tokenize"
	"github.com/cognicore/textvec/pkg/textvec/vectorize"
	"github.com/cognicore/textvec/pkg/textvec/weighting"
)

// File is the root of a pipeline configuration file. Either or both
// pipelines may be present.
type File struct {
	Doc  *DocPipeline  `yaml:"doc"`
	Word *WordPipeline `yaml:"word"`
}

// TokenizerStage configures the tokenizer slot. Option fields are
// pointers so absent keys keep registry defaults.
type TokenizerStage struct {
	Name           string   `yaml:"name"`
	Skip           bool     `yaml:"skip,omitempty"`
	Lowercase      *bool    `yaml:"lowercase"`
	MinTokenLength *int     `yaml:"min_token_length"`
	DropNumeric    *bool    `yaml:"drop_numeric"`
	Stopwords      []string `yaml:"stopwords"`
	StoplistPath   string   `yaml:"stoplist"`
}

// ContractorStage configures the token contraction slot.
type ContractorStage struct {
	Name          string   `yaml:"name"`
	Skip          bool     `yaml:"skip,omitempty"`
	MaxIterations *int     `yaml:"max_iterations"`
	MinScore      *float64 `yaml:"min_score"`
	MinCount      *int     `yaml:"min_count"`
}

// VectorizerStage configures the vectorizer slot.
type VectorizerStage struct {
	Name               string   `yaml:"name"`
	NgramSize          *int     `yaml:"ngram_size"`
	MinFrequency       *float64 `yaml:"min_frequency"`
	ExcludedTokenRegex *string  `yaml:"excluded_token_regex"`
}

// WeightingStage configures the information weighting slot.
type WeightingStage struct {
	Name      string   `yaml:"name"`
	Skip      bool     `yaml:"skip,omitempty"`
	Smoothing *float64 `yaml:"smoothing"`
}

// EffectsStage configures the effect removal slot.
type EffectsStage struct {
	Name     string   `yaml:"name"`
	Skip     bool     `yaml:"skip,omitempty"`
	Strength *float64 `yaml:"strength"`
}

// DocPipeline is the document vectorizer section.
type DocPipeline struct {
	Tokenizer  *TokenizerStage  `yaml:"tokenizer"`
	Contractor *ContractorStage `yaml:"contractor"`
	Vectorizer *VectorizerStage `yaml:"vectorizer"`
	Weighting  *WeightingStage  `yaml:"weighting"`
	Effects    *EffectsStage    `yaml:"effects"`
	Normalize  *bool            `yaml:"normalize"`
}

// WordPipeline is the word vectorizer section.
type WordPipeline struct {
	Tokenizer       *TokenizerStage  `yaml:"tokenizer"`
	Contractor      *ContractorStage `yaml:"contractor"`
	Vectorizer      *VectorizerStage `yaml:"vectorizer"`
	Normalize       *bool            `yaml:"normalize"`
	DedupeSentences *bool            `yaml:"dedupe_sentences"`
}

// Load reads a pipeline configuration from a YAML file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &f, nil
}

// Stoplist is a stopword list file.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist reads stopwords from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse stoplist: %w", err)
	}
	return &sl, nil
}

// Options converts the document section into vectorizer options.
func (p *DocPipeline) Options() (*textvec.DocVectorizerOptions, error) {
	opts := textvec.DefaultDocVectorizerOptions()
	if p == nil {
		return opts, nil
	}

	tok, err := tokenizerSpec(p.Tokenizer)
	if err != nil {
		return nil, err
	}
	opts.Tokenizer = tok
	opts.Contractor = contractorSpec(p.Contractor)
	if v := p.Vectorizer; v != nil {
		opts.Vectorizer = textvec.NamedNgramWith(v.Name, func(o *vectorize.NgramOptions) {
			if v.NgramSize != nil {
				o.NgramSize = *v.NgramSize
			}
			if v.MinFrequency != nil {
				o.MinFrequency = *v.MinFrequency
			}
			if v.ExcludedTokenRegex != nil {
				o.ExcludedTokenRegex = *v.ExcludedTokenRegex
			}
		})
	}
	if w := p.Weighting; w != nil {
		if w.Skip {
			opts.Weighting = textvec.SkipWeighting()
		} else {
			opts.Weighting = textvec.NamedWeightingWith(w.Name, func(o *weighting.InformationWeightOptions) {
				if w.Smoothing != nil {
					o.Smoothing = *w.Smoothing
				}
			})
		}
	}
	if e := p.Effects; e != nil {
		if e.Skip {
			opts.Effects = textvec.SkipEffects()
		} else {
			opts.Effects = textvec.NamedEffectsWith(e.Name, func(o *weighting.RemoveEffectsOptions) {
				if e.Strength != nil {
					o.Strength = *e.Strength
				}
			})
		}
	}
	if p.Normalize != nil {
		opts.Normalize = *p.Normalize
	}
	return opts, nil
}

// Options converts the word section into vectorizer options.
func (p *WordPipeline) Options() (*textvec.WordVectorizerOptions, error) {
	opts := textvec.DefaultWordVectorizerOptions()
	if p == nil {
		return opts, nil
	}

	tok, err := tokenizerSpec(p.Tokenizer)
	if err != nil {
		return nil, err
	}
	opts.Tokenizer = tok
	opts.Contractor = contractorSpec(p.Contractor)
	if v := p.Vectorizer; v != nil {
		opts.Vectorizer = textvec.NamedCooccurrence(v.Name)
	}
	if p.Normalize != nil {
		opts.Normalize = *p.Normalize
	}
	if p.DedupeSentences != nil {
		opts.DedupeSentences = *p.DedupeSentences
	}
	return opts, nil
}

func tokenizerSpec(s *TokenizerStage) (textvec.TokenizerSpec, error) {
	if s == nil {
		return textvec.TokenizerSpec{}, nil
	}
	if s.Skip {
		return textvec.SkipTokenizer(), nil
	}

	stopwords := s.Stopwords
	if s.StoplistPath != "" {
		sl, err := LoadStoplist(s.StoplistPath)
		if err != nil {
			return textvec.TokenizerSpec{}, fmt.Errorf("load stoplist: %w", err)
		}
		stopwords = append(stopwords, sl.Terms...)
	}

	return textvec.NamedTokenizerWith(s.Name, func(o *tokenize.Options) {
		if s.Lowercase != nil {
			o.Lowercase = *s.Lowercase
		}
		if s.MinTokenLength != nil {
			o.MinTokenLength = *s.MinTokenLength
		}
		if s.DropNumeric != nil {
			o.DropNumeric = *s.DropNumeric
		}
		if len(stopwords) > 0 {
			o.Stopwords = append(o.Stopwords, stopwords...)
		}
	}), nil
}

func contractorSpec(s *ContractorStage) textvec.ContractorSpec {
	if s == nil {
		return textvec.ContractorSpec{}
	}
	if s.Skip {
		return textvec.SkipContractor()
	}
	return textvec.NamedContractorWith(s.Name, func(o *contract.Options) {
		if s.MaxIterations != nil {
			o.MaxIterations = *s.MaxIterations
		}
		if s.MinScore != nil {
			o.MinScore = *s.MinScore
		}
		if s.MinCount != nil {
			o.MinCount = *s.MinCount
		}
	})
}

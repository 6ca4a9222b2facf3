// Package contract merges surprisingly frequent adjacent token pairs into
// single compound tokens ("new york" -> "new_york"). Merges are learned
// over several rounds so longer expressions can form from earlier ones.
package contract

import (
	"fmt"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
	"github.com/cognicore/textvec/pkg/textvec/pmi"
)

// Options configures expression learning.
type Options struct {
	// MaxIterations bounds the number of merge rounds. Each round can
	// combine tokens produced by the previous one.
	MaxIterations int
	// MinScore is the NPMI threshold an adjacent pair must clear.
	MinScore float64
	// MinCount is the minimum number of pair occurrences.
	MinCount int
	// MaxTokenFrequency skips pairs involving tokens whose corpus
	// frequency exceeds this proportion. Zero disables the cap.
	MaxTokenFrequency float64
	// Joiner glues the two tokens of a merged pair.
	Joiner string
}

// DefaultOptions returns conservative contraction settings.
func DefaultOptions() Options {
	return Options{
		MaxIterations: 2,
		MinScore:      0.25,
		MinCount:      5,
		Joiner:        "_",
	}
}

type pair struct {
	left, right string
}

// Transformer learns and applies multi-token expression merges.
type Transformer struct {
	opts   Options
	rounds []map[pair]struct{}
	fitted bool
}

// New creates a Transformer with the given options. Zero-valued fields
// fall back to defaults.
func New(opts Options) *Transformer {
	def := DefaultOptions()
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = def.MaxIterations
	}
	if opts.MinScore == 0 {
		opts.MinScore = def.MinScore
	}
	if opts.MinCount <= 0 {
		opts.MinCount = def.MinCount
	}
	if opts.Joiner == "" {
		opts.Joiner = def.Joiner
	}
	return &Transformer{opts: opts}
}

// FitTransform learns merge rounds from the sequences and returns them
// with all learned merges applied.
func (t *Transformer) FitTransform(seqs [][]string) ([][]string, error) {
	t.rounds = nil
	current := seqs
	for round := 0; round < t.opts.MaxIterations; round++ {
		merges := t.learnRound(current)
		if len(merges) == 0 {
			break
		}
		t.rounds = append(t.rounds, merges)
		current = t.applyRound(current, merges)
	}
	t.fitted = true
	return current, nil
}

// Transform replays the learned merges on new sequences.
func (t *Transformer) Transform(seqs [][]string) ([][]string, error) {
	if !t.fitted {
		return nil, fmt.Errorf("contract: %w", internalerr.ErrNotFitted)
	}
	current := seqs
	for _, merges := range t.rounds {
		current = t.applyRound(current, merges)
	}
	return current, nil
}

// Expressions returns the learned compound tokens, one slice per round.
func (t *Transformer) Expressions() [][]string {
	out := make([][]string, len(t.rounds))
	for i, merges := range t.rounds {
		for p := range merges {
			out[i] = append(out[i], p.left+t.opts.Joiner+p.right)
		}
	}
	return out
}

func (t *Transformer) learnRound(seqs [][]string) map[pair]struct{} {
	unigrams := make(map[string]int)
	pairs := make(map[pair]int)
	total := 0
	for _, seq := range seqs {
		for i, tok := range seq {
			unigrams[tok]++
			total++
			if i+1 < len(seq) {
				pairs[pair{tok, seq[i+1]}]++
			}
		}
	}
	if total == 0 {
		return nil
	}

	merges := make(map[pair]struct{})
	for p, count := range pairs {
		if count < t.opts.MinCount {
			continue
		}
		if maxFreq := t.opts.MaxTokenFrequency; maxFreq > 0 {
			if float64(unigrams[p.left])/float64(total) > maxFreq ||
				float64(unigrams[p.right])/float64(total) > maxFreq {
				continue
			}
		}
		score := pmi.NPMI(float64(count), float64(unigrams[p.left]),
			float64(unigrams[p.right]), float64(total), 1)
		if score >= t.opts.MinScore {
			merges[p] = struct{}{}
		}
	}
	return merges
}

// applyRound greedily merges matching adjacent pairs left to right.
// A token consumed by a merge cannot start another merge in this round.
func (t *Transformer) applyRound(seqs [][]string, merges map[pair]struct{}) [][]string {
	out := make([][]string, len(seqs))
	for s, seq := range seqs {
		merged := make([]string, 0, len(seq))
		i := 0
		for i < len(seq) {
			if i+1 < len(seq) {
				if _, ok := merges[pair{seq[i], seq[i+1]}]; ok {
					merged = append(merged, seq[i]+t.opts.Joiner+seq[i+1])
					i += 2
					continue
				}
			}
			merged = append(merged, seq[i])
			i++
		}
		out[s] = merged
	}
	return out
}

package weighting

import (
	"fmt"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
	"github.com/cognicore/textvec/pkg/textvec/sparse"
)

// RemoveEffectsOptions configures background effect removal.
type RemoveEffectsOptions struct {
	// Strength scales how much of the background distribution is
	// subtracted from each row. 1 removes the full estimated effect.
	Strength float64
}

// DefaultRemoveEffectsOptions removes the full background effect.
func DefaultRemoveEffectsOptions() RemoveEffectsOptions {
	return RemoveEffectsOptions{Strength: 1}
}

// RemoveEffects learns the generic-row distribution of a matrix (the
// column distribution pooled over all rows) and subtracts it from each
// row, clamping at zero. Input rows are expected to be L1-normalized so
// the background and the rows live on the same scale.
type RemoveEffects struct {
	opts       RemoveEffectsOptions
	background []float64
	fitted     bool
}

// NewRemoveEffects creates an effect removal transformer.
func NewRemoveEffects(opts RemoveEffectsOptions) *RemoveEffects {
	if opts.Strength <= 0 {
		opts.Strength = DefaultRemoveEffectsOptions().Strength
	}
	return &RemoveEffects{opts: opts}
}

// FitTransform estimates the background distribution from the matrix and
// returns the corrected matrix.
func (r *RemoveEffects) FitTransform(m *sparse.Matrix) (*sparse.Matrix, error) {
	sums := m.ColumnSums()
	var total float64
	for _, s := range sums {
		total += s
	}
	r.background = make([]float64, m.Cols())
	if total > 0 {
		for j, s := range sums {
			r.background[j] = s / total
		}
	}
	r.fitted = true

	return r.subtract(m), nil
}

// Transform removes the fitted background effect from a matrix.
func (r *RemoveEffects) Transform(m *sparse.Matrix) (*sparse.Matrix, error) {
	if !r.fitted {
		return nil, fmt.Errorf("remove effects: %w", internalerr.ErrNotFitted)
	}
	if m.Cols() != len(r.background) {
		return nil, fmt.Errorf("remove effects: %d columns, fitted on %d: %w",
			m.Cols(), len(r.background), internalerr.ErrInvalidInput)
	}
	return r.subtract(m), nil
}

// Background returns the fitted generic-row distribution.
func (r *RemoveEffects) Background() []float64 { return r.background }

// subtract removes rowSum * strength * background from each stored entry,
// clamping at zero. Entries that are zero stay zero, so only stored
// entries need touching.
func (r *RemoveEffects) subtract(m *sparse.Matrix) *sparse.Matrix {
	b := sparse.NewBuilder(m.Cols())
	for i := 0; i < m.Rows(); i++ {
		indices, values := m.Row(i)
		var rowSum float64
		for _, v := range values {
			rowSum += v
		}
		row := make(map[int]float64, len(indices))
		for k, j := range indices {
			v := values[k] - rowSum*r.opts.Strength*r.background[j]
			if v > 0 {
				row[j] = v
			}
		}
		b.AppendRow(row)
	}
	return b.Build()
}

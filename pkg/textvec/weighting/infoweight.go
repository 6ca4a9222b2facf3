// Package weighting rescales sparse count matrices: information weighting
// boosts features that are rare across documents, effect removal strips
// the background distribution common to most rows.
package weighting

import (
	"fmt"
	"math"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
	"github.com/cognicore/textvec/pkg/textvec/sparse"
)

// InformationWeightOptions configures information weighting.
type InformationWeightOptions struct {
	// Smoothing is added to document frequencies before converting them
	// to probabilities, keeping unseen columns finite.
	Smoothing float64
}

// DefaultInformationWeightOptions returns Laplace-style smoothing.
func DefaultInformationWeightOptions() InformationWeightOptions {
	return InformationWeightOptions{Smoothing: 1}
}

// InformationWeight learns how likely each column is to occur in a row and
// rescales counts by the information content -log2(p) of that occurrence.
// Ubiquitous features shrink toward zero, rare features are amplified.
type InformationWeight struct {
	opts    InformationWeightOptions
	weights []float64
	fitted  bool
}

// NewInformationWeight creates an information weighting transformer.
func NewInformationWeight(opts InformationWeightOptions) *InformationWeight {
	if opts.Smoothing <= 0 {
		opts.Smoothing = DefaultInformationWeightOptions().Smoothing
	}
	return &InformationWeight{opts: opts}
}

// FitTransform estimates per-column occurrence probabilities from the
// matrix and returns the reweighted counts.
func (w *InformationWeight) FitTransform(m *sparse.Matrix) (*sparse.Matrix, error) {
	rows := float64(m.Rows())
	df := make([]float64, m.Cols())
	for i := 0; i < m.Rows(); i++ {
		indices, values := m.Row(i)
		for k, j := range indices {
			if values[k] != 0 {
				df[j]++
			}
		}
	}

	eps := w.opts.Smoothing
	w.weights = make([]float64, m.Cols())
	for j := range df {
		p := (df[j] + eps) / (rows + 2*eps)
		w.weights[j] = -math.Log2(p)
	}
	w.fitted = true

	return m.ScaleColumns(w.weights)
}

// Transform reweights a matrix with the fitted column weights.
func (w *InformationWeight) Transform(m *sparse.Matrix) (*sparse.Matrix, error) {
	if !w.fitted {
		return nil, fmt.Errorf("information weight: %w", internalerr.ErrNotFitted)
	}
	if m.Cols() != len(w.weights) {
		return nil, fmt.Errorf("information weight: %d columns, fitted on %d: %w",
			m.Cols(), len(w.weights), internalerr.ErrInvalidInput)
	}
	return m.ScaleColumns(w.weights)
}

// Weights returns the fitted per-column information weights.
func (w *InformationWeight) Weights() []float64 { return w.weights }

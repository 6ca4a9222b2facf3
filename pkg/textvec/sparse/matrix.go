// Package sparse provides a compressed sparse row matrix for text
// representations. Rows are documents or words, columns are features.
package sparse

import (
	"fmt"
	"math"
	"sort"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
)

// Matrix is a CSR matrix: indptr has one entry per row plus one, indices
// and data hold the column index and value of each stored entry. Column
// indices within a row are sorted ascending.
type Matrix struct {
	rows, cols int
	indptr     []int
	indices    []int
	data       []float64
}

// Builder accumulates rows for a Matrix.
type Builder struct {
	cols    int
	indptr  []int
	indices []int
	data    []float64
}

// NewBuilder creates a builder for matrices with the given column count.
func NewBuilder(cols int) *Builder {
	return &Builder{cols: cols, indptr: []int{0}}
}

// AppendRow adds a row from a column→value map. Zero values are dropped.
func (b *Builder) AppendRow(entries map[int]float64) {
	cols := make([]int, 0, len(entries))
	for c, v := range entries {
		if v != 0 {
			cols = append(cols, c)
		}
	}
	sort.Ints(cols)
	for _, c := range cols {
		b.indices = append(b.indices, c)
		b.data = append(b.data, entries[c])
	}
	b.indptr = append(b.indptr, len(b.indices))
}

// Build finalizes the accumulated rows into a Matrix.
func (b *Builder) Build() *Matrix {
	return &Matrix{
		rows:    len(b.indptr) - 1,
		cols:    b.cols,
		indptr:  b.indptr,
		indices: b.indices,
		data:    b.data,
	}
}

// Zero returns an empty matrix of the given shape.
func Zero(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, indptr: make([]int, rows+1)}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int { return len(m.data) }

// At returns the value at (i, j).
func (m *Matrix) At(i, j int) float64 {
	start, end := m.indptr[i], m.indptr[i+1]
	row := m.indices[start:end]
	k := sort.SearchInts(row, j)
	if k < len(row) && row[k] == j {
		return m.data[start+k]
	}
	return 0
}

// Row returns the stored column indices and values of row i.
// The returned slices alias internal storage and must not be modified.
func (m *Matrix) Row(i int) ([]int, []float64) {
	start, end := m.indptr[i], m.indptr[i+1]
	return m.indices[start:end], m.data[start:end]
}

// SelectRows returns a new matrix holding the given rows, in order.
func (m *Matrix) SelectRows(rows []int) *Matrix {
	b := NewBuilder(m.cols)
	for _, i := range rows {
		start, end := m.indptr[i], m.indptr[i+1]
		b.indices = append(b.indices, m.indices[start:end]...)
		b.data = append(b.data, m.data[start:end]...)
		b.indptr = append(b.indptr, len(b.indices))
	}
	return b.Build()
}

// NormalizeRowsL1 returns a copy with each row scaled to unit L1 norm.
// Rows that sum to zero are left untouched. The operation is idempotent.
func (m *Matrix) NormalizeRowsL1() *Matrix {
	out := m.Clone()
	for i := 0; i < out.rows; i++ {
		start, end := out.indptr[i], out.indptr[i+1]
		var sum float64
		for _, v := range out.data[start:end] {
			sum += math.Abs(v)
		}
		if sum == 0 {
			continue
		}
		for k := start; k < end; k++ {
			out.data[k] /= sum
		}
	}
	return out
}

// ScaleColumns returns a copy with column j multiplied by weights[j].
// Entries scaled to zero are dropped.
func (m *Matrix) ScaleColumns(weights []float64) (*Matrix, error) {
	if len(weights) != m.cols {
		return nil, fmt.Errorf("scale columns: %d weights for %d columns: %w",
			len(weights), m.cols, internalerr.ErrInvalidInput)
	}
	b := NewBuilder(m.cols)
	for i := 0; i < m.rows; i++ {
		start, end := m.indptr[i], m.indptr[i+1]
		for k := start; k < end; k++ {
			v := m.data[k] * weights[m.indices[k]]
			if v != 0 {
				b.indices = append(b.indices, m.indices[k])
				b.data = append(b.data, v)
			}
		}
		b.indptr = append(b.indptr, len(b.indices))
	}
	return b.Build(), nil
}

// ColumnSums returns the per-column sum of all entries.
func (m *Matrix) ColumnSums() []float64 {
	sums := make([]float64, m.cols)
	for k, j := range m.indices {
		sums[j] += m.data[k]
	}
	return sums
}

// RowSums returns the per-row sum of all entries.
func (m *Matrix) RowSums() []float64 {
	sums := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		start, end := m.indptr[i], m.indptr[i+1]
		for _, v := range m.data[start:end] {
			sums[i] += v
		}
	}
	return sums
}

// Dense materializes the matrix as nested slices, zeros included.
func (m *Matrix) Dense() [][]float64 {
	out := make([][]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		row := make([]float64, m.cols)
		start, end := m.indptr[i], m.indptr[i+1]
		for k := start; k < end; k++ {
			row[m.indices[k]] = m.data[k]
		}
		out[i] = row
	}
	return out
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{
		rows:    m.rows,
		cols:    m.cols,
		indptr:  make([]int, len(m.indptr)),
		indices: make([]int, len(m.indices)),
		data:    make([]float64, len(m.data)),
	}
	copy(out.indptr, m.indptr)
	copy(out.indices, m.indices)
	copy(out.data, m.data)
	return out
}

// Equal reports whether two matrices have the same shape and entries,
// comparing values within tol.
func (m *Matrix) Equal(o *Matrix, tol float64) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := 0; i < m.rows; i++ {
		mi, mv := m.Row(i)
		oi, ov := o.Row(i)
		if len(mi) != len(oi) {
			return false
		}
		for k := range mi {
			if mi[k] != oi[k] || math.Abs(mv[k]-ov[k]) > tol {
				return false
			}
		}
	}
	return true
}

// HStack concatenates matrices horizontally. All inputs must have the
// same number of rows.
func HStack(mats ...*Matrix) (*Matrix, error) {
	if len(mats) == 0 {
		return nil, fmt.Errorf("hstack: no matrices: %w", internalerr.ErrInvalidInput)
	}
	rows := mats[0].rows
	cols := 0
	for _, m := range mats {
		if m.rows != rows {
			return nil, fmt.Errorf("hstack: row count mismatch %d vs %d: %w",
				m.rows, rows, internalerr.ErrInvalidInput)
		}
		cols += m.cols
	}
	b := NewBuilder(cols)
	for i := 0; i < rows; i++ {
		offset := 0
		for _, m := range mats {
			start, end := m.indptr[i], m.indptr[i+1]
			for k := start; k < end; k++ {
				b.indices = append(b.indices, m.indices[k]+offset)
				b.data = append(b.data, m.data[k])
			}
			offset += m.cols
		}
		b.indptr = append(b.indptr, len(b.indices))
	}
	return b.Build(), nil
}

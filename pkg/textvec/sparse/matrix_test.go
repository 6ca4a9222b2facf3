package sparse

import (
	"errors"
	"math"
	"testing"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
)

func buildTest() *Matrix {
	b := NewBuilder(4)
	b.AppendRow(map[int]float64{0: 1, 2: 3})
	b.AppendRow(map[int]float64{1: 2})
	b.AppendRow(map[int]float64{})
	return b.Build()
}

func TestBuilderAndAt(t *testing.T) {
	m := buildTest()

	if m.Rows() != 3 || m.Cols() != 4 {
		t.Fatalf("shape = %dx%d, want 3x4", m.Rows(), m.Cols())
	}
	if m.NNZ() != 3 {
		t.Errorf("NNZ = %d, want 3", m.NNZ())
	}
	if got := m.At(0, 2); got != 3 {
		t.Errorf("At(0,2) = %v, want 3", got)
	}
	if got := m.At(0, 1); got != 0 {
		t.Errorf("At(0,1) = %v, want 0", got)
	}
	if got := m.At(2, 3); got != 0 {
		t.Errorf("empty row At(2,3) = %v, want 0", got)
	}
}

func TestBuilderDropsZeros(t *testing.T) {
	b := NewBuilder(2)
	b.AppendRow(map[int]float64{0: 0, 1: 5})
	m := b.Build()

	if m.NNZ() != 1 {
		t.Errorf("NNZ = %d, want 1 (zero entries dropped)", m.NNZ())
	}
}

func TestNormalizeRowsL1(t *testing.T) {
	m := buildTest()
	n := m.NormalizeRowsL1()

	if got := n.At(0, 0); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("At(0,0) = %v, want 0.25", got)
	}
	if got := n.At(0, 2); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("At(0,2) = %v, want 0.75", got)
	}
	if got := n.At(1, 1); math.Abs(got-1) > 1e-12 {
		t.Errorf("At(1,1) = %v, want 1", got)
	}

	// Original untouched.
	if m.At(0, 0) != 1 {
		t.Error("NormalizeRowsL1 mutated the receiver")
	}
}

func TestNormalizeRowsL1Idempotent(t *testing.T) {
	once := buildTest().NormalizeRowsL1()
	twice := once.NormalizeRowsL1()

	if !once.Equal(twice, 1e-12) {
		t.Error("L1 normalization is not idempotent")
	}
}

func TestSelectRows(t *testing.T) {
	m := buildTest()
	s := m.SelectRows([]int{1, 0})

	if s.Rows() != 2 {
		t.Fatalf("Rows = %d, want 2", s.Rows())
	}
	if s.At(0, 1) != 2 || s.At(1, 2) != 3 {
		t.Error("SelectRows returned wrong rows")
	}
}

func TestSelectRowsEmpty(t *testing.T) {
	s := buildTest().SelectRows(nil)
	if s.Rows() != 0 || s.Cols() != 4 {
		t.Errorf("shape = %dx%d, want 0x4", s.Rows(), s.Cols())
	}
}

func TestScaleColumns(t *testing.T) {
	m := buildTest()
	s, err := m.ScaleColumns([]float64{2, 0, 1, 1})
	if err != nil {
		t.Fatal(err)
	}

	if s.At(0, 0) != 2 {
		t.Errorf("At(0,0) = %v, want 2", s.At(0, 0))
	}
	if s.At(1, 1) != 0 || s.NNZ() != 2 {
		t.Error("zero-weighted column should be dropped from storage")
	}

	_, err = m.ScaleColumns([]float64{1})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("length mismatch error = %v, want ErrInvalidInput", err)
	}
}

func TestColumnAndRowSums(t *testing.T) {
	m := buildTest()

	cols := m.ColumnSums()
	want := []float64{1, 2, 3, 0}
	for j, w := range want {
		if cols[j] != w {
			t.Errorf("ColumnSums[%d] = %v, want %v", j, cols[j], w)
		}
	}

	rows := m.RowSums()
	if rows[0] != 4 || rows[1] != 2 || rows[2] != 0 {
		t.Errorf("RowSums = %v, want [4 2 0]", rows)
	}
}

func TestDense(t *testing.T) {
	d := buildTest().Dense()
	if len(d) != 3 || len(d[0]) != 4 {
		t.Fatalf("dense shape %dx%d, want 3x4", len(d), len(d[0]))
	}
	if d[0][2] != 3 || d[1][1] != 2 || d[2][0] != 0 {
		t.Errorf("dense values wrong: %v", d)
	}
}

func TestHStack(t *testing.T) {
	a := buildTest()
	c, err := HStack(a, a)
	if err != nil {
		t.Fatal(err)
	}
	if c.Cols() != 8 {
		t.Fatalf("Cols = %d, want 8", c.Cols())
	}
	if c.At(0, 2) != 3 || c.At(0, 6) != 3 {
		t.Error("HStack misplaced entries")
	}

	b := NewBuilder(1)
	b.AppendRow(map[int]float64{0: 1})
	if _, err := HStack(a, b.Build()); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("row mismatch error = %v, want ErrInvalidInput", err)
	}
}

func TestZero(t *testing.T) {
	z := Zero(2, 5)
	if z.Rows() != 2 || z.Cols() != 5 || z.NNZ() != 0 {
		t.Errorf("Zero(2,5) = %dx%d nnz %d", z.Rows(), z.Cols(), z.NNZ())
	}
	if z.At(1, 4) != 0 {
		t.Error("zero matrix should read 0 everywhere")
	}
}

package vectorize

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
)

func radiusOneOptions() CooccurrenceOptions {
	return CooccurrenceOptions{Blocks: []WindowBlock{
		{Direction: Before, Radius: 1, Label: "pre"},
		{Direction: After, Radius: 1, Label: "post"},
	}}
}

func TestCooccurrenceRadiusOne(t *testing.T) {
	c := NewCooccurrence(radiusOneOptions())
	m, err := c.FitTransform([][]string{{"a", "b", "c"}})
	if err != nil {
		t.Fatal(err)
	}

	wantTokens := []string{"a", "b", "c"}
	if !reflect.DeepEqual(c.Tokens(), wantTokens) {
		t.Fatalf("Tokens = %v, want %v", c.Tokens(), wantTokens)
	}
	if m.Rows() != 3 || m.Cols() != 6 {
		t.Fatalf("shape %dx%d, want 3x6", m.Rows(), m.Cols())
	}

	// "b" is preceded by "a" once and followed by "c" once.
	bRow := c.TokenIndex()["b"]
	if got := m.At(bRow, c.ColumnIndex()["pre_a"]); got != 1 {
		t.Errorf("pre_a for b = %v, want 1", got)
	}
	if got := m.At(bRow, c.ColumnIndex()["post_c"]); got != 1 {
		t.Errorf("post_c for b = %v, want 1", got)
	}
	if got := m.At(bRow, c.ColumnIndex()["pre_c"]); got != 0 {
		t.Errorf("pre_c for b = %v, want 0", got)
	}

	// "a" starts the sentence: nothing before it.
	aRow := c.TokenIndex()["a"]
	for _, col := range []string{"pre_a", "pre_b", "pre_c"} {
		if got := m.At(aRow, c.ColumnIndex()[col]); got != 0 {
			t.Errorf("%s for a = %v, want 0", col, got)
		}
	}
}

func TestCooccurrenceWindowDoesNotCrossSentences(t *testing.T) {
	c := NewCooccurrence(radiusOneOptions())
	m, err := c.FitTransform([][]string{{"a", "b"}, {"c", "d"}})
	if err != nil {
		t.Fatal(err)
	}

	bRow := c.TokenIndex()["b"]
	if got := m.At(bRow, c.ColumnIndex()["post_c"]); got != 0 {
		t.Errorf("window crossed sentence boundary: post_c for b = %v", got)
	}
}

func TestCooccurrenceWideWindow(t *testing.T) {
	c := NewCooccurrence(CooccurrenceOptions{Blocks: []WindowBlock{
		{Direction: Before, Radius: 5, Label: "pre"},
	}})
	m, err := c.FitTransform([][]string{{"a", "b", "c", "d"}})
	if err != nil {
		t.Fatal(err)
	}

	// "d" sees a, b and c all within radius 5.
	dRow := c.TokenIndex()["d"]
	for _, col := range []string{"pre_a", "pre_b", "pre_c"} {
		if got := m.At(dRow, c.ColumnIndex()[col]); got != 1 {
			t.Errorf("%s for d = %v, want 1", col, got)
		}
	}
}

func TestCooccurrenceColumnLabels(t *testing.T) {
	c := NewCooccurrence(CooccurrenceOptions{Blocks: []WindowBlock{
		{Direction: Before, Radius: 1, Label: "pre1"},
		{Direction: After, Radius: 1, Label: "post1"},
		{Direction: Before, Radius: 5, Label: "pre5"},
		{Direction: After, Radius: 5, Label: "post5"},
	}})
	m, err := c.FitTransform([][]string{{"x", "y"}})
	if err != nil {
		t.Fatal(err)
	}

	if m.Cols() != 8 {
		t.Fatalf("Cols = %d, want 4 blocks x 2 words", m.Cols())
	}
	want := []string{"pre1_x", "pre1_y", "post1_x", "post1_y", "pre5_x", "pre5_y", "post5_x", "post5_y"}
	if !reflect.DeepEqual(c.Columns(), want) {
		t.Errorf("Columns = %v, want %v", c.Columns(), want)
	}
}

func TestCooccurrenceRepeatedToken(t *testing.T) {
	c := NewCooccurrence(radiusOneOptions())
	m, err := c.FitTransform([][]string{{"a", "a", "a"}})
	if err != nil {
		t.Fatal(err)
	}

	aRow := c.TokenIndex()["a"]
	// Two positions have an "a" before them.
	if got := m.At(aRow, c.ColumnIndex()["pre_a"]); got != 2 {
		t.Errorf("pre_a for a = %v, want 2", got)
	}
}

func TestCooccurrenceInvalidRadius(t *testing.T) {
	c := NewCooccurrence(CooccurrenceOptions{Blocks: []WindowBlock{
		{Direction: Before, Radius: 0, Label: "pre"},
	}})
	_, err := c.FitTransform([][]string{{"a"}})
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestCooccurrenceDefaultOptions(t *testing.T) {
	c := NewCooccurrence(CooccurrenceOptions{})
	m, err := c.FitTransform([][]string{{"a", "b"}})
	if err != nil {
		t.Fatal(err)
	}
	if m.Cols() != 4 {
		t.Errorf("Cols = %d, want pre/post blocks over 2 words", m.Cols())
	}
}

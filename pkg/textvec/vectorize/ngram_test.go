package vectorize

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
)

func TestNgramBagOfWords(t *testing.T) {
	v, err := NewNgram(DefaultNgramOptions())
	if err != nil {
		t.Fatal(err)
	}

	m, err := v.FitTransform([][]string{
		{"the", "cat", "sat"},
		{"the", "dog", "the", "dog"},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"cat", "dog", "sat", "the"}
	if !reflect.DeepEqual(v.Terms(), want) {
		t.Fatalf("Terms = %v, want %v", v.Terms(), want)
	}

	if m.Rows() != 2 || m.Cols() != 4 {
		t.Fatalf("shape %dx%d, want 2x4", m.Rows(), m.Cols())
	}
	if got := m.At(1, v.TermIndex()["dog"]); got != 2 {
		t.Errorf("dog count = %v, want 2", got)
	}
	if got := m.At(0, v.TermIndex()["the"]); got != 1 {
		t.Errorf("the count = %v, want 1", got)
	}
}

func TestNgramBigrams(t *testing.T) {
	v, err := NewNgram(NgramOptions{NgramSize: 2})
	if err != nil {
		t.Fatal(err)
	}

	m, err := v.FitTransform([][]string{{"a", "b", "c"}})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a b", "b c"}
	if !reflect.DeepEqual(v.Terms(), want) {
		t.Fatalf("Terms = %v, want %v", v.Terms(), want)
	}
	if m.At(0, 0) != 1 || m.At(0, 1) != 1 {
		t.Errorf("bigram counts wrong: %v", m.Dense())
	}
}

func TestNgramShortDocument(t *testing.T) {
	v, _ := NewNgram(NgramOptions{NgramSize: 3})
	m, err := v.FitTransform([][]string{{"a", "b"}})
	if err != nil {
		t.Fatal(err)
	}
	if m.Rows() != 1 || m.NNZ() != 0 {
		t.Errorf("document shorter than n should produce an empty row")
	}
}

func TestNgramMinFrequency(t *testing.T) {
	v, _ := NewNgram(NgramOptions{NgramSize: 1, MinFrequency: 0.2})
	// "rare" is 1 of 6 occurrences (~0.17), below the 0.2 cutoff.
	_, err := v.FitTransform([][]string{
		{"common", "common", "common"},
		{"common", "common", "rare"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := v.TermIndex()["rare"]; ok {
		t.Error("rare term should be pruned by MinFrequency")
	}
	if _, ok := v.TermIndex()["common"]; !ok {
		t.Error("common term should survive MinFrequency")
	}
}

func TestNgramExcludedTokenRegex(t *testing.T) {
	v, err := NewNgram(NgramOptions{NgramSize: 1, ExcludedTokenRegex: `^\W+$`})
	if err != nil {
		t.Fatal(err)
	}

	_, err = v.FitTransform([][]string{{"hello", "!!", "world"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.TermIndex()["!!"]; ok {
		t.Error("punctuation token should be excluded")
	}
	if len(v.Terms()) != 2 {
		t.Errorf("Terms = %v, want 2 entries", v.Terms())
	}
}

func TestNgramBadRegex(t *testing.T) {
	_, err := NewNgram(NgramOptions{ExcludedTokenRegex: "("})
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNgramTransformUsesFittedDictionary(t *testing.T) {
	v, _ := NewNgram(DefaultNgramOptions())
	if _, err := v.FitTransform([][]string{{"cat", "dog"}}); err != nil {
		t.Fatal(err)
	}

	m, err := v.Transform([][]string{{"cat", "bird", "cat"}})
	if err != nil {
		t.Fatal(err)
	}
	if m.Cols() != 2 {
		t.Fatalf("Cols = %d, want fitted dictionary size 2", m.Cols())
	}
	if got := m.At(0, v.TermIndex()["cat"]); got != 2 {
		t.Errorf("cat count = %v, want 2", got)
	}
	if m.NNZ() != 1 {
		t.Error("unseen term bird should be ignored")
	}
}

func TestNgramTransformBeforeFit(t *testing.T) {
	v, _ := NewNgram(DefaultNgramOptions())
	_, err := v.Transform([][]string{{"a"}})
	if !errors.Is(err, internalerr.ErrNotFitted) {
		t.Errorf("err = %v, want ErrNotFitted", err)
	}
}

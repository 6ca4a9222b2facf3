package contract

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
)

// corpus where "new york" is the only pair frequent enough to contract.
func phraseCorpus() [][]string {
	var seqs [][]string
	for i := 0; i < 5; i++ {
		seqs = append(seqs, []string{"new", "york"})
	}
	seqs = append(seqs,
		[]string{"visit", "museums"},
		[]string{"visit", "parks"},
		[]string{"quiet", "museums"},
		[]string{"parks", "are", "quiet"},
	)
	return seqs
}

func TestFitTransformMergesFrequentPair(t *testing.T) {
	tr := New(Options{MaxIterations: 1})
	got, err := tr.FitTransform(phraseCorpus())
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, seq := range got {
		for _, tok := range seq {
			if tok == "new_york" {
				found = true
			}
			if tok == "new" || tok == "york" {
				t.Errorf("unmerged token %q in %v", tok, seq)
			}
		}
	}
	if !found {
		t.Errorf("expected new_york compound, got %v", got)
	}
}

func TestTransformReplaysFit(t *testing.T) {
	tr := New(Options{})
	corpus := phraseCorpus()

	fitted, err := tr.FitTransform(corpus)
	if err != nil {
		t.Fatal(err)
	}
	replayed, err := tr.Transform(corpus)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(fitted, replayed) {
		t.Errorf("Transform = %v, want %v", replayed, fitted)
	}
}

func TestTransformAppliesToNewData(t *testing.T) {
	tr := New(Options{})
	if _, err := tr.FitTransform(phraseCorpus()); err != nil {
		t.Fatal(err)
	}

	got, err := tr.Transform([][]string{{"i", "love", "new", "york"}})
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"i", "love", "new_york"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Transform = %v, want %v", got, want)
	}
}

func TestTransformBeforeFit(t *testing.T) {
	tr := New(Options{})
	_, err := tr.Transform([][]string{{"a", "b"}})
	if !errors.Is(err, internalerr.ErrNotFitted) {
		t.Errorf("err = %v, want ErrNotFitted", err)
	}
}

func TestNoMergeBelowMinCount(t *testing.T) {
	tr := New(Options{MinCount: 10})
	got, err := tr.FitTransform(phraseCorpus())
	if err != nil {
		t.Fatal(err)
	}
	for _, seq := range got {
		for _, tok := range seq {
			if tok == "new_york" {
				t.Error("pair below MinCount should not merge")
			}
		}
	}
}

func TestMultipleRoundsBuildLongerExpressions(t *testing.T) {
	var seqs [][]string
	for i := 0; i < 8; i++ {
		seqs = append(seqs, []string{"new", "york", "city"})
	}
	seqs = append(seqs, []string{"quiet", "town"}, []string{"quiet", "streets"})

	tr := New(Options{MaxIterations: 2, MinScore: 0.2})
	got, err := tr.FitTransform(seqs)
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, seq := range got {
		for _, tok := range seq {
			if tok == "new_york_city" {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("expected a three-token compound after two rounds, got %v", got)
	}
}

func TestExpressions(t *testing.T) {
	tr := New(Options{MaxIterations: 1})
	if _, err := tr.FitTransform(phraseCorpus()); err != nil {
		t.Fatal(err)
	}

	rounds := tr.Expressions()
	if len(rounds) != 1 {
		t.Fatalf("rounds = %d, want 1", len(rounds))
	}
	found := false
	for _, expr := range rounds[0] {
		if expr == "new_york" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expressions = %v, want to contain new_york", rounds)
	}
}

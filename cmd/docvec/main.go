// Command docvec fits a document vectorizer over a corpus read one
// document per line and reports the learned representation.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/cognicore/textvec/pkg/textvec"
	"github.com/cognicore/textvec/pkg/textvec/config"
)

type report struct {
	Documents int         `json:"documents"`
	Terms     int         `json:"terms"`
	Nonzeros  int         `json:"nonzeros"`
	TopTerms  []termEntry `json:"top_terms"`
}

type termEntry struct {
	Term string  `json:"term"`
	Mass float64 `json:"mass"`
}

func main() {
	var (
		input      = flag.String("input", "", "Corpus file, one document per line (default stdin)")
		configPath = flag.String("config", "", "Optional pipeline configuration YAML")
		csvPath    = flag.String("csv", "", "Optional: write the dense representation as CSV")
		maxEntries = flag.Int("max-entries", 10_000_000, "Dense export capacity guard (0 disables)")
		topTerms   = flag.Int("top", 15, "Number of highest-mass terms to report")
	)
	flag.Parse()

	docs, err := readLines(*input)
	if err != nil {
		log.Fatalf("read corpus: %v", err)
	}
	if len(docs) == 0 {
		log.Fatal("empty corpus")
	}

	opts := textvec.DefaultDocVectorizerOptions()
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		if opts, err = f.Doc.Options(); err != nil {
			log.Fatalf("build options: %v", err)
		}
	}

	model, err := textvec.NewDocVectorizer(opts).Fit(docs)
	if err != nil {
		log.Fatalf("fit: %v", err)
	}

	rep := model.Representation()
	report := report{
		Documents: rep.Rows(),
		Terms:     rep.Cols(),
		Nonzeros:  rep.NNZ(),
		TopTerms:  topTermsByMass(model, *topTerms),
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	fmt.Println(string(out))

	if *csvPath != "" {
		if err := exportCSV(model, *csvPath, *maxEntries); err != nil {
			log.Fatalf("export: %v", err)
		}
		log.Printf("wrote %s", *csvPath)
	}
}

func readLines(path string) ([]string, error) {
	in := os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	var docs []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			docs = append(docs, line)
		}
	}
	return docs, scanner.Err()
}

// topTermsByMass ranks terms by their total mass across the corpus.
func topTermsByMass(model *textvec.DocModel, limit int) []termEntry {
	terms := model.Terms()
	sums := model.Representation().ColumnSums()

	order := make([]int, len(terms))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return sums[order[a]] > sums[order[b]] })

	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	out := make([]termEntry, 0, len(order))
	for _, j := range order {
		out = append(out, termEntry{Term: terms[j], Mass: sums[j]})
	}
	return out
}

func exportCSV(model *textvec.DocModel, path string, maxEntries int) error {
	tbl, err := model.Table(maxEntries, nil)
	if err != nil {
		var capErr *textvec.CapacityError
		if errors.As(err, &capErr) {
			return fmt.Errorf("dense export needs %d entries, limit is %d; raise -max-entries or set 0",
				capErr.Entries, capErr.MaxEntries)
		}
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return tbl.WriteCSV(f)
}

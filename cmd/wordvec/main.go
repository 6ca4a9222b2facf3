// Command wordvec fits a word vectorizer over a corpus read one
// document per line and prints context vectors for chosen words.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/cognicore/textvec/pkg/textvec"
	"github.com/cognicore/textvec/pkg/textvec/config"
)

func main() {
	var (
		input      = flag.String("input", "", "Corpus file, one document per line (default stdin)")
		configPath = flag.String("config", "", "Optional pipeline configuration YAML")
		words      = flag.String("words", "", "Comma-separated words to print context features for")
		topFeats   = flag.Int("top", 10, "Number of context features to print per word")
		csvPath    = flag.String("csv", "", "Optional: write the dense representation as CSV")
		maxEntries = flag.Int("max-entries", 10_000_000, "Dense export capacity guard (0 disables)")
	)
	flag.Parse()

	docs, err := readLines(*input)
	if err != nil {
		log.Fatalf("read corpus: %v", err)
	}
	if len(docs) == 0 {
		log.Fatal("empty corpus")
	}

	opts := textvec.DefaultWordVectorizerOptions()
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		if opts, err = f.Word.Options(); err != nil {
			log.Fatalf("build options: %v", err)
		}
	}

	model, err := textvec.NewWordVectorizer(opts).Fit(docs)
	if err != nil {
		log.Fatalf("fit: %v", err)
	}

	rep := model.Representation()
	fmt.Printf("vocabulary: %d\n", rep.Rows())
	fmt.Printf("contexts:   %d\n", rep.Cols())
	fmt.Printf("nonzeros:   %d\n", rep.NNZ())

	if *words != "" {
		printContexts(model, strings.Split(*words, ","), *topFeats)
	}

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

func printContexts(model *textvec.WordModel, words []string, limit int) {
	columns := model.Columns()
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		i, ok := model.TokenIndex()[word]
		if !ok {
			fmt.Printf("%s: not in vocabulary\n", word)
			continue
		}

		cols, vals := model.Representation().Row(i)
		order := make([]int, len(cols))
		for k := range order {
			order[k] = k
		}
		sort.Slice(order, func(a, b int) bool { return vals[order[a]] > vals[order[b]] })
		if limit > 0 && len(order) > limit {
			order = order[:limit]
		}

		fmt.Printf("%s:\n", word)
		for _, k := range order {
			fmt.Printf("  %-24s %.6f\n", columns[cols[k]], vals[k])
		}
	}
}

func exportCSV(model *textvec.WordModel, path string, maxEntries int) error {
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

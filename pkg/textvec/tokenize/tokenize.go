// Package tokenize turns raw documents into token sequences, either one
// sequence per document or one per sentence.
package tokenize

import (
	"strings"
	"unicode"
)

// Granularity selects the unit a token sequence corresponds to.
type Granularity int

const (
	// ByDocument emits one token sequence per input document.
	ByDocument Granularity = iota
	// BySentence splits each document into sentences first and emits one
	// token sequence per sentence, across all documents.
	BySentence
)

// Options configures tokenization behavior shared by all tokenizers.
type Options struct {
	Granularity    Granularity
	Lowercase      bool
	MinTokenLength int
	DropNumeric    bool // drop tokens made of digits and hyphens only
	Stopwords      []string
}

// DefaultOptions returns the baseline tokenizer configuration.
func DefaultOptions() Options {
	return Options{
		Granularity:    ByDocument,
		Lowercase:      true,
		MinTokenLength: 1,
	}
}

// Unicode is a rune-scanning tokenizer. A token is a maximal run of
// letters, digits and interior hyphens.
type Unicode struct {
	opts  Options
	stops map[string]struct{}
}

// NewUnicode creates a Unicode tokenizer with the given options.
func NewUnicode(opts Options) *Unicode {
	return &Unicode{opts: opts, stops: stopSet(opts.Stopwords)}
}

// Tokenize splits documents into token sequences per the configured
// granularity.
func (t *Unicode) Tokenize(docs []string) [][]string {
	return tokenizeAll(docs, t.opts, t.tokenizeOne)
}

func (t *Unicode) tokenizeOne(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if tok := processToken(current.String(), t.opts, t.stops); tok != "" {
			tokens = append(tokens, tok)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			if t.opts.Lowercase {
				r = unicode.ToLower(r)
			}
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// Whitespace is a field-splitting tokenizer. Tokens are whitespace-separated
// fields with leading and trailing punctuation trimmed.
type Whitespace struct {
	opts  Options
	stops map[string]struct{}
}

// NewWhitespace creates a Whitespace tokenizer with the given options.
func NewWhitespace(opts Options) *Whitespace {
	return &Whitespace{opts: opts, stops: stopSet(opts.Stopwords)}
}

// Tokenize splits documents into token sequences per the configured
// granularity.
func (t *Whitespace) Tokenize(docs []string) [][]string {
	return tokenizeAll(docs, t.opts, t.tokenizeOne)
}

func (t *Whitespace) tokenizeOne(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(text) {
		word := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if t.opts.Lowercase {
			word = strings.ToLower(word)
		}
		if tok := processToken(word, t.opts, t.stops); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func tokenizeAll(docs []string, opts Options, one func(string) []string) [][]string {
	var out [][]string
	for _, doc := range docs {
		if opts.Granularity == BySentence {
			for _, sent := range SplitSentences(doc) {
				if tokens := one(sent); len(tokens) > 0 {
					out = append(out, tokens)
				}
			}
		} else {
			out = append(out, one(doc))
		}
	}
	return out
}

// SplitSentences splits text on sentence-ending punctuation and newlines.
// Empty sentences are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range text {
		switch r {
		case '.', '!', '?', '\n':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return sentences
}

func processToken(token string, opts Options, stops map[string]struct{}) string {
	word := cleanToken(token)
	if word == "" || len(word) < opts.MinTokenLength {
		return ""
	}
	if opts.DropNumeric && isNumericOnly(word) {
		return ""
	}
	if _, ok := stops[word]; ok {
		return ""
	}
	return word
}

// cleanToken strips leading/trailing hyphens and collapses runs of hyphens.
func cleanToken(token string) string {
	token = strings.Trim(token, "-")
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	return token
}

func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

func stopSet(words []string) map[string]struct{} {
	stops := make(map[string]struct{}, len(words))
	for _, w := range words {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return stops
}

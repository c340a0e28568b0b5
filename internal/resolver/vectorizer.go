package resolver

import (
	"sort"
	"strings"
	"unicode"
)

// Vectorizer builds a fixed bag-of-words vocabulary over training questions
// and transforms arbitrary text into sparse token counts against it. Tokens
// are lowercased word runs of at least two characters; the same tokenizer is
// applied at training and resolution so case folding stays consistent on
// both sides.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
}

// NewVectorizer creates an empty vectorizer
func NewVectorizer() *Vectorizer {
	return &Vectorizer{Vocabulary: make(map[string]int)}
}

// tokenize splits text into lowercase word tokens. Word characters are
// letters, digits and underscore; single-character tokens are dropped.
func tokenize(text string) []string {
	isWord := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	}

	var tokens []string
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWord(r)
	})
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Fit builds the vocabulary from the given documents. Indices are assigned
// in sorted token order so a fit over the same documents is reproducible.
func (v *Vectorizer) Fit(docs []string) {
	seen := make(map[string]bool)
	for _, doc := range docs {
		for _, tok := range tokenize(doc) {
			seen[tok] = true
		}
	}

	terms := make([]string, 0, len(seen))
	for tok := range seen {
		terms = append(terms, tok)
	}
	sort.Strings(terms)

	v.Vocabulary = make(map[string]int, len(terms))
	for i, tok := range terms {
		v.Vocabulary[tok] = i
	}
}

// Transform maps text to sparse token counts over the fixed vocabulary.
// Tokens outside the vocabulary are ignored, never rejected.
func (v *Vectorizer) Transform(text string) map[int]int {
	counts := make(map[int]int)
	for _, tok := range tokenize(text) {
		if idx, ok := v.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}
	return counts
}

// Size returns the vocabulary size
func (v *Vectorizer) Size() int {
	return len(v.Vocabulary)
}

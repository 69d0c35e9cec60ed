// Package vocabulary finds known technology and skill terms in resume text.
// Its output feeds the keyword matcher of the scoring core.
package vocabulary

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

//go:embed terms.txt
var defaultTerms string

// Vocabulary is an ordered, case-insensitive set of terms.
type Vocabulary struct {
	terms []string
	index map[string]struct{}
}

// New builds a vocabulary from terms, lowercasing them and dropping blanks and
// duplicates while keeping first-seen order.
func New(terms []string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]struct{}, len(terms))}
	v.Extend(terms...)
	return v
}

// Default returns the built-in technology vocabulary.
func Default() *Vocabulary {
	terms, err := parse(strings.NewReader(defaultTerms))
	if err != nil {
		// embedded data is read from memory
		panic(fmt.Sprintf("parse embedded vocabulary: %v", err))
	}
	return New(terms)
}

// LoadFile reads one term per line; empty lines and lines starting with # are skipped.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	terms, err := parse(file)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary file %q: %w", path, err)
	}
	return terms, nil
}

// Extend appends terms that are not present yet.
func (v *Vocabulary) Extend(terms ...string) {
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := v.index[term]; ok {
			continue
		}
		v.index[term] = struct{}{}
		v.terms = append(v.terms, term)
	}
}

// Terms returns a copy of the terms in vocabulary order.
func (v *Vocabulary) Terms() []string {
	return append([]string(nil), v.terms...)
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Contains reports whether term is part of the vocabulary.
func (v *Vocabulary) Contains(term string) bool {
	_, ok := v.index[strings.ToLower(strings.TrimSpace(term))]
	return ok
}

// Extract returns the vocabulary terms that occur in text, in vocabulary order.
// A term only counts when it is not glued to surrounding letters or digits, so
// "go" is found in "Go, Rust" but not in "good".
func (v *Vocabulary) Extract(text string) []string {
	lowered := strings.ToLower(text)
	found := make([]string, 0)
	for _, term := range v.terms {
		if containsTerm(lowered, term) {
			found = append(found, term)
		}
	}
	return found
}

func containsTerm(text, term string) bool {
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)
		if boundaryBefore(text, start, term) && boundaryAfter(text, end, term) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

// boundaryBefore only demands a break when the term itself starts with a word
// character; ".net"-style terms may follow anything.
func boundaryBefore(text string, start int, term string) bool {
	first, _ := utf8.DecodeRuneInString(term)
	if !isWordRune(first) || start == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordRune(prev)
}

func boundaryAfter(text string, end int, term string) bool {
	last, _ := utf8.DecodeLastRuneInString(term)
	if !isWordRune(last) || end >= len(text) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(next)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func parse(r io.Reader) ([]string, error) {
	var terms []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return terms, nil
}

// Package tokenizer implements the tokenizer contract the coverage engine
// consumes (spec.md §6): splitting text into StringSlices on a configured
// delimiter set, filtering by minimum word length, and producing the
// deduplicated query/document token sequences §4.1 describes.
//
// The splitting and normalization style is grounded in the teacher's
// pkg/qgram.NormalizeText and pkg/dafsa.TokenizeNorm; the delimiter-set
// fast path is grounded in pkg/qgram/query_verifier.go and
// pkg/dafsa/dictionary.go, which both build an Aho-Corasick automaton over
// a fixed pattern set for one-pass scanning rather than a rune-by-rune
// table of ad-hoc checks.
package tokenizer

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
	"github.com/orsinium-labs/stopwords"

	"github.com/kittclouds/coverkit/pkg/lexslice"
	"github.com/kittclouds/coverkit/pkg/textnorm"
)

// Tokenizer is the contract consumed by the coverage engine.
type Tokenizer interface {
	Tokenize(text string, minWordSize int) []lexslice.StringSlice
	GetWordTokensForCoverage(text string, minWordSize int) []string
}

// DefaultDelimiters is the default word-boundary delimiter set: ASCII
// whitespace and common punctuation.
const DefaultDelimiters = " \t\n\r.,;:!?()[]{}\"'`~@#$%^&*+=|\\/<>"

// WordTokenizer splits on a configured delimiter set and, in
// GetWordTokensForCoverage, optionally drops stopwords from the tokens
// that pass the minimum-word-size filter.
type WordTokenizer struct {
	Delimiters      string
	Normalizer      *textnorm.Normalizer
	DropStopwords   bool
	delimAutomaton  ahocorasick.AhoCorasick
	delimAutomaton2 bool // whether delimAutomaton was built
}

// New builds a WordTokenizer over the given delimiter set. An empty
// delimiters string selects DefaultDelimiters.
func New(delimiters string) *WordTokenizer {
	if delimiters == "" {
		delimiters = DefaultDelimiters
	}
	t := &WordTokenizer{
		Delimiters: delimiters,
		Normalizer: textnorm.New(),
	}
	pats := make([]string, 0, len(delimiters))
	for _, r := range delimiters {
		pats = append(pats, string(r))
	}
	if len(pats) > 0 {
		builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
			AsciiCaseInsensitive: false,
			MatchOnlyWholeWords:  false,
			MatchKind:            ahocorasick.LeftMostLongestMatch,
			DFA:                  true,
		})
		t.delimAutomaton = builder.Build(pats)
		t.delimAutomaton2 = true
	}
	return t
}

func (t *WordTokenizer) isDelimiter(r rune) bool {
	return strings.ContainsRune(t.Delimiters, r)
}

// Tokenize splits text on the delimiter set, dropping tokens shorter than
// minWordSize, and returns StringSlices carrying offset/length/position.
func (t *WordTokenizer) Tokenize(text string, minWordSize int) []lexslice.StringSlice {
	if t.delimAutomaton2 {
		return t.tokenizeWithAutomaton(text, minWordSize)
	}
	return t.tokenizeScan(text, minWordSize)
}

// tokenizeWithAutomaton uses the Aho-Corasick automaton built over the
// delimiter alphabet to find word boundaries in one pass, matching the
// teacher's pattern of using a single automaton as both scanner and
// dictionary (pkg/dafsa.NormalizeRaw's outer loop, generalized).
func (t *WordTokenizer) tokenizeWithAutomaton(text string, minWordSize int) []lexslice.StringSlice {
	var out []lexslice.StringSlice
	position := 0
	wordStart := -1

	matches := t.delimAutomaton.FindAll(text)
	matchIdx := 0
	flush := func(end int) {
		if wordStart >= 0 {
			if end-wordStart >= minWordSize {
				out = append(out, lexslice.New(text, wordStart, end-wordStart, position))
				position++
			}
			wordStart = -1
		}
	}

	i := 0
	for i < len(text) {
		for matchIdx < len(matches) && matches[matchIdx].Start() < i {
			matchIdx++
		}
		if matchIdx < len(matches) && matches[matchIdx].Start() == i {
			flush(i)
			i = matches[matchIdx].End()
			if i == matches[matchIdx].Start() {
				i++
			}
			continue
		}
		if wordStart < 0 {
			wordStart = i
		}
		i++
	}
	flush(len(text))
	return out
}

// tokenizeScan is the generic rune-scan fallback used when no delimiter
// automaton was built (a WordTokenizer not constructed via New).
func (t *WordTokenizer) tokenizeScan(text string, minWordSize int) []lexslice.StringSlice {
	var out []lexslice.StringSlice
	position := 0
	runes := []rune(text)
	wordStart := -1
	byteOf := make([]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		byteOf[i] = b
		b += len(string(r))
	}
	byteOf[len(runes)] = b

	flush := func(end int) {
		if wordStart >= 0 {
			start := byteOf[wordStart]
			length := byteOf[end] - start
			if end-wordStart >= minWordSize {
				out = append(out, lexslice.New(text, start, length, position))
				position++
			}
			wordStart = -1
		}
	}

	for i, r := range runes {
		if t.isDelimiter(r) {
			flush(i)
			continue
		}
		if wordStart < 0 {
			wordStart = i
		}
	}
	flush(len(runes))
	return out
}

// GetWordTokensForCoverage returns the lowercase text of each token
// Tokenize would produce, then optionally drops stopwords.
func (t *WordTokenizer) GetWordTokensForCoverage(text string, minWordSize int) []string {
	slices := t.Tokenize(text, minWordSize)
	out := make([]string, 0, len(slices))
	for _, s := range slices {
		word := strings.ToLower(s.Text(text))
		if t.DropStopwords && stopwords.English.Has(word) {
			continue
		}
		out = append(out, word)
	}
	return out
}

// DedupeQueryTokens removes query tokens that are byte-identical (by
// lowercase content) to an earlier token, preserving first-occurrence
// order, per spec.md §4.1.
func DedupeQueryTokens(text string, tokens []lexslice.StringSlice) []lexslice.StringSlice {
	seen := make(map[string]bool, len(tokens))
	out := make([]lexslice.StringSlice, 0, len(tokens))
	for _, tok := range tokens {
		key := strings.ToLower(tok.Text(text))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tok)
	}
	return out
}

// DedupeDocTokens removes document tokens that are byte-identical (by
// lowercase content) to an earlier token, preserving first-occurrence
// position and the cached hash, per spec.md §4.1.
func DedupeDocTokens(text string, tokens []lexslice.StringSlice) []lexslice.StringSlice {
	return DedupeQueryTokens(text, tokens)
}

package coverage

import (
	"strings"

	"github.com/kittclouds/coverkit/pkg/corpus"
	"github.com/kittclouds/coverkit/pkg/lexslice"
	"github.com/kittclouds/coverkit/pkg/tokenizer"
)

// FusionSignals are precomputed, lexical-only booleans and bytes the
// fusion scorer consults (spec.md §4.4). They are derived from the
// unfiltered token streams (no MinWordSize filter) so that short function
// words still participate in the "is this doc lexically identical to the
// query, modulo a trailing prefix" checks.
type FusionSignals struct {
	LexicalPrefixLast         bool
	IsPerfectDocLexical       bool
	HasStemEvidence           bool
	HasAnchorStem             bool
	UnfilteredQueryTokenCount int
	SingleTermLexicalSim      uint8
	TrailingMatchDensity      uint8
}

// ComputeFusionSignals runs the lexical-only pass over the unfiltered
// query/doc token streams. termMatchedByWord reports, for each
// deduplicated (filtered) query term's lowercase word, whether the
// matcher cascade found any match for it; this is how HasStemEvidence
// ("at least one *unmatched* query term...") learns which terms are
// still missing without re-running the cascade. When hasDocMeta is true
// and docMeta.TokenCount is zero, the doc text is not tokenized and only
// UnfilteredQueryTokenCount is set; in every other case docText is
// tokenized. docMeta.LastTokenHash is not consulted.
func ComputeFusionSignals(
	setup Setup,
	tok tokenizer.Tokenizer,
	query, docText string,
	termMatchedByWord map[string]bool,
	docMeta corpus.DocumentMetadata,
	hasDocMeta bool,
) FusionSignals {
	qTokens := tok.Tokenize(query, 0)
	qWords := lowerAll(query, qTokens)

	if hasDocMeta && docMeta.TokenCount == 0 {
		return FusionSignals{UnfilteredQueryTokenCount: len(qWords)}
	}

	dTokens := tok.Tokenize(docText, 0)
	dWords := lowerAll(docText, dTokens)

	sig := FusionSignals{
		UnfilteredQueryTokenCount: len(qWords),
	}

	sig.LexicalPrefixLast = lexicalPrefixLast(qWords, dWords)
	sig.IsPerfectDocLexical = isPerfectDocLexical(qWords, dWords)
	sig.HasAnchorStem = hasAnchorStem(qWords, dWords, setup.AnchorStemLength)
	sig.HasStemEvidence = hasStemEvidence(qWords, dWords, termMatchedByWord)

	if len(qWords) <= 1 {
		sig.SingleTermLexicalSim = singleTermLexicalSim(qWords, dWords)
	}
	sig.TrailingMatchDensity = trailingMatchDensity(qWords, dWords, setup.MaxTrailingTermLengthForBonus)

	return sig
}

func lowerAll(host string, toks []lexslice.StringSlice) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = lowerText(t.Text(host))
	}
	return out
}

// lexicalPrefixLast: all but the last query token match a doc token
// strictly (case-insensitive), positions strictly increasing in query
// order, and the last query token is a prefix of some later doc token.
func lexicalPrefixLast(qWords, dWords []string) bool {
	if len(qWords) == 0 || len(dWords) == 0 {
		return false
	}
	last := len(qWords) - 1
	prevPos := -1
	for i := 0; i < last; i++ {
		found := -1
		for j := prevPos + 1; j < len(dWords); j++ {
			if dWords[j] == qWords[i] {
				found = j
				break
			}
		}
		if found < 0 {
			return false
		}
		prevPos = found
	}
	for j := prevPos + 1; j < len(dWords); j++ {
		if strings.HasPrefix(dWords[j], qWords[last]) {
			return true
		}
	}
	return false
}

// isPerfectDocLexical: doc token sequence equals query token sequence
// modulo the last query token being a prefix of the last doc token.
func isPerfectDocLexical(qWords, dWords []string) bool {
	if len(qWords) == 0 || len(qWords) != len(dWords) {
		return false
	}
	last := len(qWords) - 1
	for i := 0; i < last; i++ {
		if qWords[i] != dWords[i] {
			return false
		}
	}
	return strings.HasPrefix(dWords[last], qWords[last])
}

func hasAnchorStem(qWords, dWords []string, anchorLen int) bool {
	for _, qw := range qWords {
		if len(qw) < anchorLen {
			continue
		}
		for _, dw := range dWords {
			if strings.HasPrefix(dw, qw) {
				return true
			}
		}
	}
	return false
}

func hasStemEvidence(qWords, dWords []string, termMatchedByWord map[string]bool) bool {
	for _, qw := range qWords {
		if termMatchedByWord[qw] {
			continue
		}
		if len(qw) < 3 {
			continue
		}
		prefix := qw
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		for _, dw := range dWords {
			if len(dw) >= 3 && strings.HasPrefix(dw, prefix) {
				return true
			}
		}
	}
	return false
}

func singleTermLexicalSim(qWords, dWords []string) uint8 {
	if len(qWords) == 0 || len(dWords) == 0 {
		return 0
	}
	q := qWords[0]
	best := 0.0
	for _, dw := range dWords {
		dist := damerauLevenshtein(q, dw)
		denom := maxInt(len(q), len(dw))
		if denom == 0 {
			continue
		}
		sim := 1 - float64(dist)/float64(denom)
		if sim > best {
			best = sim
		}
	}
	return byteFromRatio(best)
}

// trailingMatchDensity measures how many trailing query tokens (length
// at most maxTrailingLen) appear within the closing half of the doc's
// token stream.
func trailingMatchDensity(qWords, dWords []string, maxTrailingLen int) uint8 {
	var trailing []string
	for i := len(qWords) - 1; i >= 0; i-- {
		if len(qWords[i]) > maxTrailingLen {
			break
		}
		trailing = append([]string{qWords[i]}, trailing...)
	}
	if len(trailing) == 0 || len(dWords) == 0 {
		return 0
	}
	cutoff := len(dWords) / 2
	matched := 0
	for _, tw := range trailing {
		for j := cutoff; j < len(dWords); j++ {
			if dWords[j] == tw {
				matched++
				break
			}
		}
	}
	return byteFromRatio(float64(matched) / float64(len(trailing)))
}

func byteFromRatio(v float64) uint8 {
	v = clampFloat(v, 0, 1)
	return uint8(v*255 + 0.5)
}

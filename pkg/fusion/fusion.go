// Package fusion composes the coverage feature vector and a BM25 score
// into the packed 24-bit ranking key the top-K store sorts on. Grounded
// on the teacher's pkg/resorank.ResoRank scorer: both combine several
// weighted numeric signals into one packed ordering value, though the
// teacher packs a float and this packs two bytes.
package fusion

import (
	"math"

	"github.com/kittclouds/coverkit/pkg/coverage"
)

// Calculate composes a (precedence, semantic) packed score and an 8-bit
// tiebreaker for one (query, document) pair, per spec.md §4.5. queryText
// and docText supply only their byte lengths for the tiebreaker;
// every other input travels through f. setup.IntentBonusPerSignal sizes
// the n>=3 intent bonus in the semantic byte.
func Calculate(setup coverage.Setup, queryText, docText string, f coverage.Features, bm25 float64) (uint16, uint8) {
	if f.TermsCount == 0 {
		return 0, 0
	}

	n := f.TermsCount
	sig := f.Fusion

	isSingleTerm := sig.UnfilteredQueryTokenCount <= 1 || n <= 1
	isComplete := f.TermsWithAnyMatch == n
	isClean := f.TermsPrefixMatched == n
	isExact := f.TermsStrictMatched == n
	startsAtBeginning := f.FirstMatchIndex == 0
	coveragePrefixLast := f.PrecedingStrictCount == n-1 && f.LastTokenHasPrefix
	isPrefixLastStrong := sig.LexicalPrefixLast && coveragePrefixLast
	isExactPrefix := !isSingleTerm && isClean && startsAtBeginning && sig.LexicalPrefixLast && isComplete

	coverageRatio := 0.0
	if n > 0 {
		coverageRatio = f.SumCi / float64(n)
	}
	hasPartialCoverage := coverageRatio > 0 && coverageRatio < 1 && n >= 2

	var precedence uint8

	if isComplete {
		precedence |= 128
	}
	if isClean {
		precedence |= 64
	}
	if isExactPrefix {
		precedence |= 32
	}

	if isSingleTerm {
		precedence |= singleTermTier(isComplete, startsAtBeginning, isExact, isClean) << 3
	} else {
		precedence |= multiTermTier(sig, isPrefixLastStrong, f.LongestPrefixRun) << 3
		precedence |= phraseQualityBits(f, n, sig.UnfilteredQueryTokenCount)
	}

	if hasPartialCoverage {
		if sig.HasStemEvidence {
			precedence |= 128
		} else if f.TermsWithAnyMatch == n-1 {
			eligible := f.LastTokenHasPrefix || f.TermsWithAnyMatch == n || !f.LastTermIsTypeAhead
			if eligible && f.TotalIdf > 0 {
				missingInfoRatio := f.MissingIdf / f.TotalIdf
				termGap := 1 - coverageRatio
				if missingInfoRatio < termGap {
					precedence |= 8
				}
			}
		}
	}

	semantic := semanticByte(f, sig, n, coverageRatio, hasPartialCoverage, bm25, setup.IntentBonusPerSignal)

	score := uint16(precedence)<<8 | uint16(semantic)
	tiebreaker := computeTiebreaker(n, queryText, docText)

	return score, tiebreaker
}

// singleTermTier ranks a single-term match: exact hit at the start of the
// document outranks a clean (prefix) hit at the start, which outranks an
// exact hit later in the document, which outranks a clean hit later in
// the document, per spec.md §4.5's single-term tier table.
func singleTermTier(isComplete, startsAtBeginning, isExact, isClean bool) uint8 {
	switch {
	case isComplete && startsAtBeginning && isExact:
		return 4
	case isComplete && startsAtBeginning && isClean:
		return 3
	case isComplete && !startsAtBeginning && isExact:
		return 2
	case isComplete && !startsAtBeginning && isClean:
		return 1
	default:
		return 0
	}
}

func multiTermTier(sig coverage.FusionSignals, isPrefixLastStrong bool, longestPrefixRun int) uint8 {
	hasAnchorWithRun := sig.HasAnchorStem && longestPrefixRun >= 2
	switch {
	case isPrefixLastStrong:
		return 3
	case sig.LexicalPrefixLast:
		return 2
	case sig.IsPerfectDocLexical || hasAnchorWithRun:
		return 1
	default:
		return 0
	}
}

// phraseQualityBits returns the ≤3-bit (values 0-7) phrase-quality field
// for multi-term queries, per spec.md §4.5's three independent checks.
func phraseQualityBits(f coverage.Features, termsCount, unfilteredQueryTokenCount int) uint8 {
	var bits uint8

	n := termsCount
	if unfilteredQueryTokenCount > 0 {
		n = unfilteredQueryTokenCount
	}
	strongThreshold := maxInt(2, minInt(termsCount, n)-1)
	switch {
	case f.SuffixPrefixRun >= strongThreshold:
		bits |= 8
	case f.SuffixPrefixRun >= 2:
		bits |= 4
	}
	if f.LongestPrefixRun >= 3 {
		bits |= 2
	}
	if f.TermsWithAnyMatch >= 2 && f.PhraseSpan == 2 {
		bits |= 1
	}

	if bits > 7 {
		bits = 7
	}
	return bits
}

func semanticByte(
	f coverage.Features,
	sig coverage.FusionSignals,
	n int,
	coverageRatio float64,
	hasPartialCoverage bool,
	bm25 float64,
	intentBonusPerSignal float64,
) uint8 {
	avgCi := 0.0
	if n > 0 {
		avgCi = f.SumCi / float64(n)
	}

	var semantic float64
	switch {
	case n <= 1:
		semantic = (avgCi + float64(sig.SingleTermLexicalSim)/255) / 2
	case f.DocTokenCount == 0:
		semantic = avgCi
	default:
		baseCoverage := avgCi
		onlyOneMissing := f.TermsWithAnyMatch == n-1
		if hasPartialCoverage && onlyOneMissing && f.IdfCoverage > coverageRatio {
			baseCoverage = f.IdfCoverage
		}
		semantic = baseCoverage * (float64(f.WordHits) / float64(f.DocTokenCount))

		if n >= 3 {
			bonus := intentBonusPerSignal * float64(boolToInt(sig.HasAnchorStem)+boolToInt(f.SuffixPrefixRun >= 2))
			if bonus > 1 {
				bonus = 1
			}
			semantic = clampFloat01(semantic + bonus)
		}
		if n >= 2 {
			semantic += (1 - semantic) * (float64(sig.TrailingMatchDensity) / 255)
		}
	}

	if hasPartialCoverage && bm25 >= (1-coverageRatio) {
		semantic = coverageRatio*semantic + (1-coverageRatio)*bm25
	}

	return byteFromFloat01(clampFloat01(semantic))
}

func computeTiebreaker(n int, queryText, docText string) uint8 {
	if n < 2 || len(docText) == 0 {
		return 0
	}
	ratio := float64(len(queryText)) / float64(len(docText))
	if ratio > 1 {
		ratio = 1
	}
	return byteFromFloat01(ratio)
}

func byteFromFloat01(v float64) uint8 {
	return uint8(math.Round(255 * v))
}

func clampFloat01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

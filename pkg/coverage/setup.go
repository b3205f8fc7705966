// Package coverage implements the lexical coverage engine: the matcher
// cascade, per-term feature derivation, and the lexical fusion signals
// consumed by the fusion scorer. It is grounded throughout on the
// teacher's pkg/qgram (candidate generation, verification, scoring) and
// pkg/resorank (BM25-style math, proximity, entropy) packages, generalized
// from a full posting-list-backed search engine down to the narrower
// query-vs-one-document coverage core this module specifies.
package coverage

// Setup enumerates the tunable knobs the matcher cascade and scorer
// consult, grounded on the teacher's qgram.SearchConfig /
// resorank.ResoRankConfig struct-of-knobs-plus-DefaultConfig() pattern.
type Setup struct {
	MinWordSize                   int
	CoverWholeWords               bool
	CoverJoinedWords              bool
	CoverPrefixSuffix             bool
	CoverFuzzyWords               bool
	CoverWholeQuery               bool
	LevenshteinMaxWordSize        int
	IndexSizes                    []int
	IntentBonusPerSignal          float64
	AnchorStemLength              int
	MaxTrailingTermLengthForBonus int
}

// levenshteinHardCap is the absolute upper bound on LevenshteinMaxWordSize
// regardless of configuration, per spec.md §6.
const levenshteinHardCap = 63

// DefaultSetup returns the reference configuration.
func DefaultSetup() Setup {
	return Setup{
		MinWordSize:                   2,
		CoverWholeWords:               true,
		CoverJoinedWords:              true,
		CoverPrefixSuffix:             true,
		CoverFuzzyWords:               true,
		CoverWholeQuery:               false,
		LevenshteinMaxWordSize:        20,
		IndexSizes:                    []int{3, 4, 5},
		IntentBonusPerSignal:          0.15,
		AnchorStemLength:              3,
		MaxTrailingTermLengthForBonus: 2,
	}
}

// EffectiveLevenshteinMaxWordSize clamps the configured value to the hard
// cap.
func (s Setup) EffectiveLevenshteinMaxWordSize() int {
	if s.LevenshteinMaxWordSize <= 0 || s.LevenshteinMaxWordSize > levenshteinHardCap {
		return levenshteinHardCap
	}
	return s.LevenshteinMaxWordSize
}

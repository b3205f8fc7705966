package coverage

import "github.com/kittclouds/coverkit/pkg/lexslice"

// Features is the immutable result of scoring one (query, document) pair,
// spec.md §3's CoverageFeatures record.
type Features struct {
	CoverageScore uint8

	TermsCount         int
	TermsWithAnyMatch  int
	TermsFullyMatched  int
	TermsStrictMatched int
	TermsPrefixMatched int

	FirstMatchIndex int

	SumCi    float64
	WordHits int

	DocTokenCount int

	LongestPrefixRun     int
	SuffixPrefixRun      int
	PhraseSpan           int
	PrecedingStrictCount int

	LastTokenHasPrefix  bool
	LastTermCi          float64
	WeightedCoverage    float64
	LastTermIsTypeAhead bool

	IdfCoverage float64
	TotalIdf    float64
	MissingIdf  float64

	TermIdf []float64
	TermCi  []float64

	Fusion FusionSignals
}

// CalculateFeatures runs the matcher cascade against docText, tokenized
// with tok, and derives the coverage feature vector, per spec.md §4.3.
// lcsSum is the caller-supplied whole-query LCS length used by the
// weighted-coverage blend when setup.CoverWholeQuery is set.
func CalculateFeatures(
	setup Setup,
	pool *BufferPool,
	ctx *QueryContext,
	docText string,
	docTokens []lexslice.StringSlice,
	lcsSum int,
) Features {
	n := ctx.TermsCount()
	if n == 0 {
		return Features{}
	}

	buf := pool.Acquire(n, len(docTokens))
	defer buf.Release()

	state := NewMatchState(buf, ctx, docText, docTokens)
	Run(state, setup, Cascade(setup))

	return deriveFeatures(setup, ctx, state, lcsSum, len(docTokens))
}

func deriveFeatures(setup Setup, ctx *QueryContext, state *MatchState, lcsSum, docTokenCount int) Features {
	n := len(ctx.QueryTokens)
	last := n - 1

	f := Features{
		TermsCount:    n,
		DocTokenCount: docTokenCount,
		WordHits:      state.WordHits,
		TermIdf:       append([]float64(nil), ctx.TermIdf...),
		TermCi:        make([]float64, n),
	}

	f.FirstMatchIndex = -1
	for i := 0; i < n; i++ {
		anyMatch := state.termHasWhole[i] || state.termHasJoined[i] || state.termHasPrefix[i] || state.termHasFuzzy[i]
		if anyMatch {
			f.TermsWithAnyMatch++
		}
		if state.termHasWhole[i] {
			f.TermsStrictMatched++
		}
		if state.termHasWhole[i] || state.termHasPrefix[i] {
			f.TermsPrefixMatched++
		}

		maxChars := ctx.TermMaxChars[i]
		ci := 0.0
		if maxChars > 0 {
			ci = clampFloat(state.termMatchedChars[i]/float64(maxChars), 0, 1)
		}
		f.TermCi[i] = ci
		f.SumCi += ci

		if ci >= 1 {
			f.TermsFullyMatched++
		}

		if state.termFirstPos[i] >= 0 {
			if f.FirstMatchIndex < 0 || state.termFirstPos[i] < f.FirstMatchIndex {
				f.FirstMatchIndex = state.termFirstPos[i]
			}
		}
	}

	f.LastTermCi = f.TermCi[last]
	f.LastTokenHasPrefix = state.termHasPrefix[last]
	f.LastTermIsTypeAhead = len(state.queryWord(last)) < setup.EffectiveLevenshteinMaxWordSize() && !state.termHasWhole[last]

	for i := 0; i < last; i++ {
		if state.termHasWhole[i] {
			f.PrecedingStrictCount++
		}
	}

	f.TotalIdf = 0
	for _, v := range f.TermIdf {
		f.TotalIdf += v
	}
	if f.TotalIdf > 0 {
		var weighted, missing float64
		for i := 0; i < n; i++ {
			weighted += f.TermCi[i] * f.TermIdf[i]
			missing += (1 - f.TermCi[i]) * f.TermIdf[i]
		}
		f.IdfCoverage = weighted / f.TotalIdf
		f.MissingIdf = missing
	}

	f.LongestPrefixRun, f.SuffixPrefixRun = phraseRuns(state.termAssignedPos)
	f.PhraseSpan = phraseSpan(state.termAssignedPos)

	f.WeightedCoverage = weightedCoverage(setup, f.SumCi, n, lcsSum, len(ctx.Query))
	f.CoverageScore = uint8(clampFloat(f.WeightedCoverage*255+0.5, 0, 255))

	return f
}

// phraseRuns computes the longest maximal run of consecutive query
// indices whose assigned doc positions are contiguous and strictly
// increasing by exactly one, and the length of the run ending at the
// final query index.
func phraseRuns(assignedPos []int) (longest, suffixRun int) {
	runLen := 0
	for i := range assignedPos {
		if assignedPos[i] < 0 {
			runLen = 0
		} else if i > 0 && assignedPos[i-1] >= 0 && assignedPos[i] == assignedPos[i-1]+1 {
			runLen++
		} else {
			runLen = 1
		}
		if runLen > longest {
			longest = runLen
		}
	}
	if len(assignedPos) > 0 {
		suffixRun = runLen
	}
	return longest, suffixRun
}

func phraseSpan(assignedPos []int) int {
	min, max := -1, -1
	for _, p := range assignedPos {
		if p < 0 {
			continue
		}
		if min < 0 || p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	if min < 0 {
		return 0
	}
	return max - min + 1
}

// weightedCoverage blends the plain per-term coverage ratio with a
// whole-query LCS-ratio boost when CoverWholeQuery is set, per spec.md
// §4.3's exact-coefficients note (0.6 term coverage / 0.4 LCS ratio).
func weightedCoverage(setup Setup, sumCi float64, n, lcsSum, queryLen int) float64 {
	if n == 0 {
		return 0
	}
	base := sumCi / float64(n)
	if !setup.CoverWholeQuery || queryLen == 0 {
		return clampFloat(base, 0, 1)
	}
	lcsRatio := float64(lcsSum) / float64(queryLen)
	return clampFloat(0.6*base+0.4*lcsRatio, 0, 1)
}

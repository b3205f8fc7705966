package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/coverkit/pkg/tokenizer"
)

func scoreDoc(t *testing.T, setup Setup, query, doc string) Features {
	t.Helper()
	tok := tokenizer.New(tokenizer.DefaultDelimiters)
	ctx := PrepareQuery(setup, tok, nil, 0, nil, query)
	defer ctx.Release()
	pool := NewBufferPool()
	docTokens := tok.Tokenize(doc, setup.MinWordSize)
	return CalculateFeatures(setup, pool, ctx, doc, docTokens, 0)
}

func TestWholeWordMatcher_ExactMatch(t *testing.T) {
	f := scoreDoc(t, DefaultSetup(), "world", "hello world test")
	assert.Equal(t, 1, f.TermsStrictMatched)
	assert.Equal(t, 1, f.TermsFullyMatched)
	assert.Equal(t, 1, f.FirstMatchIndex)
}

func TestFuzzyWordMatcher_SingleEditMatch(t *testing.T) {
	f := scoreDoc(t, DefaultSetup(), "batmam", "batman is here")
	assert.Equal(t, 1, f.TermsWithAnyMatch)
	assert.Equal(t, 1, f.WordHits)
	assert.Zero(t, f.TermsStrictMatched)
}

func TestPrefixSuffixMatcher_Affix(t *testing.T) {
	f := scoreDoc(t, DefaultSetup(), "bat", "batman superman spiderman")
	assert.Equal(t, 1, f.TermsWithAnyMatch)
	assert.True(t, f.LastTokenHasPrefix)
}

func TestJoinedWordMatcher_QueryTermsJoinIntoDocToken(t *testing.T) {
	setup := DefaultSetup()
	f := scoreDoc(t, setup, "matrix reloaded", "the matrixreloaded movie")
	assert.GreaterOrEqual(t, f.TermsWithAnyMatch, 1)
}

func TestEmptyQuery_ZeroFeatures(t *testing.T) {
	f := scoreDoc(t, DefaultSetup(), "", "anything at all")
	assert.Equal(t, 0, f.TermsCount)
	assert.Equal(t, uint8(0), f.CoverageScore)
}

func TestCoverageInvariant_MonotoneTermCounts(t *testing.T) {
	f := scoreDoc(t, DefaultSetup(), "the matrix reloaded movie", "the matrix reloaded")
	require.LessOrEqual(t, f.TermsStrictMatched, f.TermsPrefixMatched)
	require.LessOrEqual(t, f.TermsPrefixMatched, f.TermsWithAnyMatch)
	require.LessOrEqual(t, f.TermsWithAnyMatch, f.TermsCount)
}

func TestCoverageScore_FullMatchIsMax(t *testing.T) {
	f := scoreDoc(t, DefaultSetup(), "world", "world")
	assert.InDelta(t, 1.0, f.WeightedCoverage, 1e-9)
	assert.Equal(t, uint8(255), f.CoverageScore)
}

func TestPerTermCi_BoundedByZeroAndOne(t *testing.T) {
	f := scoreDoc(t, DefaultSetup(), "the matrix revisited extra", "the matrix")
	for i, ci := range f.TermCi {
		assert.GreaterOrEqual(t, ci, 0.0, "term %d", i)
		assert.LessOrEqual(t, ci, 1.0, "term %d", i)
	}
}

func TestCascade_RespectsSetupToggles(t *testing.T) {
	setup := DefaultSetup()
	setup.CoverFuzzyWords = false
	f := scoreDoc(t, setup, "batmam", "batman is here")
	assert.Zero(t, f.TermsWithAnyMatch, "fuzzy matching disabled, no match expected")
}

package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/coverkit/pkg/corpus"
	"github.com/kittclouds/coverkit/pkg/coverage"
	"github.com/kittclouds/coverkit/pkg/tokenizer"
)

func computeFeatures(t *testing.T, setup coverage.Setup, query, doc string) coverage.Features {
	t.Helper()
	tok := tokenizer.New(tokenizer.DefaultDelimiters)
	ctx := coverage.PrepareQuery(setup, tok, nil, 0, nil, query)
	defer ctx.Release()
	pool := coverage.NewBufferPool()
	docTokens := tok.Tokenize(doc, setup.MinWordSize)
	f := coverage.CalculateFeatures(setup, pool, ctx, doc, docTokens, 0)

	matched := make(map[string]bool, len(ctx.QueryTokens))
	for i, qt := range ctx.QueryTokens {
		matched[qt.Text(query)] = i < len(f.TermCi) && f.TermCi[i] > 0
	}
	f.Fusion = coverage.ComputeFusionSignals(setup, tok, query, doc, matched, corpus.DocumentMetadata{}, false)
	return f
}

func TestCalculate_EmptyQueryYieldsZero(t *testing.T) {
	f := computeFeatures(t, coverage.DefaultSetup(), "", "anything")
	score, tiebreaker := Calculate(coverage.DefaultSetup(), "", "anything", f, 0)
	assert.Equal(t, uint16(0), score)
	assert.Equal(t, uint8(0), tiebreaker)
}

func TestCalculate_MatrixRevisitedOutranksReloaded(t *testing.T) {
	setup := coverage.DefaultSetup()
	fA := computeFeatures(t, setup, "the matrix rev", "The Matrix Reloaded")
	fB := computeFeatures(t, setup, "the matrix rev", "The Matrix Revisited")

	scoreA, _ := Calculate(setup, "the matrix rev", "The Matrix Reloaded", fA, 0)
	scoreB, _ := Calculate(setup, "the matrix rev", "The Matrix Revisited", fB, 0)

	assert.True(t, fB.Fusion.LexicalPrefixLast)
	assert.False(t, fA.Fusion.LexicalPrefixLast)
	assert.Greater(t, scoreB, scoreA)
}

func TestCalculate_ExactPrefixSetsBit5(t *testing.T) {
	setup := coverage.DefaultSetup()
	fB := computeFeatures(t, setup, "two fo", "Two for Joy")
	fA := computeFeatures(t, setup, "two fo", "Tea for Two")

	scoreB, _ := Calculate(setup, "two fo", "Two for Joy", fB, 0)
	scoreA, _ := Calculate(setup, "two fo", "Tea for Two", fA, 0)

	require.Greater(t, scoreB, scoreA)
	precedenceB := uint8(scoreB >> 8)
	assert.NotZero(t, precedenceB&32, "exact-prefix bit (32) should be set for %q", "Two for Joy")
}

func TestCalculate_SingleTermTierOrdering(t *testing.T) {
	setup := coverage.DefaultSetup()
	fExact := computeFeatures(t, setup, "abc", "abc")
	fPrefix := computeFeatures(t, setup, "abc", "abcdef")

	scoreExact, _ := Calculate(setup, "abc", "abc", fExact, 0)
	scorePrefix, _ := Calculate(setup, "abc", "abcdef", fPrefix, 0)

	assert.Greater(t, scoreExact, scorePrefix, "exact-at-beginning single-term match should outrank a clean-prefix match")
}

func TestCalculate_Deterministic(t *testing.T) {
	setup := coverage.DefaultSetup()
	f := computeFeatures(t, setup, "world", "hello world test")
	s1, t1 := Calculate(setup, "world", "hello world test", f, 0.4)
	s2, t2 := Calculate(setup, "world", "hello world test", f, 0.4)
	assert.Equal(t, s1, s2)
	assert.Equal(t, t1, t2)
}

func TestCalculate_TiebreakerZeroForSingleTerm(t *testing.T) {
	setup := coverage.DefaultSetup()
	f := computeFeatures(t, setup, "world", "hello world test")
	_, tiebreaker := Calculate(setup, "world", "hello world test", f, 0)
	assert.Equal(t, uint8(0), tiebreaker)
}

// Package engine wires the coverage, fusion, and corpus packages behind
// the public entry points spec.md §6 enumerates. Grounded on the
// teacher's top-level search facade pattern (pkg/qgram.QGramIndex methods
// composing candidates.go + scorer.go + verify.go into one search call).
package engine

import (
	"strings"

	"github.com/kittclouds/coverkit/pkg/coverage"
	"github.com/kittclouds/coverkit/pkg/corpus"
	"github.com/kittclouds/coverkit/pkg/fusion"
	"github.com/kittclouds/coverkit/pkg/idf"
	"github.com/kittclouds/coverkit/pkg/tokenizer"
)

// CoverageEngine is the facade a caller builds once per index and reuses
// across queries.
type CoverageEngine struct {
	Setup      coverage.Setup
	Tokenizer  tokenizer.Tokenizer
	Terms      corpus.TermCollection
	WordIdf    corpus.WordIdfCache
	DocMeta    corpus.DocumentMetadataCache
	TotalDocs  int
	bufferPool *coverage.BufferPool
	idfCache   *idf.Cache[*coverage.QueryContext]
}

// New constructs a CoverageEngine. Terms, WordIdf, and DocMeta may be nil;
// the engine falls back per spec.md §7 when they are.
func New(setup coverage.Setup, tok tokenizer.Tokenizer) *CoverageEngine {
	return &CoverageEngine{
		Setup:      setup,
		Tokenizer:  tok,
		bufferPool: coverage.NewBufferPool(),
		idfCache:   idf.NewCache[*coverage.QueryContext](),
	}
}

// PrepareQuery returns the cached QueryContext for query if one was built
// for this exact string, otherwise builds, caches, and returns a fresh
// one. Last-writer-wins under concurrent PrepareQuery calls for the same
// query string, per spec.md §5.
func (e *CoverageEngine) PrepareQuery(query string) *coverage.QueryContext {
	if cached, ok := e.idfCache.Get(query); ok {
		return cached
	}
	ctx := coverage.PrepareQuery(e.Setup, e.Tokenizer, e.Terms, e.TotalDocs, e.WordIdf, query)
	e.idfCache.Put(query, ctx)
	return ctx
}

// CalculateFeatures scores one document against a prepared query context,
// per spec.md §6's calculateFeatures entry point.
func (e *CoverageEngine) CalculateFeatures(ctx *coverage.QueryContext, docText string, docKey string, lcsSum int) coverage.Features {
	docTokens := e.Tokenizer.Tokenize(docText, e.Setup.MinWordSize)
	f := coverage.CalculateFeatures(e.Setup, e.bufferPool, ctx, docText, docTokens, lcsSum)
	f.Fusion = e.computeFusionSignals(ctx, docText, docKey, f)
	return f
}

func (e *CoverageEngine) computeFusionSignals(ctx *coverage.QueryContext, docText, docKey string, f coverage.Features) coverage.FusionSignals {
	var meta corpus.DocumentMetadata
	hasMeta := false
	if e.DocMeta != nil && docKey != "" {
		meta, hasMeta = e.DocMeta.GetDocumentMetadata(docKey)
	}

	matchedByWord := make(map[string]bool, len(ctx.QueryTokens))
	for i, t := range ctx.QueryTokens {
		word := strings.ToLower(t.Text(ctx.Query))
		matchedByWord[word] = i < len(f.TermCi) && f.TermCi[i] > 0
	}

	return coverage.ComputeFusionSignals(e.Setup, e.Tokenizer, ctx.Query, docText, matchedByWord, meta, hasMeta)
}

// CalculateCoverageScore is the narrow entry point that returns only the
// 0-255 coverage byte, per spec.md §6.
func (e *CoverageEngine) CalculateCoverageScore(ctx *coverage.QueryContext, docText string, lcsSum int) uint8 {
	return e.CalculateFeatures(ctx, docText, "", lcsSum).CoverageScore
}

// Score composes CalculateFeatures with the fusion scorer, returning the
// packed (score, tiebreaker) pair ready for ScoreArray.Add.
func (e *CoverageEngine) Score(ctx *coverage.QueryContext, docText, docKey string, lcsSum int, bm25 float64) (uint16, uint8, coverage.Features) {
	f := e.CalculateFeatures(ctx, docText, docKey, lcsSum)
	score, tiebreaker := fusion.Calculate(e.Setup, ctx.Query, docText, f, bm25)
	return score, tiebreaker, f
}

// ReleaseQuery drops the cached context for query, reclaiming its slices.
func (e *CoverageEngine) ReleaseQuery(query string) {
	if ctx, ok := e.idfCache.Get(query); ok {
		ctx.Release()
	}
	e.idfCache.Delete(query)
}

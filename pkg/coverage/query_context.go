package coverage

import (
	"github.com/kittclouds/coverkit/pkg/corpus"
	"github.com/kittclouds/coverkit/pkg/idf"
	"github.com/kittclouds/coverkit/pkg/lexslice"
	"github.com/kittclouds/coverkit/pkg/tokenizer"
)

// QueryContext is the immutable, prepared-per-query artifact: deduplicated
// query tokens, per-term IDF, and per-term max character counts. It is
// scoped to one query and released once every candidate has been scored.
type QueryContext struct {
	Query        string
	QueryTokens  []lexslice.StringSlice
	TermMaxChars []int
	TermIdf      []float64
	WordLevelIdf []float64
	HasWordIdf   []bool
}

// TermsCount returns the number of deduplicated query terms. Zero for an
// empty or whitespace-only query, per spec.md §7.
func (c *QueryContext) TermsCount() int {
	return len(c.QueryTokens)
}

// PrepareQuery tokenizes and deduplicates query, then computes per-term
// IDF and max-char metadata. totalDocuments and tc may be zero-value /
// nil, in which case ComputeTermIdf falls back to log2(length+1) for every
// term (spec.md §3, §7). wic is optional.
func PrepareQuery(
	setup Setup,
	tok tokenizer.Tokenizer,
	tc corpus.TermCollection,
	totalDocuments int,
	wic corpus.WordIdfCache,
	query string,
) *QueryContext {
	rawTokens := tok.Tokenize(query, setup.MinWordSize)
	dedup := tokenizer.DedupeQueryTokens(query, rawTokens)

	ctx := &QueryContext{
		Query:        query,
		QueryTokens:  dedup,
		TermMaxChars: make([]int, len(dedup)),
		TermIdf:      make([]float64, len(dedup)),
		WordLevelIdf: make([]float64, len(dedup)),
		HasWordIdf:   make([]bool, len(dedup)),
	}

	for i, tok := range dedup {
		word := tok.Text(query)
		ctx.TermMaxChars[i] = tok.Len()
		ctx.TermIdf[i] = idf.ComputeTermIdf(tc, totalDocuments, word, setup.IndexSizes)
		if wic != nil {
			if v, ok := wic.GetWordIdf(word); ok {
				ctx.WordLevelIdf[i] = v
				ctx.HasWordIdf[i] = true
			}
		}
	}

	return ctx
}

// Release clears the context's backing slices so their memory can be
// reclaimed promptly; a no-op (and safe) to call more than once.
func (c *QueryContext) Release() {
	c.QueryTokens = nil
	c.TermMaxChars = nil
	c.TermIdf = nil
	c.WordLevelIdf = nil
	c.HasWordIdf = nil
}

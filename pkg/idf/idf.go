// Package idf computes BM25 inverse-document-frequency weights and hosts
// the per-query IDF memo described in spec.md §5/§9: a concurrent,
// last-writer-wins mapping keyed by the full query string, generalized
// from the teacher's resorank.EntropyCache (an LRU keyed by term) since
// this engine's cache is scoped to one query's lifetime rather than needing
// size-bounded eviction.
package idf

import (
	"math"
	"sync"

	"github.com/kittclouds/coverkit/pkg/corpus"
)

// ComputeNgramIDF computes the BM25 IDF for a single n-gram against the
// term collection: log((totalDocuments - df + 0.5) / (df + 0.5) + 1).
// An unknown n-gram (not present in the collection) contributes a
// document frequency of zero, i.e. the maximum possible IDF for the
// corpus size.
func ComputeNgramIDF(tc corpus.TermCollection, totalDocuments int, ngram string) float64 {
	df := 0
	if tc != nil {
		if term, ok := tc.GetTerm(ngram); ok {
			df = term.DocumentFrequency
		}
	}
	n := float64(totalDocuments)
	ratio := (n - float64(df) + 0.5) / (float64(df) + 0.5)
	if ratio < 0 {
		ratio = 0
	}
	return math.Log(ratio + 1)
}

// ComputeTermIdf computes the average IDF over all n-grams of the
// configured index sizes for one query token. When the term collection
// has no usable statistics at all (no n-grams could be formed, or the
// collection is empty), it falls back to log2(length+1) per spec.md §3.
func ComputeTermIdf(tc corpus.TermCollection, totalDocuments int, token string, indexSizes []int) float64 {
	var sum float64
	var count int
	for _, size := range indexSizes {
		if size <= 0 || size > len(token) {
			continue
		}
		for i := 0; i+size <= len(token); i++ {
			sum += ComputeNgramIDF(tc, totalDocuments, token[i:i+size])
			count++
		}
	}
	if count == 0 || totalDocuments == 0 {
		return math.Log2(float64(len(token)) + 1)
	}
	return sum / float64(count)
}

// Cache is a concurrent, last-writer-wins mapping from full query string
// to a precomputed value of type T (typically per-term IDFs). Entries are
// reused across candidate evaluations within a query and are safe to
// leave in place after the query completes; callers that want a bound on
// memory should call Delete explicitly when a query's context is released.
type Cache[T any] struct {
	entries sync.Map
}

// NewCache constructs an empty Cache.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{}
}

// Get returns the cached value for query, if present.
func (c *Cache[T]) Get(query string) (T, bool) {
	v, ok := c.entries.Load(query)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Put stores value for query, overwriting any prior entry (last writer
// wins under concurrent Put calls for the same key).
func (c *Cache[T]) Put(query string, value T) {
	c.entries.Store(query, value)
}

// Delete removes the entry for query, if any. Idempotent.
func (c *Cache[T]) Delete(query string) {
	c.entries.Delete(query)
}

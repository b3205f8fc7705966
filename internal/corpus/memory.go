// Package corpus provides small in-memory implementations of the
// pkg/corpus contracts, useful for tests and for embedding coverkit
// without a real indexed backend. Grounded on the teacher's
// pkg/qgram.QGramIndex bookkeeping (map[gram]map[docID]*GramMetadata),
// narrowed to the four read-only lookups the coverage engine actually
// consumes, and using github.com/derekparker/trie/v3 for the n-gram
// term lookup in place of the teacher's plain map, since a prefix trie
// is the DOMAIN STACK's natural fit for "does this n-gram exist, and
// with what document frequency" lookups.
package corpus

import (
	"sync"

	"github.com/derekparker/trie/v3"
	corpuscontract "github.com/kittclouds/coverkit/pkg/corpus"
)

// MemoryTermCollection answers corpus.TermCollection.GetTerm from an
// in-memory trie of n-grams to document frequency.
type MemoryTermCollection struct {
	mu   sync.RWMutex
	tree *trie.Trie[int]
}

// NewMemoryTermCollection builds an empty term collection.
func NewMemoryTermCollection() *MemoryTermCollection {
	return &MemoryTermCollection{tree: trie.New[int]()}
}

// IncrementDocumentFrequency records one more document containing ngram.
func (c *MemoryTermCollection) IncrementDocumentFrequency(ngram string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if node, ok := c.tree.Find(ngram); ok {
		c.tree.Add(ngram, node.Meta()+1)
		return
	}
	c.tree.Add(ngram, 1)
}

// GetTerm implements corpus.TermCollection.
func (c *MemoryTermCollection) GetTerm(ngramText string) (corpuscontract.Term, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	node, ok := c.tree.Find(ngramText)
	if !ok {
		return corpuscontract.Term{}, false
	}
	return corpuscontract.Term{DocumentFrequency: node.Meta()}, true
}

// MemoryDocumentCollection answers the three corpus.DocumentCollection
// lookups from plain maps, grounded on QGramIndex.Documents.
type MemoryDocumentCollection struct {
	mu        sync.RWMutex
	byID      map[int64]corpuscontract.Document
	byKey     map[string][]corpuscontract.Document
	bySegment map[string]map[int]corpuscontract.Document
}

// NewMemoryDocumentCollection builds an empty document collection.
func NewMemoryDocumentCollection() *MemoryDocumentCollection {
	return &MemoryDocumentCollection{
		byID:      make(map[int64]corpuscontract.Document),
		byKey:     make(map[string][]corpuscontract.Document),
		bySegment: make(map[string]map[int]corpuscontract.Document),
	}
}

// Put inserts or replaces one document.
func (d *MemoryDocumentCollection) Put(doc corpuscontract.Document) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byID[doc.ID] = doc

	segs := d.bySegment[doc.DocumentKey]
	if segs == nil {
		segs = make(map[int]corpuscontract.Document)
		d.bySegment[doc.DocumentKey] = segs
	}
	segs[doc.SegmentNumber] = doc

	list := d.byKey[doc.DocumentKey]
	for i, existing := range list {
		if existing.SegmentNumber == doc.SegmentNumber {
			list[i] = doc
			d.byKey[doc.DocumentKey] = list
			return
		}
	}
	d.byKey[doc.DocumentKey] = append(list, doc)
}

// GetDocumentByPublicKey implements corpus.DocumentCollection.
func (d *MemoryDocumentCollection) GetDocumentByPublicKey(id int64) (corpuscontract.Document, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	doc, ok := d.byID[id]
	return doc, ok
}

// GetDocumentsForPublicKey implements corpus.DocumentCollection.
func (d *MemoryDocumentCollection) GetDocumentsForPublicKey(key string) []corpuscontract.Document {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]corpuscontract.Document(nil), d.byKey[key]...)
}

// GetDocumentOfSegment implements corpus.DocumentCollection.
func (d *MemoryDocumentCollection) GetDocumentOfSegment(key string, segmentNumber int) (corpuscontract.Document, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	segs, ok := d.bySegment[key]
	if !ok {
		return corpuscontract.Document{}, false
	}
	doc, ok := segs[segmentNumber]
	return doc, ok
}

// MemoryWordIdfCache answers corpus.WordIdfCache from a plain map.
type MemoryWordIdfCache struct {
	mu     sync.RWMutex
	values map[string]float64
}

// NewMemoryWordIdfCache builds an empty word IDF cache.
func NewMemoryWordIdfCache() *MemoryWordIdfCache {
	return &MemoryWordIdfCache{values: make(map[string]float64)}
}

// Set installs the IDF value for token.
func (c *MemoryWordIdfCache) Set(token string, idf float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[token] = idf
}

// GetWordIdf implements corpus.WordIdfCache.
func (c *MemoryWordIdfCache) GetWordIdf(token string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[token]
	return v, ok
}

// MemoryDocumentMetadataCache answers corpus.DocumentMetadataCache from a
// plain map, falling back to corpus.EmptyDocumentMetadata.
type MemoryDocumentMetadataCache struct {
	mu     sync.RWMutex
	values map[string]corpuscontract.DocumentMetadata
}

// NewMemoryDocumentMetadataCache builds an empty metadata cache.
func NewMemoryDocumentMetadataCache() *MemoryDocumentMetadataCache {
	return &MemoryDocumentMetadataCache{values: make(map[string]corpuscontract.DocumentMetadata)}
}

// Set installs the metadata for docKey.
func (c *MemoryDocumentMetadataCache) Set(docKey string, meta corpuscontract.DocumentMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[docKey] = meta
}

// GetDocumentMetadata implements corpus.DocumentMetadataCache.
func (c *MemoryDocumentMetadataCache) GetDocumentMetadata(docKey string) (corpuscontract.DocumentMetadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[docKey]
	if !ok {
		return corpuscontract.EmptyDocumentMetadata, false
	}
	return v, true
}

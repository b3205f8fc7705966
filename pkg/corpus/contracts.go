// Package corpus declares the external collaborator contracts the coverage
// and fusion engine consumes: term statistics, document lookup, and the
// word-level IDF and per-document metadata caches. Implementations live
// outside this module in production (the posting-list index, the document
// repository); internal/corpus provides minimal in-memory implementations
// used by tests and the worked examples.
package corpus

// Term is the subset of posting-list term statistics the engine needs.
type Term struct {
	DocumentFrequency int
}

// TermCollection resolves an n-gram to its corpus-wide term statistics.
// An ok=false return means the n-gram is unknown to the index; callers
// fall back to an IDF estimate rather than treating this as an error.
type TermCollection interface {
	GetTerm(ngramText string) (Term, bool)
}

// Document is the subset of a stored document the engine needs to score
// and display a candidate.
type Document struct {
	ID            int64
	DocumentKey   string
	SegmentNumber int
	IndexedText   string
	Deleted       bool
}

// DocumentCollection resolves documents and segments by key. Deleted or
// missing documents are not errors: callers silently drop such candidates
// during prescreen.
type DocumentCollection interface {
	GetDocumentByPublicKey(id int64) (Document, bool)
	GetDocumentsForPublicKey(key string) []Document
	GetDocumentOfSegment(key string, segmentNumber int) (Document, bool)
}

// WordIdfCache supplies a per-token IDF independent of the n-gram index,
// stored as QueryContext.WordLevelIdf. Optional: engines run fine without
// one. Feature derivation uses the n-gram-derived TermIdf whether or not a
// WordIdfCache is installed.
type WordIdfCache interface {
	GetWordIdf(token string) (float64, bool)
}

// DocumentMetadata is the precomputed per-document summary passed to
// ComputeFusionSignals. A zero TokenCount lets it skip tokenizing the
// document text; otherwise the text is tokenized. LastTokenHash is not
// read by this module.
type DocumentMetadata struct {
	TokenCount    int
	LastTokenHash int32
}

// EmptyDocumentMetadata is the fallback sentinel used when a
// DocumentMetadataCache has no entry for a document.
var EmptyDocumentMetadata = DocumentMetadata{}

// DocumentMetadataCache resolves precomputed per-document metadata by key.
type DocumentMetadataCache interface {
	GetDocumentMetadata(docKey string) (DocumentMetadata, bool)
}

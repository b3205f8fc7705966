// Package segment reduces per-(document, segment) scores down to one
// best entry per document, and resolves the winning segment's text.
// Grounded on the teacher's qgram candidate-verification flow
// (pkg/qgram/verify.go), which likewise folds multiple per-field/per-term
// signals for one document down to a single verdict.
package segment

import (
	"github.com/kittclouds/coverkit/pkg/corpus"
	"github.com/kittclouds/coverkit/pkg/textnorm"
	"github.com/kittclouds/coverkit/pkg/topk"
)

// ConsolidateSegments collapses in (one entry per document+segment, with
// Entry.DocID holding the base document id and Entry.Segment the segment
// number) into a new ScoreArray with at most one entry per base document
// id, keeping the entry with the highest (score, tiebreaker) — score
// dominates, tiebreaker only breaks ties. Returns the consolidated store
// plus the winning segment number per base document id.
func ConsolidateSegments(in *topk.ScoreArray) (*topk.ScoreArray, map[int64]int32) {
	best := make(map[int64]topk.Entry)
	for _, e := range in.GetAll() {
		cur, ok := best[e.DocID]
		if !ok || dominates(e, cur) {
			best[e.DocID] = e
		}
	}

	out := topk.New()
	bestSegments := make(map[int64]int32, len(best))
	for docID, e := range best {
		out.Add(docID, e.Score, e.Tiebreaker, 0)
		bestSegments[docID] = e.Segment
	}
	return out, bestSegments
}

func dominates(a, b topk.Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Tiebreaker > b.Tiebreaker
}

// GetBestSegmentText looks up the winning segment's document, per
// bestSegments, and returns its normalized indexed text.
func GetBestSegmentText(
	dc corpus.DocumentCollection,
	norm *textnorm.Normalizer,
	documentKey string,
	segmentNumber int32,
) (string, bool) {
	doc, ok := dc.GetDocumentOfSegment(documentKey, int(segmentNumber))
	if !ok || doc.Deleted {
		return "", false
	}
	return norm.Normalize(doc.IndexedText), true
}

// CalculateLcs returns the length of the longest common subsequence of
// runes between a and b, used as the whole-query LCS-ratio input to
// weightedCoverage (spec.md §4.3).
func CalculateLcs(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 || lb == 0 {
		return 0
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

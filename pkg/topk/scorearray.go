// Package topk implements the bucketed top-K score store: 65536 buckets
// keyed by the fusion score, backed by a dense occupancy bitmap for fast
// descending enumeration. Grounded on the teacher's pkg/qgram posting-list
// family (pkg/qgram/posting_list.go), generalized from "set of docIDs per
// term" to "list of (docID, tiebreaker) per score bucket", and using
// github.com/bits-and-blooms/bitset (already part of the retrieved pack's
// dependency graph) in place of the teacher's sparse roaring bitmap, since
// the occupancy set here is a fixed dense 65536-bit range rather than a
// sparse docID universe.
package topk

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

const numBuckets = 1 << 16 // score is a u16

// Entry is one scored candidate within a bucket.
type Entry struct {
	DocID      int64
	Score      uint16
	Tiebreaker uint8
	Segment    int32
}

// ScoreArray is a bucketed top-K store keyed on a 16-bit fusion score.
// Not internally synchronized, per spec.md §5: callers confine one
// ScoreArray to a thread or serialize writes externally.
type ScoreArray struct {
	buckets [numBuckets][]Entry
	bitmap  *bitset.BitSet

	minScore int
	maxScore int
	count    int
}

// New constructs an empty ScoreArray.
func New() *ScoreArray {
	return &ScoreArray{
		bitmap:   bitset.New(numBuckets),
		minScore: numBuckets,
		maxScore: -1,
	}
}

// Add inserts one entry, O(1) amortized.
func (s *ScoreArray) Add(docID int64, score uint16, tiebreaker uint8, segment int32) {
	idx := int(score)
	s.buckets[idx] = append(s.buckets[idx], Entry{DocID: docID, Score: score, Tiebreaker: tiebreaker, Segment: segment})
	s.bitmap.Set(uint(idx))
	if idx < s.minScore {
		s.minScore = idx
	}
	if idx > s.maxScore {
		s.maxScore = idx
	}
	s.count++
}

// Update removes every existing entry for docID within the currently
// occupied score range, then re-adds it at the new score.
func (s *ScoreArray) Update(docID int64, score uint16, tiebreaker uint8, segment int32) {
	if s.maxScore >= s.minScore {
		for idx := s.minScore; idx <= s.maxScore; idx++ {
			if !s.bitmap.Test(uint(idx)) {
				continue
			}
			s.removeFromBucket(idx, docID)
		}
	}
	s.Add(docID, score, tiebreaker, segment)
}

func (s *ScoreArray) removeFromBucket(idx int, docID int64) {
	bucket := s.buckets[idx]
	write := 0
	for _, e := range bucket {
		if e.DocID == docID {
			s.count--
			continue
		}
		bucket[write] = e
		write++
	}
	s.buckets[idx] = bucket[:write]
	if write == 0 {
		s.bitmap.Clear(uint(idx))
	}
}

// GetTopK returns up to k entries in non-increasing sortKey order:
// descending score, then within a bucket descending tiebreaker.
// Iterates the bitmap word-by-word from the chunk containing maxScore
// down to the chunk containing minScore, matching spec.md §4.6.
func (s *ScoreArray) GetTopK(k int) []Entry {
	if k <= 0 || s.maxScore < s.minScore {
		return nil
	}
	words := s.bitmap.Bytes()
	out := make([]Entry, 0, k)

	highChunk := s.maxScore >> 6
	lowChunk := s.minScore >> 6

	for chunk := highChunk; chunk >= lowChunk; chunk-- {
		if chunk < 0 || chunk >= len(words) {
			continue
		}
		word := words[chunk]
		if word == 0 {
			continue
		}
		for bit := 63; bit >= 0; bit-- {
			if word&(1<<uint(bit)) == 0 {
				continue
			}
			idx := chunk<<6 + bit
			if idx < s.minScore || idx > s.maxScore {
				continue
			}
			bucket := s.buckets[idx]
			if len(bucket) == 0 {
				continue
			}
			if len(bucket) > 1 {
				sorted := append([]Entry(nil), bucket...)
				sort.Slice(sorted, func(a, b int) bool {
					return sorted[a].Tiebreaker > sorted[b].Tiebreaker
				})
				bucket = sorted
			}
			for _, e := range bucket {
				out = append(out, e)
				if len(out) >= k {
					return out
				}
			}
		}
	}
	return out
}

// GetAll returns every entry in descending sortKey order (GetTopK with no
// cap).
func (s *ScoreArray) GetAll() []Entry {
	return s.GetTopK(s.count)
}

// Clear empties the store, zeroing only the touched bucket range.
func (s *ScoreArray) Clear() {
	if s.maxScore >= s.minScore {
		for idx := s.minScore; idx <= s.maxScore; idx++ {
			s.buckets[idx] = nil
		}
	}
	s.bitmap.ClearAll()
	s.minScore = numBuckets
	s.maxScore = -1
	s.count = 0
}

// Count returns the total number of entries across all buckets.
func (s *ScoreArray) Count() int {
	return s.count
}

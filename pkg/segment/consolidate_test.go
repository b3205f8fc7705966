package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memcorpus "github.com/kittclouds/coverkit/internal/corpus"
	"github.com/kittclouds/coverkit/pkg/corpus"
	"github.com/kittclouds/coverkit/pkg/textnorm"
	"github.com/kittclouds/coverkit/pkg/topk"
)

func TestConsolidateSegments_KeepsBestPerDocument(t *testing.T) {
	in := topk.New()
	in.Add(1, 100, 10, 0) // doc 1, segment 0
	in.Add(1, 200, 5, 1)  // doc 1, segment 1 (better score)
	in.Add(2, 150, 0, 0)  // doc 2, segment 0

	out, bestSegments := ConsolidateSegments(in)

	all := out.GetAll()
	require.Len(t, all, 2)

	byDoc := make(map[int64]topk.Entry, len(all))
	for _, e := range all {
		byDoc[e.DocID] = e
	}
	assert.Equal(t, uint16(200), byDoc[1].Score)
	assert.Equal(t, int32(1), bestSegments[1])
	assert.Equal(t, uint16(150), byDoc[2].Score)
}

func TestConsolidateSegments_TiebreakerBreaksEqualScores(t *testing.T) {
	in := topk.New()
	in.Add(1, 100, 5, 0)
	in.Add(1, 100, 200, 2)

	out, bestSegments := ConsolidateSegments(in)
	all := out.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, uint8(200), all[0].Tiebreaker)
	assert.Equal(t, int32(2), bestSegments[1])
}

func TestGetBestSegmentText_NormalizesAndResolves(t *testing.T) {
	dc := memcorpus.NewMemoryDocumentCollection()
	dc.Put(corpus.Document{ID: 1, DocumentKey: "doc-1", SegmentNumber: 1, IndexedText: "The  Matrix   Reloaded"})
	norm := textnorm.New()

	text, ok := GetBestSegmentText(dc, norm, "doc-1", 1)
	require.True(t, ok)
	assert.Equal(t, "The Matrix Reloaded", text)
}

func TestGetBestSegmentText_MissingSegmentReturnsFalse(t *testing.T) {
	dc := memcorpus.NewMemoryDocumentCollection()
	norm := textnorm.New()
	_, ok := GetBestSegmentText(dc, norm, "nope", 0)
	assert.False(t, ok)
}

func TestCalculateLcs_LongestCommonSubsequence(t *testing.T) {
	assert.Equal(t, 3, CalculateLcs("abcde", "ace"))
	assert.Equal(t, 0, CalculateLcs("abc", "xyz"))
	assert.Equal(t, 3, CalculateLcs("abc", "abc"))
}

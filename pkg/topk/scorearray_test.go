package topk

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_DuplicateEntryCountsTwice(t *testing.T) {
	s := New()
	s.Add(1, 100, 5, 0)
	s.Add(1, 100, 5, 0)
	assert.Equal(t, 2, s.Count())

	all := s.GetAll()
	require.Len(t, all, 2)
}

func TestGetTopK_DescendingSortKeyOrder(t *testing.T) {
	s := New()
	s.Add(1, 50, 10, 0)
	s.Add(2, 200, 5, 0)
	s.Add(3, 200, 250, 0)
	s.Add(4, 10, 1, 0)

	top := s.GetTopK(10)
	require.Len(t, top, 4)

	keyOf := func(e Entry) uint32 { return uint32(e.Score)<<8 | uint32(e.Tiebreaker) }
	assert.True(t, sort.SliceIsSorted(top, func(i, j int) bool { return keyOf(top[i]) > keyOf(top[j]) }))
	assert.Equal(t, int64(3), top[0].DocID)
}

func TestGetTopK_IsPrefixOfGetAll(t *testing.T) {
	s := New()
	for i := int64(0); i < 20; i++ {
		s.Add(i, uint16(i*3), uint8(i), 0)
	}
	all := s.GetAll()
	top5 := s.GetTopK(5)
	require.Len(t, top5, 5)
	assert.Equal(t, all[:5], top5)
}

func TestUpdate_MovesEntryToNewBucket(t *testing.T) {
	s := New()
	s.Add(7, 10, 0, 0)
	s.Update(7, 900, 0, 0)

	all := s.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, uint16(900), all[0].Score)
}

func TestClear_ResetsOccupancyAndCount(t *testing.T) {
	s := New()
	s.Add(1, 500, 0, 0)
	s.Add(2, 100, 0, 0)
	s.Clear()

	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.GetTopK(10))
}

func TestGetTopK_EmptyStoreReturnsEmpty(t *testing.T) {
	s := New()
	assert.Empty(t, s.GetTopK(5))
}

func TestGetTopK_TiebreakerBreaksWithinBucket(t *testing.T) {
	s := New()
	s.Add(1, 77, 10, 0)
	s.Add(2, 77, 200, 0)
	s.Add(3, 77, 50, 0)

	top := s.GetTopK(3)
	require.Len(t, top, 3)
	assert.Equal(t, int64(2), top[0].DocID)
	assert.Equal(t, int64(3), top[1].DocID)
	assert.Equal(t, int64(1), top[2].DocID)
}

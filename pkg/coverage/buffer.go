package coverage

import "sync"

// Buffer is the per-query scratch arena for one worker: token-indexed
// arrays reused across candidate documents within a query. It is
// explicitly not thread-safe; each worker owns its own Buffer, matching
// spec.md §5.
//
// The rent/return discipline is grounded in the teacher's pattern of
// explicit, idempotent cleanup on long-lived structures (e.g.
// resorank.EntropyCache's LRU eviction, QGramIndex.RemoveDocument),
// generalized into a scoped-acquisition guard over a sync.Pool per
// spec.md §9.
type Buffer struct {
	qActive          []bool
	dActive          []bool
	termMatchedChars []float64
	termHasWhole     []bool
	termHasJoined    []bool
	termHasPrefix    []bool
	termHasFuzzy     []bool
	termFirstPos     []int
	termAssignedPos  []int

	pool *BufferPool
}

// reset grows (never shrinks) the backing arrays to hold qLen query terms
// and dLen document tokens, zeroing/filling sentinel values along the way.
func (b *Buffer) reset(qLen, dLen int) {
	b.qActive = growBool(b.qActive, qLen)
	b.dActive = growBool(b.dActive, dLen)
	b.termMatchedChars = growFloat(b.termMatchedChars, qLen)
	b.termHasWhole = growBool(b.termHasWhole, qLen)
	b.termHasJoined = growBool(b.termHasJoined, qLen)
	b.termHasPrefix = growBool(b.termHasPrefix, qLen)
	b.termHasFuzzy = growBool(b.termHasFuzzy, qLen)
	b.termFirstPos = growInt(b.termFirstPos, qLen)
	b.termAssignedPos = growInt(b.termAssignedPos, qLen)

	for i := 0; i < qLen; i++ {
		b.qActive[i] = true
		b.termMatchedChars[i] = 0
		b.termHasWhole[i] = false
		b.termHasJoined[i] = false
		b.termHasPrefix[i] = false
		b.termHasFuzzy[i] = false
		b.termFirstPos[i] = -1
		b.termAssignedPos[i] = -1
	}
	for j := 0; j < dLen; j++ {
		b.dActive[j] = true
	}
}

// Release returns the buffer to its originating pool. Idempotent: calling
// Release on a buffer not acquired from a pool (or already released) is a
// no-op, so it is always safe to defer.
func (b *Buffer) Release() {
	if b == nil || b.pool == nil {
		return
	}
	pool := b.pool
	b.pool = nil
	pool.pool.Put(b)
}

// BufferPool rents and recycles Buffers across candidate documents and
// across queries, amortizing allocation.
type BufferPool struct {
	pool sync.Pool
}

// NewBufferPool constructs an empty pool.
func NewBufferPool() *BufferPool {
	p := &BufferPool{}
	p.pool.New = func() any { return &Buffer{} }
	return p
}

// Acquire rents a Buffer sized for qLen query terms and dLen document
// tokens. Callers must call Release along every exit path.
func (p *BufferPool) Acquire(qLen, dLen int) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.pool = p
	b.reset(qLen, dLen)
	return b
}

func growBool(s []bool, n int) []bool {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]bool, n)
}

func growInt(s []int, n int) []int {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]int, n)
}

func growFloat(s []float64, n int) []float64 {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]float64, n)
}

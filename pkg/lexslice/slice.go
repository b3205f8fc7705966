// Package lexslice provides a non-owning offset/length view into a host
// string, the shared currency between the tokenizer contract and the
// coverage engine.
package lexslice

import "hash/fnv"

// StringSlice is a non-owning view into some host string. Position is the
// token's ordinal index in the stream it was cut from; Hash is a cached,
// case-sensitive content hash. The matchers in pkg/coverage compare
// lowercase token text and do not read Hash.
type StringSlice struct {
	Offset   int32
	Length   int32
	Position int32
	Hash     int32
}

// New builds a StringSlice over host[offset:offset+length] at the given
// stream position, computing and caching the content hash.
func New(host string, offset, length, position int) StringSlice {
	return StringSlice{
		Offset:   int32(offset),
		Length:   int32(length),
		Position: int32(position),
		Hash:     HashText(host[offset : offset+length]),
	}
}

// Text resolves the slice against its host string.
func (s StringSlice) Text(host string) string {
	return host[s.Offset : s.Offset+s.Length]
}

// Len returns the slice's byte length.
func (s StringSlice) Len() int {
	return int(s.Length)
}

// HashText computes the cached hash used by StringSlice. FNV-1a is used
// purely as a fast, allocation-free 32-bit hash; nothing in this module
// depends on the choice of algorithm.
func HashText(s string) int32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return int32(h.Sum32())
}

package coverage

import (
	"github.com/kittclouds/coverkit/internal/obslog"
	"github.com/kittclouds/coverkit/pkg/lexslice"
)

// MatchState is the scratch-owned, per-(query,document) working set the
// matcher cascade mutates. The per-term and per-token flag and credit
// slices are rented from a Buffer and must not be retained past the call
// that produced them.
type MatchState struct {
	QueryText string
	DocText   string

	QueryTokens     []lexslice.StringSlice
	UniqueDocTokens []lexslice.StringSlice

	qActive          []bool
	dActive          []bool
	termMatchedChars []float64
	termHasWhole     []bool
	termHasJoined    []bool
	termHasPrefix    []bool
	termHasFuzzy     []bool
	termFirstPos     []int
	termAssignedPos  []int

	WordHits int
	NumFuzzy int
}

// NewMatchState rents arrays from buf and builds a MatchState for
// scoring docText against the prepared query context.
func NewMatchState(buf *Buffer, ctx *QueryContext, docText string, docTokens []lexslice.StringSlice) *MatchState {
	unique := docTokensDeduped(docText, docTokens)
	buf.reset(len(ctx.QueryTokens), len(unique))

	if len(buf.qActive) < len(ctx.QueryTokens) || len(buf.dActive) < len(unique) {
		obslog.InvariantViolation("coverage.MatchState", "buffer undersized after reset", map[string]any{
			"want_query": len(ctx.QueryTokens),
			"have_query": len(buf.qActive),
			"want_doc":   len(unique),
			"have_doc":   len(buf.dActive),
		})
	}

	return &MatchState{
		QueryText:        ctx.Query,
		DocText:          docText,
		QueryTokens:      ctx.QueryTokens,
		UniqueDocTokens:  unique,
		qActive:          buf.qActive,
		dActive:          buf.dActive,
		termMatchedChars: buf.termMatchedChars,
		termHasWhole:     buf.termHasWhole,
		termHasJoined:    buf.termHasJoined,
		termHasPrefix:    buf.termHasPrefix,
		termHasFuzzy:     buf.termHasFuzzy,
		termFirstPos:     buf.termFirstPos,
		termAssignedPos:  buf.termAssignedPos,
	}
}

func docTokensDeduped(docText string, tokens []lexslice.StringSlice) []lexslice.StringSlice {
	seen := make(map[string]bool, len(tokens))
	out := make([]lexslice.StringSlice, 0, len(tokens))
	for _, tok := range tokens {
		key := lowerText(tok.Text(docText))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tok)
	}
	return out
}

func (m *MatchState) queryWord(i int) string {
	return lowerText(m.QueryTokens[i].Text(m.QueryText))
}

func (m *MatchState) docWord(j int) string {
	return lowerText(m.UniqueDocTokens[j].Text(m.DocText))
}

// updateFirstPos records the earliest doc position a term matched at, and
// the assigned doc position used for the phrase-run computation (the
// position associated with this particular hit; whole/joined/prefix
// matchers all assign the matched doc token's stream position).
func (m *MatchState) updateFirstPos(i, pos int) {
	if m.termFirstPos[i] < 0 || pos < m.termFirstPos[i] {
		m.termFirstPos[i] = pos
	}
	m.termAssignedPos[i] = pos
}

func (m *MatchState) maxActiveQueryLen() int {
	max := 0
	for i := range m.QueryTokens {
		if !m.qActive[i] {
			continue
		}
		if l := len(m.queryWord(i)); l > max {
			max = l
		}
	}
	return max
}

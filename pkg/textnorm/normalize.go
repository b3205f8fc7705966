// Package textnorm implements the deterministic character-map plus
// whitespace-collapse normalizer consumed by the coverage and fusion
// packages. It mirrors the teacher's dafsa.NormalizeRaw rune-folding loop,
// generalized into a configurable char-map + replacement-rule normalizer
// with a single-allocation fast path for the common case.
package textnorm

import "strings"

// Replacement is a literal substring substitution applied before the
// char map, e.g. collapsing "  " to " " or "\t" to " ".
type Replacement struct {
	Old string
	New string
}

// defaultReplacements is the canonical whitespace-collapse rule set.
// Normalizer.IsDefaultWhitespacePattern reports whether a Normalizer's
// Replacements equal this set, in which case the single-pass fast path
// applies.
var defaultReplacements = []Replacement{
	{Old: "  ", New: " "},
	{Old: "\t", New: " "},
	{Old: "\n", New: " "},
	{Old: "\r", New: " "},
}

// Normalizer folds diacritics via a precomputed rune table and collapses
// whitespace runs via Replacements.
type Normalizer struct {
	CharMap      [65536]rune
	Replacements []Replacement
}

// New builds a Normalizer with the default Latin diacritic-folding table
// and the default whitespace-collapse rules.
func New() *Normalizer {
	n := &Normalizer{Replacements: defaultReplacements}
	for r := rune(0); r < 65536; r++ {
		n.CharMap[r] = r
	}
	for from, to := range latinDiacriticFolds {
		n.CharMap[from] = to
	}
	return n
}

// IsDefaultWhitespacePattern reports whether this Normalizer's
// Replacements are exactly the canonical "  "->" ", tab/newline/CR->" "
// set, enabling the single-pass fast path.
func (n *Normalizer) IsDefaultWhitespacePattern() bool {
	if len(n.Replacements) != len(defaultReplacements) {
		return false
	}
	for i, r := range defaultReplacements {
		if n.Replacements[i] != r {
			return false
		}
	}
	return true
}

// Normalize applies the char map and whitespace collapse to s. It returns
// s itself, without allocating, when no character would change.
func (n *Normalizer) Normalize(s string) string {
	if !n.needsChange(s) {
		return s
	}
	if n.IsDefaultWhitespacePattern() {
		return n.normalizeFastPath(s)
	}
	return n.normalizeGeneric(s)
}

// needsChange scans s for any rune the char map would alter, any
// whitespace run/character the default replacements would collapse, and,
// for a non-default rule set, any occurrence of a Replacement's Old text.
func (n *Normalizer) needsChange(s string) bool {
	if !n.IsDefaultWhitespacePattern() {
		for _, rep := range n.Replacements {
			if rep.Old != "" && strings.Contains(s, rep.Old) {
				return true
			}
		}
	}
	prevSpace := false
	for _, r := range s {
		mapped := n.mapRune(r)
		if mapped != r {
			return true
		}
		isSpace := r == ' '
		isOtherWhite := r == '\t' || r == '\n' || r == '\r'
		if isOtherWhite {
			return true
		}
		if isSpace && prevSpace {
			return true
		}
		prevSpace = isSpace
	}
	return false
}

func (n *Normalizer) mapRune(r rune) rune {
	if r >= 0 && int(r) < len(n.CharMap) {
		return n.CharMap[r]
	}
	return r
}

// normalizeFastPath performs the single allocation, single scan collapse
// of runs of spaces plus char-map application, for the default whitespace
// pattern only.
func (n *Normalizer) normalizeFastPath(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	wroteAny := false
	for _, r := range s {
		mapped := n.mapRune(r)
		if mapped == ' ' || mapped == '\t' || mapped == '\n' || mapped == '\r' {
			if wroteAny {
				pendingSpace = true
			}
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(mapped)
		wroteAny = true
	}
	return b.String()
}

// normalizeGeneric applies arbitrary Replacements then the char map,
// for Normalizers configured with a non-default rule set.
func (n *Normalizer) normalizeGeneric(s string) string {
	out := s
	for _, r := range n.Replacements {
		out = strings.ReplaceAll(out, r.Old, r.New)
	}
	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		b.WriteRune(n.mapRune(r))
	}
	return b.String()
}

// latinDiacriticFolds maps common Latin-1 Supplement and Latin Extended-A
// accented letters to their unaccented ASCII equivalents.
var latinDiacriticFolds = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a', 'ā': 'a', 'ă': 'a', 'ą': 'a',
	'À': 'A', 'Á': 'A', 'Â': 'A', 'Ã': 'A', 'Ä': 'A', 'Å': 'A', 'Ā': 'A', 'Ă': 'A', 'Ą': 'A',
	'ç': 'c', 'ć': 'c', 'ĉ': 'c', 'ċ': 'c', 'č': 'c',
	'Ç': 'C', 'Ć': 'C', 'Ĉ': 'C', 'Ċ': 'C', 'Č': 'C',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e', 'ē': 'e', 'ĕ': 'e', 'ė': 'e', 'ę': 'e', 'ě': 'e',
	'È': 'E', 'É': 'E', 'Ê': 'E', 'Ë': 'E', 'Ē': 'E', 'Ĕ': 'E', 'Ė': 'E', 'Ę': 'E', 'Ě': 'E',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i', 'ī': 'i', 'ĭ': 'i', 'į': 'i',
	'Ì': 'I', 'Í': 'I', 'Î': 'I', 'Ï': 'I', 'Ī': 'I', 'Ĭ': 'I', 'Į': 'I',
	'ñ': 'n', 'ń': 'n', 'ņ': 'n', 'ň': 'n',
	'Ñ': 'N', 'Ń': 'N', 'Ņ': 'N', 'Ň': 'N',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o', 'ø': 'o', 'ō': 'o', 'ŏ': 'o', 'ő': 'o',
	'Ò': 'O', 'Ó': 'O', 'Ô': 'O', 'Õ': 'O', 'Ö': 'O', 'Ø': 'O', 'Ō': 'O', 'Ŏ': 'O', 'Ő': 'O',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u', 'ū': 'u', 'ŭ': 'u', 'ů': 'u', 'ű': 'u', 'ų': 'u',
	'Ù': 'U', 'Ú': 'U', 'Û': 'U', 'Ü': 'U', 'Ū': 'U', 'Ŭ': 'U', 'Ů': 'U', 'Ű': 'U', 'Ų': 'U',
	'ý': 'y', 'ÿ': 'y', 'Ý': 'Y', 'Ÿ': 'Y',
	'’': '\'',
}

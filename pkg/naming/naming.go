// Package naming turns icon names into exported identifiers.
//
// Icon names come from filenames ("arrow_down", "addon-collection", "w2g") and
// must be usable as enum members in the generated runtime and declaration
// modules. [Identifier] maps them to PascalCase:
//
//	arrow_down        -> ArrowDown
//	addon-collection  -> AddonCollection
//	activate micro    -> ActivateMicro
//	w2g               -> W2g
//	icon_2x           -> Icon_2x
//
// The mapping is not injective; [Collisions] reports names that end up with
// the same identifier so callers can refuse to generate ambiguous output.
package naming

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)
)

// Identifier converts an icon name into a PascalCase identifier.
func Identifier(name string) string {
	words := Words(name)
	if len(words) == 0 {
		return "_"
	}

	var b strings.Builder
	for _, w := range words {
		first, rest := w[:1], w[1:]
		if first[0] >= '0' && first[0] <= '9' {
			// A word starting with a digit keeps a separating underscore
			// ("icon_2x" -> "Icon_2x", "2fa" -> "_2fa").
			b.WriteByte('_')
			b.WriteString(first)
		} else {
			b.WriteString(upper.String(first))
		}
		b.WriteString(lower.String(rest))
	}
	return b.String()
}

// Words splits a name into the words Identifier joins. Dashes, spaces and
// underscores separate words, as do lower-to-upper transitions ("addFriend")
// and the end of an acronym ("SVGIcon" -> SVG, Icon). Any other character
// outside [A-Za-z0-9] is dropped without splitting ("c++" -> "c").
func Words(name string) []string {
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case isSeparator(r):
			flush()
			continue
		case !isWordRune(r):
			continue
		}
		if len(cur) > 0 && isBoundary(cur[len(cur)-1], r, next(runes, i)) {
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// Collisions returns, for every identifier produced by more than one name,
// the names that produce it in input order.
func Collisions(names []string) map[string][]string {
	byIdent := make(map[string][]string)
	for _, n := range names {
		id := Identifier(n)
		byIdent[id] = append(byIdent[id], n)
	}
	out := make(map[string][]string)
	for id, ns := range byIdent {
		if len(ns) > 1 {
			out[id] = ns
		}
	}
	return out
}

// SortedKeys returns the identifiers of a collision map in sorted order.
func SortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isSeparator(r rune) bool {
	return r == '-' || r == ' ' || r == '_'
}

func isWordRune(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// next returns the rune after i, or zero at the end of the name.
func next(runes []rune, i int) rune {
	if i+1 < len(runes) {
		return runes[i+1]
	}
	return 0
}

func isBoundary(prev, cur, following rune) bool {
	if unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
		return true
	}
	return unicode.IsUpper(prev) && unicode.IsUpper(cur) && unicode.IsLower(following)
}

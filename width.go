package headlessterm

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"github.com/unilibs/uniwidth"
	"golang.org/x/text/width"
)

// MarkCategory classifies a code point for the writer's cell-placement
// decision: an ordinary combining mark, a mark that forces its base cell to
// full width, a zero-width format control, or none of those.
type MarkCategory uint8

const (
	MarkNone MarkCategory = iota
	MarkNormal
	MarkFullwidth
	MarkFormat
)

// isFullWidth reports whether cp occupies two display columns. uniwidth
// supplies the baseline East-Asian-width table; golang.org/x/text/width
// folds in fullwidth-form presentation variants (e.g. fullwidth Latin) that
// uniwidth's table alone does not always classify as width 2 in every
// release, so either source reporting "wide" is enough.
func isFullWidth(cp rune) bool {
	if uniwidth.RuneWidth(cp) == 2 {
		return true
	}
	switch width.LookupRune(cp).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

// runeWidth returns the uniwidth display width (2, 1, or 0) of cp.
func runeWidth(cp rune) int {
	return uniwidth.RuneWidth(cp)
}

// markCategory classifies cp per §4.1: FORMAT for zero-width format
// controls (stdlib unicode.Cf; no example-pack library exposes that table
// directly, so the standard category is the grounded choice here), MARK or
// MARK_FULLWIDTH for combining marks (derived from uniseg's grapheme
// cluster boundary rules, since that is a pure per-code-point property: cp
// either extends any preceding base into one cluster or it does not),
// MARK_NONE otherwise.
func markCategory(cp rune) MarkCategory {
	if unicode.Is(unicode.Cf, cp) {
		return MarkFormat
	}

	if !extendsGraphemeCluster(cp) {
		return MarkNone
	}
	if isFullWidth(cp) {
		return MarkFullwidth
	}
	return MarkNormal
}

// extendsGraphemeCluster reports whether cp, appended to an arbitrary ASCII
// base, continues that base's grapheme cluster rather than starting a new
// one — the pure per-code-point definition of "is a combining mark" under
// the Unicode text segmentation rules uniseg implements.
func extendsGraphemeCluster(cp rune) bool {
	probe := "a" + string(cp)
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(probe, -1)
	return utf8.RuneCountInString(cluster) > 1
}

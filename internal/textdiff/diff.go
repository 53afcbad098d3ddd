// Package textdiff computes and renders differences between two versions of
// job description text. Alignment is opcode based (equal/insert/delete/replace)
// at line and word granularity, with change statistics computed at character
// granularity over the raw strings.
package textdiff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Mode selects the rendering format.
type Mode string

const (
	// ModeTable renders a side-by-side table with line numbers and two
	// context lines around each change hunk.
	ModeTable Mode = "table"
	// ModeInline renders a complete standalone side-by-side document with
	// three context lines.
	ModeInline Mode = "inline"
	// ModeSimple renders a single merged word-level stream with del/ins spans.
	ModeSimple Mode = "simple"
	// ModeMarkup renders the original and refined texts as two independently
	// marked-up streams.
	ModeMarkup Mode = "markup"
)

// Result bundles the rendered output with change statistics.
// RefinedHTML is populated only for ModeMarkup, where the two texts are
// marked up separately; every other mode produces a single HTML string.
type Result struct {
	HTML        string `json:"html"`
	RefinedHTML string `json:"refined_html,omitempty"`
	Stats       Stats  `json:"stats"`
}

// Compare diffs original against refined and renders the requested mode.
// Empty inputs are valid; an empty side aligns as entirely inserted or deleted.
func Compare(original, refined string, mode Mode) (Result, error) {
	stats := ComputeStats(original, refined)
	switch mode {
	case ModeTable:
		return Result{HTML: renderTable(original, refined, tableContext), Stats: stats}, nil
	case ModeInline:
		return Result{HTML: renderInlinePage(original, refined, inlineContext), Stats: stats}, nil
	case ModeSimple:
		return Result{HTML: renderSimple(original, refined), Stats: stats}, nil
	case ModeMarkup:
		orig, ref := renderMarkup(original, refined)
		return Result{HTML: orig, RefinedHTML: ref, Stats: stats}, nil
	default:
		return Result{}, fmt.Errorf("textdiff: unknown mode %q", mode)
	}
}

// Opcode tags produced by the sequence matcher.
const (
	opEqual   = 'e'
	opReplace = 'r'
	opDelete  = 'd'
	opInsert  = 'i'
)

// runes splits s into one element per rune so the matcher aligns characters
// rather than bytes.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func splitWords(s string) []string {
	return strings.Fields(s)
}

func matcher(a, b []string) *difflib.SequenceMatcher {
	return difflib.NewMatcher(a, b)
}

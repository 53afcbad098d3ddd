package textdiff

import (
	"html"
	"strings"
)

const (
	deletedSpan  = `<span class="diff-deleted" style="background-color: #ffcccc; text-decoration: line-through;">`
	insertedSpan = `<span class="diff-added" style="background-color: #ccffcc;">`
	modifiedOrig = `<span class="diff-modified" style="background-color: #fff3cd;">`
	modifiedRef  = `<span class="diff-modified" style="background-color: #d4edda;">`
	closeSpan    = `</span>`
)

func escape(s string) string {
	return html.EscapeString(s)
}

// renderSimple produces one merged stream from a word-level-only alignment.
// Replaced spans emit delete-then-insert pairs in original to refined order.
func renderSimple(original, refined string) string {
	a := splitWords(original)
	b := splitWords(refined)
	m := matcher(a, b)

	var out []string
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case opEqual:
			out = append(out, escape(strings.Join(a[op.I1:op.I2], " ")))
		case opDelete:
			out = append(out, deletedSpan+escape(strings.Join(a[op.I1:op.I2], " "))+closeSpan)
		case opInsert:
			out = append(out, insertedSpan+escape(strings.Join(b[op.J1:op.J2], " "))+closeSpan)
		case opReplace:
			out = append(out, deletedSpan+escape(strings.Join(a[op.I1:op.I2], " "))+closeSpan)
			out = append(out, insertedSpan+escape(strings.Join(b[op.J1:op.J2], " "))+closeSpan)
		}
	}
	return strings.Join(out, " ")
}

// renderMarkup marks up the original and refined texts independently.
// Alignment runs line by line; replaced line groups undergo a nested
// word-level pass whose output lands in both streams.
func renderMarkup(original, refined string) (string, string) {
	a := splitLines(original)
	b := splitLines(refined)
	m := matcher(a, b)

	var origLines, refLines []string
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case opEqual:
			for _, line := range a[op.I1:op.I2] {
				origLines = append(origLines, escape(line))
			}
			for _, line := range b[op.J1:op.J2] {
				refLines = append(refLines, escape(line))
			}
		case opDelete:
			for _, line := range a[op.I1:op.I2] {
				origLines = append(origLines, deletedSpan+escape(line)+closeSpan)
			}
		case opInsert:
			for _, line := range b[op.J1:op.J2] {
				refLines = append(refLines, insertedSpan+escape(line)+closeSpan)
			}
		case opReplace:
			markedOrig, markedRef := markWords(
				strings.Join(a[op.I1:op.I2], "\n"),
				strings.Join(b[op.J1:op.J2], "\n"),
			)
			origLines = append(origLines, strings.Split(markedOrig, "\n")...)
			refLines = append(refLines, strings.Split(markedRef, "\n")...)
		}
	}
	return strings.Join(origLines, "\n"), strings.Join(refLines, "\n")
}

// markWords performs the nested word-level pass for a replaced region and
// returns the two marked streams.
func markWords(original, refined string) (string, string) {
	a := splitWords(original)
	b := splitWords(refined)
	m := matcher(a, b)

	var orig, ref []string
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case opEqual:
			words := escape(strings.Join(a[op.I1:op.I2], " "))
			orig = append(orig, words)
			ref = append(ref, words)
		case opDelete:
			orig = append(orig, deletedSpan+escape(strings.Join(a[op.I1:op.I2], " "))+closeSpan)
		case opInsert:
			ref = append(ref, insertedSpan+escape(strings.Join(b[op.J1:op.J2], " "))+closeSpan)
		case opReplace:
			orig = append(orig, modifiedOrig+escape(strings.Join(a[op.I1:op.I2], " "))+closeSpan)
			ref = append(ref, modifiedRef+escape(strings.Join(b[op.J1:op.J2], " "))+closeSpan)
		}
	}
	return strings.Join(orig, " "), strings.Join(ref, " ")
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

package textdiff

import (
	"fmt"
	"strings"
)

const (
	tableContext  = 2
	inlineContext = 3
)

// renderTable renders a side-by-side two-column table with line numbers and
// the given number of unchanged context lines around each change hunk.
func renderTable(original, refined string, context int) string {
	a := splitLines(original)
	b := splitLines(refined)
	m := matcher(a, b)

	var sb strings.Builder
	sb.WriteString(`<table class="diff">` + "\n")
	sb.WriteString(`<thead><tr><th></th><th>Original</th><th></th><th>Refined</th></tr></thead>` + "\n")
	sb.WriteString("<tbody>\n")

	groups := m.GetGroupedOpCodes(context)
	for gi, group := range groups {
		if gi > 0 {
			sb.WriteString(`<tr class="diff-skip"><td colspan="4">&hellip;</td></tr>` + "\n")
		}
		for _, op := range group {
			switch op.Tag {
			case opEqual:
				for k := 0; k < op.I2-op.I1; k++ {
					line := escape(a[op.I1+k])
					writeRow(&sb, op.I1+k+1, line, op.J1+k+1, line, "")
				}
			case opDelete:
				for k := op.I1; k < op.I2; k++ {
					writeRow(&sb, k+1, escape(a[k]), 0, "", "diff-deleted")
				}
			case opInsert:
				for k := op.J1; k < op.J2; k++ {
					writeRow(&sb, 0, "", k+1, escape(b[k]), "diff-added")
				}
			case opReplace:
				markedOrig, markedRef := markWords(
					strings.Join(a[op.I1:op.I2], "\n"),
					strings.Join(b[op.J1:op.J2], "\n"),
				)
				origLines := strings.Split(markedOrig, "\n")
				refLines := strings.Split(markedRef, "\n")
				rows := len(origLines)
				if len(refLines) > rows {
					rows = len(refLines)
				}
				for k := 0; k < rows; k++ {
					var leftNum, rightNum int
					var left, right string
					if k < len(origLines) {
						leftNum = op.I1 + k + 1
						left = origLines[k]
					}
					if k < len(refLines) {
						rightNum = op.J1 + k + 1
						right = refLines[k]
					}
					writeRow(&sb, leftNum, left, rightNum, right, "diff-changed")
				}
			}
		}
	}

	sb.WriteString("</tbody>\n</table>")
	return sb.String()
}

func writeRow(sb *strings.Builder, leftNum int, left string, rightNum int, right, class string) {
	attr := ""
	if class != "" {
		attr = fmt.Sprintf(" class=%q", class)
	}
	sb.WriteString(fmt.Sprintf(
		"<tr%s><th>%s</th><td>%s</td><th>%s</th><td>%s</td></tr>\n",
		attr, lineNum(leftNum), left, lineNum(rightNum), right,
	))
}

func lineNum(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

// renderInlinePage wraps the side-by-side table in a complete standalone
// document so it can be viewed without the surrounding application.
func renderInlinePage(original, refined string, context int) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<title>Job Description Diff</title>\n")
	sb.WriteString(pageStyle)
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(renderTable(original, refined, context))
	sb.WriteString("\n</body>\n</html>")
	return sb.String()
}

const pageStyle = `<style>
table.diff { font-family: "Courier New", monospace; border-collapse: collapse; width: 100%; font-size: 14px; }
table.diff thead { background-color: #f5f5f5; font-weight: bold; }
table.diff tbody th { background-color: #f9f9f9; text-align: right; padding: 2px 8px; width: 40px; color: #666; }
table.diff td { padding: 4px 8px; white-space: pre-wrap; word-wrap: break-word; }
table.diff tr.diff-deleted td { background-color: #ffcccc; color: #c00; }
table.diff tr.diff-added td { background-color: #ccffcc; color: #080; }
table.diff tr.diff-changed td { background-color: #fff8e1; }
table.diff tr.diff-skip td { background-color: #e0e0e0; text-align: center; color: #666; }
</style>
`

package textdiff

import (
	"strings"
	"testing"
)

func TestComputeStats_IdenticalTexts(t *testing.T) {
	text := "Senior Go engineer\nBuilds distributed systems"
	stats := ComputeStats(text, text)
	if stats.TotalChanges != 0 {
		t.Fatalf("expected zero changes, got %d", stats.TotalChanges)
	}
	if stats.SimilarityRatio != 100.00 {
		t.Fatalf("expected 100.00 similarity, got %v", stats.SimilarityRatio)
	}
	if stats.OriginalLength != stats.RefinedLength {
		t.Fatalf("length mismatch: %d vs %d", stats.OriginalLength, stats.RefinedLength)
	}
}

func TestComputeStats_Identity(t *testing.T) {
	cases := []struct {
		name               string
		original, refined  string
	}{
		{"insertion", "Build software", "Build great software"},
		{"deletion", "Build great software", "Build software"},
		{"replace", "We need a junior dev", "We need a senior dev"},
		{"empty original", "", "Everything is new"},
		{"empty refined", "Everything is gone", ""},
		{"both empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := ComputeStats(tc.original, tc.refined)
			sum := stats.CharactersAdded + stats.CharactersDeleted + stats.CharactersModified
			if stats.TotalChanges != sum {
				t.Fatalf("total %d != added+deleted+modified %d", stats.TotalChanges, sum)
			}
			if stats.SimilarityRatio < 0 || stats.SimilarityRatio > 100 {
				t.Fatalf("similarity out of range: %v", stats.SimilarityRatio)
			}
		})
	}
}

func TestComputeStats_InsertionExample(t *testing.T) {
	stats := ComputeStats("Build software", "Build great software")
	if stats.CharactersAdded != 6 {
		t.Fatalf("expected 6 characters added, got %d", stats.CharactersAdded)
	}
	if stats.CharactersDeleted != 0 || stats.CharactersModified != 0 {
		t.Fatalf("unexpected deletions/modifications: %+v", stats)
	}
	if stats.SimilarityRatio <= 80 {
		t.Fatalf("expected similarity above 80, got %v", stats.SimilarityRatio)
	}
	if stats.OriginalWords != 2 || stats.RefinedWords != 3 {
		t.Fatalf("unexpected word counts: %d/%d", stats.OriginalWords, stats.RefinedWords)
	}
}

func TestComputeStats_WordCountsIndependentOfDiff(t *testing.T) {
	stats := ComputeStats("one  two\tthree", "four")
	if stats.OriginalWords != 3 {
		t.Fatalf("expected 3 original words, got %d", stats.OriginalWords)
	}
	if stats.RefinedWords != 1 {
		t.Fatalf("expected 1 refined word, got %d", stats.RefinedWords)
	}
}

func TestCompare_UnknownMode(t *testing.T) {
	if _, err := Compare("a", "b", Mode("sideways")); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestCompare_SimpleInsertedSpan(t *testing.T) {
	res, err := Compare("Build software", "Build great software", ModeSimple)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if !strings.Contains(res.HTML, ">great</span>") {
		t.Fatalf("expected inserted span for %q, got %q", "great", res.HTML)
	}
	if !strings.Contains(res.HTML, "diff-added") {
		t.Fatalf("expected diff-added class in %q", res.HTML)
	}
	if strings.Contains(res.HTML, `>Build<`) && strings.Contains(res.HTML, "diff-deleted") {
		t.Fatalf("unchanged words must not be marked: %q", res.HTML)
	}
}

func TestCompare_SimpleReplaceOrder(t *testing.T) {
	res, err := Compare("junior engineer", "senior engineer", ModeSimple)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	del := strings.Index(res.HTML, "diff-deleted")
	ins := strings.Index(res.HTML, "diff-added")
	if del == -1 || ins == -1 {
		t.Fatalf("expected both del and ins spans in %q", res.HTML)
	}
	if del > ins {
		t.Fatalf("delete span must precede insert span: %q", res.HTML)
	}
}

func TestCompare_SimpleEscapesUserText(t *testing.T) {
	res, err := Compare(`<script>alert("x")</script>`, "clean text", ModeSimple)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if strings.Contains(res.HTML, "<script>") {
		t.Fatalf("raw script tag leaked into output: %q", res.HTML)
	}
	if !strings.Contains(res.HTML, "&lt;script&gt;") {
		t.Fatalf("expected escaped script tag in %q", res.HTML)
	}
}

func TestCompare_MarkupSeparatesStreams(t *testing.T) {
	original := "line one\nline two\nline three"
	refined := "line one\nline 2\nline three\nline four"
	res, err := Compare(original, refined, ModeMarkup)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if res.RefinedHTML == "" {
		t.Fatal("markup mode must return a second stream")
	}
	if !strings.Contains(res.RefinedHTML, "line four") {
		t.Fatalf("inserted line missing from refined stream: %q", res.RefinedHTML)
	}
	if strings.Contains(res.HTML, "line four") {
		t.Fatalf("inserted line must not appear in original stream: %q", res.HTML)
	}
	if !strings.Contains(res.HTML, "line one") || !strings.Contains(res.RefinedHTML, "line one") {
		t.Fatal("equal lines must pass through both streams")
	}
	if !strings.Contains(res.HTML, "diff-modified") || !strings.Contains(res.RefinedHTML, "diff-modified") {
		t.Fatal("replaced lines must carry word-level markup in both streams")
	}
}

func TestCompare_MarkupDeletedOnlyInOriginal(t *testing.T) {
	res, err := Compare("keep\ndrop me\nkeep too", "keep\nkeep too", ModeMarkup)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if !strings.Contains(res.HTML, "drop me") {
		t.Fatalf("deleted line missing from original stream: %q", res.HTML)
	}
	if strings.Contains(res.RefinedHTML, "drop me") {
		t.Fatalf("deleted line leaked into refined stream: %q", res.RefinedHTML)
	}
}

func TestCompare_TableHasLineNumbersAndContext(t *testing.T) {
	var orig, ref []string
	for i := 0; i < 12; i++ {
		orig = append(orig, "context line")
		ref = append(ref, "context line")
	}
	orig[6] = "the old wording"
	ref[6] = "the new wording"
	res, err := Compare(strings.Join(orig, "\n"), strings.Join(ref, "\n"), ModeTable)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if !strings.Contains(res.HTML, `<table class="diff">`) {
		t.Fatalf("expected diff table, got %q", res.HTML)
	}
	// Two context lines around the hunk: lines 5-9 visible, line 3 trimmed.
	if !strings.Contains(res.HTML, "<th>5</th>") {
		t.Fatalf("expected context line number 5 in %q", res.HTML)
	}
	if strings.Contains(res.HTML, "<th>3</th>") {
		t.Fatalf("line 3 should be outside the context window: %q", res.HTML)
	}
	if !strings.Contains(res.HTML, "old") || !strings.Contains(res.HTML, "new") {
		t.Fatal("changed words missing from table output")
	}
}

func TestCompare_InlineIsStandaloneDocument(t *testing.T) {
	res, err := Compare("alpha", "beta", ModeInline)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if !strings.HasPrefix(res.HTML, "<!DOCTYPE html>") {
		t.Fatalf("inline mode must render a full document, got %q", res.HTML[:40])
	}
	if !strings.Contains(res.HTML, "</html>") {
		t.Fatal("inline document not closed")
	}
}

func TestCompare_EmptyInputsDoNotPanic(t *testing.T) {
	for _, mode := range []Mode{ModeTable, ModeInline, ModeSimple, ModeMarkup} {
		res, err := Compare("", "all new content", mode)
		if err != nil {
			t.Fatalf("mode %s returned error: %v", mode, err)
		}
		if res.Stats.CharactersAdded == 0 {
			t.Fatalf("mode %s: expected additions for empty original", mode)
		}
		res, err = Compare("all old content", "", mode)
		if err != nil {
			t.Fatalf("mode %s returned error: %v", mode, err)
		}
		if res.Stats.CharactersDeleted == 0 {
			t.Fatalf("mode %s: expected deletions for empty refined", mode)
		}
	}
}

package textdiff

import (
	"math"
	"strings"
)

// Stats quantifies the change between an original and a refined text.
// TotalChanges is always the sum of the added, deleted and modified counts.
type Stats struct {
	OriginalLength     int     `json:"original_length"`
	RefinedLength      int     `json:"refined_length"`
	OriginalWords      int     `json:"original_words"`
	RefinedWords       int     `json:"refined_words"`
	CharactersAdded    int     `json:"characters_added"`
	CharactersDeleted  int     `json:"characters_deleted"`
	CharactersModified int     `json:"characters_modified"`
	TotalChanges       int     `json:"total_changes"`
	SimilarityRatio    float64 `json:"similarity_ratio"`
}

// ComputeStats aligns the two raw strings at character granularity.
// Word counts are independent whitespace token counts, not diff derived.
func ComputeStats(original, refined string) Stats {
	a := runes(original)
	b := runes(refined)
	m := matcher(a, b)

	var added, deleted, modified int
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case opInsert:
			added += op.J2 - op.J1
		case opDelete:
			deleted += op.I2 - op.I1
		case opReplace:
			del := op.I2 - op.I1
			ins := op.J2 - op.J1
			if del > ins {
				modified += del
			} else {
				modified += ins
			}
		}
	}

	return Stats{
		OriginalLength:     len(a),
		RefinedLength:      len(b),
		OriginalWords:      len(strings.Fields(original)),
		RefinedWords:       len(strings.Fields(refined)),
		CharactersAdded:    added,
		CharactersDeleted:  deleted,
		CharactersModified: modified,
		TotalChanges:       added + deleted + modified,
		SimilarityRatio:    math.Round(m.Ratio()*10000) / 100,
	}
}

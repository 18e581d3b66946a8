package printer

import (
	"sort"
	"strings"

	"stylic/internal/source"
)

// Edit replaces the byte range Span with Text. Empty Text deletes the
// range. Rewrites record edits instead of reprinting whole files so that
// untouched code survives byte for byte.
type Edit struct {
	Span source.Span
	Text string
}

// ApplyEdits splices edits into src. Edits nested inside another edit's
// span are dropped: the outer replacement text is printed from the
// already-mutated AST and therefore contains the inner rewrite.
func ApplyEdits(src []byte, edits []Edit) string {
	if len(edits) == 0 {
		return string(src)
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start != sorted[j].Span.Start {
			return sorted[i].Span.Start < sorted[j].Span.Start
		}
		return sorted[i].Span.End > sorted[j].Span.End
	})

	var sb strings.Builder
	sb.Grow(len(src))
	pos := uint32(0)
	for _, e := range sorted {
		if e.Span.Start < pos {
			// Contained in (or overlapping) a previous edit.
			continue
		}
		sb.Write(src[pos:e.Span.Start])
		sb.WriteString(e.Text)
		pos = e.Span.End
	}
	sb.Write(src[pos:])
	return sb.String()
}

package fragment

// Segment identifies a highlightable sub-range of a single fragment.
// Start and End are byte offsets into the fragment's own text, half-open.
// Invariant: Text == fragment.Text[Start:End].
type Segment struct {
	FragmentIndex int
	Start         int
	End           int
	Text          string
}

// MapToSegments translates a match span in the assembled string into the
// per-fragment sub-ranges it covers.
//
// A range overlaps the half-open span [matchStart, matchEnd) when
// range.Start < matchEnd && range.End > matchStart. For each overlapping
// range the intersection is clamped to the range and shifted into
// fragment-local coordinates. Segments come back in ascending fragment
// order. A span that overlaps nothing (including one that covers only an
// inserted separator, or falls outside the assembled text) yields an empty
// slice, never an error.
func MapToSegments(ranges []Range, matchStart, matchEnd int) []Segment {
	segments := []Segment{}
	if matchStart > matchEnd {
		return segments
	}

	for _, r := range ranges {
		if r.Start >= matchEnd {
			// Ranges have non-decreasing starts; nothing further overlaps.
			break
		}
		if r.End <= matchStart {
			continue
		}

		start := max(r.Start, matchStart)
		end := min(r.End, matchEnd)
		localStart := start - r.Start
		localEnd := end - r.Start

		segments = append(segments, Segment{
			FragmentIndex: r.FragmentIndex,
			Start:         localStart,
			End:           localEnd,
			Text:          r.Text[localStart:localEnd],
		})
	}

	return segments
}

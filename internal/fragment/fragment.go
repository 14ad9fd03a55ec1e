// Package fragment assembles positioned text fragments into one searchable
// string and maps match spans back onto the originating fragments.
//
// PDF text extraction yields many small disjoint text items per page. To
// search across them the items are concatenated into a single string with an
// exact, invertible position index, so a match span found in the assembled
// string can be translated back into sub-ranges of individual fragments for
// highlighting. All offsets in this package are byte offsets, half-open.
package fragment

import "strings"

// Fragment is one unit of extracted text in reading order.
type Fragment struct {
	// Text is the raw text content. May be empty.
	Text string
}

// Range locates one fragment's text inside an assembled string.
// Invariant: Assembled.Text[Start:End] == Text.
type Range struct {
	// FragmentIndex is the position of the fragment in the input sequence.
	FragmentIndex int

	// Start and End delimit the fragment's text within the assembled
	// string, half-open.
	Start int
	End   int

	// Text is the fragment's raw text.
	Text string
}

// Assembled is the concatenation of a fragment sequence plus the position
// index needed to map match spans back to individual fragments.
//
// Ranges are in fragment order, non-overlapping, with non-decreasing starts.
// They partition Text except for the single-space separators inserted between
// fragments, which belong to no range.
type Assembled struct {
	Text   string
	Ranges []Range
}

// Assemble concatenates fragments in order into one searchable string.
//
// After each non-empty fragment except the last, exactly one space is
// inserted so patterns using `\s+` can bridge fragment boundaries. The
// separator is attributed to no fragment and is never part of a range. Empty
// fragments produce a zero-length range and contribute no separator of their
// own. Assemble never fails; empty input yields empty text and no ranges.
func Assemble(fragments []Fragment) Assembled {
	var b strings.Builder
	ranges := make([]Range, 0, len(fragments))

	for i, f := range fragments {
		start := b.Len()
		b.WriteString(f.Text)
		ranges = append(ranges, Range{
			FragmentIndex: i,
			Start:         start,
			End:           b.Len(),
			Text:          f.Text,
		})
		if f.Text != "" && i != len(fragments)-1 {
			b.WriteByte(' ')
		}
	}

	return Assembled{Text: b.String(), Ranges: ranges}
}

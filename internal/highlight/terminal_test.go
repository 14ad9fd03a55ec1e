package highlight

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/fragment"
)

func TestHighlight_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	h := NewWithStyles(&buf, NoColorStyles())

	fragments := []fragment.Fragment{
		{Text: "Consolidated Total"},
		{Text: "Assets 2024"},
	}
	segments := []fragment.Segment{
		{FragmentIndex: 0, Start: 13, End: 18, Text: "Total"},
		{FragmentIndex: 1, Start: 0, End: 6, Text: "Assets"},
	}

	require.NoError(t, h.Highlight(fragments, segments))

	assert.Equal(t, "fragment 0: Consolidated Total\nfragment 1: Assets 2024\n", buf.String())
}

func TestHighlight_StyledOutputContainsFragmentText(t *testing.T) {
	var buf bytes.Buffer
	h := NewWithStyles(&buf, DefaultStyles())

	fragments := []fragment.Fragment{{Text: "hello world"}}
	segments := []fragment.Segment{{FragmentIndex: 0, Start: 6, End: 11, Text: "world"}}

	require.NoError(t, h.Highlight(fragments, segments))

	// Styling may add escape sequences but never drops the text itself.
	assert.Contains(t, buf.String(), "hello ")
	assert.Contains(t, buf.String(), "world")
}

func TestHighlight_SkipsOutOfRangeSegments(t *testing.T) {
	var buf bytes.Buffer
	h := NewWithStyles(&buf, NoColorStyles())

	fragments := []fragment.Fragment{{Text: "short"}}
	segments := []fragment.Segment{
		{FragmentIndex: 5, Start: 0, End: 1},
		{FragmentIndex: 0, Start: 0, End: 99},
		{FragmentIndex: 0, Start: -1, End: 2},
	}

	require.NoError(t, h.Highlight(fragments, segments))
	assert.Empty(t, buf.String())
}

func TestHighlight_NoSegments(t *testing.T) {
	var buf bytes.Buffer
	h := New(&buf)

	require.NoError(t, h.Highlight([]fragment.Fragment{{Text: "text"}}, nil))
	assert.Empty(t, buf.String())
}

func TestIsTerminal_FalseForBuffer(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

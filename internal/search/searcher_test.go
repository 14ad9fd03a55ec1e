package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/fragment"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/pattern"
)

func frags(texts ...string) []fragment.Fragment {
	out := make([]fragment.Fragment, len(texts))
	for i, t := range texts {
		out[i] = fragment.Fragment{Text: t}
	}
	return out
}

func TestSearchFragments_AcrossFragmentBoundary(t *testing.T) {
	e := NewEngine()

	// "Total" and "Assets" are separate extraction fragments; the inserted
	// separator lets the pattern bridge them.
	result := e.SearchFragments(frags("Consolidated Total", "Assets 2024"), "total assets", DefaultOptions())

	require.NotNil(t, result)
	assert.Equal(t, "Total Assets", result.Match.Text)

	require.Len(t, result.Segments, 2)
	assert.Equal(t, fragment.Segment{FragmentIndex: 0, Start: 13, End: 18, Text: "Total"}, result.Segments[0])
	assert.Equal(t, fragment.Segment{FragmentIndex: 1, Start: 0, End: 6, Text: "Assets"}, result.Segments[1])
}

func TestSearchFragments_SingleFragment(t *testing.T) {
	e := NewEngine()

	result := e.SearchFragments(frags("the quick brown fox"), "brown", DefaultOptions())

	require.NotNil(t, result)
	require.Len(t, result.Segments, 1)
	seg := result.Segments[0]
	assert.Equal(t, 0, seg.FragmentIndex)
	assert.Equal(t, "brown", seg.Text)
	assert.Equal(t, "brown", "the quick brown fox"[seg.Start:seg.End])
}

func TestSearchFragments_NoMatch(t *testing.T) {
	e := NewEngine()

	assert.Nil(t, e.SearchFragments(frags("hello", "world"), "absent", DefaultOptions()))
	assert.Nil(t, e.SearchFragments(nil, "anything", DefaultOptions()))
	assert.Nil(t, e.SearchFragments(frags("hello"), "", DefaultOptions()))
}

func TestSearchFragments_SegmentsSliceOriginalFragments(t *testing.T) {
	e := NewEngine()
	fs := frags("alpha beta", "gamma", "delta epsilon")

	result := e.SearchFragments(fs, "beta gamma delta", DefaultOptions())

	require.NotNil(t, result)
	require.Len(t, result.Segments, 3)
	for _, s := range result.Segments {
		assert.Equal(t, s.Text, fs[s.FragmentIndex].Text[s.Start:s.End])
	}
}

func TestSearchFragmentsAll_MultipleMatches(t *testing.T) {
	e := NewEngine()

	results := e.SearchFragmentsAll(frags("apple banana", "apple cherry"), "apple", DefaultOptions())

	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Match.Start)
	assert.Equal(t, 0, results[0].Segments[0].FragmentIndex)
	assert.Equal(t, 1, results[1].Segments[0].FragmentIndex)

	// All results share one assembled text
	assert.Equal(t, results[0].Assembled.Text, results[1].Assembled.Text)
}

func TestSearchFragmentsAll_Empty(t *testing.T) {
	e := NewEngine()

	results := e.SearchFragmentsAll(frags("nothing here"), "absent", DefaultOptions())
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchFragments_HyphenatedLineBreak(t *testing.T) {
	e := NewEngine()

	opts := DefaultOptions()
	opts.Mode = pattern.ModeIntraWordHyphen

	// Hyphenated word split across two fragments
	result := e.SearchFragments(frags("the inter-", "national committee"), "international", opts)

	require.NotNil(t, result)
	require.Len(t, result.Segments, 2)
	assert.Equal(t, "inter-", result.Segments[0].Text)
	assert.Equal(t, "national", result.Segments[1].Text)
}

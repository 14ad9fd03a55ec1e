package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with the given args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// writeDoc writes content to a temp file with the given name and returns its
// path. The missing config path alongside it keeps tests independent of any
// real ~/.pdfsearch/config.yaml.
func writeDoc(t *testing.T, name, content string) (docPath, configPath string) {
	t.Helper()

	dir := t.TempDir()
	docPath = filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(docPath, []byte(content), 0o644))
	return docPath, filepath.Join(dir, "config.yaml")
}

func TestSearchCmd_TextOutput(t *testing.T) {
	doc, cfg := writeDoc(t, "doc.txt", "the quick brown fox\n")

	out, err := execute(t, "search", "quick brown", "--file", doc, "--config", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "page 1:")
	assert.Contains(t, out, "the quick brown fox")
	assert.Contains(t, out, "1 match(es)")
}

func TestSearchCmd_NoMatches(t *testing.T) {
	doc, cfg := writeDoc(t, "doc.txt", "nothing relevant here\n")

	out, err := execute(t, "search", "absent", "--file", doc, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "no matches")
}

func TestSearchCmd_JSONAll(t *testing.T) {
	doc, cfg := writeDoc(t, "doc.txt", "apple banana apple\n")

	out, err := execute(t, "search", "apple", "--file", doc, "--config", cfg, "--all", "--format", "json")
	require.NoError(t, err)

	var matches []jsonMatch
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].Page)
	assert.Equal(t, "apple", matches[0].Text)
	assert.Equal(t, 0, matches[0].Start)
	assert.Equal(t, 13, matches[1].Start)
	require.Len(t, matches[0].Segments, 1)
	assert.Equal(t, 0, matches[0].Segments[0].FragmentIndex)
}

func TestSearchCmd_JSONExport(t *testing.T) {
	doc, cfg := writeDoc(t, "doc.json", `[
  {"page": 1, "items": [{"str": "Consolidated Total"}, {"str": "Assets 2024"}]},
  {"page": 2, "items": [{"str": "no match here"}]}
]`)

	out, err := execute(t, "search", "total assets", "--file", doc, "--config", cfg, "--format", "json")
	require.NoError(t, err)

	var matches []jsonMatch
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "Total Assets", matches[0].Text)
	require.Len(t, matches[0].Segments, 2)
	assert.Equal(t, "Total", matches[0].Segments[0].Text)
	assert.Equal(t, "Assets", matches[0].Segments[1].Text)
}

func TestSearchCmd_PageFilter(t *testing.T) {
	doc, cfg := writeDoc(t, "doc.json", `[
  {"page": 1, "items": [{"str": "apple"}]},
  {"page": 2, "items": [{"str": "apple"}]}
]`)

	out, err := execute(t, "search", "apple", "--file", doc, "--config", cfg, "--page", "2", "--format", "json")
	require.NoError(t, err)

	var matches []jsonMatch
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Page)

	_, err = execute(t, "search", "apple", "--file", doc, "--config", cfg, "--page", "99")
	require.Error(t, err)
}

func TestSearchCmd_UnknownMode(t *testing.T) {
	doc, cfg := writeDoc(t, "doc.txt", "text\n")

	_, err := execute(t, "search", "text", "--file", doc, "--config", cfg, "--mode", "telepathic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestSearchCmd_MissingFileFlag(t *testing.T) {
	_, err := execute(t, "search", "query")
	require.Error(t, err)
}

func TestSearchCmd_MissingDocument(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "search", "query",
		"--file", filepath.Join(dir, "absent.json"),
		"--config", filepath.Join(dir, "config.yaml"))
	require.Error(t, err)
}

func TestSearchCmd_CaseSensitive(t *testing.T) {
	doc, cfg := writeDoc(t, "doc.txt", "Total Assets\n")

	out, err := execute(t, "search", "total", "--file", doc, "--config", cfg, "--case-sensitive")
	require.NoError(t, err)
	assert.Contains(t, out, "no matches")
}

func TestSearchCmd_MaxResultsFromConfig(t *testing.T) {
	doc, cfg := writeDoc(t, "doc.txt", "apple apple apple apple\n")
	require.NoError(t, os.WriteFile(cfg, []byte("search:\n  whole_word: true\n  max_results: 2\n"), 0o644))

	out, err := execute(t, "search", "apple", "--file", doc, "--config", cfg, "--all", "--format", "json")
	require.NoError(t, err)

	var matches []jsonMatch
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	assert.Len(t, matches, 2)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pdfsearch")

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
}

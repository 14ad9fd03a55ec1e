// Package mcp implements the Model Context Protocol (MCP) server for
// pdfsearch. It exposes tolerant text search over a loaded document so AI
// clients can locate and cite exact passages of extracted PDF text.
package mcp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/extract"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/fragment"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/pattern"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/search"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/pkg/version"
)

// Server is the MCP server for pdfsearch. It bridges AI clients with the
// tolerant search engine over one loaded document.
type Server struct {
	mcp    *mcp.Server
	engine *search.Engine
	doc    *extract.Document
	logger *slog.Logger
}

// SearchInput defines the input schema for the search tools.
type SearchInput struct {
	Query         string `json:"query" jsonschema:"the text to find in the document"`
	Mode          string `json:"mode,omitempty" jsonschema:"tolerance mode: whitespace-only, intra-word, intra-word-hyphen, full (default intra-word)"`
	NoWholeWord   bool   `json:"no_whole_word,omitempty" jsonschema:"disable word-boundary matching, needed for non-Latin scripts"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" jsonschema:"match case-sensitively (default insensitive)"`
	Page          int    `json:"page,omitempty" jsonschema:"restrict the search to one page number (1-based)"`
}

// SegmentOutput is one highlightable sub-range of a fragment.
type SegmentOutput struct {
	FragmentIndex int    `json:"fragment_index" jsonschema:"index of the fragment on its page"`
	Start         int    `json:"start" jsonschema:"byte offset of the highlight start within the fragment"`
	End           int    `json:"end" jsonschema:"byte offset of the highlight end within the fragment, exclusive"`
	Text          string `json:"text" jsonschema:"the highlighted text"`
}

// MatchOutput is one match with its per-fragment highlight segments.
type MatchOutput struct {
	Page     int             `json:"page" jsonschema:"1-based page number"`
	Text     string          `json:"text" jsonschema:"the matched text as it appears in the assembled page text"`
	Start    int             `json:"start" jsonschema:"byte offset in the assembled page text"`
	End      int             `json:"end" jsonschema:"byte offset in the assembled page text, exclusive"`
	Segments []SegmentOutput `json:"segments" jsonschema:"fragment sub-ranges covered by the match"`
}

// SearchOutput defines the output schema for the search tools.
type SearchOutput struct {
	Matches []MatchOutput `json:"matches" jsonschema:"matches in page then offset order"`
}

// NewServer creates a new MCP server over the given document.
func NewServer(engine *search.Engine, doc *extract.Document) (*Server, error) {
	if engine == nil {
		return nil, errors.New("search engine is required")
	}
	if doc == nil {
		return nil, errors.New("document is required")
	}

	s := &Server{
		engine: engine,
		doc:    doc,
		logger: slog.Default(),
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "pdfsearch",
			Version: version.Version,
		},
		nil, // capabilities are inferred from registered tools
	)

	s.registerTools()
	return s, nil
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_text",
		Description: "Find the first occurrence of a phrase on each page of the loaded document. Tolerates line breaks, soft hyphens, zero-width characters, and stray OCR characters inside the phrase. Returns exact fragment sub-ranges for highlighting or citation.",
	}, s.mcpSearchHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_all_text",
		Description: "Find every occurrence of a phrase in the loaded document with the same noise tolerance as search_text. Use when counting occurrences or highlighting all of them.",
	}, s.mcpSearchAllHandler)

	s.logger.Info("MCP tools registered", slog.Int("count", 2))
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server starting",
		slog.Int("pages", len(s.doc.Pages)))
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// options converts tool input to search options. Invalid modes are passed
// through: the engine fail-softs them into "no match" and logs the cause.
func (in SearchInput) options() search.Options {
	opts := search.DefaultOptions()
	if in.Mode != "" {
		opts.Mode = pattern.Mode(in.Mode)
	}
	opts.WholeWord = !in.NoWholeWord
	opts.CaseSensitive = in.CaseSensitive
	return opts
}

// pages returns the pages to search, honoring the optional page filter.
func (s *Server) pages(in SearchInput) ([]extract.Page, error) {
	if in.Page == 0 {
		return s.doc.Pages, nil
	}
	p := s.doc.Page(in.Page)
	if p == nil {
		return nil, NewInvalidParamsError("page not found in document")
	}
	return []extract.Page{*p}, nil
}

// mcpSearchHandler handles the search_text tool: first match per page.
func (s *Server) mcpSearchHandler(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	if input.Query == "" {
		return nil, SearchOutput{}, NewInvalidParamsError("query parameter is required")
	}

	pages, err := s.pages(input)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	opts := input.options()
	out := SearchOutput{Matches: []MatchOutput{}}
	for _, page := range pages {
		if result := s.engine.SearchFragments(page.Fragments(), input.Query, opts); result != nil {
			out.Matches = append(out.Matches, toMatchOutput(page.Number, result))
		}
	}

	s.logger.Info("search_text complete",
		slog.String("query", input.Query),
		slog.Int("matches", len(out.Matches)))
	return nil, out, nil
}

// mcpSearchAllHandler handles the search_all_text tool: every match.
func (s *Server) mcpSearchAllHandler(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	if input.Query == "" {
		return nil, SearchOutput{}, NewInvalidParamsError("query parameter is required")
	}

	pages, err := s.pages(input)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	opts := input.options()
	out := SearchOutput{Matches: []MatchOutput{}}
	for _, page := range pages {
		for _, result := range s.engine.SearchFragmentsAll(page.Fragments(), input.Query, opts) {
			out.Matches = append(out.Matches, toMatchOutput(page.Number, result))
		}
	}

	s.logger.Info("search_all_text complete",
		slog.String("query", input.Query),
		slog.Int("matches", len(out.Matches)))
	return nil, out, nil
}

func toMatchOutput(page int, r *search.Result) MatchOutput {
	return MatchOutput{
		Page:     page,
		Text:     r.Match.Text,
		Start:    r.Match.Start,
		End:      r.Match.End,
		Segments: toSegmentOutputs(r.Segments),
	}
}

func toSegmentOutputs(segments []fragment.Segment) []SegmentOutput {
	out := make([]SegmentOutput, len(segments))
	for i, s := range segments {
		out[i] = SegmentOutput{
			FragmentIndex: s.FragmentIndex,
			Start:         s.Start,
			End:           s.End,
			Text:          s.Text,
		}
	}
	return out
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/config"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/extract"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/highlight"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/pattern"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/search"
)

// searchConcurrency caps the number of pages searched in parallel.
const searchConcurrency = 4

// searchOptions holds CLI flags for search.
type searchOptions struct {
	file          string
	mode          string
	noWholeWord   bool
	caseSensitive bool
	all           bool
	page          int
	format        string // "text", "json"
	configPath    string
}

// pageResult pairs a page with its search results, keeping output in page
// order regardless of which goroutine finished first.
type pageResult struct {
	page    extract.Page
	results []*search.Result
}

// jsonSegment mirrors fragment.Segment for CLI JSON output.
type jsonSegment struct {
	FragmentIndex int    `json:"fragment_index"`
	Start         int    `json:"start"`
	End           int    `json:"end"`
	Text          string `json:"text"`
}

// jsonMatch is one match in CLI JSON output.
type jsonMatch struct {
	Page     int           `json:"page"`
	Text     string        `json:"text"`
	Start    int           `json:"start"`
	End      int           `json:"end"`
	Segments []jsonSegment `json:"segments"`
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search a document for a phrase",
		Long: `Search extracted document text for a phrase.

The query is matched tolerantly: whitespace runs, line breaks, soft
hyphens, zero-width characters, and single stray characters inside
words do not break the match. Matched sub-ranges of the original
fragments are highlighted in the output.

Examples:
  pdfsearch search "total assets" --file report.json
  pdfsearch search "internationalization" --file report.json --mode intra-word-hyphen
  pdfsearch search "apple" --file notes.txt --all --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Document to search: text content JSON export or plain text (required)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "Tolerance mode: whitespace-only, intra-word, intra-word-hyphen, full")
	cmd.Flags().BoolVar(&opts.noWholeWord, "no-whole-word", false, "Disable word-boundary matching (needed for non-Latin scripts)")
	cmd.Flags().BoolVar(&opts.caseSensitive, "case-sensitive", false, "Match case-sensitively")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Report every match instead of the first per page")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 0, "Restrict the search to one page (1-based)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.pdfsearch/config.yaml)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, query string, opts searchOptions) error {
	searchOpts, maxResults, err := resolveOptions(opts)
	if err != nil {
		return err
	}

	doc, err := extract.Load(opts.file)
	if err != nil {
		return err
	}

	pages := doc.Pages
	if opts.page != 0 {
		p := doc.Page(opts.page)
		if p == nil {
			return fmt.Errorf("page %d not found in %s", opts.page, opts.file)
		}
		pages = []extract.Page{*p}
	}

	slog.Info("search_started",
		slog.String("query", query),
		slog.String("file", opts.file),
		slog.Int("pages", len(pages)))

	engine := search.NewEngine()
	results, err := searchPages(ctx, engine, pages, query, searchOpts, opts.all, maxResults)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		return printJSON(cmd, results)
	}
	return printText(cmd, results)
}

// resolveOptions layers CLI flags over the config file defaults. The second
// return value is the per-page result cap for --all searches (0 = unlimited).
func resolveOptions(opts searchOptions) (search.Options, int, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return search.Options{}, 0, err
	}

	searchOpts := cfg.SearchOptions()
	if opts.mode != "" {
		m := pattern.Mode(opts.mode)
		if !m.Valid() {
			return search.Options{}, 0, fmt.Errorf("unknown mode %q (use one of: whitespace-only, intra-word, intra-word-hyphen, full)", opts.mode)
		}
		searchOpts.Mode = m
	}
	if opts.noWholeWord {
		searchOpts.WholeWord = false
	}
	if opts.caseSensitive {
		searchOpts.CaseSensitive = true
	}
	return searchOpts, cfg.Search.MaxResults, nil
}

// searchPages runs the query against every page, a few pages at a time.
// Results come back in page order.
func searchPages(ctx context.Context, engine *search.Engine, pages []extract.Page, query string, opts search.Options, all bool, maxResults int) ([]pageResult, error) {
	results := make([]pageResult, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(searchConcurrency)
	for i, page := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frags := page.Fragments()
			var found []*search.Result
			if all {
				found = engine.SearchFragmentsAll(frags, query, opts)
				if maxResults > 0 && len(found) > maxResults {
					found = found[:maxResults]
				}
			} else if r := engine.SearchFragments(frags, query, opts); r != nil {
				found = []*search.Result{r}
			}
			results[i] = pageResult{page: page, results: found}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printText(cmd *cobra.Command, results []pageResult) error {
	out := cmd.OutOrStdout()
	hl := highlight.New(out)

	total := 0
	for _, pr := range results {
		if len(pr.results) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(out, "page %d:\n", pr.page.Number); err != nil {
			return err
		}
		frags := pr.page.Fragments()
		for _, r := range pr.results {
			total++
			if err := hl.Highlight(frags, r.Segments); err != nil {
				return err
			}
		}
	}

	if total == 0 {
		_, err := fmt.Fprintln(out, "no matches")
		return err
	}
	_, err := fmt.Fprintf(out, "%d match(es)\n", total)
	return err
}

func printJSON(cmd *cobra.Command, results []pageResult) error {
	matches := []jsonMatch{}
	for _, pr := range results {
		for _, r := range pr.results {
			m := jsonMatch{
				Page:     pr.page.Number,
				Text:     r.Match.Text,
				Start:    r.Match.Start,
				End:      r.Match.End,
				Segments: []jsonSegment{},
			}
			for _, s := range r.Segments {
				m.Segments = append(m.Segments, jsonSegment{
					FragmentIndex: s.FragmentIndex,
					Start:         s.Start,
					End:           s.End,
					Text:          s.Text,
				})
			}
			matches = append(matches, m)
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(matches)
}

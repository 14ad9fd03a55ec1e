// Package search drives tolerant pattern matching over assembled fragment
// text and maps the resulting spans back to per-fragment segments.
//
// The matching itself is delegated to the standard library's RE2 engine,
// which scans leftmost and never backtracks. That makes even the most
// permissive tolerance mode safe against catastrophic backtracking on long
// queries.
package search

import (
	"log/slog"
	"regexp"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	pserr "github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/errors"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/pattern"
)

// DefaultRegexpCacheSize is the default number of compiled regular
// expressions the engine keeps. Searching a multi-page document runs the
// same query against every page; caching by pattern source avoids
// recompiling per page.
const DefaultRegexpCacheSize = 128

// Match is one pattern occurrence in a searched string.
// Start and End are byte offsets, half-open; Text == searched[Start:End].
type Match struct {
	Text  string
	Start int
	End   int
}

// Engine executes tolerant pattern searches over plain strings and over
// fragment sequences. Pattern compilation stays a pure function; only the
// regexp objects built from the final pattern source are cached.
//
// Engine is safe for concurrent use: the LRU cache is internally locked and
// the remaining fields are read-only after construction.
type Engine struct {
	logger *slog.Logger
	cache  *lru.Cache[string, *regexp.Regexp]
}

// EngineOption configures the search engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used to report pattern compilation failures.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCacheSize sets the compiled-regexp cache capacity.
func WithCacheSize(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			cache, _ := lru.New[string, *regexp.Regexp](n)
			e.cache = cache
		}
	}
}

// NewEngine creates a search engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		cache, _ := lru.New[string, *regexp.Regexp](DefaultRegexpCacheSize)
		e.cache = cache
	}
	return e
}

// compile builds the regexp for query under opts. The pattern source is the
// cache key, so equal (query, options) pairs share one compiled regexp.
func (e *Engine) compile(query string, opts Options) (*regexp.Regexp, error) {
	src, err := pattern.Compile(query, opts.patternOptions())
	if err != nil {
		return nil, err
	}
	if !opts.CaseSensitive {
		src = "(?i)" + src
	}

	if re, ok := e.cache.Get(src); ok {
		return re, nil
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, pserr.New(pserr.ErrCodePatternFailed,
			"pattern did not compile", err).WithDetail("pattern", src)
	}
	e.cache.Add(src, re)
	return re, nil
}

// FindFirst returns the leftmost match of query in text, or nil when the
// query does not occur.
//
// Pattern compilation failures (empty query, unknown mode, regex construction
// errors) are logged and reported as no match. This fail-soft contract is
// deliberate: a malformed query must degrade to "nothing found" for the
// caller, never crash a highlight operation.
func (e *Engine) FindFirst(text, query string, opts Options) *Match {
	re, err := e.compile(query, opts)
	if err != nil {
		e.logCompileFailure(query, err)
		return nil
	}

	loc := re.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	return &Match{Text: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]}
}

// FindAll returns every non-overlapping match of query in text, leftmost
// first. Each scan resumes at the previous match's end, so match starts are
// non-decreasing. The result is empty, never nil; compilation failures
// degrade to an empty result exactly as in FindFirst.
//
// Zero-length matches advance the scan position by one rune. Forward
// progress is a required invariant here, not an optimization: the scan must
// terminate on any input without caller-supplied iteration limits.
func (e *Engine) FindAll(text, query string, opts Options) []*Match {
	matches := []*Match{}

	re, err := e.compile(query, opts)
	if err != nil {
		e.logCompileFailure(query, err)
		return matches
	}

	pos := 0
	for pos <= len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		matches = append(matches, &Match{
			Text:  text[start:end],
			Start: start,
			End:   end,
		})

		if end > start {
			pos = end
			continue
		}
		// Zero-length match: step over one rune.
		_, size := utf8.DecodeRuneInString(text[end:])
		if size == 0 {
			break
		}
		pos = end + size
	}

	return matches
}

func (e *Engine) logCompileFailure(query string, err error) {
	e.logger.Warn("pattern compilation failed, treating as no match",
		slog.String("query", query),
		slog.String("code", pserr.GetCode(err)),
		slog.String("error", err.Error()))
}

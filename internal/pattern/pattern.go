// Package pattern builds tolerant regular expressions from plain text queries.
//
// Text extracted from rendered PDF pages is noisy: phrases wrap across line
// breaks, whitespace doubles up, soft hyphens and zero-width characters hide
// inside words, and OCR occasionally injects a stray character. The patterns
// built here tolerate exactly that bounded set of noise between otherwise
// exact characters. They are not fuzzy in the edit-distance sense: characters
// may not be substituted, dropped, or reordered.
package pattern

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	pserr "github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/errors"
)

// Mode selects the tolerance strategy for a compiled pattern.
type Mode string

const (
	// ModeWhitespaceOnly tolerates flexible whitespace between tokens only.
	// Tokens themselves must match exactly.
	ModeWhitespaceOnly Mode = "whitespace-only"

	// ModeIntraWord additionally tolerates zero or one arbitrary character
	// between adjacent characters of a token. This absorbs zero-width
	// spaces, soft hyphens, and single OCR artifacts inside words.
	ModeIntraWord Mode = "intra-word"

	// ModeIntraWordHyphen extends ModeIntraWord with tolerance for
	// hyphenated line breaks inside tokens ("inter-" + newline +
	// "national").
	ModeIntraWordHyphen Mode = "intra-word-hyphen"

	// ModeFull is the most permissive: intra-word tolerance plus arbitrary
	// characters immediately adjacent to the whitespace between tokens.
	ModeFull Mode = "full"
)

// DefaultMode is used when Options.Mode is left empty.
const DefaultMode = ModeIntraWord

// Valid reports whether m is a recognized mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeWhitespaceOnly, ModeIntraWord, ModeIntraWordHyphen, ModeFull:
		return true
	}
	return false
}

// Options configures pattern compilation. Options carry no state; they are a
// pure input to Compile.
type Options struct {
	// Mode selects the tolerance strategy. Empty means DefaultMode.
	// Unrecognized modes are rejected, not silently ignored.
	Mode Mode

	// WholeWord wraps the pattern in \b word-boundary assertions on both
	// ends. Word boundaries are unreliable for non-ASCII alphabets;
	// callers searching non-Latin scripts should disable this.
	WholeWord bool
}

// DefaultOptions returns the documented defaults: intra-word tolerance with
// whole-word matching. Note that the zero value of Options disables
// whole-word matching; start from DefaultOptions to get the defaults.
func DefaultOptions() Options {
	return Options{Mode: DefaultMode, WholeWord: true}
}

// Inter-character and inter-token joiners per mode.
const (
	// intraWordJoiner matches zero or one arbitrary character between two
	// adjacent real characters of a token.
	intraWordJoiner = `.?`

	// hyphenJoiner additionally tolerates an optional hyphen followed by
	// optional whitespace, covering line-broken hyphenation.
	hyphenJoiner = `(?:-?\s*)?(?:.?)`

	// tokenJoiner bridges tokens across any whitespace run: spaces, tabs,
	// newlines, CRLF.
	tokenJoiner = `\s+`

	// fullTokenJoiner additionally tolerates arbitrary characters hugging
	// the whitespace run on either side.
	fullTokenJoiner = `.?\s*.?`
)

// metachars are the regex metacharacters escaped during compilation. Every
// one of them must be rendered literal; a single leaked metacharacter can
// change the meaning of the whole pattern.
const metachars = `.*+?^${}()|[]\`

// Compile builds a tolerant regex pattern from query.
//
// The query is NFKC-normalized, trimmed, and split on whitespace runs into
// tokens; each token is escaped rune by rune and expanded according to the
// mode. The returned pattern string carries no compiled state and no case
// flag: the caller decides case sensitivity when handing it to a regex
// engine. Compile is a pure function and recompilation is cheap.
//
// Returns a validation error when the query is empty (or becomes empty after
// normalization) or when the mode is unrecognized.
func Compile(query string, opts Options) (string, error) {
	mode := opts.Mode
	if mode == "" {
		mode = DefaultMode
	}
	if !mode.Valid() {
		return "", pserr.New(pserr.ErrCodeInvalidMode,
			"unknown pattern mode: "+string(mode), nil).
			WithSuggestion("use one of: whitespace-only, intra-word, intra-word-hyphen, full")
	}

	normalized := strings.TrimSpace(norm.NFKC.String(query))
	if normalized == "" {
		return "", pserr.New(pserr.ErrCodeQueryEmpty,
			"query is empty after normalization", nil)
	}

	tokens := strings.Fields(normalized)
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, compileToken(tok, mode))
	}

	joiner := tokenJoiner
	if mode == ModeFull {
		joiner = fullTokenJoiner
	}
	compiled := strings.Join(parts, joiner)

	if opts.WholeWord {
		compiled = `\b` + compiled + `\b`
	}
	return compiled, nil
}

// compileToken expands one whitespace-free token into its per-mode pattern.
// Iteration is by Unicode code point so multi-byte characters are never
// split by an inter-character joiner.
func compileToken(tok string, mode Mode) string {
	if mode == ModeWhitespaceOnly {
		return escapeToken(tok)
	}

	joiner := intraWordJoiner
	if mode == ModeIntraWordHyphen {
		joiner = hyphenJoiner
	}

	var b strings.Builder
	first := true
	for _, r := range tok {
		if !first {
			b.WriteString(joiner)
		}
		writeEscapedRune(&b, r)
		first = false
	}
	return b.String()
}

// escapeToken escapes every regex metacharacter in tok.
func escapeToken(tok string) string {
	var b strings.Builder
	for _, r := range tok {
		writeEscapedRune(&b, r)
	}
	return b.String()
}

func writeEscapedRune(b *strings.Builder, r rune) {
	if strings.ContainsRune(metachars, r) {
		b.WriteByte('\\')
	}
	b.WriteRune(r)
}

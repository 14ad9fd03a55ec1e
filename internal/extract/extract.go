// Package extract loads text fragments from PDF text extraction exports.
//
// The expected input is a JSON export of per-page text content in the shape
// produced by PDF.js' getTextContent ("items" with a "str" field each),
// written out by whatever extraction step renders the document. Plain text
// files are also accepted for experimentation, with each line treated as one
// fragment of a single page. This package is pure I/O and decoding; the
// search core never touches files.
package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	pserr "github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/errors"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/fragment"
)

// Item is one positioned text item of a page, PDF.js textContent style.
// Geometry fields of the export are ignored; only the text matters here.
type Item struct {
	Str string `json:"str"`
}

// Page is the extracted text content of one rendered page.
type Page struct {
	// Number is the 1-based page number.
	Number int `json:"page"`

	// Items are the page's text items in reading order.
	Items []Item `json:"items"`
}

// Fragments returns the page's items as search fragments.
// Absent text is treated as the empty string.
func (p Page) Fragments() []fragment.Fragment {
	frags := make([]fragment.Fragment, len(p.Items))
	for i, item := range p.Items {
		frags[i] = fragment.Fragment{Text: item.Str}
	}
	return frags
}

// Document is an ordered sequence of extracted pages.
type Document struct {
	Pages []Page
}

// Load reads a document from path. Files ending in ".json" are parsed as a
// PDF.js-style text content export; anything else is read as plain text.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pserr.New(pserr.ErrCodeFileNotFound,
			fmt.Sprintf("cannot open document: %s", path), err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(f)
	}
	return LoadPlainText(f)
}

// LoadJSON decodes a text content export: a JSON array of pages, each with a
// 1-based "page" number and an "items" array of {"str": ...} objects.
// Pages missing a number are numbered by their position in the array.
func LoadJSON(r io.Reader) (*Document, error) {
	var pages []Page
	dec := json.NewDecoder(r)
	if err := dec.Decode(&pages); err != nil {
		return nil, pserr.New(pserr.ErrCodeDocumentCorrupt,
			"document is not a valid text content export", err).
			WithSuggestion("expected a JSON array of {page, items:[{str}]} objects")
	}

	for i := range pages {
		if pages[i].Number == 0 {
			pages[i].Number = i + 1
		}
	}
	return &Document{Pages: pages}, nil
}

// LoadPlainText reads r as a single page whose fragments are the lines of
// the text. Trailing newlines do not produce an empty final fragment.
func LoadPlainText(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pserr.IOError("cannot read document", err)
	}

	text := strings.TrimRight(string(data), "\n")
	items := []Item{}
	if text != "" {
		for _, line := range strings.Split(text, "\n") {
			items = append(items, Item{Str: strings.TrimRight(line, "\r")})
		}
	}

	return &Document{Pages: []Page{{Number: 1, Items: items}}}, nil
}

// Page returns the page with the given 1-based number, or nil.
func (d *Document) Page(number int) *Page {
	for i := range d.Pages {
		if d.Pages[i].Number == number {
			return &d.Pages[i]
		}
	}
	return nil
}

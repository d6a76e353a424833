// Package search provides full-text search within an open document. Page
// text is indexed in memory with bleve; results come back in page order with
// a short context snippet around each match.
package search

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"

	"github.com/codexreader/codex-core/internal/engine"
	"github.com/codexreader/codex-core/internal/errors"
)

// snippetRadius is how many runes of context surround a match.
const snippetRadius = 40

// Result is one match within the document.
type Result struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`        // snippet with surrounding context
	MatchIndex int    `json:"match_index"` // ordinal of the match on its page
}

// DocumentIndex holds the searchable text of one open document. Build once
// after opening; Close releases the index. Queries are safe to run
// concurrently after Build returns.
type DocumentIndex struct {
	logger *slog.Logger

	index     bleve.Index
	pageTexts map[int]string
	built     bool
}

// NewDocumentIndex creates an empty in-memory index.
func NewDocumentIndex(logger *slog.Logger) (*DocumentIndex, error) {
	mapping := bleve.NewIndexMapping()
	index, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "create search index")
	}
	return &DocumentIndex{
		logger:    logger,
		index:     index,
		pageTexts: make(map[int]string),
	}, nil
}

// Build extracts and indexes the text of every page. Indexing a large
// document takes a while; cancel the context to abort (for example when the
// document is closed before indexing finishes).
func (d *DocumentIndex) Build(ctx context.Context, doc engine.Document) error {
	total := doc.PageCount()
	for n := 1; n <= total; n++ {
		select {
		case <-ctx.Done():
			return errors.Canceled("search indexing aborted").WithCause(ctx.Err())
		default:
		}

		page, err := doc.Page(n)
		if err != nil {
			return errors.Wrapf(err, errors.CodeLoad, "load page %d for indexing", n)
		}
		runs, err := page.TextContent(ctx)
		if err != nil {
			return errors.Wrapf(err, errors.CodeLoad, "extract text from page %d", n)
		}

		var sb strings.Builder
		for i, run := range runs {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(run.Text)
		}
		text := sb.String()
		d.pageTexts[n] = text

		if err := d.index.Index(strconv.Itoa(n), map[string]any{"page": n, "text": text}); err != nil {
			return errors.Wrapf(err, errors.CodeInternal, "index page %d", n)
		}
	}

	d.built = true
	if d.logger != nil {
		d.logger.Debug("built document search index", "pages", total)
	}
	return nil
}

// Query returns every occurrence of term across the document, ordered by
// page number then position. The empty query matches nothing.
func (d *DocumentIndex) Query(ctx context.Context, term string) ([]Result, error) {
	term = strings.TrimSpace(term)
	if term == "" || !d.built {
		return []Result{}, nil
	}

	query := bleve.NewMatchQuery(term)
	query.SetField("text")
	req := bleve.NewSearchRequest(query)
	req.Size = len(d.pageTexts)
	req.SortBy([]string{"page"})

	res, err := d.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "search document")
	}

	results := []Result{}
	for _, hit := range res.Hits {
		page, err := strconv.Atoi(hit.ID)
		if err != nil {
			continue
		}
		results = append(results, occurrences(page, d.pageTexts[page], term)...)
	}
	return results, nil
}

// Close releases the index.
func (d *DocumentIndex) Close() error {
	return d.index.Close()
}

// occurrences finds each case-insensitive occurrence of term on a page and
// cuts a snippet of context around it. Matching runs over the lowercased
// text, so match offsets are byte positions in the folded string and must be
// mapped back before slicing the original: lowercasing is rune for rune but
// can change a rune's byte length.
func occurrences(page int, text, term string) []Result {
	folded := strings.ToLower(text)
	foldedTerm := strings.ToLower(term)
	if foldedTerm == "" {
		return nil
	}

	var out []Result
	offset := 0
	for ordinal := 0; ; ordinal++ {
		i := strings.Index(folded[offset:], foldedTerm)
		if i < 0 {
			break
		}
		at := offset + i
		start, end := unfoldOffsets(text, at, at+len(foldedTerm))
		out = append(out, Result{
			PageNumber: page,
			Text:       snippet(text, start, end),
			MatchIndex: ordinal,
		})
		offset = at + len(foldedTerm)
	}
	return out
}

// unfoldOffsets translates a [start, end) byte range in the lowercased text
// into the corresponding range in the original. Walks both strings in step,
// one rune at a time.
func unfoldOffsets(text string, start, end int) (int, int) {
	origStart, origEnd := len(text), len(text)
	folded := 0
	for orig, r := range text {
		if folded == start {
			origStart = orig
		}
		if folded == end {
			origEnd = orig
			break
		}
		folded += utf8.RuneLen(unicode.ToLower(r))
	}
	return origStart, origEnd
}

// snippet returns the match plus up to snippetRadius runes on each side,
// cut on rune boundaries.
func snippet(text string, start, end int) string {
	lo := min(start, len(text))
	for r := 0; r < snippetRadius && lo > 0; r++ {
		_, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
	}
	hi := min(end, len(text))
	for r := 0; r < snippetRadius && hi < len(text); r++ {
		_, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
	}
	return text[lo:hi]
}

package document

import (
	"context"
	"io"
	"strings"
)

// Line is a single line of page text.
type Line struct {
	// Text is the line content with surrounding whitespace removed.
	Text string

	// Page is the 1-based page number.
	Page int

	// LineNum is the 1-based line number within the page.
	LineNum int
}

// Pager gives access to the text of each page of an open document.
type Pager interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageText returns the text of the 1-based page, lines separated by '\n'.
	PageText(ctx context.Context, page int) (string, error)

	// Close releases the document handle.
	Close() error
}

// Opener opens documents for reading.
type Opener interface {
	Open(ctx context.Context, doc Document) (Pager, error)
}

// Reader streams the lines of a Pager in page order.
// Implementations must be safe for sequential access (not concurrent).
type Reader struct {
	pager       Pager
	onPageError func(page int, err error)

	page       int
	lines      []string
	lineIndex  int
	unreadable int
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithPageErrorHandler calls fn for every page whose text cannot be read.
func WithPageErrorHandler(fn func(page int, err error)) ReaderOption {
	return func(r *Reader) {
		r.onPageError = fn
	}
}

// NewReader creates a line reader over pager.
func NewReader(pager Pager, opts ...ReaderOption) *Reader {
	r := &Reader{pager: pager}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Next returns the next non-blank line.
// Pages whose text cannot be read are treated as empty.
// Returns io.EOF when all pages have been exhausted.
func (r *Reader) Next(ctx context.Context) (*Line, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if r.lineIndex < len(r.lines) {
			text := strings.TrimSpace(r.lines[r.lineIndex])
			r.lineIndex++
			if text == "" {
				continue
			}
			return &Line{Text: text, Page: r.page, LineNum: r.lineIndex}, nil
		}

		if r.page >= r.pager.PageCount() {
			return nil, io.EOF
		}

		r.page++
		r.lineIndex = 0
		text, err := r.pager.PageText(ctx, r.page)
		if err != nil {
			r.unreadable++
			r.lines = nil
			if r.onPageError != nil {
				r.onPageError(r.page, err)
			}
			continue
		}
		r.lines = strings.Split(text, "\n")
	}
}

// Page returns the page most recently read from (0 before the first Next).
func (r *Reader) Page() int {
	return r.page
}

// UnreadablePages returns how many pages yielded no text because of an error.
func (r *Reader) UnreadablePages() int {
	return r.unreadable
}

// Close releases the underlying document.
func (r *Reader) Close() error {
	return r.pager.Close()
}

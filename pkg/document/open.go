package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PageBreak separates pages in plain text documents, as written by pdftotext.
const PageBreak = "\f"

// FileOpener opens documents from the local filesystem. PDFs are decoded
// with pdfcpu; every other extension is read as UTF-8 text.
type FileOpener struct{}

// Open opens doc and returns a Pager over its pages.
func (FileOpener) Open(ctx context.Context, doc Document) (Pager, error) {
	if strings.EqualFold(filepath.Ext(doc.Path), ".pdf") {
		return openPDF(doc.Path)
	}
	return openText(doc.Path)
}

// textPager serves pages of a plain text file.
type textPager struct {
	pages []string
}

func openText(path string) (*textPager, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- documents come from the configured input directory
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, PageBreak)
	if text == "" {
		return &textPager{}, nil
	}
	return &textPager{pages: strings.Split(text, PageBreak)}, nil
}

func (p *textPager) PageCount() int {
	return len(p.pages)
}

func (p *textPager) PageText(_ context.Context, page int) (string, error) {
	if page < 1 || page > len(p.pages) {
		return "", fmt.Errorf("page %d out of range (1-%d)", page, len(p.pages))
	}
	return p.pages[page-1], nil
}

func (p *textPager) Close() error {
	return nil
}

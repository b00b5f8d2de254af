package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// pdfPager serves page text from a PDF parsed by pdfcpu. The file stays
// open until Close.
type pdfPager struct {
	file *os.File
	ctx  *model.Context
}

func openPDF(path string) (*pdfPager, error) {
	disableConfigDir.Do(api.DisableConfigDir)

	f, err := os.Open(path) // #nosec G304 -- documents come from the configured input directory
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w %s: pdfcpu read: %w", ErrOpen, path, err)
	}

	return &pdfPager{file: f, ctx: ctx}, nil
}

func (p *pdfPager) PageCount() int {
	return p.ctx.PageCount
}

// PageText decodes the page content stream and returns its text lines.
// A page that shows text but decodes to unreadable runes returns ErrNoText.
func (p *pdfPager) PageText(_ context.Context, page int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(p.ctx, page)
	if err != nil {
		return "", fmt.Errorf("extracting page %d content: %w", page, err)
	}
	if r == nil {
		return "", nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading page %d content: %w", page, err)
	}

	lines, shown := scanContent(data)
	if shown > 0 && !readable(lines) {
		return "", fmt.Errorf("page %d shows %d strings: %w", page, shown, ErrNoText)
	}
	return strings.Join(lines, "\n"), nil
}

func (p *pdfPager) Close() error {
	return p.file.Close()
}

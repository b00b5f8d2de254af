// Package corpus aggregates extraction results across documents and
// tabulates them into the weekly slot grid.
package corpus

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ccollicutt/slotmap/pkg/document"
	"github.com/ccollicutt/slotmap/pkg/extract"
	"github.com/ccollicutt/slotmap/pkg/schedule"
)

// Extractor produces the records of a single document.
type Extractor interface {
	Extract(ctx context.Context, doc document.Document) (*extract.Result, error)
}

// Corpus is the ordered output of a run: every record of every document,
// and the program names in document order.
type Corpus struct {
	Records  []schedule.Record
	Programs []string
	Stats    extract.Stats
}

// Builder runs an Extractor over a list of documents.
type Builder struct {
	extractor Extractor
	logger    zerolog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for per-document progress.
func WithLogger(l zerolog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = l
	}
}

// NewBuilder creates a Builder.
func NewBuilder(ex Extractor, opts ...BuilderOption) *Builder {
	b := &Builder{
		extractor: ex,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build extracts every document in order. Documents are processed one at
// a time; the first document that cannot be opened aborts the build.
func (b *Builder) Build(ctx context.Context, docs []document.Document) (*Corpus, error) {
	c := &Corpus{
		Programs: make([]string, 0, len(docs)),
	}

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		res, err := b.extractor.Extract(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", doc.Name, err)
		}

		c.Records = append(c.Records, res.Records...)
		c.Programs = append(c.Programs, res.Program)
		c.Stats.Add(res.Stats)

		b.logger.Info().
			Str("program", res.Program).
			Int("records", len(res.Records)).
			Int("parse_failures", res.Stats.ParseFailures).
			Msg("document processed")
	}

	return c, nil
}

// Tabulate counts the corpus records over the canonical grid.
func (c *Corpus) Tabulate() *Grid {
	return Tabulate(c.Records)
}

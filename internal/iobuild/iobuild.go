// Package iobuild runs the alias dictionary build: a producer reads pages,
// a pool of workers extracts wikilinks and disambiguation members, and a
// single collector folds the results into the dictionary.
package iobuild

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/wikialias/pkg/aliasdict"
	"github.com/gnames/wikialias/pkg/config"
	"github.com/gnames/wikialias/pkg/ent/wiki"
	"github.com/gnames/wikialias/pkg/extract"
	"github.com/gnames/wikialias/pkg/idtable"
	"github.com/gnames/wikialias/pkg/lifecycle"
	"github.com/gnames/wikialias/pkg/namespace"
	"golang.org/x/sync/errgroup"
)

// BuilderImpl implements lifecycle.Builder.
type BuilderImpl struct {
	cfg *config.Config

	// quiet disables progress output on STDERR.
	quiet bool
}

// New creates a Builder. The number of workers and the size of the page
// queue come from cfg.
func New(cfg *config.Config) lifecycle.Builder {
	return &BuilderImpl{cfg: cfg}
}

// Build reads all pages of src and returns the alias dictionary. Tables
// must be fully loaded, they are only read by the collector goroutine.
func (b *BuilderImpl) Build(
	ctx context.Context,
	src lifecycle.PageSource,
	pages, redirects idtable.Table,
) (*aliasdict.Dictionary, aliasdict.Stats, error) {
	var stats aliasdict.Stats
	start := time.Now()

	jobs := max(b.cfg.JobsNumber, 1)
	locale := src.Locale()
	ext := extract.New(
		namespace.New(b.cfg.IgnoredNamespaces, locale),
		namespace.DisambiguationMarkers(locale),
	)
	agg := aliasdict.NewAggregator(pages, redirects)

	chIn := make(chan wiki.Page, max(b.cfg.QueueSize, 1))
	chOut := make(chan wiki.Result, jobs)

	g, gctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return extractWorker(gctx, ext, chIn, chOut)
		})
	}

	g.Go(func() error {
		return b.collect(gctx, agg, chOut, start)
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	g.Go(func() error {
		defer close(chIn)
		return src.Pages(gctx, chIn)
	})

	err := g.Wait()
	stats = agg.Stats()
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, stats, CancelledError(stats.Pages, err)
		}
		return nil, stats, err
	}

	if stats.Pages == 0 {
		return nil, stats, NoPagesError(locale)
	}

	slog.Info("Alias dictionary is built",
		"locale", locale,
		"jobs", jobs,
		"pages", stats.Pages,
		"wikilinks", stats.Wikilinks,
		"redirects", stats.Redirects,
		"aimai", stats.Aimai,
		"lookup_misses", stats.LookupMisses,
		"degraded", stats.Degraded,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return agg.Dictionary(), stats, nil
}

// extractWorker processes pages concurrently. The extractor is stateless,
// so all workers share it.
func extractWorker(
	ctx context.Context,
	ext *extract.Extractor,
	chIn <-chan wiki.Page,
	chOut chan<- wiki.Result,
) error {
	for p := range chIn {
		res := wiki.Result{
			ID:         p.ID,
			Title:      p.Title,
			Extraction: ext.Extract(p.Markup),
		}
		if res.Extraction.Degraded {
			slog.Debug("Markup of a page is degraded",
				"id", p.ID, "title", p.Title)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- res:
		}
	}
	return nil
}

// collect is the only goroutine that touches the dictionary.
func (b *BuilderImpl) collect(
	ctx context.Context,
	agg *aliasdict.Aggregator,
	chOut <-chan wiki.Result,
	start time.Time,
) error {
	var count int
	for res := range chOut {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			agg.Fold(res)
		}

		count++
		if !b.quiet && count%100_000 == 0 {
			progressReport(count, start)
		}
	}
	if !b.quiet && count >= 100_000 {
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 80))
	}
	return nil
}

func progressReport(count int, start time.Time) {
	rate := float64(count) / time.Since(start).Seconds()
	str := fmt.Sprintf("Processed %s pages, %s pages/sec",
		humanize.Comma(int64(count)), humanize.Comma(int64(rate)))
	fmt.Fprintf(os.Stderr, "\r%s", strings.Repeat(" ", 80))
	fmt.Fprintf(os.Stderr, "\r%s", str)
}

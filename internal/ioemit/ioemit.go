// Package ioemit writes normalization records for canonical pages of a
// page list, using a previously built alias dictionary.
package ioemit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/wikialias/internal/iofs"
	"github.com/gnames/wikialias/pkg/aliasdict"
	"github.com/gnames/wikialias/pkg/dbfile"
	"github.com/gnames/wikialias/pkg/lifecycle"
)

const (
	// SourcePageSQL is a page table SQL dump.
	SourcePageSQL = "page-sql"

	// SourceDBpediaTTL is a DBpedia page-ids.ttl file.
	SourceDBpediaTTL = "dbpedia-ttl"

	// Stdout is the output name that makes the emitter write to STDOUT.
	Stdout = "-"
)

// EmitterImpl implements lifecycle.Emitter.
type EmitterImpl struct {
	source string
	input  string
	output string
}

// New creates an Emitter reading a page list of the given kind from input
// and writing records to output. Input "-" is STDIN, output "-" or empty
// is STDOUT.
func New(source, input, output string) (lifecycle.Emitter, error) {
	if source != SourcePageSQL && source != SourceDBpediaTTL {
		return nil, SourceError(source, input,
			fmt.Errorf("unknown page list kind %q", source))
	}
	if output == "" {
		output = Stdout
	}
	res := &EmitterImpl{source: source, input: input, output: output}
	return res, nil
}

// Emit writes one record for every page of the list that is neither a
// redirect nor a disambiguation page.
func (e *EmitterImpl) Emit(
	ctx context.Context,
	dict *aliasdict.Dictionary,
) (dbfile.Stats, error) {
	var stats dbfile.Stats
	start := time.Now()

	rc, err := iofs.Open(e.input)
	if err != nil {
		return stats, SourceError(e.source, e.input, err)
	}
	defer rc.Close()

	w, closeOut, err := e.openOutput()
	if err != nil {
		return stats, err
	}

	em := dbfile.NewEmitter(w, dict)
	var count int
	add := func(entry dbfile.Entry) error {
		count++
		if count%100_000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			progressReport(count, start)
		}
		if _, err := em.Add(entry); err != nil {
			return WriteError(e.output, err)
		}
		return nil
	}

	err = e.scan(rc, add)
	if count >= 100_000 {
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 80))
	}
	if err == nil {
		if err = em.Flush(); err != nil {
			err = WriteError(e.output, err)
		}
	}
	if cerr := closeOut(); cerr != nil && err == nil {
		err = WriteError(e.output, cerr)
	}
	stats = em.Stats()
	if err != nil {
		var gnErr *gn.Error
		if errors.As(err, &gnErr) || errors.Is(err, context.Canceled) {
			return stats, err
		}
		return stats, SourceError(e.source, e.input, err)
	}

	slog.Info("Records are emitted",
		"source", e.source,
		"input", e.input,
		"output", e.output,
		"records", stats.Records,
		"with_aliases", stats.WithAliases,
		"skipped", stats.Skipped,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return stats, nil
}

func (e *EmitterImpl) scan(r io.Reader, fn func(dbfile.Entry) error) error {
	if e.source == SourceDBpediaTTL {
		return dbfile.ScanDBpediaTTL(r, fn)
	}
	return dbfile.ScanPageSQL(r, fn)
}

func (e *EmitterImpl) openOutput() (io.Writer, func() error, error) {
	if e.output == Stdout {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(e.output)
	if err != nil {
		return nil, nil, WriteError(e.output, err)
	}
	return f, f.Close, nil
}

func progressReport(count int, start time.Time) {
	rate := float64(count) / time.Since(start).Seconds()
	str := fmt.Sprintf("Checked %s pages, %s pages/sec",
		humanize.Comma(int64(count)), humanize.Comma(int64(rate)))
	fmt.Fprintf(os.Stderr, "\r%s", strings.Repeat(" ", 80))
	fmt.Fprintf(os.Stderr, "\r%s", str)
}

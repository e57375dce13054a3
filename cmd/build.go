/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/wikialias/internal/iobuild"
	"github.com/gnames/wikialias/internal/iodump"
	"github.com/gnames/wikialias/internal/iostore"
	"github.com/gnames/wikialias/internal/iotable"
	"github.com/spf13/cobra"
)

// getBuildCmd returns the build command.
func getBuildCmd() *cobra.Command {
	buildCmd := &cobra.Command{
		Use:   "build PAGES_ARTICLES PAGE_SQL REDIRECT_SQL [DICTIONARY]",
		Short: "Build alias dictionary from Wikipedia dumps",
		Long: `Build an alias dictionary from a Wikipedia pages-articles XML dump
(plain, .bz2 or .gz) and SQL dumps of the page and redirect tables.

This command:
  1. Reads the language of the dump from its first line
  2. Loads page and redirect tables into memory
  3. Extracts wikilinks and disambiguation entries from every page
     with a pool of workers
  4. Saves the dictionary with alias, redirect and aimai mappings

Pages in ignored namespaces (Category:, File:, Template: and others,
including localized names) are skipped.

DICTIONARY is the output file for gob, json and sqlite formats
(default: ./aliases.<format>). It is not used by the postgres format.

Examples:
  wikialias build jawiki-pages-articles.xml.bz2 \
    jawiki-page.sql.gz jawiki-redirect.sql.gz aliases.gob

  wikialias build -j 16 -f sqlite jawiki-pages-articles.xml.bz2 \
    jawiki-page.sql.gz jawiki-redirect.sql.gz aliases.sqlite`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBuild(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	buildCmd.Flags().IntP(
		"jobs", "j", 0,
		"number of extraction workers (default from config)",
	)
	buildCmd.Flags().Int(
		"queue-size", 0,
		"capacity of the page queue (default from config)",
	)
	buildCmd.Flags().StringSlice(
		"ignore-ns", nil,
		"ignored namespace prefixes, replaces the configured list",
	)
	addFormatFlag(buildCmd)

	return buildCmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg.Update(flagOptions(cmd, jobsFlag, queueSizeFlag, ignoreNsFlag, formatFlag))

	dumpPath, pagePath, redirectPath := args[0], args[1], args[2]
	output := "aliases" + iostore.Ext(cfg.Store.Format)
	if len(args) == 4 {
		output = args[3]
	}

	store, err := iostore.New(cfg, output)
	if err != nil {
		return err
	}

	dump, err := iodump.Open(dumpPath, cfg.IgnoredNamespaces)
	if err != nil {
		return err
	}
	gn.Info("Dump language: <em>%s</em>", dump.Locale())

	pages, err := iotable.Load(pagePath)
	if err != nil {
		return err
	}
	redirects, err := iotable.Load(redirectPath)
	if err != nil {
		return err
	}

	gn.Info("Extracting aliases with <em>%d</em> workers", cfg.JobsNumber)
	dict, stats, err := iobuild.New(cfg).Build(ctx, dump, pages, redirects)
	if err != nil {
		return err
	}

	read, skipped := dump.Counts()
	gn.Info(`Processed <em>%s</em> pages (<em>%s</em> skipped)
  wikilinks: %s
  redirects: %s (%s missing from page table)
  disambiguation pages: %s with %s entries
  degraded pages: %s`,
		humanize.Comma(int64(read)), humanize.Comma(int64(skipped)),
		humanize.Comma(int64(stats.Wikilinks)),
		humanize.Comma(int64(stats.Redirects)),
		humanize.Comma(int64(stats.LookupMisses)),
		humanize.Comma(int64(stats.Aimai)),
		humanize.Comma(int64(stats.Members)),
		humanize.Comma(int64(stats.Degraded)),
	)

	if err = store.Save(ctx, dict); err != nil {
		return err
	}

	location := output
	if cfg.Store.Format == "postgres" {
		location = cfg.Database.Database
	}
	gn.Message("Saved <em>%s</em> titles with aliases to <em>%s</em>",
		humanize.Comma(int64(len(dict.Alias))), location)
	return nil
}

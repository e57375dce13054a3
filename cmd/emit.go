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
	"github.com/gnames/wikialias/internal/ioemit"
	"github.com/gnames/wikialias/internal/iostore"
	"github.com/spf13/cobra"
)

// getEmitCmd returns the emit command.
func getEmitCmd() *cobra.Command {
	emitCmd := &cobra.Command{
		Use:   "emit [DICTIONARY]",
		Short: "Emit normalization records for canonical pages",
		Long: `Emit one tab-separated record per canonical page of a page list,
using a dictionary created by the build command.

Redirect and disambiguation pages are skipped. Each record has the page
ID, the page title as its name, the page ID as an attribute and all
aliases of the title.

The page list is either a page table SQL dump (--page-sql) or a DBpedia
page-ids.ttl file (--dbpedia-ttl). Use "-" to read the list from STDIN.

DICTIONARY defaults to ./aliases.<format>. It is not used by the
postgres format.

Examples:
  wikialias emit --page-sql jawiki-page.sql.gz aliases.gob > ja.tsv

  bzcat page-ids_lang=ja.ttl.bz2 | \
    wikialias emit --dbpedia-ttl - -o ja.tsv aliases.gob`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runEmit(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	emitCmd.Flags().String(
		"page-sql", "",
		"page table SQL dump with the list of pages",
	)
	emitCmd.Flags().String(
		"dbpedia-ttl", "",
		"DBpedia page-ids.ttl file with the list of pages",
	)
	emitCmd.Flags().StringP(
		"output", "o", "",
		"output file (default: STDOUT)",
	)
	addFormatFlag(emitCmd)
	emitCmd.MarkFlagsMutuallyExclusive("page-sql", "dbpedia-ttl")
	emitCmd.MarkFlagsOneRequired("page-sql", "dbpedia-ttl")

	return emitCmd
}

func runEmit(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg.Update(flagOptions(cmd, formatFlag))

	source, input := ioemit.SourcePageSQL, ""
	if cmd.Flags().Changed("page-sql") {
		input, _ = cmd.Flags().GetString("page-sql")
	}
	if cmd.Flags().Changed("dbpedia-ttl") {
		source = ioemit.SourceDBpediaTTL
		input, _ = cmd.Flags().GetString("dbpedia-ttl")
	}
	output, _ := cmd.Flags().GetString("output")

	path := "aliases" + iostore.Ext(cfg.Store.Format)
	if len(args) == 1 {
		path = args[0]
	}

	em, err := ioemit.New(source, input, output)
	if err != nil {
		return err
	}

	store, err := iostore.New(cfg, path)
	if err != nil {
		return err
	}
	dict, err := store.Load(ctx)
	if err != nil {
		return err
	}

	stats, err := em.Emit(ctx, dict)
	if err != nil {
		return err
	}

	// Messages go to STDERR, records may go to STDOUT.
	if output != "" && output != ioemit.Stdout {
		gn.Info("Wrote <em>%s</em> records (<em>%s</em> with aliases, %s skipped) to <em>%s</em>",
			humanize.Comma(int64(stats.Records)),
			humanize.Comma(int64(stats.WithAliases)),
			humanize.Comma(int64(stats.Skipped)),
			output,
		)
	}
	return nil
}

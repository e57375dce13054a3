// Package iostore persists alias dictionaries. Every format keeps the
// three mappings of a dictionary, so a loaded dictionary equals the saved
// one regardless of the format.
package iostore

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnuuid"
	wikialias "github.com/gnames/wikialias/pkg"
	"github.com/gnames/wikialias/pkg/aliasdict"
	"github.com/gnames/wikialias/pkg/config"
	"github.com/gnames/wikialias/pkg/lifecycle"
	"github.com/gnames/wikialias/pkg/schema"
)

// New creates a Store for the format set in cfg. File formats keep the
// dictionary at path, postgres uses the database from cfg.
func New(cfg *config.Config, path string) (lifecycle.Store, error) {
	switch cfg.Store.Format {
	case "gob":
		return &GobStore{path: path}, nil
	case "json":
		return &JSONStore{path: path}, nil
	case "sqlite":
		return &SQLiteStore{path: path}, nil
	case "postgres":
		return NewPgStore(cfg), nil
	default:
		return nil, FormatError(cfg.Store.Format)
	}
}

// Ext returns the file extension used for a store format.
func Ext(format string) string {
	switch format {
	case "gob":
		return ".gob"
	case "json":
		return ".json"
	case "sqlite":
		return ".sqlite"
	default:
		return ""
	}
}

// writeFile replaces the file at path with data. The data is written to
// a temporary file first, so a failed save keeps the old dictionary.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// aliasRows returns alias rows ordered by title and alias. TitleID is
// the UUID v5 of the title.
func aliasRows(d *aliasdict.Dictionary) []schema.Alias {
	var res []schema.Alias
	for _, title := range d.Titles() {
		id := gnuuid.New(title).String()
		for _, a := range d.Aliases(title) {
			res = append(res, schema.Alias{TitleID: id, Title: title, Alias: a})
		}
	}
	return res
}

// redirectRows returns one row per redirect title. A redirect without
// titles gets a row with an empty title.
func redirectRows(d *aliasdict.Dictionary) []schema.Redirect {
	var res []schema.Redirect
	for _, id := range aliasdict.IDs(d.Redirect) {
		titles := d.Redirect[id].Sorted()
		if len(titles) == 0 {
			titles = []string{""}
		}
		for _, t := range titles {
			res = append(res, schema.Redirect{PageID: id, Title: t})
		}
	}
	return res
}

// aimaiRows returns one row per member, and a row with an empty member
// for disambiguation pages that list nothing.
func aimaiRows(d *aliasdict.Dictionary) []schema.Aimai {
	var res []schema.Aimai
	for _, id := range aliasdict.IDs(d.Aimai) {
		members := d.Aimai[id].Sorted()
		if len(members) == 0 {
			members = []string{""}
		}
		for _, m := range members {
			res = append(res, schema.Aimai{PageID: id, Member: m})
		}
	}
	return res
}

func metadataRows(d *aliasdict.Dictionary) []schema.Metadata {
	return []schema.Metadata{
		{Key: "version", Value: wikialias.Version},
		{Key: "created_at", Value: time.Now().UTC().Format(time.RFC3339)},
		{Key: "titles", Value: strconv.Itoa(len(d.Alias))},
		{Key: "redirects", Value: strconv.Itoa(len(d.Redirect))},
		{Key: "aimai", Value: strconv.Itoa(len(d.Aimai))},
	}
}

// newProgressBar creates a new progress bar with consistent
// settings.
func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

package iostore

import (
	"context"
	"os"

	"github.com/gnames/gnfmt"
	"github.com/gnames/wikialias/pkg/aliasdict"
)

// GobStore keeps a dictionary in a gob file.
type GobStore struct {
	path string
}

// NewGobStore creates a GobStore for the file at path.
func NewGobStore(path string) *GobStore {
	return &GobStore{path: path}
}

// Save encodes the dictionary and replaces the file.
func (s *GobStore) Save(_ context.Context, d *aliasdict.Dictionary) error {
	return saveEncoded(gnfmt.GNgob{}, s.path, d)
}

// Load decodes the dictionary from the file.
func (s *GobStore) Load(_ context.Context) (*aliasdict.Dictionary, error) {
	return loadEncoded(gnfmt.GNgob{}, s.path)
}

// JSONStore keeps a dictionary in a JSON file with "alias", "redirect"
// and "aimai" fields.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSONStore for the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Save encodes the dictionary and replaces the file.
func (s *JSONStore) Save(_ context.Context, d *aliasdict.Dictionary) error {
	return saveEncoded(gnfmt.GNjson{}, s.path, d)
}

// Load decodes the dictionary from the file.
func (s *JSONStore) Load(_ context.Context) (*aliasdict.Dictionary, error) {
	return loadEncoded(gnfmt.GNjson{}, s.path)
}

func saveEncoded(
	enc gnfmt.Encoder,
	path string,
	d *aliasdict.Dictionary,
) error {
	data, err := enc.Encode(d.Record())
	if err != nil {
		return SaveError(path, err)
	}
	if err = writeFile(path, data); err != nil {
		return SaveError(path, err)
	}
	return nil
}

func loadEncoded(
	enc gnfmt.Encoder,
	path string,
) (*aliasdict.Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, LoadError(path, err)
	}

	var rec aliasdict.Record
	if err = enc.Decode(data, &rec); err != nil {
		return nil, LoadError(path, err)
	}
	return aliasdict.FromRecord(rec), nil
}

// Package seed loads an initial catalogue of users and dishes into an
// empty store.
package seed

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"dishes-api/internal/model"
)

// Catalogue is the document a seed file holds.
type Catalogue struct {
	Users  []model.User `json:"users"`
	Dishes []model.Dish `json:"dishes"`
}

// Loader reads a catalogue from some source.
type Loader interface {
	// Load reads the catalogue stored under path. Paths ending in ".gz"
	// are decompressed.
	Load(ctx context.Context, path string) (*Catalogue, error)
}

// decode parses a catalogue from r, gunzipping it first when the name
// says so.
func decode(r io.Reader, name string) (*Catalogue, error) {
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
	}

	var c Catalogue
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalogue %s: %w", name, err)
	}
	return &c, nil
}

package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/mind-engage/mindengage-guidance/internal/storage"
)

//go:embed data/catalog.json
var embeddedDataset []byte

// ErrUnknownSource is returned for a source name other than embedded, file or sql.
var ErrUnknownSource = errors.New("unknown catalog source")

// Source produces the dataset a Catalog is built from.
type Source interface {
	Load(ctx context.Context) (Dataset, error)
}

// Open loads a dataset from src and builds a validated Catalog.
func Open(ctx context.Context, src Source) (*Catalog, error) {
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return New(ds)
}

// Decode reads a JSON dataset.
func Decode(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("decode catalog: %w", err)
	}
	return ds, nil
}

// Encode writes ds as indented JSON.
func Encode(w io.Writer, ds Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ds)
}

// EmbeddedSource serves the dataset compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Load(context.Context) (Dataset, error) {
	return Decode(bytes.NewReader(embeddedDataset))
}

// Default returns the catalog built from the embedded dataset. It panics if
// the embedded dataset is invalid, which the package tests rule out.
func Default() *Catalog {
	c, err := Open(context.Background(), EmbeddedSource{})
	if err != nil {
		panic(err)
	}
	return c
}

// FileSource reads a JSON dataset from a blob store.
type FileSource struct {
	Store storage.BlobStore
	Key   string
}

func (s FileSource) Load(ctx context.Context) (Dataset, error) {
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}
	rc, err := s.Store.Get(s.Key)
	if err != nil {
		return Dataset{}, fmt.Errorf("open %s: %w", s.Key, err)
	}
	defer rc.Close()
	return Decode(rc)
}

// Export writes the catalog as JSON to the blob store under key.
func Export(store storage.BlobStore, key string, c *Catalog) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c.Dataset()); err != nil {
		return "", err
	}
	return store.Put(key, &buf)
}

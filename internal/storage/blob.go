package storage

import (
	"errors"
	"io"
)

// ErrNotFound is returned by Get for a key that has no blob.
var ErrNotFound = errors.New("blob not found")

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Exists(key string) (bool, error)
}

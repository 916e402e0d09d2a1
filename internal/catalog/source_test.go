package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-guidance/internal/storage"
)

func TestFileSource_ExportThenLoad(t *testing.T) {
	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)

	key, err := Export(store, "catalog.json", Default())
	require.NoError(t, err)

	c, err := Open(context.Background(), FileSource{Store: store, Key: key})
	require.NoError(t, err)
	assert.Equal(t, Default().Dataset(), c.Dataset())
}

func TestFileSource_Missing(t *testing.T) {
	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = Open(context.Background(), FileSource{Store: store, Key: "missing.json"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"quiz":[],"streams":{}}`))
	assert.Error(t, err)
}

func TestOpen_InvalidDataset(t *testing.T) {
	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	_, err = store.Put("bad.json", strings.NewReader(`{"quiz":[],"tracks":[],"colleges":[]}`))
	require.NoError(t, err)

	_, err = Open(context.Background(), FileSource{Store: store, Key: "bad.json"})
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

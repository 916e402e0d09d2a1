package main

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-guidance/internal/catalog"
	"github.com/mind-engage/mindengage-guidance/internal/config"
	"github.com/mind-engage/mindengage-guidance/internal/storage"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.ConfigPathEnvVar, filepath.Join(dir, "none.yaml"))
	t.Setenv("LOG_LEVEL", "disabled")
	t.Setenv("BLOB_BASE_PATH", dir)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file:"+filepath.Join(dir, "guidance.db"))
	t.Setenv("CATALOG_SOURCE", "embedded")
	return dir
}

func TestCatalogExport(t *testing.T) {
	dir := isolateConfig(t)

	out, err := runCLI(t, "catalog", "export", "--key", "exports/catalog.json")
	require.NoError(t, err)
	assert.Contains(t, out, "exports/catalog.json")

	bs, err := storage.NewFSStore(dir)
	require.NoError(t, err)
	c, err := catalog.Open(t.Context(), catalog.FileSource{Store: bs, Key: "exports/catalog.json"})
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Dataset(), c.Dataset())
}

func TestCatalogExport_RefusesOverwrite(t *testing.T) {
	dir := isolateConfig(t)

	bs, err := storage.NewFSStore(dir)
	require.NoError(t, err)
	_, err = bs.Put("catalog.json", bytes.NewBufferString("keep me"))
	require.NoError(t, err)

	_, err = runCLI(t, "catalog", "export")
	require.ErrorIs(t, err, errExportExists)

	rc, err := bs.Get("catalog.json")
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(b))

	_, err = runCLI(t, "catalog", "export", "--force")
	require.NoError(t, err)
	c, err := catalog.Open(t.Context(), catalog.FileSource{Store: bs, Key: "catalog.json"})
	require.NoError(t, err)
	assert.Len(t, c.Colleges(), len(catalog.Default().Colleges()))
}

func TestCatalogSeed(t *testing.T) {
	isolateConfig(t)

	out, err := runCLI(t, "catalog", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog seeded")

	out, err = runCLI(t, "catalog", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "already populated")

	out, err = runCLI(t, "catalog", "seed", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog replaced")
}

func TestRecommendCommand_SQLCatalog(t *testing.T) {
	dir := isolateConfig(t)
	t.Setenv("CATALOG_SOURCE", "sql")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetArgs([]string{"recommend"})
	root.SetIn(bytes.NewBufferString(`{"quiz_responses": {}, "interests": {"tools_interest": 4}}`))
	root.SetOut(&out)
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), `"recommended_stream": "Vocational"`)
	assert.Contains(t, out.String(), `"recommended_subject": "Mechanical Fitting"`)
	assert.FileExists(t, filepath.Join(dir, "guidance.db"))
}

package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/covfold/internal/model"
)

func record(path m.Path, hits int) *m.FileCoverage {
	fc := m.NewFileCoverage(path, false)
	fc.StatementMap.Set(0, m.NewRange(1, 0, 1, 10))
	fc.S.Set(0, hits)

	return fc
}

func TestCoverageStore_RoundTripKeepsDocumentOrder(t *testing.T) {
	store := NewCoverageStore()
	path := m.Path(filepath.Join(t.TempDir(), "coverage.json"))

	written := []*m.FileCoverage{
		record("/src/z.js", 2),
		record("/src/a.js", 1),
	}
	require.NoError(t, store.SaveCoverageMap(path, written))

	loaded, err := store.LoadCoverageMap(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Records come back in document order, not sorted.
	assert.Equal(t, m.Path("/src/z.js"), loaded[0].Path)
	assert.Equal(t, m.Path("/src/a.js"), loaded[1].Path)

	hit, ok := loaded[0].S.Get(0)
	require.True(t, ok)
	assert.Equal(t, 2, hit)
}

func TestCoverageStore_SaveCreatesParentDirectories(t *testing.T) {
	store := NewCoverageStore()
	path := m.Path(filepath.Join(t.TempDir(), "nested", "deep", "coverage.json"))

	require.NoError(t, store.SaveCoverageMap(path, nil))

	loaded, err := store.LoadCoverageMap(path)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestCoverageStore_LoadFillsPathFromDocumentKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coverage.json")

	doc := `{"/src/keyed.js": {"path":"","statementMap":{},"fnMap":{},"branchMap":{},"s":{},"f":{},"b":{}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	store := NewCoverageStore()

	loaded, err := store.LoadCoverageMap(m.Path(path))
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, m.Path("/src/keyed.js"), loaded[0].Path)
}

func TestCoverageStore_LoadRejectsNonObjectDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coverage.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1,2,3]`), 0o644))

	store := NewCoverageStore()

	_, err := store.LoadCoverageMap(m.Path(path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected JSON object")
}

func TestCoverageStore_LoadMissingFile(t *testing.T) {
	store := NewCoverageStore()

	_, err := store.LoadCoverageMap(m.Path(filepath.Join(t.TempDir(), "missing.json")))
	require.Error(t, err)
}

func TestCoverageStore_FindShardFiles(t *testing.T) {
	dir := t.TempDir()

	for _, relative := range []string{
		filepath.Join("shard_1", "coverage.json"),
		filepath.Join("shard_0", "coverage.json"),
		filepath.Join("shard_0", "extra.json"),
	} {
		path := filepath.Join(dir, relative)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	}

	// Files outside the shard layout are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shard_2"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shard_2", "notes.txt"), []byte(``), 0o644))

	store := NewCoverageStore()

	found, err := store.FindShardFiles(m.Path(dir))
	require.NoError(t, err)

	assert.Equal(t, []m.Path{
		m.Path(filepath.Join(dir, "shard_0", "coverage.json")),
		m.Path(filepath.Join(dir, "shard_0", "extra.json")),
		m.Path(filepath.Join(dir, "shard_1", "coverage.json")),
	}, found)
}

func TestCoverageStore_FindShardFilesEmptyDir(t *testing.T) {
	store := NewCoverageStore()

	found, err := store.FindShardFiles(m.Path(t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, found)
}

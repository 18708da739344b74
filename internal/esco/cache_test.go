package esco

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "skills.gob")
	ix := testIndex(
		[]string{"uri/a", "uri/b"},
		[]string{"skill a", "skill b"},
		[][]float32{{1, 0}, {0, 1}},
	)

	require.NoError(t, WriteIndexCache(path, ix))

	loaded, err := ReadIndexCache(path, "stub-model", "v-test")
	require.NoError(t, err)
	assert.Equal(t, ix.URIs, loaded.URIs)
	assert.Equal(t, ix.Labels, loaded.Labels)
	assert.Equal(t, ix.Vectors, loaded.Vectors)
	assert.Equal(t, ix.Dims, loaded.Dims)
}

func TestIndexCacheModelMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.gob")
	ix := testIndex([]string{"uri/a"}, []string{"skill a"}, [][]float32{{1, 0}})
	require.NoError(t, WriteIndexCache(path, ix))

	_, err := ReadIndexCache(path, "other-model", "v-test")
	assert.ErrorIs(t, err, ErrCacheMismatch)
}

func TestIndexCacheVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.gob")
	ix := testIndex([]string{"uri/a"}, []string{"skill a"}, [][]float32{{1, 0}})
	require.NoError(t, WriteIndexCache(path, ix))

	_, err := ReadIndexCache(path, "stub-model", "v-other")
	assert.ErrorIs(t, err, ErrCacheMismatch)
}

func TestIndexCacheMissingFile(t *testing.T) {
	_, err := ReadIndexCache(filepath.Join(t.TempDir(), "absent.gob"), "m", "v")
	assert.True(t, os.IsNotExist(err))
}

func TestIndexCacheCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.gob")
	require.NoError(t, os.WriteFile(path, []byte("not a gob"), 0o644))

	_, err := ReadIndexCache(path, "m", "v")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMismatch)
}

func TestCachePathSanitizesModelName(t *testing.T) {
	path := CachePath("/tmp/cache", "skills", "org/bge-m3:latest", "v1.2.0")
	assert.Equal(t, "/tmp/cache/skills_embeddings_org_bge-m3_latest_v1.2.0.gob", path)
}

package esco

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCacheMismatch is returned when a cache file was written for a different
// embedding model or taxonomy version. Loaders treat it as a cache miss;
// vectors from mismatched embedding spaces must never be compared.
var ErrCacheMismatch = errors.New("esco: embedding cache mismatch")

type cacheFile struct {
	Model   string
	Version string
	Dims    int
	URIs    []string
	Labels  []string
	Vectors [][]float32
}

// WriteIndexCache persists an index atomically (write to temp, rename).
func WriteIndexCache(path string, ix *Index) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".cache-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	err = gob.NewEncoder(tmp).Encode(cacheFile{
		Model:   ix.Model,
		Version: ix.Version,
		Dims:    ix.Dims,
		URIs:    ix.URIs,
		Labels:  ix.Labels,
		Vectors: ix.Vectors,
	})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write embedding cache: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}

// ReadIndexCache loads an index, verifying it was built with the given model
// and taxonomy version. A mismatch returns ErrCacheMismatch, never the stale
// vectors.
func ReadIndexCache(path, model, version string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c cacheFile
	if err := gob.NewDecoder(f).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode embedding cache %s: %w", filepath.Base(path), err)
	}

	if c.Model != model || c.Version != version {
		return nil, fmt.Errorf("%w: cache is (%s, %s), configured (%s, %s)",
			ErrCacheMismatch, c.Model, c.Version, model, version)
	}

	return &Index{
		Model:   c.Model,
		Version: c.Version,
		Dims:    c.Dims,
		URIs:    c.URIs,
		Labels:  c.Labels,
		Vectors: c.Vectors,
	}, nil
}

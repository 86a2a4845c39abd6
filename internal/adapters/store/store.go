// Package store implements the on-disk artifact cache for fetched
// dependencies.
package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

// Store implements ports.ArtifactStore as a directory tree under the
// project's cache directory. The store holds no per-project state; every
// operation takes the project root the caller already knows from its
// manifest. Entries are written atomically so an interrupted fetch never
// leaves a partial artifact behind.
type Store struct {
	fetchGroup singleflight.Group
}

// NewStore creates a new artifact store.
func NewStore() *Store {
	return &Store{}
}

// Path returns the absolute path key resolves to under root's cache.
func (s *Store) Path(root, key string) string {
	return filepath.Join(domain.CachePath(root), filepath.FromSlash(key))
}

// Has reports whether a warm cache entry exists for key.
func (s *Store) Has(root, key string) bool {
	info, err := os.Stat(s.Path(root, key))
	return err == nil && info.Mode().IsRegular()
}

// GetOrFetch returns the entry for key, invoking fetch to fill it on a
// miss. Concurrent calls for the same entry share one fetch; losers of the
// race get the winner's result.
func (s *Store) GetOrFetch(ctx context.Context, root, key string, fetch ports.FetchFunc) (string, error) {
	path, err, _ := s.fetchGroup.Do(s.Path(root, key), func() (any, error) {
		// Re-check inside the flight: an earlier winner may have filled
		// the entry between the caller's decision and this call.
		if s.Has(root, key) {
			return s.Path(root, key), nil
		}
		return s.fill(ctx, root, key, fetch)
	})
	if err != nil {
		return "", err
	}
	return path.(string), nil
}

// Refresh invokes fetch and replaces the entry for key regardless of its
// current state.
func (s *Store) Refresh(ctx context.Context, root, key string, fetch ports.FetchFunc) (string, error) {
	path, err, _ := s.fetchGroup.Do(s.Path(root, key), func() (any, error) {
		return s.fill(ctx, root, key, fetch)
	})
	if err != nil {
		return "", err
	}
	return path.(string), nil
}

// fill runs the fetch and persists its result as the entry for key.
func (s *Store) fill(ctx context.Context, root, key string, fetch ports.FetchFunc) (string, error) {
	data, err := fetch(ctx)
	if err != nil {
		return "", err
	}

	path := s.Path(root, key)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		err = errors.Join(domain.ErrCacheCreateFailed, err)
		return "", zerr.With(err, "key", key)
	}

	if err := atomicWriteFile(path, data); err != nil {
		err = errors.Join(domain.ErrCacheWriteFailed, err)
		return "", zerr.With(err, "key", key)
	}

	return path, nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file
// in the destination directory and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, "artifact-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

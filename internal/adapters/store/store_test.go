package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khyonie/Wisteria/internal/adapters/store"
	"github.com/Khyonie/Wisteria/internal/core/domain"
)

func staticFetch(data string) func(context.Context) ([]byte, error) {
	return func(_ context.Context) ([]byte, error) {
		return []byte(data), nil
	}
}

func TestStore_Path(t *testing.T) {
	t.Parallel()

	s := store.NewStore()
	root := filepath.Join("home", "proj")

	got := s.Path(root, "io.netty/netty-all/4.1.0/netty-all.jar")
	want := filepath.Join(root, ".wisteria", "cache", "io.netty", "netty-all", "4.1.0", "netty-all.jar")
	assert.Equal(t, want, got)
}

func TestStore_GetOrFetch(t *testing.T) {
	t.Parallel()

	s := store.NewStore()
	root := t.TempDir()
	key := "gson/gson.jar"

	var calls atomic.Int32
	fetch := func(_ context.Context) ([]byte, error) {
		calls.Add(1)
		return []byte("jar-bytes"), nil
	}

	require.False(t, s.Has(root, key))

	path, err := s.GetOrFetch(context.Background(), root, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, s.Path(root, key), path)
	assert.True(t, s.Has(root, key))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jar-bytes", string(data))

	// Warm entry: the second call must not fetch again.
	path2, err := s.GetOrFetch(context.Background(), root, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, path, path2)
	assert.Equal(t, int32(1), calls.Load())
}

func TestStore_Refresh(t *testing.T) {
	t.Parallel()

	s := store.NewStore()
	root := t.TempDir()
	key := "hippo/hippo.jar"

	_, err := s.GetOrFetch(context.Background(), root, key, staticFetch("v1"))
	require.NoError(t, err)

	path, err := s.Refresh(context.Background(), root, key, staticFetch("v2"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	// No temp files may survive the replacement.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hippo.jar", entries[0].Name())
}

func TestStore_Refresh_CreatesMissingEntry(t *testing.T) {
	t.Parallel()

	s := store.NewStore()
	root := t.TempDir()

	path, err := s.Refresh(context.Background(), root, "solo/solo.jar", staticFetch("fresh"))
	require.NoError(t, err)
	assert.True(t, s.Has(root, "solo/solo.jar"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}

func TestStore_GetOrFetch_FetchError(t *testing.T) {
	t.Parallel()

	s := store.NewStore()
	root := t.TempDir()

	fetchErr := errors.New("registry unreachable")
	fetch := func(_ context.Context) ([]byte, error) {
		return nil, fetchErr
	}

	_, err := s.GetOrFetch(context.Background(), root, "gson/gson.jar", fetch)
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)

	// A failed fetch must not create anything under the cache.
	_, statErr := os.Stat(domain.CachePath(root))
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_Refresh_WriteFailure(t *testing.T) {
	t.Parallel()

	s := store.NewStore()
	root := t.TempDir()
	key := "gson/gson.jar"

	// A directory squatting on the entry path makes the final rename fail.
	require.NoError(t, os.MkdirAll(s.Path(root, key), domain.DirPerm))

	_, err := s.Refresh(context.Background(), root, key, staticFetch("jar-bytes"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCacheWriteFailed)
}

func TestStore_Has_IgnoresDirectories(t *testing.T) {
	t.Parallel()

	s := store.NewStore()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(s.Path(root, "gson/gson.jar"), domain.DirPerm))
	assert.False(t, s.Has(root, "gson/gson.jar"))
}

func TestStore_ConcurrentFetchesShareOneFlight(t *testing.T) {
	t.Parallel()

	s := store.NewStore()
	root := t.TempDir()
	key := "big/big.jar"

	var calls atomic.Int32
	fetch := func(_ context.Context) ([]byte, error) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		return []byte("shared"), nil
	}

	const workers = 8
	paths := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			paths[i], errs[i] = s.GetOrFetch(context.Background(), root, key, fetch)
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, s.Path(root, key), paths[i])
	}
	assert.Equal(t, int32(1), calls.Load())

	data, err := os.ReadFile(s.Path(root, key))
	require.NoError(t, err)
	assert.Equal(t, "shared", string(data))
}

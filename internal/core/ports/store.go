package ports

import "context"

// FetchFunc produces the artifact bytes for a cache entry. It is invoked
// by the store on a miss or a forced refresh and must return the full
// artifact content.
type FetchFunc func(ctx context.Context) ([]byte, error)

// ArtifactStore defines the interface for the on-disk artifact cache.
//
// The store is stateless; every operation takes the project root and
// derives the cache location from it. Keys are slash-separated paths
// relative to the cache root, as produced by domain.Dependency.CacheKey.
// Writes are atomic; concurrent requests for the same key share a single
// fetch.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Path returns the absolute path of the entry for key, whether or not
	// it exists yet.
	Path(root, key string) string

	// Has reports whether a warm entry exists for key.
	Has(root, key string) bool

	// GetOrFetch returns the path of the entry for key, invoking fetch to
	// fill it on a miss.
	GetOrFetch(ctx context.Context, root, key string, fetch FetchFunc) (string, error)

	// Refresh invokes fetch and replaces the entry for key regardless of
	// its current state.
	Refresh(ctx context.Context, root, key string, fetch FetchFunc) (string, error)
}

// Package remote implements the dependency source for artifacts fetched
// verbatim from a URL.
package remote

import (
	"context"
	"errors"
	"net/http"

	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
	"github.com/Khyonie/Wisteria/internal/httputil"
)

var _ ports.Source = (*Source)(nil)

// Source implements ports.Source for fetchFromUrl declarations. The URL is
// the whole identity: there is no version negotiation, only the cache entry
// named after the dependency.
type Source struct {
	store  ports.ArtifactStore
	client *http.Client
}

// NewSource creates a new URL source backed by the given artifact store.
func NewSource(store ports.ArtifactStore) *Source {
	return &Source{
		store:  store,
		client: httputil.NewDownloadClient(),
	}
}

// Kind returns the variant this source handles.
func (s *Source) Kind() domain.SourceKind {
	return domain.SourceRemoteURL
}

// Resolve returns the cached artifact for the declaration, downloading it
// on a miss or when refresh is set.
func (s *Source) Resolve(ctx context.Context, root string, dep domain.Dependency, refresh bool) (domain.ResolvedDependency, error) {
	fetch := func(ctx context.Context) ([]byte, error) {
		data, err := httputil.GetBytes(ctx, s.client, dep.URL, nil)
		if err != nil {
			err = errors.Join(domain.ErrFetchFailed, err)
			err = zerr.With(err, "dependency", dep.Name)
			return nil, zerr.With(err, "url", dep.URL)
		}
		return data, nil
	}

	var (
		path string
		err  error
	)
	if refresh {
		path, err = s.store.Refresh(ctx, root, dep.CacheKey(), fetch)
	} else {
		path, err = s.store.GetOrFetch(ctx, root, dep.CacheKey(), fetch)
	}
	if err != nil {
		return domain.ResolvedDependency{}, err
	}

	// The URL doubles as the version: there is nothing else to identify
	// the artifact by.
	return domain.ResolvedDependency{Name: dep.Name, Version: dep.URL, Paths: []string{path}}, nil
}

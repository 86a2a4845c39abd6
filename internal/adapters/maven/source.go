// Package maven implements the dependency source for Maven-style
// registries.
package maven

import (
	"context"
	"encoding/xml"
	"errors"
	"net/http"
	"strings"

	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
	"github.com/Khyonie/Wisteria/internal/httputil"
)

var _ ports.Source = (*Source)(nil)

// Source implements ports.Source for fetchFromMaven declarations. Pinned
// versions download directly; unpinned declarations first resolve the
// registry's version list to the latest stable release.
type Source struct {
	store ports.ArtifactStore
	api   *http.Client
	files *http.Client
}

// NewSource creates a new registry source backed by the given artifact
// store.
func NewSource(store ports.ArtifactStore) *Source {
	return &Source{
		store: store,
		api:   httputil.NewAPIClient(),
		files: httputil.NewDownloadClient(),
	}
}

// Kind returns the variant this source handles.
func (s *Source) Kind() domain.SourceKind {
	return domain.SourceRegistryArtifact
}

// mavenMetadata is the subset of maven-metadata.xml the source reads.
type mavenMetadata struct {
	Versions []string `xml:"versioning>versions>version"`
}

// Resolve returns the cached artifact for the declaration, fetching from
// the registry on a miss or when refresh is set. Unpinned declarations
// share one cache entry under the latest marker; only a refresh moves it.
func (s *Source) Resolve(ctx context.Context, root string, dep domain.Dependency, refresh bool) (domain.ResolvedDependency, error) {
	resolved := domain.ResolvedDependency{Name: dep.Name, Version: dep.CacheVersion()}

	fetch := func(ctx context.Context) ([]byte, error) {
		version := dep.Version
		if version == "" {
			latest, err := s.latestVersion(ctx, dep)
			if err != nil {
				return nil, err
			}
			version = latest
			resolved.Version = latest
		}
		return s.download(ctx, dep, version)
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

	resolved.Paths = []string{path}
	return resolved, nil
}

// latestVersion reads the registry's version list and picks the newest
// stable release.
func (s *Source) latestVersion(ctx context.Context, dep domain.Dependency) (string, error) {
	url := s.artifactBase(dep) + "/maven-metadata.xml"

	data, err := httputil.GetBytes(ctx, s.api, url, nil)
	if err != nil {
		if errors.Is(err, httputil.ErrNotFound) {
			return "", coordinateError(dep)
		}
		err = errors.Join(domain.ErrFetchFailed, err)
		return "", zerr.With(err, "url", url)
	}

	var metadata mavenMetadata
	if err := xml.Unmarshal(data, &metadata); err != nil {
		err = zerr.Wrap(err, "failed to parse registry metadata")
		return "", zerr.With(err, "url", url)
	}

	latest, err := domain.LatestStable(metadata.Versions)
	if err != nil {
		return "", zerr.With(err, "dependency", dep.Name)
	}

	return latest, nil
}

// download fetches the artifact bytes for a concrete version.
func (s *Source) download(ctx context.Context, dep domain.Dependency, version string) ([]byte, error) {
	url := s.artifactBase(dep) + "/" + version + "/" + dep.RemoteFileName(version)

	data, err := httputil.GetBytes(ctx, s.files, url, nil)
	if err != nil {
		if errors.Is(err, httputil.ErrNotFound) {
			return nil, zerr.With(coordinateError(dep), "version", version)
		}
		err = errors.Join(domain.ErrFetchFailed, err)
		err = zerr.With(err, "dependency", dep.Name)
		return nil, zerr.With(err, "url", url)
	}

	return data, nil
}

// artifactBase is the registry directory holding the artifact's versions.
func (s *Source) artifactBase(dep domain.Dependency) string {
	groupPath := strings.ReplaceAll(dep.GroupID, ".", "/")
	return strings.TrimSuffix(dep.Registry, "/") + "/" + groupPath + "/" + dep.ArtifactID
}

// coordinateError reports a coordinate the registry does not serve.
func coordinateError(dep domain.Dependency) error {
	err := zerr.With(domain.ErrArtifactNotFound, "registry", dep.Registry)
	return zerr.With(err, "artifact", dep.GroupID+":"+dep.ArtifactID)
}

// Package github implements the dependency source for GitHub release
// assets.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
	"github.com/Khyonie/Wisteria/internal/httputil"
)

var _ ports.Source = (*Source)(nil)

// Source implements ports.Source for fetchFromGithub declarations. Pinned
// tags download the asset directly; unpinned declarations first resolve
// the repository's release list to the newest stable release.
type Source struct {
	store ports.ArtifactStore
	api   *http.Client
	files *http.Client

	apiBase      string
	downloadBase string
	token        string
}

// NewSource creates a new release source backed by the given artifact
// store. A WISTERIA_GITHUB_TOKEN environment variable, when set, is sent
// as a bearer token to lift the API rate limit.
func NewSource(store ports.ArtifactStore) *Source {
	return &Source{
		store:        store,
		api:          httputil.NewAPIClient(),
		files:        httputil.NewDownloadClient(),
		apiBase:      "https://api.github.com",
		downloadBase: "https://github.com",
		token:        os.Getenv("WISTERIA_GITHUB_TOKEN"),
	}
}

// Kind returns the variant this source handles.
func (s *Source) Kind() domain.SourceKind {
	return domain.SourceReleaseAsset
}

// Resolve returns the cached asset for the declaration, fetching from the
// forge on a miss or when refresh is set. Unpinned declarations share one
// cache entry under the latest marker; only a refresh moves it.
func (s *Source) Resolve(ctx context.Context, root string, dep domain.Dependency, refresh bool) (domain.ResolvedDependency, error) {
	resolved := domain.ResolvedDependency{Name: dep.Name, Version: dep.CacheVersion()}

	fetch := func(ctx context.Context) ([]byte, error) {
		tag, url := dep.Tag, s.pinnedAssetURL(dep)
		if tag == "" {
			release, err := s.latestRelease(ctx, dep)
			if err != nil {
				return nil, err
			}
			asset, err := matchAsset(release, dep)
			if err != nil {
				return nil, err
			}
			tag, url = release.TagName, asset.DownloadURL
			resolved.Version = tag
		}
		return s.download(ctx, dep, tag, url)
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

// latestRelease reads the repository's release list and picks the newest
// release that is neither a draft nor a prerelease. The API returns
// releases newest first.
func (s *Source) latestRelease(ctx context.Context, dep domain.Dependency) (releaseResponse, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases", s.apiBase, dep.Owner, dep.Repository)

	data, err := httputil.GetBytes(ctx, s.api, url, s.apiHeaders())
	if err != nil {
		if errors.Is(err, httputil.ErrNotFound) {
			return releaseResponse{}, releaseError(dep)
		}
		err = errors.Join(domain.ErrFetchFailed, err)
		return releaseResponse{}, zerr.With(err, "url", url)
	}

	var releases []releaseResponse
	if err := json.Unmarshal(data, &releases); err != nil {
		err = zerr.Wrap(err, "failed to parse release listing")
		return releaseResponse{}, zerr.With(err, "url", url)
	}

	for _, release := range releases {
		if !release.Draft && !release.Prerelease {
			return release, nil
		}
	}

	return releaseResponse{}, zerr.With(releaseError(dep), "releases", len(releases))
}

// download fetches the asset bytes from a concrete release.
func (s *Source) download(ctx context.Context, dep domain.Dependency, tag, url string) ([]byte, error) {
	data, err := httputil.GetBytes(ctx, s.files, url, nil)
	if err != nil {
		if errors.Is(err, httputil.ErrNotFound) {
			return nil, assetError(dep, tag)
		}
		err = errors.Join(domain.ErrFetchFailed, err)
		err = zerr.With(err, "dependency", dep.Name)
		return nil, zerr.With(err, "url", url)
	}

	return data, nil
}

// pinnedAssetURL is the direct download location for a pinned tag. It
// skips the release API entirely.
func (s *Source) pinnedAssetURL(dep domain.Dependency) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s.jar",
		s.downloadBase, dep.Owner, dep.Repository, dep.Tag, dep.AssetName())
}

func (s *Source) apiHeaders() map[string]string {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if s.token != "" {
		headers["Authorization"] = "Bearer " + s.token
	}
	return headers
}

// matchAsset finds the declared asset in a release by file name.
func matchAsset(release releaseResponse, dep domain.Dependency) (assetResponse, error) {
	want := dep.AssetName() + ".jar"
	for _, asset := range release.Assets {
		if asset.Name == want {
			return asset, nil
		}
	}
	return assetResponse{}, assetError(dep, release.TagName)
}

// releaseError reports a repository with no usable release.
func releaseError(dep domain.Dependency) error {
	return zerr.With(domain.ErrReleaseNotFound, "repository", dep.Owner+"/"+dep.Repository)
}

// assetError reports a release that does not carry the declared asset.
func assetError(dep domain.Dependency, tag string) error {
	err := zerr.With(domain.ErrAssetNotFound, "repository", dep.Owner+"/"+dep.Repository)
	err = zerr.With(err, "tag", tag)
	return zerr.With(err, "asset", dep.AssetName()+".jar")
}

type releaseResponse struct {
	TagName    string          `json:"tag_name"`
	Draft      bool            `json:"draft"`
	Prerelease bool            `json:"prerelease"`
	Assets     []assetResponse `json:"assets"`
}

type assetResponse struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

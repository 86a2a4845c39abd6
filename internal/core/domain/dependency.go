package domain

import (
	"path"
	"strings"
)

// SourceKind identifies a dependency source variant. The set is closed; the
// values are the `type` strings used in the manifest.
type SourceKind string

const (
	// SourceLocalArchive is a local archive file or a directory of archives.
	SourceLocalArchive SourceKind = "loadArchive"
	// SourceRemoteURL is a single artifact fetched verbatim from a URL.
	SourceRemoteURL SourceKind = "fetchFromUrl"
	// SourceRegistryArtifact is an artifact resolved against a Maven-style registry.
	SourceRegistryArtifact SourceKind = "fetchFromMaven"
	// SourceReleaseAsset is an asset attached to a source-forge release.
	SourceReleaseAsset SourceKind = "fetchFromGithub"
)

// UpdatePolicy controls when a warm cache entry for a dependency is
// re-fetched instead of trusted. Cache misses are fetched regardless.
type UpdatePolicy string

const (
	// UpdateAlways re-resolves the dependency on every operation.
	UpdateAlways UpdatePolicy = "Always"
	// UpdateOnSwitchOrUpdate re-fetches on switch and update. The default.
	UpdateOnSwitchOrUpdate UpdatePolicy = "SwitchOrUpdate"
	// UpdateOnlyExplicit re-fetches only on update.
	UpdateOnlyExplicit UpdatePolicy = "UpdateOnly"
	// UpdateNever pins the dependency to whatever is cached.
	UpdateNever UpdatePolicy = "Never"
)

// LatestVersion is the version identity used to key cache entries of
// unpinned dependencies. Forcing an update is the only way to move it.
const LatestVersion = "latest"

// DefaultRegistryURL is the registry used for artifact coordinates that do
// not name one. The trailing slash is part of the base URL.
const DefaultRegistryURL = "https://repo1.maven.org/maven2/"

// Dependency is one declaration from the manifest's [dependencies] table:
// a logical name bound to exactly one source variant. The variant is fixed
// at load; only the fields of the declared kind are populated.
type Dependency struct {
	Name string
	Kind SourceKind

	UpdatePolicy UpdatePolicy
	Javadoc      string

	// LocalArchive fields.
	Path      string
	Recursive bool

	// RemoteURL fields.
	URL string

	// RegistryArtifact fields. Registry is the repository base URL,
	// ArtifactName overrides the remote file name stem.
	Registry     string
	GroupID      string
	ArtifactID   string
	Version      string
	ArtifactName string
	Classifier   string

	// ReleaseAsset fields. Asset defaults to the repository name.
	Owner      string
	Repository string
	Tag        string
	Asset      string
}

// Pinned returns the declared version identity, or empty when the
// declaration floats on the latest stable version.
func (d Dependency) Pinned() string {
	switch d.Kind {
	case SourceRegistryArtifact:
		return d.Version
	case SourceReleaseAsset:
		return d.Tag
	case SourceRemoteURL:
		// The URL itself is the identity; there is no version negotiation.
		return d.URL
	default:
		return ""
	}
}

// CacheVersion returns the version segment used to key this declaration's
// cache entry: the pinned version, or LatestVersion when unpinned.
func (d Dependency) CacheVersion() string {
	switch d.Kind {
	case SourceRegistryArtifact:
		if d.Version != "" {
			return d.Version
		}
		return LatestVersion
	case SourceReleaseAsset:
		if d.Tag != "" {
			return d.Tag
		}
		return LatestVersion
	default:
		return ""
	}
}

// CacheKey returns the slash-separated path of this declaration's cache
// entry relative to the cache root. Local archives are never cached and
// return an empty key.
func (d Dependency) CacheKey() string {
	switch d.Kind {
	case SourceRemoteURL:
		name := sanitizeSegment(d.Name)
		return path.Join(name, name+".jar")
	case SourceRegistryArtifact:
		return path.Join(
			sanitizeSegment(d.GroupID),
			sanitizeSegment(d.ArtifactID),
			sanitizeSegment(d.CacheVersion()),
			d.cacheFileName(),
		)
	case SourceReleaseAsset:
		return path.Join(
			sanitizeSegment(d.Owner),
			sanitizeSegment(d.Repository),
			sanitizeSegment(d.CacheVersion()),
			sanitizeSegment(d.Repository)+".jar",
		)
	default:
		return ""
	}
}

// cacheFileName is the registry artifact's file name in the cache. The
// version lives in the directory, not the file name.
func (d Dependency) cacheFileName() string {
	name := sanitizeSegment(d.ArtifactID)
	if d.Classifier != "" {
		name += "-" + sanitizeSegment(d.Classifier)
	}
	return name + ".jar"
}

// RemoteFileName returns the artifact file name at the registry for a
// concrete version, honoring the artifact_name override.
func (d Dependency) RemoteFileName(version string) string {
	stem := d.ArtifactName
	if stem == "" {
		stem = d.ArtifactID + "-" + version
	}
	if d.Classifier != "" {
		stem += "-" + d.Classifier
	}
	return stem + ".jar"
}

// AssetName returns the release asset name stem, defaulting to the
// repository name.
func (d Dependency) AssetName() string {
	if d.Asset != "" {
		return d.Asset
	}
	return d.Repository
}

// sanitizeSegment makes a manifest-supplied value safe as one path segment.
func sanitizeSegment(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "." || s == ".." {
		return "_"
	}
	return s
}

// ResolvedDependency is the materialized result of resolving one
// declaration: the concrete artifact paths and the version actually
// selected. Invocation-scoped; only the cache persists across runs.
type ResolvedDependency struct {
	Name    string
	Version string
	Paths   []string
}

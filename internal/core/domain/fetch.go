package domain

// FetchMode names the operation on whose behalf dependencies are being
// materialized. The mode and each dependency's update policy together
// decide whether a warm cache entry is trusted or re-fetched.
type FetchMode int

const (
	// FetchBuild materializes dependencies for a build.
	FetchBuild FetchMode = iota
	// FetchSwitch materializes dependencies after a configuration switch.
	FetchSwitch
	// FetchRefresh fills cache misses without disturbing warm entries.
	FetchRefresh
	// FetchUpdate re-resolves dependencies at the user's request.
	FetchUpdate
)

// String returns the mode name used in log output.
func (m FetchMode) String() string {
	switch m {
	case FetchBuild:
		return "build"
	case FetchSwitch:
		return "switch"
	case FetchRefresh:
		return "refresh"
	case FetchUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// ShouldRefresh reports whether a warm cache entry for the dependency must
// be re-fetched under the given mode. A miss is always fetched regardless
// of the answer here.
func (d Dependency) ShouldRefresh(mode FetchMode) bool {
	switch d.UpdatePolicy {
	case UpdateAlways:
		return true
	case UpdateOnlyExplicit:
		return mode == FetchUpdate
	case UpdateNever:
		return false
	default:
		// UpdateOnSwitchOrUpdate, also the fallback for unset policies.
		return mode == FetchSwitch || mode == FetchUpdate
	}
}

// CacheImmutable reports whether the cache entry can never change once
// present. Pinned registry and release artifacts resolve to the same bytes
// forever, so even an update trusts a warm entry.
func (d Dependency) CacheImmutable() bool {
	switch d.Kind {
	case SourceRegistryArtifact:
		return d.Version != ""
	case SourceReleaseAsset:
		return d.Tag != ""
	default:
		return false
	}
}

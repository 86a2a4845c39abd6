package domain

import "errors"

// Sentinels are plain stdlib errors so they survive wrapping: call sites
// attach context with zerr.With or join a cause with errors.Join, and
// callers classify with errors.Is.
var (
	// ErrManifestNotFound is returned when no project manifest exists in the working directory or any parent.
	ErrManifestNotFound = errors.New("could not find project manifest")

	// ErrManifest is returned when the project manifest is malformed or missing required fields.
	ErrManifest = errors.New("invalid project manifest")

	// ErrProjectExists is returned when creating a project over an existing manifest.
	ErrProjectExists = errors.New("project manifest already exists")

	// ErrUnknownConfiguration is returned when a requested configuration is not defined in the manifest.
	ErrUnknownConfiguration = errors.New("unknown configuration")

	// ErrCyclicInheritance is returned when following inherit pointers revisits a configuration.
	ErrCyclicInheritance = errors.New("cyclic configuration inheritance")

	// ErrInvalidConfiguration is returned when a resolved configuration is missing sources or targets at build time.
	ErrInvalidConfiguration = errors.New("configuration is not buildable")

	// ErrUnknownDependency is returned when a configuration references a dependency that is not declared.
	ErrUnknownDependency = errors.New("unknown dependency")

	// ErrPathNotFound is returned when a local dependency path does not exist.
	ErrPathNotFound = errors.New("dependency path does not exist")

	// ErrNoArchives is returned when a local dependency directory holds no archives.
	ErrNoArchives = errors.New("no archives under dependency path")

	// ErrFetchFailed is returned when a network fetch does not produce an artifact.
	ErrFetchFailed = errors.New("failed to fetch dependency")

	// ErrNoStableVersion is returned when every known version of an unpinned dependency is a prerelease.
	ErrNoStableVersion = errors.New("no stable version available")

	// ErrArtifactNotFound is returned when a registry coordinate does not exist.
	ErrArtifactNotFound = errors.New("artifact not found in registry")

	// ErrReleaseNotFound is returned when no matching release exists for a repository.
	ErrReleaseNotFound = errors.New("release not found")

	// ErrAssetNotFound is returned when a release has no matching asset.
	ErrAssetNotFound = errors.New("release asset not found")

	// ErrCompile is returned when the compiler reports errors.
	ErrCompile = errors.New("compilation failed")

	// ErrIncompatibleSource is returned when a source construct requires a newer java release than targeted.
	ErrIncompatibleSource = errors.New("source requires a newer java release")

	// ErrInvalidTarget is returned when a target template references an undefined placeholder.
	ErrInvalidTarget = errors.New("invalid target template")

	// ErrCacheCreateFailed is returned when the artifact cache directory cannot be created.
	ErrCacheCreateFailed = errors.New("failed to create cache directory")

	// ErrCacheWriteFailed is returned when an artifact cannot be written to the cache.
	ErrCacheWriteFailed = errors.New("failed to write cache entry")

	// ErrMetadataWriteFailed is returned when the project metadata file cannot be written.
	ErrMetadataWriteFailed = errors.New("failed to write project metadata")

	// ErrScaffoldFailed is returned when project scaffolding cannot be written.
	ErrScaffoldFailed = errors.New("failed to scaffold project")

	// ErrNatureFailed is returned when a nature generator cannot emit its descriptor files.
	ErrNatureFailed = errors.New("failed to generate nature files")
)

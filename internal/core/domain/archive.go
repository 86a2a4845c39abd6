package domain

// JarManifest models the attributes written to META-INF/MANIFEST.MF.
// An empty MainClass leaves the archive non-executable; ClassPath holds the
// external (non-shaded) dependency paths in declaration order.
type JarManifest struct {
	MainClass string
	ClassPath []string
}

// ArchiveSpec describes the content of one output archive: the compiled
// class tree, files included verbatim, and dependency archives whose
// contents are merged in rather than referenced externally.
type ArchiveSpec struct {
	Manifest JarManifest

	// ClassDir is the root of the compiled class tree.
	ClassDir string

	// IncludeRoot is the directory include paths are relative to.
	IncludeRoot string

	// Includes are files or directories copied into the archive preserving
	// their relative structure.
	Includes []string

	// Shaded are archive paths whose entries are exploded into the output,
	// in declaration order. Their own manifests are dropped.
	Shaded []string
}

// CompileJob describes one compiler invocation.
type CompileJob struct {
	// SourceRoots are the configured source directories.
	SourceRoots []string

	// Files are the source files to compile, in deterministic order.
	Files []string

	// Classpath entries in declaration order, deduplicated by path.
	Classpath []string

	// OutputDir receives the compiled class tree.
	OutputDir string

	// Release is the minimum target java release; zero leaves the
	// compiler's default in place.
	Release int
}

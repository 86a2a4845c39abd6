package domain

import "path/filepath"

const (
	// WisteriaDirName is the name of the internal workspace directory.
	WisteriaDirName = ".wisteria"

	// CacheDirName is the name of the artifact cache directory.
	CacheDirName = "cache"

	// WorkDirName is the name of the transient build work directory.
	WorkDirName = "work"

	// ClassesDirName is the name of the compiled class output directory under work.
	ClassesDirName = "bin"

	// ManifestFileName is the name of the project manifest file.
	ManifestFileName = "project.toml"

	// MetadataFileName is the name of the project metadata file.
	MetadataFileName = "metadata.toml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// CachePath returns the artifact cache directory for a project root.
func CachePath(root string) string {
	return filepath.Join(root, WisteriaDirName, CacheDirName)
}

// WorkPath returns the transient build work directory for a project root.
func WorkPath(root string) string {
	return filepath.Join(root, WisteriaDirName, WorkDirName)
}

// ClassesPath returns the compiled class output directory for a project root.
func ClassesPath(root string) string {
	return filepath.Join(root, WisteriaDirName, WorkDirName, ClassesDirName)
}

// MetadataPath returns the project metadata file path for a project root.
func MetadataPath(root string) string {
	return filepath.Join(root, WisteriaDirName, MetadataFileName)
}

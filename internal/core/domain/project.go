// Package domain contains the core domain models for the project manifest,
// configuration inheritance, and dependency resolution.
package domain

// Project holds the project metadata from the manifest's [project] table.
// It is immutable once loaded; only a manifest edit changes it.
type Project struct {
	Name        string
	Version     string
	Description string
	Natures     []string
}

// Manifest is the fully parsed project description: project metadata, the
// dependency declarations, and the named configurations. It is parsed fresh
// from the manifest file on every invocation.
type Manifest struct {
	Project        Project
	Dependencies   map[string]Dependency
	Configurations map[string]Configuration

	// Root is the directory containing the manifest file.
	Root string
}

// Dependency returns the declaration for a logical dependency name.
func (m *Manifest) Dependency(name string) (Dependency, bool) {
	dep, ok := m.Dependencies[name]
	return dep, ok
}

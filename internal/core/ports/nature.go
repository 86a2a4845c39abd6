package ports

import "github.com/Khyonie/Wisteria/internal/core/domain"

// Nature defines the interface for generating tool-specific project files,
// such as IDE descriptors, from the manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=nature.go -destination=mocks/mock_nature.go -package=mocks
type Nature interface {
	// Name returns the nature identifier as it appears in the manifest.
	Name() string

	// Generate writes the nature's files into the project root, derived
	// from the manifest, the active configuration and the materialized
	// dependencies.
	Generate(m *domain.Manifest, cfg domain.ResolvedConfiguration, deps []domain.ResolvedDependency) error
}

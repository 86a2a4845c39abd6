// Package ports defines the core interfaces for the application.
package ports

import "github.com/Khyonie/Wisteria/internal/core/domain"

// ManifestLoader defines the interface for loading the project manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestLoader interface {
	// Load locates the manifest starting at the given directory and walking
	// toward the filesystem root, then parses and validates it.
	Load(dir string) (*domain.Manifest, error)
}

package ports

import "github.com/Khyonie/Wisteria/internal/core/domain"

// MetadataStore defines the interface for the per-project metadata file.
//
//go:generate go run go.uber.org/mock/mockgen -source=metadata.go -destination=mocks/mock_metadata.go -package=mocks
type MetadataStore interface {
	// Load reads the metadata for the project at root. A missing or
	// unreadable file yields zero metadata, never an error.
	Load(root string) domain.Metadata

	// Save writes the metadata for the project at root atomically.
	Save(root string, md domain.Metadata) error
}

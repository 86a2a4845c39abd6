package ports

import "github.com/Khyonie/Wisteria/internal/core/domain"

// Archiver defines the interface for packaging compiled output into an
// archive. Packaging the same inputs twice yields byte-identical archives.
//
//go:generate go run go.uber.org/mock/mockgen -source=archiver.go -destination=mocks/mock_archiver.go -package=mocks
type Archiver interface {
	// Package writes the archive described by spec to outPath atomically.
	Package(spec domain.ArchiveSpec, outPath string) error
}

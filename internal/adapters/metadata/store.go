// Package metadata persists the small per-project state file kept beside
// the manifest: the selected configuration and recent build history.
package metadata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

var _ ports.MetadataStore = (*Store)(nil)

// Store implements ports.MetadataStore as a TOML file under the project's
// workspace directory.
type Store struct {
	logger ports.Logger
}

// NewStore creates a metadata store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads the metadata for the project at root. Absent state reads as
// zero metadata; a corrupt file is reported once and read the same way, so
// stale state never blocks an invocation.
func (s *Store) Load(root string) domain.Metadata {
	path := domain.MetadataPath(root)

	// #nosec G304 -- path derives from the project root
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn(fmt.Sprintf("failed to read %s, starting from empty metadata", path))
		}
		return domain.Metadata{}
	}

	var dto metadataDTO
	if _, err := toml.Decode(string(raw), &dto); err != nil {
		s.logger.Warn(fmt.Sprintf("failed to parse %s, starting from empty metadata", path))
		return domain.Metadata{}
	}

	return domain.Metadata{
		CurrentConfiguration: dto.CurrentConfiguration,
		LastBuildHash:        dto.LastBuildHash,
		LastBuildUnix:        dto.LastBuildUnix,
		BuildTimesMS:         dto.BuildTimesMS,
	}
}

// Save writes the metadata for the project at root atomically.
func (s *Store) Save(root string, md domain.Metadata) error {
	path := domain.MetadataPath(root)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		err = errors.Join(domain.ErrMetadataWriteFailed, err)
		return zerr.With(err, "path", path)
	}

	data, err := toml.Marshal(metadataDTO{
		CurrentConfiguration: md.CurrentConfiguration,
		LastBuildHash:        md.LastBuildHash,
		LastBuildUnix:        md.LastBuildUnix,
		BuildTimesMS:         md.BuildTimesMS,
	})
	if err != nil {
		err = errors.Join(domain.ErrMetadataWriteFailed, err)
		return zerr.With(err, "path", path)
	}

	if err := atomicWriteFile(path, data); err != nil {
		err = errors.Join(domain.ErrMetadataWriteFailed, err)
		return zerr.With(err, "path", path)
	}

	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file
// in the destination directory and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, "metadata-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// metadataDTO mirrors the metadata file layout.
type metadataDTO struct {
	CurrentConfiguration string  `toml:"current_configuration"`
	LastBuildHash        string  `toml:"last_build_hash"`
	LastBuildUnix        int64   `toml:"last_build_unix"`
	BuildTimesMS         []int64 `toml:"build_times_ms"`
}

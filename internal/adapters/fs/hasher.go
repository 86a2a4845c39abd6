package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes build input digests.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashFiles computes a deterministic digest over the given files' relative
// paths and contents, then mixes in the extra strings verbatim. Files are
// hashed in sorted order regardless of input order, so the digest only
// moves when an input actually changes.
func (h *Hasher) HashFiles(root string, files []string, extra ...string) (string, error) {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)

	hasher := xxhash.New()

	for _, file := range sorted {
		name := file
		if rel, err := filepath.Rel(root, file); err == nil {
			name = filepath.ToSlash(rel)
		}
		_, _ = hasher.WriteString(name)
		_, _ = hasher.Write([]byte{0})

		content, err := h.hashFile(file)
		if err != nil {
			return "", err
		}
		if err := binary.Write(hasher, binary.LittleEndian, content); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}
	_, _ = hasher.Write([]byte{0}) // Section separator

	for _, item := range extra {
		_, _ = hasher.WriteString(item)
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashFile computes the XXHash of a file's content.
func (h *Hasher) hashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

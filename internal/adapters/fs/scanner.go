// Package fs provides file system adapters for collecting and hashing
// build inputs.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

var _ ports.Scanner = (*Scanner)(nil)

// Scanner collects build inputs from the project tree.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// JavaSources walks the given directories beneath root and returns every
// .java file, sorted by path.
func (s *Scanner) JavaSources(root string, dirs []string) ([]string, error) {
	unique := make(map[string]bool)

	for _, dir := range dirs {
		path := resolvePath(root, dir)
		err := walkFiles(path, func(file string) {
			if strings.HasSuffix(file, ".java") {
				unique[file] = true
			}
		})
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to scan source directory"), "path", path)
		}
	}

	return sortedPaths(unique), nil
}

// Collect resolves the given paths beneath root to regular files, walking
// directories recursively. The result is sorted by path.
func (s *Scanner) Collect(root string, paths []string) ([]string, error) {
	unique := make(map[string]bool)

	for _, path := range paths {
		path = resolvePath(root, path)

		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, zerr.With(zerr.New("input not found"), "path", path)
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat input"), "path", path)
		}

		if !info.IsDir() {
			unique[path] = true
			continue
		}

		err = walkFiles(path, func(file string) {
			unique[file] = true
		})
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to collect input directory"), "path", path)
		}
	}

	return sortedPaths(unique), nil
}

// walkFiles visits every regular file under root, skipping version control
// directories and the project's own work tree.
func walkFiles(root string, visit func(file string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name == ".git" || name == ".jj" || name == domain.WisteriaDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			visit(path)
		}
		return nil
	})
}

// resolvePath anchors a manifest-relative path at the project root.
func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func sortedPaths(unique map[string]bool) []string {
	result := make([]string, 0, len(unique))
	for path := range unique {
		result = append(result, path)
	}
	sort.Strings(result)
	return result
}

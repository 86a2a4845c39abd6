// Package local implements the dependency source for archives that are
// already on disk.
package local

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

var _ ports.Source = (*Source)(nil)

// Source implements ports.Source for loadArchive declarations. Nothing is
// cached; the declared path is the artifact.
type Source struct{}

// NewSource creates a new local archive source.
func NewSource() *Source {
	return &Source{}
}

// Kind returns the variant this source handles.
func (s *Source) Kind() domain.SourceKind {
	return domain.SourceLocalArchive
}

// Resolve materializes the declaration. A file path resolves to itself; a
// directory resolves to the .jar files directly inside it, or to the whole
// subtree when the declaration is recursive. A directory that yields no
// archives is an error, so resolution never silently produces an empty
// classpath entry. The refresh flag has no meaning here.
func (s *Source) Resolve(_ context.Context, root string, dep domain.Dependency, _ bool) (domain.ResolvedDependency, error) {
	path := dep.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		err = zerr.With(domain.ErrPathNotFound, "dependency", dep.Name)
		return domain.ResolvedDependency{}, zerr.With(err, "path", path)
	}

	resolved := domain.ResolvedDependency{Name: dep.Name}

	if !info.IsDir() {
		resolved.Paths = []string{path}
		return resolved, nil
	}

	archives, err := collectArchives(path, dep.Recursive)
	if err != nil {
		err = zerr.Wrap(err, "failed to scan archive directory")
		return domain.ResolvedDependency{}, zerr.With(err, "dependency", dep.Name)
	}
	if len(archives) == 0 {
		err := zerr.With(domain.ErrNoArchives, "dependency", dep.Name)
		return domain.ResolvedDependency{}, zerr.With(err, "path", path)
	}

	resolved.Paths = archives
	return resolved, nil
}

// collectArchives gathers the .jar files under dir, one level deep unless
// recursive, sorted for a stable classpath.
func collectArchives(dir string, recursive bool) ([]string, error) {
	var archives []string

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isArchive(d.Name()) {
				archives = append(archives, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !isArchive(entry.Name()) {
				continue
			}
			archives = append(archives, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(archives)
	return archives, nil
}

func isArchive(name string) bool {
	return filepath.Ext(name) == ".jar"
}

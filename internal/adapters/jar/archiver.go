// Package jar assembles Java archives from compiled classes, include files
// and shaded dependencies. Archives are written deterministically so the
// same inputs always produce the same bytes.
package jar

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

const manifestEntry = "META-INF/MANIFEST.MF"

// entryTime is the fixed timestamp stamped on every archive entry.
// Wall-clock timestamps would make otherwise identical builds differ.
var entryTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

var _ ports.Archiver = (*Archiver)(nil)

// Archiver packages build outputs into jar files.
type Archiver struct{}

// NewArchiver creates a jar archiver.
func NewArchiver() *Archiver {
	return &Archiver{}
}

// Package writes the archive described by spec to outPath. The archive is
// staged in a temporary file and moved into place once complete.
func (a *Archiver) Package(spec domain.ArchiveSpec, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create target directory"), "path", outPath)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".archive-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stage archive"), "path", outPath)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if err := a.write(tmp, spec); err != nil {
		_ = tmp.Close()
		return zerr.With(err, "path", outPath)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to flush archive"), "path", outPath)
	}

	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to set archive permissions"), "path", outPath)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to move archive into place"), "path", outPath)
	}

	return nil
}

// write streams the full archive into w. The manifest leads, followed by
// compiled classes and includes in sorted order, then shaded dependencies in
// declaration order. The first writer of an entry name wins.
func (a *Archiver) write(w io.Writer, spec domain.ArchiveSpec) error {
	archive := zip.NewWriter(w)
	written := map[string]bool{manifestEntry: true}

	if err := writeBytes(archive, manifestEntry, renderManifest(spec.Manifest)); err != nil {
		return err
	}

	entries, err := classEntries(spec.ClassDir)
	if err != nil {
		return err
	}
	includes, err := includeEntries(spec.IncludeRoot, spec.Includes)
	if err != nil {
		return err
	}
	for _, entry := range append(entries, includes...) {
		if written[entry.name] {
			continue
		}
		written[entry.name] = true
		if err := writeFile(archive, entry); err != nil {
			return err
		}
	}

	for _, path := range spec.Shaded {
		if err := explode(archive, path, written); err != nil {
			return err
		}
	}

	if err := archive.Close(); err != nil {
		return zerr.Wrap(err, "failed to finalize archive")
	}

	return nil
}

// fileEntry pairs an archive entry name with its backing file on disk.
type fileEntry struct {
	name string
	path string
}

// classEntries lists every file under the class directory, named relative to
// it and sorted for reproducible ordering.
func classEntries(dir string) ([]fileEntry, error) {
	if dir == "" {
		return nil, nil
	}

	entries, err := entriesUnder(dir, dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read class directory"), "path", dir)
	}

	return entries, nil
}

// includeEntries resolves the configured include paths. Files and directory
// contents keep their position relative to root; paths outside it fall back
// to their own name.
func includeEntries(root string, includes []string) ([]fileEntry, error) {
	var entries []fileEntry
	for _, include := range includes {
		path := include
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read include"), "path", include)
		}

		if !info.IsDir() {
			name := relativeName(root, path)
			if name == "" {
				name = filepath.Base(path)
			}
			entries = append(entries, fileEntry{name: name, path: path})
			continue
		}

		base := relativeName(root, path)
		if base == "" {
			base = filepath.Base(path)
		}
		nested, err := entriesUnder(path, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read include"), "path", include)
		}
		for _, entry := range nested {
			entry.name = base + "/" + entry.name
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	return entries, nil
}

// entriesUnder walks dir and returns its regular files named relative to
// base, sorted by name.
func entriesUnder(dir, base string) ([]fileEntry, error) {
	var entries []fileEntry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		name := relativeName(base, path)
		if name == "" {
			name = filepath.Base(path)
		}
		entries = append(entries, fileEntry{name: name, path: path})

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	return entries, nil
}

// relativeName renders path relative to root in slash form, or "" when the
// path does not lie beneath it.
func relativeName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}

	return filepath.ToSlash(rel)
}

// explode copies the contents of a shaded dependency into the archive,
// skipping its manifest and any entry already written.
func explode(archive *zip.Writer, path string, written map[string]bool) error {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open shaded dependency"), "path", path)
	}
	defer func() {
		_ = reader.Close()
	}()

	files := make([]*zip.File, 0, len(reader.File))
	for _, file := range reader.File {
		if file.FileInfo().IsDir() || file.Name == manifestEntry {
			continue
		}
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	for _, file := range files {
		if written[file.Name] {
			continue
		}
		written[file.Name] = true

		content, err := file.Open()
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read shaded dependency"), "path", path)
		}
		entry, err := archive.CreateHeader(newHeader(file.Name))
		if err == nil {
			_, err = io.Copy(entry, content) //nolint:gosec // Shaded jars are declared by the project.
		}
		_ = content.Close()
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to shade dependency"), "path", path)
		}
	}

	return nil
}

func writeBytes(archive *zip.Writer, name string, content []byte) error {
	entry, err := archive.CreateHeader(newHeader(name))
	if err == nil {
		_, err = entry.Write(content)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write archive entry"), "entry", name)
	}

	return nil
}

func writeFile(archive *zip.Writer, e fileEntry) error {
	file, err := os.Open(e.path) //nolint:gosec // Paths come from the build inputs.
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read archive input"), "path", e.path)
	}
	defer func() {
		_ = file.Close()
	}()

	entry, err := archive.CreateHeader(newHeader(e.name))
	if err == nil {
		_, err = io.Copy(entry, file)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write archive entry"), "entry", e.name)
	}

	return nil
}

// newHeader builds a zip header with the fixed timestamp and mode shared by
// every entry.
func newHeader(name string) *zip.FileHeader {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: entryTime,
	}
	header.SetMode(domain.FilePerm)

	return header
}

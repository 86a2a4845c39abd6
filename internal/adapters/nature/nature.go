// Package nature generates environment descriptor files for the project's
// declared natures: Eclipse IDE files and a Maven POM. Generators consume
// the resolved configuration snapshot read-only and replace their files on
// every run.
package nature

import (
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/domain"
)

// Nature identifiers as they appear in the manifest's natures list.
const (
	EclipseName = "eclipse"
	MavenName   = "maven"
)

// settingsDir holds the Eclipse workspace preference files.
const settingsDir = ".settings"

// emit writes one descriptor file under the project root atomically.
func emit(root, name string, data []byte) error {
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		err = errors.Join(domain.ErrNatureFailed, err)
		return zerr.With(err, "file", name)
	}
	if err := atomicWriteFile(path, data); err != nil {
		err = errors.Join(domain.ErrNatureFailed, err)
		return zerr.With(err, "file", name)
	}
	return nil
}

// marshalDoc renders an XML descriptor with tab indentation. The Eclipse
// files carry an XML declaration; the POM historically does not.
func marshalDoc(doc any, declaration bool) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, errors.Join(domain.ErrNatureFailed, err)
	}

	var rendered []byte
	if declaration {
		rendered = []byte(xml.Header)
	}
	rendered = append(rendered, body...)
	return append(rendered, '\n'), nil
}

// jdtPrefs renders the JDT compiler preferences for the configuration's
// java release.
func jdtPrefs(cfg domain.ResolvedConfiguration) []byte {
	release := strconv.Itoa(javaRelease(cfg))

	var b strings.Builder
	b.WriteString("eclipse.preferences.version=1\n")
	b.WriteString("org.eclipse.jdt.core.compiler.codegen.targetPlatform=" + release + "\n")
	b.WriteString("org.eclipse.jdt.core.compiler.compliance=" + release + "\n")
	b.WriteString("org.eclipse.jdt.core.compiler.source=" + release + "\n")
	return []byte(b.String())
}

// m2ePrefs renders the minimal m2e preference file.
func m2ePrefs() []byte {
	return []byte("eclipse.preferences.version=1\n")
}

// javaRelease is the compiler level written into the descriptors. Projects
// that do not pin java_version fall back to 17.
func javaRelease(cfg domain.ResolvedConfiguration) int {
	if cfg.JavaVersion > 0 {
		return cfg.JavaVersion
	}
	return 17
}

// displayPath renders path relative to root in slash form when it lies
// beneath it, so descriptors stay valid when the project directory moves.
func displayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// atomicWriteFile writes data to a file atomically by writing to a temp file
// in the destination directory and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, "nature-*.tmp")
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

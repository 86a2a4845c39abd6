package nature

import (
	"encoding/xml"
	"path/filepath"
	"strings"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

var _ ports.Nature = (*Maven)(nil)

// Maven emits a pom.xml mirroring the project so Maven-aware tooling can
// import it, plus the m2e preference stub Eclipse expects next to it.
type Maven struct{}

// NewMaven creates the maven nature generator.
func NewMaven() *Maven {
	return &Maven{}
}

// Name returns the manifest identifier for this nature.
func (n *Maven) Name() string {
	return MavenName
}

// Generate writes the POM derived from the resolved configuration.
func (n *Maven) Generate(m *domain.Manifest, cfg domain.ResolvedConfiguration, deps []domain.ResolvedDependency) error {
	pom, err := marshalDoc(pomDoc(m, cfg, deps), false)
	if err != nil {
		return err
	}

	if err := emit(m.Root, filepath.Join(settingsDir, "org.eclipse.m2e.core.prefs"), m2ePrefs()); err != nil {
		return err
	}
	return emit(m.Root, "pom.xml", pom)
}

// pomProject is the pom.xml document.
type pomProject struct {
	XMLName        xml.Name        `xml:"project"`
	Namespace      string          `xml:"xmlns,attr"`
	NamespaceXSI   string          `xml:"xmlns:xsi,attr"`
	SchemaLocation string          `xml:"xsi:schemaLocation,attr"`
	ModelVersion   string          `xml:"modelVersion"`
	GroupID        string          `xml:"groupId"`
	ArtifactID     string          `xml:"artifactId"`
	Version        string          `xml:"version"`
	Properties     pomProperties   `xml:"properties"`
	Dependencies   pomDependencies `xml:"dependencies"`
}

type pomProperties struct {
	CompilerRelease int `xml:"maven.compiler.release"`
}

type pomDependencies struct {
	Dependencies []pomDependency `xml:"dependency"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope,omitempty"`
	SystemPath string `xml:"systemPath,omitempty"`
}

// pomDoc renders registry artifacts with their own coordinates; everything
// else has none, so Maven reaches it through a system path.
func pomDoc(m *domain.Manifest, cfg domain.ResolvedConfiguration, deps []domain.ResolvedDependency) pomProject {
	var entries []pomDependency
	for _, dep := range deps {
		decl := m.Dependencies[dep.Name]
		if decl.Kind == domain.SourceRegistryArtifact {
			entries = append(entries, pomDependency{
				GroupID:    decl.GroupID,
				ArtifactID: decl.ArtifactID,
				Version:    dep.Version,
			})
			continue
		}

		for _, path := range dep.Paths {
			entries = append(entries, pomDependency{
				GroupID:    dep.Name,
				ArtifactID: strings.TrimSuffix(filepath.Base(path), ".jar"),
				Version:    systemVersion(dep.Version),
				Scope:      "system",
				SystemPath: systemPath(m.Root, path),
			})
		}
	}

	return pomProject{
		Namespace:      "http://maven.apache.org/POM/4.0.0",
		NamespaceXSI:   "http://www.w3.org/2001/XMLSchema-instance",
		SchemaLocation: "http://maven.apache.org/POM/4.0.0 http://maven.apache.org/xsd/maven-4.0.0.xsd",
		ModelVersion:   "4.0.0",
		GroupID:        m.Project.Name,
		ArtifactID:     m.Project.Name,
		Version:        m.Project.Version,
		Properties:     pomProperties{CompilerRelease: javaRelease(cfg)},
		Dependencies:   pomDependencies{Dependencies: entries},
	}
}

// systemPath renders an archive location for the POM. Paths inside the
// project use the basedir property so the file stays valid when the project
// directory moves.
func systemPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return "${basedir}/" + filepath.ToSlash(rel)
}

// systemVersion fills the mandatory version element for artifacts that do
// not carry one.
func systemVersion(version string) string {
	if version == "" {
		return "local"
	}
	return version
}

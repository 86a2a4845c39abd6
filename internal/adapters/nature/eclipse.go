package nature

import (
	"encoding/xml"
	"path/filepath"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

var _ ports.Nature = (*Eclipse)(nil)

// Eclipse emits the Eclipse IDE descriptors: the .project description, the
// .classpath and the workspace preference files.
type Eclipse struct{}

// NewEclipse creates the eclipse nature generator.
func NewEclipse() *Eclipse {
	return &Eclipse{}
}

// Name returns the manifest identifier for this nature.
func (e *Eclipse) Name() string {
	return EclipseName
}

// Generate writes the descriptors derived from the resolved configuration.
func (e *Eclipse) Generate(m *domain.Manifest, cfg domain.ResolvedConfiguration, deps []domain.ResolvedDependency) error {
	project, err := marshalDoc(projectDoc(m.Project), true)
	if err != nil {
		return err
	}
	classpath, err := marshalDoc(classpathDoc(m, cfg, deps), true)
	if err != nil {
		return err
	}

	files := []struct {
		name string
		data []byte
	}{
		{filepath.Join(settingsDir, "org.eclipse.jdt.core.prefs"), jdtPrefs(cfg)},
		{filepath.Join(settingsDir, "org.eclipse.m2e.core.prefs"), m2ePrefs()},
		{".project", project},
		{".classpath", classpath},
	}
	for _, file := range files {
		if err := emit(m.Root, file.name, file.data); err != nil {
			return err
		}
	}
	return nil
}

// projectDescription is the .project document.
type projectDescription struct {
	XMLName   xml.Name   `xml:"projectDescription"`
	Name      string     `xml:"name"`
	Comment   string     `xml:"comment"`
	Projects  struct{}   `xml:"projects"`
	BuildSpec buildSpec  `xml:"buildSpec"`
	Natures   natureList `xml:"natures"`
}

type buildSpec struct {
	BuildCommand buildCommand `xml:"buildCommand"`
}

type buildCommand struct {
	Name      string   `xml:"name"`
	Arguments struct{} `xml:"arguments"`
}

type natureList struct {
	Natures []string `xml:"nature"`
}

func projectDoc(p domain.Project) projectDescription {
	natures := []string{"org.eclipse.jdt.core.javanature"}
	for _, nature := range p.Natures {
		if nature == MavenName {
			natures = append(natures, "org.eclipse.m2e.core.maven2Nature")
		}
	}

	return projectDescription{
		Name:      p.Name,
		BuildSpec: buildSpec{BuildCommand: buildCommand{Name: "org.eclipse.jdt.core.javabuilder"}},
		Natures:   natureList{Natures: natures},
	}
}

// classpathFile is the .classpath document.
type classpathFile struct {
	XMLName xml.Name         `xml:"classpath"`
	Entries []classpathEntry `xml:"classpathentry"`
}

type classpathEntry struct {
	Kind       string           `xml:"kind,attr"`
	Output     string           `xml:"output,attr,omitempty"`
	Path       string           `xml:"path,attr"`
	Attributes *entryAttributes `xml:"attributes,omitempty"`
}

type entryAttributes struct {
	Attributes []entryAttribute `xml:"attribute"`
}

type entryAttribute struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// classpathDoc lays out source entries, one library entry per resolved
// archive, the containers implied by the declared natures, and the output
// directory.
func classpathDoc(m *domain.Manifest, cfg domain.ResolvedConfiguration, deps []domain.ResolvedDependency) classpathFile {
	entries := make([]classpathEntry, 0, len(cfg.Sources)+len(deps)+2)

	for _, src := range cfg.Sources {
		entries = append(entries, classpathEntry{Kind: "src", Output: "target/classes", Path: src})
	}

	for _, dep := range deps {
		javadoc := m.Dependencies[dep.Name].Javadoc
		for _, path := range dep.Paths {
			entry := classpathEntry{Kind: "lib", Path: displayPath(m.Root, path)}
			if javadoc != "" {
				entry.Attributes = &entryAttributes{
					Attributes: []entryAttribute{{Name: "javadoc_location", Value: javadoc}},
				}
			}
			entries = append(entries, entry)
		}
	}

	for _, nature := range m.Project.Natures {
		switch nature {
		case EclipseName:
			entries = append(entries, classpathEntry{Kind: "con", Path: "org.eclipse.jdt.launching.JRE_CONTAINER"})
		case MavenName:
			entries = append(entries, classpathEntry{Kind: "con", Path: "org.eclipse.m2e.MAVEN2_CLASSPATH_CONTAINER"})
		}
	}

	entries = append(entries, classpathEntry{Kind: "output", Path: "target/classes/"})

	return classpathFile{Entries: entries}
}

package manifest

import (
	"fmt"

	"go.trai.ch/zerr"
)

// manifestDTO mirrors the on-disk layout of project.toml. Validation and the
// translation into domain types happen in the loader, not here.
type manifestDTO struct {
	Project        projectDTO                  `toml:"project"`
	Dependencies   map[string]dependencyDTO    `toml:"dependencies"`
	Configurations map[string]configurationDTO `toml:"configuration"`
}

type projectDTO struct {
	Name        string     `toml:"name"`
	Version     string     `toml:"version"`
	Description string     `toml:"description"`
	Natures     stringList `toml:"natures"`
}

// dependencyDTO is the union of every source variant's fields. Which fields
// are meaningful depends on Type; the loader enforces the required ones.
type dependencyDTO struct {
	Type         string `toml:"type"`
	UpdatePolicy string `toml:"update_policy"`
	Javadoc      string `toml:"javadoc"`

	// Recursive is a pointer so an absent key is distinguishable from an
	// explicit false; directory declarations default to recursive.
	Path      string `toml:"path"`
	Recursive *bool  `toml:"recursive"`

	// URL is the artifact location for fetchFromUrl and the registry base
	// for fetchFromMaven.
	URL string `toml:"url"`

	GroupID      string `toml:"group_id"`
	ArtifactID   string `toml:"artifact_id"`
	Version      string `toml:"version"`
	ArtifactName string `toml:"artifact_name"`
	Classifier   string `toml:"classifier"`

	Owner      string `toml:"owner"`
	Repository string `toml:"repository"`
	Tag        string `toml:"tag"`
	Asset      string `toml:"asset"`
}

type configurationDTO struct {
	Inherit      string     `toml:"inherit"`
	Sources      stringList `toml:"sources"`
	Dependencies stringList `toml:"dependencies"`
	Targets      stringList `toml:"targets"`
	Entry        string     `toml:"entry"`
	Shaded       stringList `toml:"shaded"`
	Includes     stringList `toml:"includes"`
	JavaVersion  int        `toml:"java_version"`
}

// stringList decodes either a TOML array of strings or a bare string, which
// is treated as a one-element list.
type stringList []string

// UnmarshalTOML implements toml.Unmarshaler.
func (l *stringList) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*l = stringList{v}
	case []any:
		out := make(stringList, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return zerr.New(fmt.Sprintf("expected a string, got %T", item))
			}
			out = append(out, s)
		}
		*l = out
	default:
		return zerr.New(fmt.Sprintf("expected a string or an array of strings, got %T", value))
	}
	return nil
}

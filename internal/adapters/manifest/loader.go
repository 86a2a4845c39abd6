// Package manifest provides the project manifest loader for wisteria.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

// Loader implements ports.ManifestLoader using a TOML manifest file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds the manifest for dir and parses it into domain form. The search
// walks upward, so any subdirectory of a project behaves like its root.
func (l *Loader) Load(dir string) (*domain.Manifest, error) {
	manifestPath, err := l.findManifest(dir)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- manifestPath is found by walking up from the caller's directory
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		err = errors.Join(domain.ErrManifest, err)
		return nil, zerr.With(err, "path", manifestPath)
	}

	var dto manifestDTO
	md, parseErr := toml.Decode(string(raw), &dto)
	if parseErr != nil {
		parseErr = errors.Join(domain.ErrManifest, parseErr)
		return nil, zerr.With(parseErr, "path", manifestPath)
	}

	// Undecoded keys are almost always typos. They never fail the load.
	for _, key := range md.Undecoded() {
		l.Logger.Warn(fmt.Sprintf("unknown manifest key %q, ignoring", key.String()))
	}

	m, err := buildManifest(&dto, filepath.Dir(manifestPath))
	if err != nil {
		return nil, zerr.With(err, "path", manifestPath)
	}

	return m, nil
}

// findManifest walks from dir toward the filesystem root and returns the
// first manifest file it sees.
func (l *Loader) findManifest(dir string) (string, error) {
	currentDir := dir
	for {
		manifestPath := filepath.Join(currentDir, domain.ManifestFileName)
		if _, err := os.Stat(manifestPath); err == nil {
			return manifestPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrManifestNotFound, "cwd", dir)
}

// buildManifest validates the decoded file and translates it into domain
// types. Cross-table references are checked here; inheritance chains are
// only walked when a configuration is actually resolved.
func buildManifest(dto *manifestDTO, root string) (*domain.Manifest, error) {
	if err := validateProject(&dto.Project); err != nil {
		return nil, err
	}

	deps := make(map[string]domain.Dependency, len(dto.Dependencies))
	for _, name := range sortedKeys(dto.Dependencies) {
		dep, err := buildDependency(name, dto.Dependencies[name])
		if err != nil {
			return nil, err
		}
		deps[name] = dep
	}

	configurations := make(map[string]domain.Configuration, len(dto.Configurations))
	for _, name := range sortedKeys(dto.Configurations) {
		cfg := buildConfiguration(name, dto.Configurations[name])
		if err := checkDependencyRefs(cfg, deps); err != nil {
			return nil, err
		}
		configurations[name] = cfg
	}

	return &domain.Manifest{
		Project: domain.Project{
			Name:        dto.Project.Name,
			Version:     dto.Project.Version,
			Description: dto.Project.Description,
			Natures:     dto.Project.Natures,
		},
		Dependencies:   deps,
		Configurations: configurations,
		Root:           root,
	}, nil
}

func validateProject(p *projectDTO) error {
	if p.Name == "" {
		return missingField("project", "name")
	}
	if p.Version == "" {
		return missingField("project", "version")
	}
	return nil
}

// buildDependency translates one [dependencies.<name>] table, enforcing the
// fields its declared type requires.
func buildDependency(name string, dto dependencyDTO) (domain.Dependency, error) {
	table := "dependencies." + name

	policy, err := parseUpdatePolicy(table, dto.UpdatePolicy)
	if err != nil {
		return domain.Dependency{}, err
	}

	dep := domain.Dependency{
		Name:         name,
		UpdatePolicy: policy,
		Javadoc:      dto.Javadoc,
	}

	switch domain.SourceKind(dto.Type) {
	case domain.SourceLocalArchive:
		if dto.Path == "" {
			return domain.Dependency{}, missingField(table, "path")
		}
		dep.Kind = domain.SourceLocalArchive
		dep.Path = dto.Path
		dep.Recursive = dto.Recursive == nil || *dto.Recursive

	case domain.SourceRemoteURL:
		if dto.URL == "" {
			return domain.Dependency{}, missingField(table, "url")
		}
		dep.Kind = domain.SourceRemoteURL
		dep.URL = dto.URL

	case domain.SourceRegistryArtifact:
		if dto.GroupID == "" {
			return domain.Dependency{}, missingField(table, "group_id")
		}
		if dto.ArtifactID == "" {
			return domain.Dependency{}, missingField(table, "artifact_id")
		}
		dep.Kind = domain.SourceRegistryArtifact
		dep.Registry = dto.URL
		if dep.Registry == "" {
			dep.Registry = domain.DefaultRegistryURL
		}
		dep.GroupID = dto.GroupID
		dep.ArtifactID = dto.ArtifactID
		dep.Version = dto.Version
		dep.ArtifactName = dto.ArtifactName
		dep.Classifier = dto.Classifier

	case domain.SourceReleaseAsset:
		if dto.Owner == "" {
			return domain.Dependency{}, missingField(table, "owner")
		}
		if dto.Repository == "" {
			return domain.Dependency{}, missingField(table, "repository")
		}
		dep.Kind = domain.SourceReleaseAsset
		dep.Owner = dto.Owner
		dep.Repository = dto.Repository
		dep.Tag = dto.Tag
		dep.Asset = dto.Asset

	case "":
		return domain.Dependency{}, missingField(table, "type")

	default:
		err := zerr.With(domain.ErrManifest, "table", table)
		err = zerr.With(err, "type", dto.Type)
		return domain.Dependency{}, zerr.With(err, "known", knownSourceKinds())
	}

	return dep, nil
}

// parseUpdatePolicy maps the raw policy string onto the closed policy set.
// An absent policy means SwitchOrUpdate.
func parseUpdatePolicy(table, raw string) (domain.UpdatePolicy, error) {
	switch policy := domain.UpdatePolicy(raw); policy {
	case domain.UpdateAlways, domain.UpdateOnSwitchOrUpdate, domain.UpdateOnlyExplicit, domain.UpdateNever:
		return policy, nil
	case "":
		return domain.UpdateOnSwitchOrUpdate, nil
	default:
		err := zerr.With(domain.ErrManifest, "table", table)
		err = zerr.With(err, "update_policy", raw)
		return "", zerr.With(err, "valid", validUpdatePolicies())
	}
}

func buildConfiguration(name string, dto configurationDTO) domain.Configuration {
	return domain.Configuration{
		Name:         name,
		Inherit:      dto.Inherit,
		Sources:      dto.Sources,
		Dependencies: dto.Dependencies,
		Targets:      dto.Targets,
		Entry:        dto.Entry,
		Shaded:       dto.Shaded,
		Includes:     dto.Includes,
		JavaVersion:  dto.JavaVersion,
	}
}

// checkDependencyRefs verifies that every dependency a configuration names,
// including shaded ones, is declared in the [dependencies] table.
func checkDependencyRefs(cfg domain.Configuration, deps map[string]domain.Dependency) error {
	for _, ref := range cfg.Dependencies {
		if _, ok := deps[ref]; !ok {
			err := zerr.With(domain.ErrUnknownDependency, "configuration", cfg.Name)
			return zerr.With(err, "dependency", ref)
		}
	}

	for _, ref := range cfg.Shaded {
		if _, ok := deps[ref]; !ok {
			err := zerr.With(domain.ErrUnknownDependency, "configuration", cfg.Name)
			err = zerr.With(err, "dependency", ref)
			return zerr.With(err, "field", "shaded")
		}
	}

	return nil
}

// missingField reports a required manifest field that was left empty.
func missingField(table, field string) error {
	err := zerr.With(domain.ErrManifest, "table", table)
	return zerr.With(err, "missing", field)
}

func validUpdatePolicies() string {
	return strings.Join([]string{
		string(domain.UpdateAlways),
		string(domain.UpdateOnSwitchOrUpdate),
		string(domain.UpdateOnlyExplicit),
		string(domain.UpdateNever),
	}, ", ")
}

func knownSourceKinds() string {
	return strings.Join([]string{
		string(domain.SourceLocalArchive),
		string(domain.SourceRemoteURL),
		string(domain.SourceRegistryArtifact),
		string(domain.SourceReleaseAsset),
	}, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

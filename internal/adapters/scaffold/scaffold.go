// Package scaffold materializes new project directories: a starter
// manifest, the conventional source layout, and the workspace metadata
// that makes the project immediately buildable.
package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

// manifestTemplate is the starter manifest written by create. The guidance
// comments walk a new user through the three tables.
const manifestTemplate = `[project] # Fill out your basic project information here
name = "{PROJECT_NAME}"
version = "0.1.0"
description = "A brief summary of this project."
natures = [ "eclipse", "maven" ] # What environments should your project be configured for?

# Add your project's required dependencies here.
# Dependencies declared here can be referenced later in project configurations.
[dependencies]

# Add your project's required configurations here.
# A configuration is a collection of the data your project needs to have tasks be performed on it.
[configuration.main]
sources = [ "src/" ] # Define where source files are searched for
dependencies = [ ] # Add the dependencies you've defined above here to add them to the classpath
targets = [ "targets/{configuration}/{project_name}-{version}.jar" ]
`

// manifestMinimalTemplate is the starter manifest written by create
// --minimal: the same tables stripped to their bare keys.
const manifestMinimalTemplate = `[project]
name = "{PROJECT_NAME}"
version = "0.1.0"
description = "A brief summary of this project."
natures = [ "eclipse", "maven" ]

[dependencies]

[configuration.main]
sources = [ ]
dependencies = [ ]
targets = [ ]
`

var _ ports.Scaffolder = (*Scaffolder)(nil)

// Scaffolder implements ports.Scaffolder on the local filesystem.
type Scaffolder struct {
	logger ports.Logger
}

// NewScaffolder creates a project scaffolder.
func NewScaffolder(logger ports.Logger) *Scaffolder {
	return &Scaffolder{logger: logger}
}

// Create materializes a new project directory under parent and returns its
// root. An existing manifest at the destination is never overwritten.
func (s *Scaffolder) Create(parent, name string, minimal bool) (string, error) {
	root := filepath.Join(parent, name)
	manifestPath := filepath.Join(root, domain.ManifestFileName)

	if _, err := os.Stat(manifestPath); err == nil {
		err := zerr.Wrap(domain.ErrProjectExists, "project "+name)
		return "", zerr.With(err, "manifest", manifestPath)
	}

	for _, dir := range []string{root, filepath.Join(root, "src"), filepath.Join(root, domain.WisteriaDirName)} {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			err = errors.Join(domain.ErrScaffoldFailed, err)
			return "", zerr.With(err, "path", dir)
		}
	}

	if err := writeNew(manifestPath, []byte(Manifest(name, minimal))); err != nil {
		err = errors.Join(domain.ErrScaffoldFailed, err)
		return "", zerr.With(err, "manifest", manifestPath)
	}

	metadataPath := domain.MetadataPath(root)
	metadata := []byte("current_configuration = \"main\"\n")
	if err := writeNew(metadataPath, metadata); err != nil {
		err = errors.Join(domain.ErrScaffoldFailed, err)
		return "", zerr.With(err, "metadata", metadataPath)
	}

	s.logger.Debug("scaffolded project at " + root)
	return root, nil
}

// Manifest renders the starter manifest for a project name. Only the
// project name is substituted; the target templates keep their
// placeholders for the build to expand.
func Manifest(name string, minimal bool) string {
	template := manifestTemplate
	if minimal {
		template = manifestMinimalTemplate
	}
	return strings.ReplaceAll(template, "{PROJECT_NAME}", name)
}

// writeNew writes a file that must not exist yet.
func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, domain.FilePerm) // #nosec G304 -- path derives from the create arguments
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

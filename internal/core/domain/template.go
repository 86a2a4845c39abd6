package domain

import (
	"regexp"

	"go.trai.ch/zerr"
)

var targetPlaceholder = regexp.MustCompile(`\{([^{}]*)\}`)

// ExpandTarget substitutes the project name, project version, and the
// configuration's own name into a target path template. A template
// referencing any other placeholder fails with ErrInvalidTarget.
func ExpandTarget(template string, project Project, configuration string) (string, error) {
	var unknown string
	expanded := targetPlaceholder.ReplaceAllStringFunc(template, func(token string) string {
		switch token {
		case "{project_name}":
			return project.Name
		case "{version}":
			return project.Version
		case "{configuration}":
			return configuration
		default:
			if unknown == "" {
				unknown = token
			}
			return token
		}
	})

	if unknown != "" {
		err := zerr.With(ErrInvalidTarget, "placeholder", unknown)
		return "", zerr.With(err, "template", template)
	}
	return expanded, nil
}

package domain

import (
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// Configuration is one named [configuration.<name>] table from the manifest.
// List fields are additive under inheritance; Entry and JavaVersion are
// scalars where the most specific configuration wins.
type Configuration struct {
	Name         string
	Inherit      string
	Sources      []string
	Dependencies []string
	Targets      []string
	Entry        string
	Shaded       []string
	Includes     []string
	JavaVersion  int
}

// ResolvedConfiguration is the materialized result of the inheritance merge:
// every list field is the concatenation of the ancestor chain's values
// (ancestor first), scalars fall back toward the root. Built once per
// invocation and never mutated afterward.
type ResolvedConfiguration struct {
	Name         string
	Sources      []string
	Dependencies []string
	Targets      []string
	Entry        string
	Shaded       []string
	Includes     []string
	JavaVersion  int
}

// DependencyNames lists the dependency names the configuration requires
// materialized, deduplicated in first-occurrence order. Shaded names are
// included even when the dependency list omits them; they still have to be
// fetched and compiled against.
func (r ResolvedConfiguration) DependencyNames() []string {
	names := make([]string, 0, len(r.Dependencies)+len(r.Shaded))
	seen := make(map[string]bool, len(r.Dependencies)+len(r.Shaded))
	for _, list := range [][]string{r.Dependencies, r.Shaded} {
		for _, name := range list {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Buildable reports whether the configuration can drive a build. Validity is
// a build-time concern: a configuration used only as an inheritance base may
// legally omit sources and targets.
func (r ResolvedConfiguration) Buildable() error {
	if len(r.Sources) == 0 || len(r.Targets) == 0 {
		err := zerr.Wrap(ErrInvalidConfiguration, "configuration "+r.Name)
		err = zerr.With(err, "sources", len(r.Sources))
		return zerr.With(err, "targets", len(r.Targets))
	}
	return nil
}

// ResolveConfiguration applies the inherit relation and merges the chain
// from its root down to target. List fields concatenate in chain order with
// no deduplication; a child's entries are strictly additive. Scalars use the
// value closest to target.
func ResolveConfiguration(configurations map[string]Configuration, target string) (ResolvedConfiguration, error) {
	chain, err := inheritanceChain(configurations, target)
	if err != nil {
		return ResolvedConfiguration{}, err
	}

	resolved := ResolvedConfiguration{Name: target}
	for _, cfg := range chain {
		resolved.Sources = append(resolved.Sources, cfg.Sources...)
		resolved.Dependencies = append(resolved.Dependencies, cfg.Dependencies...)
		resolved.Targets = append(resolved.Targets, cfg.Targets...)
		resolved.Shaded = append(resolved.Shaded, cfg.Shaded...)
		resolved.Includes = append(resolved.Includes, cfg.Includes...)
		if cfg.Entry != "" {
			resolved.Entry = cfg.Entry
		}
		if cfg.JavaVersion != 0 {
			resolved.JavaVersion = cfg.JavaVersion
		}
	}

	return resolved, nil
}

// inheritanceChain walks the inherit pointers from target to its root and
// returns the chain root-first. Revisiting a name on the walk is a cycle.
func inheritanceChain(configurations map[string]Configuration, target string) ([]Configuration, error) {
	var chain []Configuration
	onPath := make(map[string]bool)

	name := target
	for name != "" {
		if onPath[name] {
			return nil, zerr.With(ErrCyclicInheritance, "cycle", cyclePath(chain, name))
		}

		cfg, ok := configurations[name]
		if !ok {
			err := zerr.With(ErrUnknownConfiguration, "configuration", name)
			return nil, zerr.With(err, "known", knownConfigurations(configurations))
		}

		onPath[name] = true
		chain = append(chain, cfg)
		name = cfg.Inherit
	}

	// The walk collected target-first; the merge wants the root first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain, nil
}

// cyclePath renders the inheritance walk up to the repeated name.
func cyclePath(chain []Configuration, repeated string) string {
	var b strings.Builder
	for _, cfg := range chain {
		b.WriteString(cfg.Name)
		b.WriteString(" -> ")
	}
	b.WriteString(repeated)
	return b.String()
}

// knownConfigurations lists the defined configuration names, sorted.
func knownConfigurations(configurations map[string]Configuration) string {
	names := make([]string, 0, len(configurations))
	for name := range configurations {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

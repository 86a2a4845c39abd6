// Package app implements the application layer for wisteria: one method
// per CLI operation, orchestrating the manifest, the dependency resolver,
// and the build engine.
package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
	"github.com/Khyonie/Wisteria/internal/engine/build"
)

// App represents the main application logic.
type App struct {
	logger     ports.Logger
	manifests  ports.ManifestLoader
	resolver   ports.DependencyResolver
	builder    *build.Orchestrator
	metadata   ports.MetadataStore
	store      ports.ArtifactStore
	scaffolder ports.Scaffolder
	natures    []ports.Nature
}

// New creates a new App instance.
func New(
	logger ports.Logger,
	manifests ports.ManifestLoader,
	resolver ports.DependencyResolver,
	builder *build.Orchestrator,
	metadata ports.MetadataStore,
	store ports.ArtifactStore,
	scaffolder ports.Scaffolder,
	natures ...ports.Nature,
) *App {
	return &App{
		logger:     logger,
		manifests:  manifests,
		resolver:   resolver,
		builder:    builder,
		metadata:   metadata,
		store:      store,
		scaffolder: scaffolder,
		natures:    natures,
	}
}

// Create scaffolds a new project directory under dir and returns its root.
func (a *App) Create(dir, name string, minimal bool) (string, error) {
	root, err := a.scaffolder.Create(dir, name, minimal)
	if err != nil {
		return "", err
	}
	a.logger.Info("Created project " + name)
	return root, nil
}

// Switch selects configuration as the project's current one, materializes
// its dependencies, and regenerates the nature files.
func (a *App) Switch(ctx context.Context, dir, configuration string) error {
	m, err := a.manifests.Load(dir)
	if err != nil {
		return err
	}

	cfg, err := domain.ResolveConfiguration(m.Configurations, configuration)
	if err != nil {
		return err
	}

	deps, err := a.resolver.Resolve(ctx, m, cfg.DependencyNames(), domain.FetchSwitch)
	if err != nil {
		return err
	}

	md := a.metadata.Load(m.Root)
	md.CurrentConfiguration = configuration
	if err := a.metadata.Save(m.Root, md); err != nil {
		return err
	}

	a.generateNatures(m, cfg, deps)
	a.logger.Info("Switched to configuration " + configuration)
	return nil
}

// Refresh materializes every dependency of the current configuration,
// fetching cache misses and leaving warm entries alone unless a
// dependency's update policy says otherwise.
func (a *App) Refresh(ctx context.Context, dir string) error {
	m, err := a.manifests.Load(dir)
	if err != nil {
		return err
	}

	cfg, err := a.currentConfiguration(m)
	if err != nil {
		return err
	}

	deps, err := a.resolver.Resolve(ctx, m, cfg.DependencyNames(), domain.FetchRefresh)
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("Refreshed %d dependencies for %s", len(deps), cfg.Name))
	return nil
}

// Update force-refreshes dependencies: the named one, or every declared
// dependency when name is empty or "all". A full update attempts every
// dependency and reports the failures together.
func (a *App) Update(ctx context.Context, dir, name string) error {
	m, err := a.manifests.Load(dir)
	if err != nil {
		return err
	}

	if name == "" || name == "all" {
		deps, err := a.resolver.ResolveAll(ctx, m, domain.FetchUpdate)
		if err != nil {
			return err
		}
		a.logger.Info(fmt.Sprintf("Updated %d dependencies", len(deps)))
		return nil
	}

	if _, err := a.resolver.Resolve(ctx, m, []string{name}, domain.FetchUpdate); err != nil {
		return err
	}
	a.logger.Info("Updated " + name)
	return nil
}

// Build compiles and packages a configuration: the named one, or the
// current one when configuration is empty. Returns the built target paths.
func (a *App) Build(ctx context.Context, dir, configuration string) ([]string, error) {
	m, err := a.manifests.Load(dir)
	if err != nil {
		return nil, err
	}

	var cfg domain.ResolvedConfiguration
	if configuration == "" {
		cfg, err = a.currentConfiguration(m)
	} else {
		cfg, err = domain.ResolveConfiguration(m.Configurations, configuration)
	}
	if err != nil {
		return nil, err
	}

	deps, err := a.resolver.Resolve(ctx, m, cfg.DependencyNames(), domain.FetchBuild)
	if err != nil {
		return nil, err
	}

	targets, err := a.builder.Build(ctx, m, cfg, deps)
	if err != nil {
		return nil, err
	}

	a.generateNatures(m, cfg, deps)
	return targets, nil
}

// Info renders a human-readable project summary.
func (a *App) Info(dir string) (string, error) {
	m, err := a.manifests.Load(dir)
	if err != nil {
		return "", err
	}
	md := a.metadata.Load(m.Root)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", m.Project.Name, m.Project.Version)
	if m.Project.Description != "" {
		fmt.Fprintf(&b, " - %s", m.Project.Description)
	}
	b.WriteByte('\n')
	if len(m.Project.Natures) > 0 {
		fmt.Fprintf(&b, "natures: %s\n", strings.Join(m.Project.Natures, ", "))
	}

	b.WriteString("configurations:\n")
	for _, name := range sortedKeys(m.Configurations) {
		line := describeConfiguration(m, name)
		if name == md.CurrentConfiguration {
			line += " (current)"
		}
		fmt.Fprintf(&b, "  %s\n", line)
	}

	b.WriteString("dependencies:\n")
	for _, name := range sortedKeys(m.Dependencies) {
		dep := m.Dependencies[name]
		fmt.Fprintf(&b, "  %s (%s, %s)\n", name, dep.Kind, a.cacheState(m.Root, dep))
	}

	if avg := md.AverageBuildTime(); avg > 0 {
		fmt.Fprintf(&b, "average build time: %d ms\n", avg.Milliseconds())
	}
	return b.String(), nil
}

// currentConfiguration resolves the configuration recorded by the last
// switch or build, falling back to "main".
func (a *App) currentConfiguration(m *domain.Manifest) (domain.ResolvedConfiguration, error) {
	name := a.metadata.Load(m.Root).CurrentConfiguration
	if name == "" {
		name = "main"
	}
	return domain.ResolveConfiguration(m.Configurations, name)
}

// generateNatures runs the emitters for the project's declared natures.
// Nature output is a convenience; failures are reported but never fail the
// operation that triggered them.
func (a *App) generateNatures(m *domain.Manifest, cfg domain.ResolvedConfiguration, deps []domain.ResolvedDependency) {
	byName := make(map[string]ports.Nature, len(a.natures))
	for _, nature := range a.natures {
		byName[nature.Name()] = nature
	}

	for _, name := range m.Project.Natures {
		nature, ok := byName[name]
		if !ok {
			a.logger.Warn(fmt.Sprintf("unknown nature %q, skipping", name))
			continue
		}
		if err := nature.Generate(m, cfg, deps); err != nil {
			a.logger.Error(zerr.With(err, "nature", name))
			continue
		}
		a.logger.Debug("generated nature files for " + name)
	}
}

// describeConfiguration summarizes one configuration for Info. A broken
// inheritance chain is reported inline rather than failing the summary.
func describeConfiguration(m *domain.Manifest, name string) string {
	cfg, err := domain.ResolveConfiguration(m.Configurations, name)
	if err != nil {
		return fmt.Sprintf("%s: unresolvable (%s)", name, err)
	}
	return fmt.Sprintf("%s: %d sources, %d dependencies, %d targets",
		name, len(cfg.Sources), len(cfg.Dependencies), len(cfg.Targets))
}

// cacheState reports whether a dependency's artifact is already on disk.
func (a *App) cacheState(root string, dep domain.Dependency) string {
	key := dep.CacheKey()
	if key == "" {
		return "local"
	}
	if a.store.Has(root, key) {
		return "cached"
	}
	return "not cached"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

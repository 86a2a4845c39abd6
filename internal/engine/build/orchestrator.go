// Package build turns a resolved configuration into its packaged targets:
// scan, compile, archive, and record the result.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

// Orchestrator drives one build from inputs to installed targets. It owns
// no IO of its own beyond the work tree; everything else happens behind the
// injected ports.
type Orchestrator struct {
	logger   ports.Logger
	scanner  ports.Scanner
	hasher   ports.Hasher
	compiler ports.Compiler
	archiver ports.Archiver
	metadata ports.MetadataStore
}

// NewOrchestrator creates a build orchestrator.
func NewOrchestrator(
	logger ports.Logger,
	scanner ports.Scanner,
	hasher ports.Hasher,
	compiler ports.Compiler,
	archiver ports.Archiver,
	metadata ports.MetadataStore,
) *Orchestrator {
	return &Orchestrator{
		logger:   logger,
		scanner:  scanner,
		hasher:   hasher,
		compiler: compiler,
		archiver: archiver,
		metadata: metadata,
	}
}

// Build compiles and packages cfg, returning its targets as declared in the
// manifest. deps must cover cfg.DependencyNames() in declaration order. A
// build whose input digest matches the recorded one and whose targets all
// exist is skipped.
func (o *Orchestrator) Build(ctx context.Context, m *domain.Manifest, cfg domain.ResolvedConfiguration, deps []domain.ResolvedDependency) ([]string, error) {
	if err := cfg.Buildable(); err != nil {
		return nil, err
	}

	started := time.Now()

	targets, err := expandTargets(m, cfg)
	if err != nil {
		return nil, err
	}

	sources, err := o.scanner.JavaSources(m.Root, cfg.Sources)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		err := zerr.With(domain.ErrInvalidConfiguration, "configuration", cfg.Name)
		return nil, zerr.With(err, "sources", strings.Join(cfg.Sources, ", "))
	}

	digest, err := o.hashInputs(m, cfg, sources, deps)
	if err != nil {
		return nil, err
	}
	o.logger.Debug(fmt.Sprintf("%d sources for %s, input digest %s", len(sources), cfg.Name, digest))

	state := o.metadata.Load(m.Root)
	if state.LastBuildHash == digest && targetsExist(m.Root, targets) {
		o.logger.Info(fmt.Sprintf("%s is up to date", cfg.Name))
		return targets, nil
	}

	classpath := classpathOf(deps)
	shaded, err := shadedPaths(cfg, deps)
	if err != nil {
		return nil, err
	}

	if err := o.compile(ctx, m.Root, cfg, sources, classpath); err != nil {
		return nil, err
	}

	spec := domain.ArchiveSpec{
		Manifest: domain.JarManifest{
			MainClass: cfg.Entry,
			ClassPath: manifestClassPath(m.Root, classpath, shaded),
		},
		ClassDir:    domain.ClassesPath(m.Root),
		IncludeRoot: m.Root,
		Includes:    cfg.Includes,
		Shaded:      shaded,
	}
	for _, target := range targets {
		if err := o.archiver.Package(spec, resolvePath(m.Root, target)); err != nil {
			return nil, err
		}
		o.logger.Info("Successfully written target " + target)
	}

	elapsed := time.Since(started)
	state.RecordBuild(cfg.Name, digest, time.Now(), elapsed)
	if err := o.metadata.Save(m.Root, state); err != nil {
		return nil, err
	}

	o.logger.Info(fmt.Sprintf("Successfully built and packaged %s in %d ms (average of last %d builds: %d ms)",
		cfg.Name, elapsed.Milliseconds(), len(state.BuildTimesMS), state.AverageBuildTime().Milliseconds()))

	return targets, nil
}

// compile rebuilds the class tree from scratch so classes from deleted
// sources do not linger into the archive.
func (o *Orchestrator) compile(ctx context.Context, root string, cfg domain.ResolvedConfiguration, sources, classpath []string) error {
	classes := domain.ClassesPath(root)
	if err := os.RemoveAll(classes); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clear class directory"), "path", classes)
	}

	roots := make([]string, len(cfg.Sources))
	for i, src := range cfg.Sources {
		roots[i] = resolvePath(root, src)
	}

	o.logger.Debug(fmt.Sprintf("compiling %d sources for %s", len(sources), cfg.Name))

	return o.compiler.Compile(ctx, domain.CompileJob{
		SourceRoots: roots,
		Files:       sources,
		Classpath:   classpath,
		OutputDir:   classes,
		Release:     cfg.JavaVersion,
	})
}

// hashInputs digests everything that feeds the build: the manifest, the
// source files, and the resolved dependency archives. The configuration
// name and the selected versions are mixed in so switching configurations
// or moving a "latest" artifact invalidates the previous build.
func (o *Orchestrator) hashInputs(m *domain.Manifest, cfg domain.ResolvedConfiguration, sources []string, deps []domain.ResolvedDependency) (string, error) {
	files := make([]string, 0, len(sources)+len(deps)+1)
	files = append(files, filepath.Join(m.Root, domain.ManifestFileName))
	files = append(files, sources...)

	extra := make([]string, 0, len(deps)+1)
	extra = append(extra, cfg.Name)
	for _, dep := range deps {
		files = append(files, dep.Paths...)
		extra = append(extra, dep.Name+"@"+dep.Version)
	}

	return o.hasher.HashFiles(m.Root, files, extra...)
}

// expandTargets renders every target template before any work starts, so a
// bad template never wastes a compile.
func expandTargets(m *domain.Manifest, cfg domain.ResolvedConfiguration) ([]string, error) {
	targets := make([]string, len(cfg.Targets))
	for i, template := range cfg.Targets {
		expanded, err := domain.ExpandTarget(template, m.Project, cfg.Name)
		if err != nil {
			return nil, err
		}
		targets[i] = expanded
	}
	return targets, nil
}

func targetsExist(root string, targets []string) bool {
	for _, target := range targets {
		if _, err := os.Stat(resolvePath(root, target)); err != nil {
			return false
		}
	}
	return true
}

// classpathOf flattens the resolved dependency paths in declaration order,
// keeping the first occurrence of each path.
func classpathOf(deps []domain.ResolvedDependency) []string {
	var classpath []string
	seen := make(map[string]bool)
	for _, dep := range deps {
		for _, path := range dep.Paths {
			if seen[path] {
				continue
			}
			seen[path] = true
			classpath = append(classpath, path)
		}
	}
	return classpath
}

// shadedPaths maps the configuration's shaded names to their archives, in
// declaration order.
func shadedPaths(cfg domain.ResolvedConfiguration, deps []domain.ResolvedDependency) ([]string, error) {
	byName := make(map[string][]string, len(deps))
	for _, dep := range deps {
		byName[dep.Name] = dep.Paths
	}

	var paths []string
	seen := make(map[string]bool)
	for _, name := range cfg.Shaded {
		depPaths, ok := byName[name]
		if !ok {
			return nil, zerr.With(domain.ErrUnknownDependency, "shaded", name)
		}
		for _, path := range depPaths {
			if seen[path] {
				continue
			}
			seen[path] = true
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// manifestClassPath lists the runtime classpath written into the archive
// manifest: every dependency path except the shaded ones, rendered relative
// to the project root where possible.
func manifestClassPath(root string, classpath, shaded []string) []string {
	shadedSet := make(map[string]bool, len(shaded))
	for _, path := range shaded {
		shadedSet[path] = true
	}

	var entries []string
	for _, path := range classpath {
		if shadedSet[path] {
			continue
		}
		entries = append(entries, displayPath(root, path))
	}
	return entries
}

// displayPath renders path relative to root in slash form when it lies
// beneath it.
func displayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// resolvePath anchors a manifest-declared path beneath the project root.
func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// Package fetch materializes manifest dependencies through the registered
// sources, honoring each declaration's update policy.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/Khyonie/Wisteria/internal/core/domain"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

// resolveConcurrency bounds how many dependencies are materialized at
// once. The store's singleflight already dedupes by cache key, so the
// bound only limits distinct fetches.
const resolveConcurrency = 8

var _ ports.DependencyResolver = (*Resolver)(nil)

// Resolver routes each dependency declaration to the source handling its
// kind and runs the fetches concurrently. Results keep declaration order.
type Resolver struct {
	logger  ports.Logger
	sources map[domain.SourceKind]ports.Source
}

// NewResolver creates a resolver over the given sources. Each source
// claims the kind it reports.
func NewResolver(logger ports.Logger, sources ...ports.Source) *Resolver {
	registry := make(map[domain.SourceKind]ports.Source, len(sources))
	for _, src := range sources {
		registry[src.Kind()] = src
	}
	return &Resolver{logger: logger, sources: registry}
}

// Resolve materializes the named dependencies under the given mode and
// returns them in the same order as names. Under update mode every
// failure is collected so one broken dependency does not mask the rest;
// all other modes fail on the first error.
func (r *Resolver) Resolve(ctx context.Context, m *domain.Manifest, names []string, mode domain.FetchMode) ([]domain.ResolvedDependency, error) {
	deps := make([]domain.Dependency, len(names))
	for i, name := range names {
		dep, ok := m.Dependency(name)
		if !ok {
			return nil, zerr.With(domain.ErrUnknownDependency, "dependency", name)
		}
		deps[i] = dep
	}

	results := make([]domain.ResolvedDependency, len(deps))

	var err error
	if mode == domain.FetchUpdate {
		err = r.resolveCollect(ctx, m.Root, deps, results, mode)
	} else {
		err = r.resolveFailFast(ctx, m.Root, deps, results, mode)
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ResolveAll materializes every dependency in the manifest under the
// given mode, in name order.
func (r *Resolver) ResolveAll(ctx context.Context, m *domain.Manifest, mode domain.FetchMode) ([]domain.ResolvedDependency, error) {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return r.Resolve(ctx, m, names, mode)
}

// resolveFailFast cancels the remaining fetches as soon as one fails.
func (r *Resolver) resolveFailFast(ctx context.Context, root string, deps []domain.Dependency, results []domain.ResolvedDependency, mode domain.FetchMode) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)

	for i, dep := range deps {
		g.Go(func() error {
			resolved, err := r.resolveOne(ctx, root, dep, mode)
			if err != nil {
				return err
			}
			results[i] = resolved
			return nil
		})
	}

	return g.Wait()
}

// resolveCollect attempts every fetch and joins the failures.
func (r *Resolver) resolveCollect(ctx context.Context, root string, deps []domain.Dependency, results []domain.ResolvedDependency, mode domain.FetchMode) error {
	g := new(errgroup.Group)
	g.SetLimit(resolveConcurrency)

	errs := make([]error, len(deps))
	for i, dep := range deps {
		g.Go(func() error {
			resolved, err := r.resolveOne(ctx, root, dep, mode)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = resolved
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}

// resolveOne routes a single declaration to its source. The refresh flag
// combines the declaration's update policy with the mode, except that
// pinned remote artifacts never re-fetch a warm entry.
func (r *Resolver) resolveOne(ctx context.Context, root string, dep domain.Dependency, mode domain.FetchMode) (domain.ResolvedDependency, error) {
	src, ok := r.sources[dep.Kind]
	if !ok {
		return domain.ResolvedDependency{}, zerr.New(fmt.Sprintf("no source registered for dependency type %q", dep.Kind))
	}

	if mode == domain.FetchUpdate && dep.UpdatePolicy == domain.UpdateNever {
		r.logger.Warn(fmt.Sprintf("%s is pinned by its update policy and will not be re-fetched", dep.Name))
	}

	refresh := dep.ShouldRefresh(mode) && !dep.CacheImmutable()
	r.logger.Debug(fmt.Sprintf("resolving %s (%s, mode %s, refresh %t)", dep.Name, dep.Kind, mode, refresh))

	resolved, err := src.Resolve(ctx, root, dep, refresh)
	if err != nil {
		return domain.ResolvedDependency{}, err
	}
	return resolved, nil
}

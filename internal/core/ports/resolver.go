package ports

import (
	"context"

	"github.com/Khyonie/Wisteria/internal/core/domain"
)

// DependencyResolver defines the interface for materializing manifest
// dependencies ahead of a build or at the user's request.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type DependencyResolver interface {
	// Resolve materializes the named dependencies under the given mode and
	// returns them in the same order as names.
	Resolve(ctx context.Context, m *domain.Manifest, names []string, mode domain.FetchMode) ([]domain.ResolvedDependency, error)

	// ResolveAll materializes every dependency in the manifest under the
	// given mode, in name order.
	ResolveAll(ctx context.Context, m *domain.Manifest, mode domain.FetchMode) ([]domain.ResolvedDependency, error)
}

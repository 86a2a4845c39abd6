package ports

import (
	"context"

	"github.com/Khyonie/Wisteria/internal/core/domain"
)

// Source defines the interface for materializing one dependency variant.
//
// Implementations resolve a declaration to concrete archive paths. The
// root is the project root: local paths resolve against it and remote
// variants cache under it. A refresh forces the fetch even when a warm
// cache entry exists.
//
//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks
type Source interface {
	// Kind returns the dependency variant this source handles.
	Kind() domain.SourceKind

	// Resolve materializes the dependency and returns its archive paths
	// together with the version that was selected.
	Resolve(ctx context.Context, root string, dep domain.Dependency, refresh bool) (domain.ResolvedDependency, error)
}

package fetch

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/Khyonie/Wisteria/internal/adapters/github" //nolint:depguard // Wired in engine wiring
	"github.com/Khyonie/Wisteria/internal/adapters/local"  //nolint:depguard // Wired in engine wiring
	"github.com/Khyonie/Wisteria/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"github.com/Khyonie/Wisteria/internal/adapters/maven"  //nolint:depguard // Wired in engine wiring
	"github.com/Khyonie/Wisteria/internal/adapters/remote" //nolint:depguard // Wired in engine wiring
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

// NodeID is the unique identifier for the fetch resolver Graft node.
const NodeID graft.ID = "engine.fetch_resolver"

func init() {
	graft.Register(graft.Node[ports.DependencyResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			local.NodeID,
			remote.NodeID,
			maven.NodeID,
			github.NodeID,
		},
		Run: func(ctx context.Context) (ports.DependencyResolver, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			archives, err := graft.Dep[*local.Source](ctx)
			if err != nil {
				return nil, err
			}

			urls, err := graft.Dep[*remote.Source](ctx)
			if err != nil {
				return nil, err
			}

			registries, err := graft.Dep[*maven.Source](ctx)
			if err != nil {
				return nil, err
			}

			releases, err := graft.Dep[*github.Source](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(log, archives, urls, registries, releases), nil
		},
	})
}

package github

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/Khyonie/Wisteria/internal/adapters/store"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

// NodeID is the unique identifier for the release source Graft node.
const NodeID graft.ID = "adapter.source_github"

func init() {
	graft.Register(graft.Node[*Source]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{store.NodeID},
		Run: func(ctx context.Context) (*Source, error) {
			artifacts, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}
			return NewSource(artifacts), nil
		},
	})
}

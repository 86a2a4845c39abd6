package local

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the local archive source Graft node.
const NodeID graft.ID = "adapter.source_local"

func init() {
	graft.Register(graft.Node[*Source]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Source, error) {
			return NewSource(), nil
		},
	})
}

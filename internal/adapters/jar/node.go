package jar

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/Khyonie/Wisteria/internal/core/ports"
)

// NodeID is the unique identifier for the archiver Graft node.
const NodeID graft.ID = "adapter.jar"

func init() {
	graft.Register(graft.Node[ports.Archiver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Archiver, error) {
			return NewArchiver(), nil
		},
	})
}

package nature

import (
	"context"

	"github.com/grindlemire/graft"
)

const (
	// EclipseNodeID is the unique identifier for the eclipse nature Graft node.
	EclipseNodeID graft.ID = "adapter.nature_eclipse"
	// MavenNodeID is the unique identifier for the maven nature Graft node.
	MavenNodeID graft.ID = "adapter.nature_maven"
)

func init() {
	graft.Register(graft.Node[*Eclipse]{
		ID:        EclipseNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Eclipse, error) {
			return NewEclipse(), nil
		},
	})

	graft.Register(graft.Node[*Maven]{
		ID:        MavenNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Maven, error) {
			return NewMaven(), nil
		},
	})
}

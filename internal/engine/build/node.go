package build

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/Khyonie/Wisteria/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"github.com/Khyonie/Wisteria/internal/adapters/jar"      //nolint:depguard // Wired in engine wiring
	"github.com/Khyonie/Wisteria/internal/adapters/javac"    //nolint:depguard // Wired in engine wiring
	"github.com/Khyonie/Wisteria/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"github.com/Khyonie/Wisteria/internal/adapters/metadata" //nolint:depguard // Wired in engine wiring
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

// NodeID is the unique identifier for the build orchestrator Graft node.
const NodeID graft.ID = "engine.build_orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			fs.ScannerNodeID,
			fs.HasherNodeID,
			javac.NodeID,
			jar.NodeID,
			metadata.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			scanner, err := graft.Dep[ports.Scanner](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			compiler, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}

			archiver, err := graft.Dep[ports.Archiver](ctx)
			if err != nil {
				return nil, err
			}

			state, err := graft.Dep[ports.MetadataStore](ctx)
			if err != nil {
				return nil, err
			}

			return NewOrchestrator(log, scanner, hasher, compiler, archiver, state), nil
		},
	})
}

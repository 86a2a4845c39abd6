package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/Khyonie/Wisteria/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"github.com/Khyonie/Wisteria/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"github.com/Khyonie/Wisteria/internal/adapters/metadata" //nolint:depguard // Wired in app layer
	"github.com/Khyonie/Wisteria/internal/adapters/nature"   //nolint:depguard // Wired in app layer
	"github.com/Khyonie/Wisteria/internal/adapters/scaffold" //nolint:depguard // Wired in app layer
	"github.com/Khyonie/Wisteria/internal/adapters/store"    //nolint:depguard // Wired in app layer
	"github.com/Khyonie/Wisteria/internal/core/ports"
	"github.com/Khyonie/Wisteria/internal/engine/build"
	"github.com/Khyonie/Wisteria/internal/engine/fetch"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI
// layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			manifest.NodeID,
			fetch.NodeID,
			build.NodeID,
			metadata.NodeID,
			store.NodeID,
			scaffold.NodeID,
			nature.EclipseNodeID,
			nature.MavenNodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			manifests, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.DependencyResolver](ctx)
			if err != nil {
				return nil, err
			}

			builder, err := graft.Dep[*build.Orchestrator](ctx)
			if err != nil {
				return nil, err
			}

			state, err := graft.Dep[ports.MetadataStore](ctx)
			if err != nil {
				return nil, err
			}

			artifacts, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}

			scaffolder, err := graft.Dep[ports.Scaffolder](ctx)
			if err != nil {
				return nil, err
			}

			eclipse, err := graft.Dep[*nature.Eclipse](ctx)
			if err != nil {
				return nil, err
			}

			maven, err := graft.Dep[*nature.Maven](ctx)
			if err != nil {
				return nil, err
			}

			return New(log, manifests, resolver, builder, state, artifacts, scaffolder, eclipse, maven), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: application, Logger: log}, nil
		},
	})
}

// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/Khyonie/Wisteria/internal/adapters/fs"
	_ "github.com/Khyonie/Wisteria/internal/adapters/github"
	_ "github.com/Khyonie/Wisteria/internal/adapters/jar"
	_ "github.com/Khyonie/Wisteria/internal/adapters/javac"
	_ "github.com/Khyonie/Wisteria/internal/adapters/local"
	_ "github.com/Khyonie/Wisteria/internal/adapters/logger"
	_ "github.com/Khyonie/Wisteria/internal/adapters/manifest"
	_ "github.com/Khyonie/Wisteria/internal/adapters/maven"
	_ "github.com/Khyonie/Wisteria/internal/adapters/metadata"
	_ "github.com/Khyonie/Wisteria/internal/adapters/nature"
	_ "github.com/Khyonie/Wisteria/internal/adapters/remote"
	_ "github.com/Khyonie/Wisteria/internal/adapters/scaffold"
	_ "github.com/Khyonie/Wisteria/internal/adapters/store"
	// Register app and engine nodes.
	_ "github.com/Khyonie/Wisteria/internal/app"
	_ "github.com/Khyonie/Wisteria/internal/engine/build"
	_ "github.com/Khyonie/Wisteria/internal/engine/fetch"
)

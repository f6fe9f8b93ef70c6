// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/globfind/internal/adapters/config"
	_ "go.trai.ch/globfind/internal/adapters/fs"
	_ "go.trai.ch/globfind/internal/adapters/logger"
	_ "go.trai.ch/globfind/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/globfind/internal/app"
)

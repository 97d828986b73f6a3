// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/dxbednarczyk/mup/internal/adapters/config"
	_ "github.com/dxbednarczyk/mup/internal/adapters/download"
	_ "github.com/dxbednarczyk/mup/internal/adapters/fs"
	_ "github.com/dxbednarczyk/mup/internal/adapters/hangar"
	_ "github.com/dxbednarczyk/mup/internal/adapters/history"
	_ "github.com/dxbednarczyk/mup/internal/adapters/httpclient"
	_ "github.com/dxbednarczyk/mup/internal/adapters/loader"
	_ "github.com/dxbednarczyk/mup/internal/adapters/lockfile"
	_ "github.com/dxbednarczyk/mup/internal/adapters/logger"
	_ "github.com/dxbednarczyk/mup/internal/adapters/modrinth"
	_ "github.com/dxbednarczyk/mup/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "github.com/dxbednarczyk/mup/internal/app"
	_ "github.com/dxbednarczyk/mup/internal/engine/resolver"
)

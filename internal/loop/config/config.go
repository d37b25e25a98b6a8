// Package config centralizes all tunable game parameters.
package config

import "time"

// Grid
const (
	GridSize     = 20 // Cells per side, must be even; the grid is centered on (0,0)
	TickInterval = 200 * time.Millisecond
)

// Board rendering
const (
	CellColumns = 2 // Terminal columns per grid cell (cells are roughly square)
	HUDRows     = 2 // Rows reserved above the board for score and status
)

// Player
const (
	MaxUsernameLength  = 16                     // Maximum display length for player usernames
	GameOverInputDelay = 500 * time.Millisecond // Ignore confirm keys right after dying
)

// Leaderboard
const (
	TopScoresCount = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

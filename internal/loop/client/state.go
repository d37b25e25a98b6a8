package client

import (
	"time"

	"github.com/tomz197/snake/internal/loop/sim"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateGameOver                  // Snake died, show cause and leaderboard
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-session presentation state. The game itself lives
// in the client's Simulation.
type ClientState struct {
	GameState GameState
	Running   bool // Client loop running
	Best      int  // Best score this session
	Rank      int  // Leaderboard rank of the last game, 0 if unranked
	Last      sim.Snapshot

	gameOverAt    time.Time     // When the last game ended
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	tooSmall      bool          // Terminal cannot fit the board

	// Previous-frame values; a change forces a full redraw.
	prevGameState GameState
	wasInactive   bool
	wasTooSmall   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: GameStateStart,
		Running:       true,
	}
}

package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/loop"
	"github.com/tomz197/snake/internal/loop/config"
	"github.com/tomz197/snake/internal/loop/server"
	"github.com/tomz197/snake/internal/loop/sim"
)

// Client handles rendering and input for a single connection and owns that
// connection's game.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	sim          *sim.Simulation
	queue        input.Queue
	scheduler    *loop.Scheduler
	board        *draw.Board
	scene        scene
	chunkWriter  *draw.ChunkWriter // Accumulates output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	lastFrame    time.Time
	termSizeFunc draw.TermSizeFunc

	idleWarn       time.Duration
	idleDisconnect time.Duration
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string

	// Zero values fall back to the defaults in loop/config.
	GridSize     int
	TickInterval time.Duration
	Seed         int64 // Zero seeds from the clock

	// Inactivity limits. Zero disables the check.
	IdleWarn       time.Duration
	IdleDisconnect time.Duration
}

// NewClient registers with the server and creates the client's game.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	gridSize := opts.GridSize
	if gridSize == 0 {
		gridSize = config.GridSize
	}
	tick := opts.TickInterval
	if tick <= 0 {
		tick = config.TickInterval
	}

	var simOpts []sim.Option
	if opts.Seed != 0 {
		simOpts = append(simOpts, sim.WithSeed(opts.Seed))
	}
	game, err := sim.New(gridSize, simOpts...)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	handle, err := gs.RegisterClient(opts.Username)
	if err != nil {
		return nil, fmt.Errorf("register client: %w", err)
	}

	now := time.Now()
	return &Client{
		server:         gs,
		handle:         handle,
		state:          NewClientState(),
		sim:            game,
		scheduler:      loop.NewScheduler(tick, game, now),
		board:          draw.NewBoard(gridSize, config.CellColumns, config.HUDRows),
		chunkWriter:    draw.NewChunkWriter(w),
		writer:         w,
		inputStream:    input.StartStream(r),
		lastInput:      now,
		lastFrame:      now,
		termSizeFunc:   termSizeFunc,
		idleWarn:       opts.IdleWarn,
		idleDisconnect: opts.IdleDisconnect,
	}, nil
}

// Handle returns the client's server registration.
func (c *Client) Handle() *server.ClientHandle {
	return c.handle
}

// Run starts the client loop. Blocks until the client quits, the input
// stream ends, ctx is cancelled or the server shutdown countdown runs out.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	var frameErr error
	loop.Run(ctx, config.ClientTargetFrameTime, func(now time.Time) bool {
		if err := c.frame(now); err != nil {
			frameErr = err
			return false
		}
		return c.state.Running
	})

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return frameErr
}

// frame runs one iteration of the client loop.
func (c *Client) frame(now time.Time) error {
	c.state.delta = now.Sub(c.lastFrame)
	c.lastFrame = now

	c.processInput(now)
	c.processServerEvents()
	c.updateScreen()

	switch c.state.GameState {
	case GameStatePlaying:
		c.updatePlayingState(now)
	case GameStateShutdown:
		c.updateShutdownState()
	}

	if !c.state.Running {
		return nil
	}
	return c.drawFrame()
}

// processInput reads pending keys, tracks inactivity and detects a closed stream.
func (c *Client) processInput(now time.Time) {
	keys := input.ReadKeys(c.inputStream)
	if len(keys) > 0 {
		c.lastInput = now
		c.state.isInactive = false
	}
	for _, k := range keys {
		c.handleKey(k, now)
	}

	if c.inputStream.Closed() {
		c.state.Running = false
		return
	}

	idle := now.Sub(c.lastInput)
	if c.idleDisconnect > 0 && idle > c.idleDisconnect {
		c.state.Running = false
	} else if c.idleWarn > 0 && idle > c.idleWarn {
		c.state.isInactive = true
	}
}

// handleKey applies one key according to the current phase.
func (c *Client) handleKey(k input.Key, now time.Time) {
	if c.state.GameState == GameStatePlaying {
		switch c.queue.Push(k) {
		case input.ActionQuit:
			c.state.Running = false
		case input.ActionRestart:
			c.startGame(now)
		}
		return
	}

	switch input.Classify(k) {
	case input.ActionQuit:
		c.state.Running = false
	case input.ActionConfirm, input.ActionRestart:
		switch c.state.GameState {
		case GameStateStart:
			c.startGame(now)
		case GameStateGameOver:
			if now.Sub(c.state.gameOverAt) >= config.GameOverInputDelay {
				c.startGame(now)
			}
		}
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize. Layout changes clear the terminal
// and repaint the board from scratch.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	if c.board.Resize(termWidth, termHeight) {
		c.invalidate()
	}
	c.state.tooSmall = !c.board.Fits()
}

// startGame starts or restarts the game.
func (c *Client) startGame(now time.Time) {
	input.ResetKeyInput(c.inputStream)
	c.queue.Reset()
	c.sim.Reset()
	c.scheduler.Reset(now)
	c.state.Rank = 0
	c.state.Last = c.sim.Snapshot()
	c.state.GameState = GameStatePlaying
	c.invalidate()
}

// updatePlayingState applies queued input and advances the game on its tick.
// Paused while the terminal is too small to show the board.
func (c *Client) updatePlayingState(now time.Time) {
	if c.state.tooSmall {
		c.queue.Reset()
		c.scheduler.Reset(now)
		return
	}

	c.queue.Flush(c.sim)
	if !c.scheduler.Tick(now) {
		return
	}
	c.state.Last = c.sim.Snapshot()

	if !c.sim.Running() {
		c.endGame(now)
	}
}

// endGame records the finished game and switches to the game over screen.
func (c *Client) endGame(now time.Time) {
	score := c.state.Last.Score
	if score > c.state.Best {
		c.state.Best = score
	}
	c.state.Rank = c.server.ReportScore(c.handle.ID, score)
	c.state.gameOverAt = now
	c.state.GameState = GameStateGameOver
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// invalidate forces a full clear and repaint on the next frame.
func (c *Client) invalidate() {
	c.chunkWriter.ClearScreen()
	c.scene.invalidate()
}

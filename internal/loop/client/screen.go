package client

import (
	"fmt"
	"time"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/loop/config"
	"github.com/tomz197/snake/internal/loop/server"
	"github.com/tomz197/snake/internal/loop/sim"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On phase, inactivity or fit transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	fitChanged := c.state.tooSmall != c.state.wasTooSmall
	if stateChanged || inactiveChanged || fitChanged {
		c.invalidate()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
		c.state.wasTooSmall = c.state.tooSmall
	}

	// Screens are centered on the board; the too-small notice on the terminal.
	centerX := c.board.CenterCol()
	centerY := c.board.CenterRow()

	switch {
	case c.state.GameState == GameStateShutdown:
		c.drawShutdownScreen(centerX, centerY)
	case c.state.isInactive:
		c.drawInactivityScreen(centerX, centerY)
	case c.state.tooSmall:
		c.drawTooSmallScreen(c.board.TerminalWidth()/2, c.board.TerminalHeight()/2)
	case c.state.GameState == GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case c.state.GameState == GameStatePlaying:
		c.drawPlaying()
	case c.state.GameState == GameStateGameOver:
		c.drawGameOverScreen(centerX, centerY, c.server.GetSnapshot())
	}

	return c.chunkWriter.Flush()
}

// drawPlaying draws the board and HUD. The border is drawn only after a
// full clear; cells are painted as a diff against the previous frame.
func (c *Client) drawPlaying() {
	cw := c.chunkWriter
	if c.scene.drawn == nil {
		c.board.RenderBorder(cw)
	}
	c.scene.render(cw, c.board, c.state.Last)
	c.drawPlayingHUD(c.state.Last)
}

// drawPlayingHUD draws the score line above the board.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(snap sim.Snapshot) {
	cw := c.chunkWriter
	left := c.board.Left()
	right := left + c.board.Width()
	row := c.board.Top() - config.HUDRows

	scoreText := fmt.Sprintf("Score: %-6d Best: %-6d", snap.Score, max(c.state.Best, snap.Score))
	cw.WriteAt(left, row, scoreText)

	lengthText := fmt.Sprintf("Length: %-4d", snap.Len())
	cw.WriteAt(right-len(lengthText), row, lengthText)

	hint := "WASD/arrows move  R restart  Q quit"
	cw.WriteAt(left, row+1, draw.ColorDim+hint+draw.ColorReset)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___ _  _   _   _  _____ `,
		` / __| \| | /_\ | |/ / __|`,
		` \__ \ .' |/ _ \| ' <| _| `,
		` |___/_|\_/_/ \_\_|\_\___|`,
	}
	cw := c.chunkWriter
	titleStartY := centerY - 7
	writeArt(cw, centerX, titleStartY, draw.ColorBrightGreen, titleArt)

	subtitle := fmt.Sprintf("~ Hello, %s ~", c.handle.Username)
	cw.WriteString(draw.ColorBrightCyan)
	cw.WriteCentered(centerX, titleStartY+len(titleArt)+1, subtitle)
	cw.WriteString(draw.ColorReset)

	// Controls section
	controlsY := titleStartY + len(titleArt) + 3
	cw.WriteCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"W A S D / arrows . . Steer",
		"R  . . . . . . . . Restart",
		"Q  . . . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		cw.WriteCentered(centerX, controlsY+1+i, line)
	}

	// Blinking start prompt
	promptY := controlsY + len(controlLines) + 2
	cw.ClearLine(promptY)
	if time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteCentered(centerX, promptY, ">>  Press SPACE to Start  <<")
	}
}

// drawGameOverScreen draws the cause of death, the score and the leaderboard.
func (c *Client) drawGameOverScreen(centerX, centerY int, snapshot *server.Snapshot) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	cw := c.chunkWriter
	y := centerY - 9
	writeArt(cw, centerX, y, draw.ColorRed, titleArt)
	y += len(titleArt) + 1

	cw.WriteCentered(centerX, y, causeMessage(c.state.Last.Cause))
	y += 2

	scoreText := fmt.Sprintf("Score: %d   Best: %d", c.state.Last.Score, c.state.Best)
	cw.WriteCentered(centerX, y, scoreText)
	y++
	if c.state.Rank > 0 {
		cw.WriteString(draw.ColorYellow)
		cw.WriteCentered(centerX, y, fmt.Sprintf("New top score! Rank #%d", c.state.Rank))
		cw.WriteString(draw.ColorReset)
	}
	y += 2

	y = c.drawLeaderboard(centerX, y, snapshot)
	y++

	// Prompt once the input delay has passed
	cw.ClearLine(y)
	if time.Since(c.state.gameOverAt) >= config.GameOverInputDelay && time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteCentered(centerX, y, ">>  Press SPACE to Restart  <<")
	}
}

// drawLeaderboard writes the top scores starting at row y and returns the
// row after the last line written.
func (c *Client) drawLeaderboard(centerX, y int, snapshot *server.Snapshot) int {
	cw := c.chunkWriter
	header := fmt.Sprintf("Top scores  (%d playing)", snapshot.Players)
	cw.WriteCentered(centerX, y, header)
	y++
	if len(snapshot.TopScores) == 0 {
		cw.WriteString(draw.ColorDim)
		cw.WriteCentered(centerX, y, "no scores yet")
		cw.WriteString(draw.ColorReset)
		return y + 1
	}
	for i, entry := range snapshot.TopScores {
		line := fmt.Sprintf("%d. %-*s %6d", i+1, config.MaxUsernameLength, entry.Username, entry.Score)
		cw.WriteCentered(centerX, y, line)
		y++
	}
	return y
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")

	remaining := int((c.idleDisconnect - time.Since(c.lastInput)).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	msg := fmt.Sprintf("You have been inactive for too long. Disconnecting in %3d seconds.", remaining)
	cw.WriteCentered(centerX, centerY, msg)

	cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

// drawTooSmallScreen asks for a larger terminal.
func (c *Client) drawTooSmallScreen(centerX, centerY int) {
	cw := c.chunkWriter
	need := fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d",
		c.board.Width(), c.board.Height()+config.HUDRows,
		c.board.TerminalWidth(), c.board.TerminalHeight())
	col := max(centerX-len(need)/2, 1)
	cw.WriteAt(col, max(centerY, 1), need)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	cw.WriteCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	cw.WriteCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %2d seconds...", remaining)
	cw.WriteCentered(centerX, centerY+2, countdown)

	cw.WriteCentered(centerX, centerY+4, "Press Q to disconnect now")
}

// causeMessage describes why the game ended.
func causeMessage(cause sim.Cause) string {
	switch cause {
	case sim.CauseWall:
		return "You hit the wall."
	case sim.CauseSelf:
		return "You ran into yourself."
	}
	return ""
}

// writeArt draws multi-line art centered on centerX starting at row y.
func writeArt(cw *draw.ChunkWriter, centerX, y int, color string, art []string) {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		cw.WriteAt(centerX-width/2, y+i, color+line+draw.ColorReset)
	}
}

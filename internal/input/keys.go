package input

import (
	"strings"

	"github.com/tomz197/snake/internal/object"
)

// Key is a raw key token, named the way browsers name KeyboardEvent.key.
// Printable keys are the character itself ("w", "W", "r").
type Key string

const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyEnter      Key = "Enter"
	KeySpace      Key = " "
	KeyEscape     Key = "Escape" // Not bound: a split arrow sequence starts with ESC
	KeyInterrupt  Key = "Ctrl+C"
)

// Action is what a key asks the game to do.
type Action int

const (
	ActionNone    Action = iota // Unrecognized key
	ActionMove                  // Change direction
	ActionRestart               // Start a new game now
	ActionConfirm               // Dismiss a screen (start, game over)
	ActionQuit                  // Leave the game
)

// Direction maps a directional key to its grid direction.
// Letters are matched case-insensitively.
func Direction(k Key) (object.Direction, bool) {
	switch k {
	case KeyArrowUp:
		return object.North, true
	case KeyArrowDown:
		return object.South, true
	case KeyArrowLeft:
		return object.West, true
	case KeyArrowRight:
		return object.East, true
	}
	switch strings.ToLower(string(k)) {
	case "w":
		return object.North, true
	case "s":
		return object.South, true
	case "a":
		return object.West, true
	case "d":
		return object.East, true
	}
	return 0, false
}

// Classify returns the action bound to k.
func Classify(k Key) Action {
	if _, ok := Direction(k); ok {
		return ActionMove
	}
	switch k {
	case KeySpace, KeyEnter:
		return ActionConfirm
	case KeyInterrupt:
		return ActionQuit
	}
	switch strings.ToLower(string(k)) {
	case "r":
		return ActionRestart
	case "q":
		return ActionQuit
	}
	return ActionNone
}

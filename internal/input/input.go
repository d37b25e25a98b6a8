// Package input turns raw terminal bytes into key tokens and key tokens into
// at most one direction change per tick.
package input

import (
	"bufio"
)

// Stream delivers input bytes via a channel so the game loop never blocks on reads.
type Stream struct {
	ch      chan byte
	closed  bool
	partial []byte // Unfinished escape sequence carried into the next read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error (EOF, session closed).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
// It only becomes true after ReadKeys has observed the closed channel.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadKeys drains all available bytes from the stream (non-blocking) and
// decodes them into key tokens in arrival order.
// An escape sequence split across reads is held back until its tail arrives.
func ReadKeys(s *Stream) []Key {
	buf := append(s.partial, drain(s)...)
	s.partial = nil
	if len(buf) == 0 {
		return nil
	}

	keys, rest := decode(buf)
	if len(rest) > 0 {
		if s.closed {
			// Nothing more is coming; the prefix was a plain key press.
			for _, b := range rest {
				if k, ok := byteKey(b); ok {
					keys = append(keys, k)
				}
			}
		} else {
			s.partial = append([]byte(nil), rest...)
		}
	}
	return keys
}

// ResetKeyInput discards any bytes that arrived but were not read yet,
// so keys mashed during a screen transition don't leak into the next game.
func ResetKeyInput(s *Stream) {
	drain(s)
	s.partial = nil
}

func drain(s *Stream) []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// decode parses raw bytes, handling CSI arrow sequences (ESC [ A..D).
// A trailing ESC, ESC [ or ESC O that may still be completed by the next
// read is not decoded and is returned as rest.
func decode(buf []byte) (keys []Key, rest []byte) {
	keys = make([]Key, 0, len(buf))
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && isEscapePrefix(buf[i:]) {
			return keys, buf[i:]
		}

		if b == '\x1b' && i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			var k Key
			switch buf[i+2] {
			case 'A':
				k = KeyArrowUp
			case 'B':
				k = KeyArrowDown
			case 'C':
				k = KeyArrowRight
			case 'D':
				k = KeyArrowLeft
			}
			if k != "" {
				keys = append(keys, k)
				i += 2
				continue
			}
		}

		if k, ok := byteKey(b); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// isEscapePrefix reports whether p is ESC, ESC [ or ESC O with nothing after.
func isEscapePrefix(p []byte) bool {
	switch len(p) {
	case 1:
		return true
	case 2:
		return p[1] == '[' || p[1] == 'O'
	}
	return false
}

// byteKey maps a single byte to a key token.
func byteKey(b byte) (Key, bool) {
	switch {
	case b == '\r' || b == '\n':
		return KeyEnter, true
	case b == ' ':
		return KeySpace, true
	case b == '\x1b':
		return KeyEscape, true
	case b == '\x03':
		return KeyInterrupt, true
	case b > ' ' && b < 0x7f:
		return Key(string(rune(b))), true
	}
	return "", false
}

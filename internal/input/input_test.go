package input

import (
	"bufio"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/snake/internal/object"
)

func TestDirectionKeys(t *testing.T) {
	tests := []struct {
		key  Key
		want object.Direction
	}{
		{KeyArrowUp, object.North},
		{KeyArrowDown, object.South},
		{KeyArrowLeft, object.West},
		{KeyArrowRight, object.East},
		{"w", object.North},
		{"W", object.North},
		{"s", object.South},
		{"S", object.South},
		{"a", object.West},
		{"A", object.West},
		{"d", object.East},
		{"D", object.East},
	}
	for _, tt := range tests {
		got, ok := Direction(tt.key)
		if !ok || got != tt.want {
			t.Errorf("Direction(%q) = %v, %v; want %v", tt.key, got, ok, tt.want)
		}
		if Classify(tt.key) != ActionMove {
			t.Errorf("Classify(%q) should be ActionMove", tt.key)
		}
	}

	for _, k := range []Key{"x", "1", KeyEscape, "", "ArrowUpp"} {
		if _, ok := Direction(k); ok {
			t.Errorf("Direction(%q) should not map", k)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		key  Key
		want Action
	}{
		{"r", ActionRestart},
		{"R", ActionRestart},
		{KeySpace, ActionConfirm},
		{KeyEnter, ActionConfirm},
		{"q", ActionQuit},
		{"Q", ActionQuit},
		{KeyInterrupt, ActionQuit},
		{KeyEscape, ActionNone},
		{"z", ActionNone},
	}
	for _, tt := range tests {
		if got := Classify(tt.key); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Key
		rest string
	}{
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{KeyArrowUp, KeyArrowDown, KeyArrowRight, KeyArrowLeft}, ""},
		{"application arrows", "\x1bOA", []Key{KeyArrowUp}, ""},
		{"letters", "wAsD", []Key{"w", "A", "s", "D"}, ""},
		{"enter and space", "\r \n", []Key{KeyEnter, KeySpace, KeyEnter}, ""},
		{"ctrl-c", "\x03", []Key{KeyInterrupt}, ""},
		{"trailing escape held", "w\x1b", []Key{"w"}, "\x1b"},
		{"trailing csi held", "\x1b[", nil, "\x1b["},
		{"trailing ss3 held", "\x1bO", nil, "\x1bO"},
		{"unknown csi", "\x1b[Zq", []Key{KeyEscape, "[", "Z", "q"}, ""},
		{"control bytes dropped", "\x01\x7fw", []Key{"w"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest := decode([]byte(tt.in))
			if !equalKeys(got, tt.want) {
				t.Fatalf("decode(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if string(rest) != tt.rest {
				t.Fatalf("decode(%q) rest = %q, want %q", tt.in, rest, tt.rest)
			}
		})
	}
}

func equalKeys(a, b []Key) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}

func TestReadKeysSplitSequence(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  Key
	}{
		{"after escape", []string{"\x1b", "[D"}, KeyArrowLeft},
		{"after bracket", []string{"\x1b[", "A"}, KeyArrowUp},
		{"three reads", []string{"\x1b", "[", "C"}, KeyArrowRight},
		{"application mode", []string{"\x1bO", "B"}, KeyArrowDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Stream{ch: make(chan byte, 8)}
			var keys []Key
			for _, part := range tt.parts {
				for _, b := range []byte(part) {
					s.ch <- b
				}
				keys = append(keys, ReadKeys(s)...)
			}
			if len(keys) != 1 || keys[0] != tt.want {
				t.Fatalf("keys = %q, want [%q]", keys, tt.want)
			}
		})
	}
}

func TestReadKeysEscapeBeforeClose(t *testing.T) {
	s := &Stream{ch: make(chan byte, 8)}
	s.ch <- '\x1b'
	if keys := ReadKeys(s); len(keys) != 0 {
		t.Fatalf("escape should be held, got %q", keys)
	}
	close(s.ch)
	keys := ReadKeys(s)
	if !s.Closed() {
		t.Fatal("stream should report closed")
	}
	if !reflect.DeepEqual(keys, []Key{KeyEscape}) {
		t.Fatalf("keys = %q, want [Escape] once the stream ends", keys)
	}
}

func TestResetKeyInputDropsPartial(t *testing.T) {
	s := &Stream{ch: make(chan byte, 8)}
	s.ch <- '\x1b'
	ReadKeys(s)
	ResetKeyInput(s)
	s.ch <- 'D'
	if keys := ReadKeys(s); !reflect.DeepEqual(keys, []Key{"D"}) {
		t.Fatalf("keys = %q, want [D] after reset", keys)
	}
}

func TestStreamReadKeys(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("w\x1b[C")))

	// Let the reader goroutine push the whole sequence before the first drain.
	time.Sleep(50 * time.Millisecond)

	var keys []Key
	deadline := time.Now().Add(2 * time.Second)
	for !s.Closed() && time.Now().Before(deadline) {
		keys = append(keys, ReadKeys(s)...)
		time.Sleep(time.Millisecond)
	}
	if !s.Closed() {
		t.Fatal("stream should close after EOF")
	}
	want := []Key{"w", KeyArrowRight}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %q, want %q", keys, want)
	}
}

// fakeSteerer records SetDirection calls.
type fakeSteerer struct {
	running bool
	heading object.Direction
	set     []object.Direction
}

func (f *fakeSteerer) Running() bool                   { return f.running }
func (f *fakeSteerer) Heading() object.Direction       { return f.heading }
func (f *fakeSteerer) SetDirection(d object.Direction) { f.set = append(f.set, d) }

func TestQueueLastValidWins(t *testing.T) {
	var q Queue
	f := &fakeSteerer{running: true, heading: object.East}

	q.Push("w")          // north
	q.Push(KeyArrowDown) // south
	q.Push(KeyArrowLeft) // west reverses east, rejected
	if a := q.Push("x"); a != ActionNone {
		t.Fatalf("Push(x) = %v, want ActionNone", a)
	}
	q.Flush(f)

	if !reflect.DeepEqual(f.set, []object.Direction{object.South}) {
		t.Fatalf("SetDirection calls = %v, want [south]", f.set)
	}
	if q.Len() != 0 {
		t.Fatal("Flush should empty the queue")
	}
}

func TestQueueOnlyReversal(t *testing.T) {
	var q Queue
	f := &fakeSteerer{running: true, heading: object.North}
	q.Push("s")
	q.Flush(f)
	if len(f.set) != 0 {
		t.Fatalf("reversal should not reach the simulation, got %v", f.set)
	}
}

func TestQueueIgnoredWhenStopped(t *testing.T) {
	var q Queue
	f := &fakeSteerer{running: false, heading: object.South}
	q.Push("a")
	q.Flush(f)
	if len(f.set) != 0 {
		t.Fatalf("input applied while stopped: %v", f.set)
	}

	// Nothing carries over once the game is running again.
	f.running = true
	q.Flush(f)
	if len(f.set) != 0 {
		t.Fatalf("stale input applied: %v", f.set)
	}
}

func TestQueueNonDirectionalActions(t *testing.T) {
	var q Queue
	if q.Push("r") != ActionRestart || q.Push(KeySpace) != ActionConfirm || q.Push("q") != ActionQuit {
		t.Fatal("unexpected action classification")
	}
	if q.Len() != 0 {
		t.Fatal("non-directional keys must not be buffered")
	}
}

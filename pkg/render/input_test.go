package render

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestInput() (*KeyboardInput, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	k := NewKeyboardInput(0)
	k.now = clock.now
	return k, clock
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		ch   rune
		want action
		ok   bool
	}{
		{"w", tcell.KeyRune, 'w', actForward, true},
		{"shifted W", tcell.KeyRune, 'W', actForward, true},
		{"up arrow", tcell.KeyUp, 0, actForward, true},
		{"s", tcell.KeyRune, 's', actBackward, true},
		{"down arrow", tcell.KeyDown, 0, actBackward, true},
		{"a", tcell.KeyRune, 'a', actLeft, true},
		{"right arrow", tcell.KeyRight, 0, actRight, true},
		{"space", tcell.KeyRune, ' ', actDrift, true},
		{"n", tcell.KeyRune, 'n', actNitrous, true},
		{"f", tcell.KeyRune, 'f', actNitrous, true},
		{"r", tcell.KeyRune, 'r', actReset, true},
		{"escape", tcell.KeyEscape, 0, actQuit, true},
		{"ctrl-c", tcell.KeyCtrlC, 0, actQuit, true},
		{"unbound rune", tcell.KeyRune, 'x', 0, false},
		{"unbound key", tcell.KeyTab, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := actionFor(tt.key, tt.ch)
			if ok != tt.ok || got != tt.want {
				t.Errorf("actionFor() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestKeyboardInput_HeldKeysExpire(t *testing.T) {
	k, clock := newTestInput()
	k.press(tcell.KeyRune, 'w')
	k.press(tcell.KeyLeft, 0)
	k.press(tcell.KeyRune, ' ')

	c := k.Controls()
	if !c.Forward || c.Steer != -1 || !c.Drift {
		t.Fatalf("Controls() = %+v, want forward, left and drift", c)
	}

	// Still held on the next frame.
	clock.advance(100 * time.Millisecond)
	if c := k.Controls(); !c.Forward {
		t.Error("forward released before the hold window elapsed")
	}

	clock.advance(100 * time.Millisecond)
	if c := k.Controls(); c.Forward || c.Steer != 0 || c.Drift {
		t.Errorf("Controls() = %+v after release, want idle", c)
	}
}

func TestKeyboardInput_OppositeSteeringCancels(t *testing.T) {
	k, _ := newTestInput()
	k.press(tcell.KeyRune, 'a')
	k.press(tcell.KeyRune, 'd')

	if c := k.Controls(); c.Steer != 0 {
		t.Errorf("Steer = %v, want 0", c.Steer)
	}
}

func TestKeyboardInput_OneShotActions(t *testing.T) {
	k, _ := newTestInput()
	k.press(tcell.KeyRune, 'n')
	k.press(tcell.KeyRune, 'r')
	k.press(tcell.KeyEscape, 0)

	c := k.Controls()
	if !c.Nitrous || !c.Reset || !c.Quit {
		t.Fatalf("Controls() = %+v, want nitrous, reset and quit", c)
	}
	if c := k.Controls(); c.Nitrous || c.Reset || c.Quit {
		t.Errorf("one-shot controls repeated: %+v", c)
	}
}

func TestKeyboardInput_IgnoresOtherEvents(t *testing.T) {
	k, _ := newTestInput()
	if k.HandleEvent(tcell.NewEventResize(80, 24)) {
		t.Error("resize event mapped to a control")
	}
	if k.press(tcell.KeyRune, 'x') {
		t.Error("unbound key mapped to a control")
	}
}

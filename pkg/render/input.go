package render

import (
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-drift/pkg/engine"
)

// DefaultHoldWindow is how long a key counts as held after its last press
// or auto-repeat. Terminals report no key releases, so held controls are
// inferred from the repeat stream.
const DefaultHoldWindow = 150 * time.Millisecond

type action int

const (
	actForward action = iota
	actBackward
	actLeft
	actRight
	actDrift
	actNitrous
	actReset
	actQuit
	actionCount
)

// actionFor maps a key to a control: W/Up forward, S/Down backward, A/D
// or Left/Right steer, Space drift, N or F nitrous, R reset, Q or Escape
// quit.
func actionFor(key tcell.Key, ch rune) (action, bool) {
	switch key {
	case tcell.KeyUp:
		return actForward, true
	case tcell.KeyDown:
		return actBackward, true
	case tcell.KeyLeft:
		return actLeft, true
	case tcell.KeyRight:
		return actRight, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit, true
	case tcell.KeyRune:
	default:
		return 0, false
	}

	switch unicode.ToLower(ch) {
	case 'w':
		return actForward, true
	case 's':
		return actBackward, true
	case 'a':
		return actLeft, true
	case 'd':
		return actRight, true
	case ' ':
		return actDrift, true
	case 'n', 'f':
		return actNitrous, true
	case 'r':
		return actReset, true
	case 'q':
		return actQuit, true
	}
	return 0, false
}

// KeyboardInput turns tcell key events into per-frame Controls. Events
// arrive on the polling goroutine while the game loop reads Controls.
type KeyboardInput struct {
	mu       sync.Mutex
	lastSeen [actionCount]time.Time
	pressed  [actionCount]bool
	hold     time.Duration
	now      func() time.Time
}

// NewKeyboardInput creates an input mapper. A non-positive hold uses
// DefaultHoldWindow.
func NewKeyboardInput(hold time.Duration) *KeyboardInput {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &KeyboardInput{hold: hold, now: time.Now}
}

// HandleEvent records key events and reports whether the event mapped to
// a control.
func (k *KeyboardInput) HandleEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	return k.press(key.Key(), key.Rune())
}

func (k *KeyboardInput) press(key tcell.Key, ch rune) bool {
	act, ok := actionFor(key, ch)
	if !ok {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.lastSeen[act] = k.now()
	k.pressed[act] = true
	return true
}

// Listen feeds events from screen until it is finalized.
func (k *KeyboardInput) Listen(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		k.HandleEvent(ev)
	}
}

// Controls returns the intents for this frame. Movement and drift stay on
// while their keys repeat; nitrous, reset and quit fire once per press.
func (k *KeyboardInput) Controls() engine.Controls {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	held := func(a action) bool {
		return !k.lastSeen[a].IsZero() && now.Sub(k.lastSeen[a]) <= k.hold
	}
	edge := func(a action) bool {
		p := k.pressed[a]
		k.pressed[a] = false
		return p
	}

	c := engine.Controls{
		Forward:  held(actForward),
		Backward: held(actBackward),
		Drift:    held(actDrift),
		Nitrous:  edge(actNitrous),
		Reset:    edge(actReset),
		Quit:     edge(actQuit),
	}
	if held(actLeft) {
		c.Steer--
	}
	if held(actRight) {
		c.Steer++
	}
	return c
}

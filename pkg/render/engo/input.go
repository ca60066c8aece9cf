// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-drift/pkg/engine"
)

// Button names registered with engo's input manager.
const (
	buttonForward  = "forward"
	buttonBackward = "backward"
	buttonLeft     = "left"
	buttonRight    = "right"
	buttonDrift    = "drift"
	buttonNitrous  = "nitrous"
	buttonReset    = "reset"
	buttonQuit     = "quit"
	buttonZoomIn   = "zoomIn"
	buttonZoomOut  = "zoomOut"
)

// buttonState reports whether a named button is held and whether it went
// down this frame.
type buttonState func(name string) (down, justPressed bool)

func engoButtons(name string) (bool, bool) {
	b := engo.Input.Button(name)
	return b.Down(), b.JustPressed()
}

// controlsFrom samples the buttons into one frame of intents. Driving
// buttons count while held; nitrous, reset and quit only on the frame
// they go down.
func controlsFrom(state buttonState) engine.Controls {
	held := func(name string) bool {
		down, _ := state(name)
		return down
	}
	pressed := func(name string) bool {
		_, just := state(name)
		return just
	}

	c := engine.Controls{
		Forward:  held(buttonForward),
		Backward: held(buttonBackward),
		Drift:    held(buttonDrift),
		Nitrous:  pressed(buttonNitrous),
		Reset:    pressed(buttonReset),
		Quit:     pressed(buttonQuit),
	}
	if held(buttonLeft) {
		c.Steer--
	}
	if held(buttonRight) {
		c.Steer++
	}
	return c
}

// InputSystem samples the keyboard once per frame. Add it to the world
// before the system that steps the game.
type InputSystem struct {
	state    buttonState
	controls engine.Controls
}

// NewInputSystem creates an input system reading engo's input manager.
func NewInputSystem() *InputSystem {
	return &InputSystem{state: engoButtons}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update samples the buttons.
func (is *InputSystem) Update(dt float32) {
	is.controls = controlsFrom(is.state)
}

// Controls returns the intents sampled by the last Update.
func (is *InputSystem) Controls() engine.Controls {
	return is.controls
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonForward, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(buttonBackward, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(buttonLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(buttonRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(buttonDrift, engo.KeySpace)
	engo.Input.RegisterButton(buttonNitrous, engo.KeyN, engo.KeyF)
	engo.Input.RegisterButton(buttonReset, engo.KeyR)
	engo.Input.RegisterButton(buttonQuit, engo.KeyEscape)
	engo.Input.RegisterButton(buttonZoomIn, engo.KeyEquals)
	engo.Input.RegisterButton(buttonZoomOut, engo.KeyDash)
}

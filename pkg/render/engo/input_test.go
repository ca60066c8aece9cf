package engo

import (
	"testing"

	"github.com/opd-ai/go-drift/pkg/engine"
)

func fakeButtons(down, just map[string]bool) buttonState {
	return func(name string) (bool, bool) {
		return down[name], just[name]
	}
}

func TestControlsFrom(t *testing.T) {
	tests := []struct {
		name string
		down map[string]bool
		just map[string]bool
		want engine.Controls
	}{
		{"idle", nil, nil, engine.Controls{}},
		{
			name: "throttle and steer left",
			down: map[string]bool{buttonForward: true, buttonLeft: true},
			want: engine.Controls{Forward: true, Steer: -1},
		},
		{
			name: "reverse right while drifting",
			down: map[string]bool{buttonBackward: true, buttonRight: true, buttonDrift: true},
			want: engine.Controls{Backward: true, Steer: 1, Drift: true},
		},
		{
			name: "both steering keys cancel",
			down: map[string]bool{buttonLeft: true, buttonRight: true},
			want: engine.Controls{},
		},
		{
			name: "held nitrous does not repeat",
			down: map[string]bool{buttonNitrous: true, buttonReset: true},
			want: engine.Controls{},
		},
		{
			name: "presses fire once",
			down: map[string]bool{buttonNitrous: true},
			just: map[string]bool{buttonNitrous: true, buttonReset: true, buttonQuit: true},
			want: engine.Controls{Nitrous: true, Reset: true, Quit: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := controlsFrom(fakeButtons(tt.down, tt.just)); got != tt.want {
				t.Errorf("controlsFrom() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInputSystem_Update(t *testing.T) {
	is := &InputSystem{state: fakeButtons(map[string]bool{buttonForward: true}, nil)}
	if (is.Controls() != engine.Controls{}) {
		t.Error("controls before the first Update should be idle")
	}

	is.Update(1.0 / 60)
	if !is.Controls().Forward {
		t.Error("Update did not sample the forward button")
	}
}

package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/opd-ai/go-drift/pkg/config"
	"github.com/opd-ai/go-drift/pkg/event"
	"github.com/opd-ai/go-drift/pkg/vehicle"
)

func TestEnginePitchAndVolume(t *testing.T) {
	tests := []struct {
		name   string
		speed  float64
		pitch  float64
		volume float64
	}{
		{"idle", 0, 0.8, 0.3},
		{"quarter", 5, 0.8 + 1.2*0.5, 0.3 + 0.5*0.25},
		{"reference", 20, 2.0, 0.8},
		{"reverse uses magnitude", -5, 0.8 + 1.2*0.5, 0.3 + 0.5*0.25},
		{"beyond reference clamps", 60, 2.0, 0.8},
		{"NaN idles", math.NaN(), 0.8, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnginePitch(tt.speed, 20); math.Abs(got-tt.pitch) > 1e-9 {
				t.Errorf("EnginePitch(%v) = %v, want %v", tt.speed, got, tt.pitch)
			}
			if got := EngineVolume(tt.speed, 20); math.Abs(got-tt.volume) > 1e-9 {
				t.Errorf("EngineVolume(%v) = %v, want %v", tt.speed, got, tt.volume)
			}
		})
	}
}

func TestEnginePitch_BadReferenceFallsBack(t *testing.T) {
	if got, want := EnginePitch(20, 0), EnginePitch(20, DefaultSpeed); got != want {
		t.Errorf("EnginePitch(ref=0) = %v, want %v", got, want)
	}
}

func TestEngineSound_Stream(t *testing.T) {
	e := NewEngineSound(beep.SampleRate(44100), 55, 20)

	samples := make([][2]float64, 512)
	n, ok := e.Stream(samples)
	if !ok || n != len(samples) {
		t.Fatalf("Stream() = (%d, %v), want (%d, true)", n, ok, len(samples))
	}
	if e.Err() != nil {
		t.Errorf("Err() = %v", e.Err())
	}

	nonZero := false
	for i := 0; i < n; i++ {
		if samples[i][0] != samples[i][1] {
			t.Fatalf("sample %d not mono: %v", i, samples[i])
		}
		if math.Abs(samples[i][0]) > 1 {
			t.Fatalf("sample %d out of range: %v", i, samples[i][0])
		}
		if samples[i][0] != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Error("engine note is silent")
	}
}

func TestEngineSound_GlidesTowardTarget(t *testing.T) {
	e := NewEngineSound(beep.SampleRate(44100), 55, 20)
	e.SetSpeed(20)

	pitch, volume := e.Target()
	if math.Abs(pitch-2.0) > 1e-9 || math.Abs(volume-0.8) > 1e-9 {
		t.Fatalf("Target() = (%v, %v), want (2, 0.8)", pitch, volume)
	}

	samples := make([][2]float64, 64)
	e.Stream(samples)
	p1, _ := e.Current()
	if !(p1 > IdlePitch && p1 < 2.0) {
		t.Errorf("pitch after a short buffer = %v, want strictly between idle and target", p1)
	}

	for i := 0; i < 400; i++ {
		e.Stream(samples)
	}
	p2, v2 := e.Current()
	if math.Abs(p2-2.0) > 0.01 || math.Abs(v2-0.8) > 0.01 {
		t.Errorf("Current() after settling = (%v, %v), want about (2, 0.8)", p2, v2)
	}

	e.Idle()
	if p, v := e.Current(); p != IdlePitch || v != IdleVolume {
		t.Errorf("Current() after Idle = (%v, %v)", p, v)
	}
}

func TestImpactAndChimeSounds(t *testing.T) {
	rate := beep.SampleRate(44100)
	tests := []struct {
		name   string
		sound  beep.Streamer
		length int
	}{
		{"impact", NewImpactSound(rate), rate.N(impactDuration)},
		{"chime", NewChimeSound(rate), 2 * rate.N(chimeDuration/2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([][2]float64, 1024)
			total := 0
			for {
				n, ok := tt.sound.Stream(buf)
				for i := 0; i < n; i++ {
					if math.Abs(buf[i][0]) > 1 {
						t.Fatalf("sample out of range: %v", buf[i][0])
					}
				}
				total += n
				if !ok || total > 10*tt.length {
					break
				}
			}
			if total != tt.length {
				t.Errorf("streamed %d samples, want %d", total, tt.length)
			}
		})
	}
}

func TestPlayer_NotStarted(t *testing.T) {
	cfg := config.DefaultConfig().Audio
	p := NewPlayer(cfg, nil)
	bus := event.NewEventBus()
	p.Attach(bus)

	// Effects are dropped until the speaker is running.
	bus.Publish(&event.BaseEvent{EventType: event.ObstacleHit})
	bus.Publish(&event.BaseEvent{EventType: event.NitrousCollected})
	if got := p.Playing(); got != 1 {
		t.Errorf("Playing() = %d, want only the engine", got)
	}

	p.Update(vehicle.Telemetry{Velocity: 20})
	if pitch, _ := p.Engine().Target(); math.Abs(pitch-2.0) > 1e-9 {
		t.Errorf("engine target pitch = %v, want 2", pitch)
	}

	bus.Publish(&event.BaseEvent{EventType: event.VehicleReset})
	if pitch, _ := p.Engine().Current(); pitch != IdlePitch {
		t.Errorf("pitch after reset = %v, want idle", pitch)
	}

	p.Stop()
	p.Update(vehicle.Telemetry{Velocity: 0})
	bus.Publish(&event.BaseEvent{EventType: event.VehicleReset})
}

func TestPlayer_DisabledStartIsNoop(t *testing.T) {
	cfg := config.DefaultConfig().Audio
	cfg.Enabled = false
	p := NewPlayer(cfg, nil)

	if p.Enabled() {
		t.Error("Enabled() = true for a disabled config")
	}
	if err := p.Start(t.Context()); err != nil {
		t.Errorf("Start() = %v for a disabled player", err)
	}
	p.Stop()
}

func TestNewVolume(t *testing.T) {
	if v := newVolume(nil, 0); !v.Silent {
		t.Error("zero gain should be silent")
	}
	if v := newVolume(nil, 0.5); v.Silent || v.Volume != -1 {
		t.Errorf("gain 0.5 = %+v, want Volume -1", v)
	}
}

// Package audio synthesizes the engine note and impact sounds with beep.
package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
)

// Engine note mapping.
const (
	IdlePitch    = 0.8
	PitchRange   = 1.2
	IdleVolume   = 0.3
	VolumeRange  = 0.5
	MaxVolume    = 0.8
	DefaultSpeed = 20.0 // m/s at which pitch peaks
)

// glide is the per-sample fraction by which pitch and volume move toward
// their targets, so speed changes never click.
const glide = 0.0005

// EnginePitch maps |speed| to a playback pitch in [0.8, 2.0]. The square
// root makes the note climb quickly off idle like real revs.
func EnginePitch(speed, referenceSpeed float64) float64 {
	return IdlePitch + PitchRange*math.Sqrt(speedRatio(speed, referenceSpeed))
}

// EngineVolume maps |speed| to a gain in [0.3, 0.8].
func EngineVolume(speed, referenceSpeed float64) float64 {
	return math.Min(IdleVolume+VolumeRange*speedRatio(speed, referenceSpeed), MaxVolume)
}

func speedRatio(speed, referenceSpeed float64) float64 {
	if !(referenceSpeed > 0) {
		referenceSpeed = DefaultSpeed
	}
	if math.IsNaN(speed) {
		return 0
	}
	return math.Min(math.Abs(speed)/referenceSpeed, 1)
}

// EngineSound is an endless streamer producing a harmonic engine hum. Its
// parameters are set from the game loop while the speaker goroutine pulls
// samples, so every access is guarded by mu.
type EngineSound struct {
	mu sync.Mutex

	rate           beep.SampleRate
	baseFrequency  float64
	referenceSpeed float64

	targetPitch  float64
	targetVolume float64
	pitch        float64
	volume       float64
	phase        float64
}

// NewEngineSound creates an idling engine note.
func NewEngineSound(rate beep.SampleRate, baseFrequency, referenceSpeed float64) *EngineSound {
	return &EngineSound{
		rate:           rate,
		baseFrequency:  baseFrequency,
		referenceSpeed: referenceSpeed,
		targetPitch:    IdlePitch,
		targetVolume:   IdleVolume,
		pitch:          IdlePitch,
		volume:         IdleVolume,
	}
}

// SetSpeed retargets pitch and volume for the given signed speed.
func (e *EngineSound) SetSpeed(speed float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.targetPitch = EnginePitch(speed, e.referenceSpeed)
	e.targetVolume = EngineVolume(speed, e.referenceSpeed)
}

// Idle snaps straight back to the idle note.
func (e *EngineSound) Idle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.targetPitch, e.pitch = IdlePitch, IdlePitch
	e.targetVolume, e.volume = IdleVolume, IdleVolume
}

// Target returns the pitch and volume the note is gliding toward.
func (e *EngineSound) Target() (pitch, volume float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.targetPitch, e.targetVolume
}

// Current returns the pitch and volume of the last streamed sample.
func (e *EngineSound) Current() (pitch, volume float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pitch, e.volume
}

// Stream fills samples with the engine note. It never ends.
func (e *EngineSound) Stream(samples [][2]float64) (n int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range samples {
		e.pitch += (e.targetPitch - e.pitch) * glide
		e.volume += (e.targetVolume - e.volume) * glide

		// Fundamental plus two harmonics, normalized to stay within [-1, 1].
		p := 2 * math.Pi * e.phase
		val := (0.6*math.Sin(p) + 0.3*math.Sin(2*p) + 0.1*math.Sin(3*p)) * e.volume

		samples[i][0] = val
		samples[i][1] = val

		e.phase += e.baseFrequency * e.pitch / float64(e.rate)
		e.phase -= math.Floor(e.phase)
	}
	return len(samples), true
}

// Err always returns nil.
func (e *EngineSound) Err() error { return nil }

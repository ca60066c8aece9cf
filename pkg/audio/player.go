package audio

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-drift/pkg/config"
	"github.com/opd-ai/go-drift/pkg/event"
	"github.com/opd-ai/go-drift/pkg/logging"
	"github.com/opd-ai/go-drift/pkg/vehicle"
)

const (
	bufferDuration = 100 * time.Millisecond
	impactDuration = 180 * time.Millisecond
	chimeDuration  = 250 * time.Millisecond
)

// Player mixes the engine note with one-shot effects and feeds the
// speaker. A disabled Player accepts every call and plays nothing.
type Player struct {
	mu sync.Mutex

	cfg     config.AudioConfig
	rate    beep.SampleRate
	engine  *EngineSound
	mixer   *beep.Mixer
	master  *effects.Volume
	started bool
	subs    []*event.Subscription

	logger *logging.Logger
}

// NewPlayer builds the mixer graph. Nothing is audible until Start.
func NewPlayer(cfg config.AudioConfig, logger *logging.Logger) *Player {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	rate := beep.SampleRate(cfg.SampleRate)
	p := &Player{
		cfg:    cfg,
		rate:   rate,
		engine: NewEngineSound(rate, cfg.BaseFrequency, cfg.ReferenceSpeed),
		mixer:  &beep.Mixer{},
		logger: logger.With("component", "audio"),
	}
	p.mixer.Add(p.engine)
	p.master = newVolume(p.mixer, cfg.Volume)
	return p
}

// Engine exposes the engine note.
func (p *Player) Engine() *EngineSound {
	return p.engine
}

// Enabled reports whether the config asks for sound.
func (p *Player) Enabled() bool {
	return p.cfg.Enabled
}

// Start opens the output device and begins playback.
func (p *Player) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled || p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(bufferDuration)); err != nil {
		return logging.WrapError(err, "failed to initialize speaker")
	}
	speaker.Play(p.master)
	p.started = true
	p.logger.Info(ctx, "audio started", "sample_rate", int(p.rate))
	return nil
}

// Stop silences playback and drops event subscriptions.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, sub := range p.subs {
		sub.Cancel()
	}
	p.subs = nil

	if !p.started {
		return
	}
	speaker.Clear()
	p.started = false
}

// Update retunes the engine note from the vehicle state.
func (p *Player) Update(t vehicle.Telemetry) {
	p.engine.SetSpeed(t.Velocity)
}

// Attach plays effects for game events: a thud on obstacle hits, a chime
// on pickups and an idle snap on reset.
func (p *Player) Attach(bus *event.Bus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subs = append(p.subs,
		bus.Subscribe(event.ObstacleHit, func(event.Event) { p.play(NewImpactSound(p.rate)) }),
		bus.Subscribe(event.NitrousCollected, func(event.Event) { p.play(NewChimeSound(p.rate)) }),
		bus.Subscribe(event.VehicleReset, func(event.Event) { p.engine.Idle() }),
	)
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Playing returns how many streamers are mixed, the engine included.
func (p *Player) Playing() int {
	speaker.Lock()
	defer speaker.Unlock()
	return p.mixer.Len()
}

// newVolume converts a linear gain into beep's exponential volume. Zero or
// less is silence.
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// noiseBurst is decaying white noise low-passed into a thud.
type noiseBurst struct {
	total, pos int
	last       float64
	rng        *rand.Rand
}

// NewImpactSound returns a short thud for hitting a wall or tree.
func NewImpactSound(rate beep.SampleRate) beep.Streamer {
	n := rate.N(impactDuration)
	return beep.Take(n, &noiseBurst{
		total: n,
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	})
}

func (b *noiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		env := 1.0
		if b.total > 0 {
			env = math.Max(1-float64(b.pos)/float64(b.total), 0)
		}
		b.last += 0.15 * (b.rng.Float64()*2 - 1 - b.last)
		val := b.last * env * env * 0.9
		samples[i][0] = val
		samples[i][1] = val
		b.pos++
	}
	return len(samples), true
}

func (b *noiseBurst) Err() error { return nil }

// tone is a sine with a linear fade out.
type tone struct {
	freq       float64
	rate       beep.SampleRate
	total, pos int
}

// NewChimeSound returns a rising two-note chime for a nitrous pickup.
func NewChimeSound(rate beep.SampleRate) beep.Streamer {
	n := rate.N(chimeDuration / 2)
	return beep.Seq(
		beep.Take(n, &tone{freq: 880, rate: rate, total: n}),
		beep.Take(n, &tone{freq: 1320, rate: rate, total: n}),
	)
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		env := math.Max(1-float64(t.pos)/float64(t.total), 0)
		val := 0.4 * env * math.Sin(2*math.Pi*t.freq*float64(t.pos)/float64(t.rate))
		samples[i][0] = val
		samples[i][1] = val
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

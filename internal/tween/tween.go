package tween

import (
	"time"

	"github.com/matjam/crossfade/internal/types"
)

// RepeatForever makes a tween loop until it is killed.
const RepeatForever = -1

// Config describes a timed 0 to 1 tween. Delay is applied once before the
// first iteration; RepeatDelay is the pause after each iteration during
// which the value holds at 1.
type Config struct {
	Delay       time.Duration
	Duration    time.Duration
	RepeatDelay time.Duration
	Repeat      int // number of extra iterations, RepeatForever for no limit
	Ease        types.EasingMode

	OnUpdate func(value float32)
	// OnRepeat fires once at the start of every iteration after the first.
	OnRepeat func()
}

// Tween drives a float value from 0 to 1 over a repeating timeline. It is
// advanced explicitly so the owner decides which thread it runs on.
type Tween struct {
	cfg       Config
	target    *float32
	elapsed   time.Duration
	iteration int64
	done      bool
	killed    bool
}

// To animates *target from 0 to 1.
func To(target *float32, cfg Config) *Tween {
	t := &Tween{
		cfg:    cfg,
		target: target,
	}
	t.set(0)
	return t
}

// Advance moves the timeline forward by dt, firing OnRepeat for every
// iteration boundary crossed.
func (t *Tween) Advance(dt time.Duration) {
	if t.killed || t.done || dt < 0 {
		return
	}
	t.elapsed += dt

	if t.elapsed < t.cfg.Delay {
		t.set(0)
		return
	}

	local := t.elapsed - t.cfg.Delay
	cycle := t.cfg.Duration + t.cfg.RepeatDelay
	if cycle <= 0 {
		t.set(1)
		t.done = true
		return
	}

	iteration := int64(local / cycle)
	if t.cfg.Repeat >= 0 && iteration > int64(t.cfg.Repeat) {
		iteration = int64(t.cfg.Repeat)
		t.done = true
	}

	for t.iteration < iteration {
		t.iteration++
		if t.cfg.OnRepeat != nil {
			t.cfg.OnRepeat()
		}
		if t.killed {
			return
		}
	}

	if t.done {
		t.set(1)
		return
	}

	within := local - time.Duration(iteration)*cycle
	progress := float32(1)
	if t.cfg.Duration > 0 && within < t.cfg.Duration {
		progress = float32(within.Seconds() / t.cfg.Duration.Seconds())
	}
	t.set(Ease(t.cfg.Ease, progress))
}

// Iteration is the number of repeat boundaries crossed so far.
func (t *Tween) Iteration() int64 {
	return t.iteration
}

func (t *Tween) Elapsed() time.Duration {
	return t.elapsed
}

func (t *Tween) Done() bool {
	return t.done || t.killed
}

// Kill stops the tween; later calls to Advance do nothing.
func (t *Tween) Kill() {
	t.killed = true
}

func (t *Tween) set(v float32) {
	if t.target != nil {
		*t.target = v
	}
	if t.cfg.OnUpdate != nil {
		t.cfg.OnUpdate(v)
	}
}

package frame

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Callback is run once per frame with the time since the previous frame.
// A returned error is fatal for the loop.
type Callback func(dt time.Duration) error

// Loop holds at most one per-frame callback and feeds it clock deltas.
type Loop struct {
	clock    clockwork.Clock
	callback Callback
	last     time.Time
}

func NewLoop(clock clockwork.Clock) *Loop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Loop{clock: clock}
}

// Animation registers cb as the frame callback, replacing any previous one.
// The first frame after registration sees a zero delta.
func (l *Loop) Animation(cb Callback) {
	l.callback = cb
	l.last = l.clock.Now()
}

// Stop unregisters the callback.
func (l *Loop) Stop() {
	l.callback = nil
}

func (l *Loop) Active() bool {
	return l.callback != nil
}

// Tick runs the callback once. It does nothing when no callback is
// registered.
func (l *Loop) Tick() error {
	if l.callback == nil {
		return nil
	}
	now := l.clock.Now()
	dt := now.Sub(l.last)
	l.last = now
	return l.callback(dt)
}

// Run ticks at the given frame rate until ctx is done, the callback fails or
// it is unregistered. between, if set, runs before every tick on the same
// goroutine.
func (l *Loop) Run(ctx context.Context, framerate int, between func()) error {
	if framerate <= 0 {
		framerate = 60
	} else if framerate > 240 {
		framerate = 240
	}

	ticker := l.clock.NewTicker(time.Second / time.Duration(framerate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
		}

		if between != nil {
			between()
		}
		if !l.Active() {
			return nil
		}
		if err := l.Tick(); err != nil {
			return err
		}
	}
}

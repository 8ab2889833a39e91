package frame

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestLoop_TickDeltas(t *testing.T) {
	clock := clockwork.NewFakeClock()
	loop := NewLoop(clock)

	var deltas []time.Duration
	loop.Animation(func(dt time.Duration) error {
		deltas = append(deltas, dt)
		return nil
	})

	if err := loop.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	clock.Advance(16 * time.Millisecond)
	loop.Tick()
	clock.Advance(20 * time.Millisecond)
	loop.Tick()

	want := []time.Duration{0, 16 * time.Millisecond, 20 * time.Millisecond}
	if len(deltas) != len(want) {
		t.Fatalf("deltas = %v", deltas)
	}
	for i := range want {
		if deltas[i] != want[i] {
			t.Fatalf("delta %d = %v, want %v", i, deltas[i], want[i])
		}
	}
}

func TestLoop_TickAfterStop(t *testing.T) {
	loop := NewLoop(clockwork.NewFakeClock())
	calls := 0
	loop.Animation(func(time.Duration) error {
		calls++
		return nil
	})
	loop.Tick()
	loop.Stop()

	if err := loop.Tick(); err != nil {
		t.Fatalf("Tick after Stop: %v", err)
	}
	if calls != 1 {
		t.Fatalf("callback ran %d times", calls)
	}
	if loop.Active() {
		t.Fatal("loop still active after Stop")
	}
}

func TestLoop_RunStopsOnError(t *testing.T) {
	clock := clockwork.NewFakeClock()
	loop := NewLoop(clock)
	boom := errors.New("context lost")

	frames := 0
	loop.Animation(func(time.Duration) error {
		frames++
		if frames == 3 {
			return boom
		}
		return nil
	})

	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			clock.Advance(20 * time.Millisecond)
			time.Sleep(time.Millisecond)
		}
	}()

	err := loop.Run(context.Background(), 50, nil)
	close(stop)

	if !errors.Is(err, boom) {
		t.Fatalf("Run returned %v", err)
	}
	if frames != 3 {
		t.Fatalf("frames = %d", frames)
	}
}

func TestLoop_RunContextCancel(t *testing.T) {
	loop := NewLoop(clockwork.NewFakeClock())
	loop.Animation(func(time.Duration) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := loop.Run(ctx, 60, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v", err)
	}
}

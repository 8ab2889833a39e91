package crossfade

import (
	"math"
	"testing"
	"time"

	"github.com/matjam/crossfade/internal/render"
)

func testImages() []Image {
	return []Image{
		{Name: "image1", Texture: 11, CoveredScale: CoveredScale(16.0/9.0, TargetAspect)},
		{Name: "image2", Texture: 12, CoveredScale: CoveredScale(0.5, TargetAspect)},
		{Name: "image3", Texture: 13, CoveredScale: CoveredScale(3, TargetAspect)},
	}
}

func TestCoveredScale(t *testing.T) {
	aspects := []float64{0.25, 0.5, 1, 4.0 / 3.0, 16.0 / 9.0, 2, 21.0 / 9.0, 5}
	for _, aspect := range aspects {
		s := CoveredScale(aspect, TargetAspect)
		sx, sy := float64(s[0]), float64(s[1])

		if sx <= 0 || sx > 1 || sy <= 0 || sy > 1 {
			t.Fatalf("aspect %v: scale %v out of (0,1]", aspect, s)
		}
		// one side samples the full image, so there is no over-zoom
		if sx != 1 && sy != 1 {
			t.Fatalf("aspect %v: scale %v crops both sides", aspect, s)
		}
		// the sampled region has the frame's aspect, so there are no gaps
		region := aspect * sx / sy
		if math.Abs(region-TargetAspect) > 1e-5 {
			t.Fatalf("aspect %v: sampled region aspect %v, want %v", aspect, region, TargetAspect)
		}
	}

	if s := CoveredScale(TargetAspect, TargetAspect); s != [2]float32{1, 1} {
		t.Fatalf("matching aspect scale = %v", s)
	}
}

func TestController_Cycle(t *testing.T) {
	images := testImages()
	var u render.Uniforms
	c, err := NewController(images, &u, DefaultTiming())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	for n := 0; n < 100; n++ {
		current, next := c.Pair()
		if current != images[n%3] || next != images[(n+1)%3] {
			t.Fatalf("repeat %d: pair %s/%s", n, current.Name, next.Name)
		}
		if current.Texture == next.Texture {
			t.Fatalf("repeat %d: current equals next", n)
		}
		if u.Current.Texture != current.Texture || u.Next.Texture != next.Texture {
			t.Fatalf("repeat %d: uniforms %v/%v not in sync", n, u.Current, u.Next)
		}
		if u.Current.CoveredScale != current.CoveredScale || u.Next.CoveredScale != next.CoveredScale {
			t.Fatalf("repeat %d: covered scale not in sync", n)
		}
		if c.RepeatCount() != uint64(n) {
			t.Fatalf("repeat count %d, want %d", c.RepeatCount(), n)
		}
		c.onRepeat()
	}
}

func TestController_FullCycleTiming(t *testing.T) {
	var u render.Uniforms
	c, err := NewController(testImages(), &u, DefaultTiming())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	c.Advance(14 * time.Second)
	if c.RepeatCount() != 0 {
		t.Fatalf("repeat count at 14s = %d", c.RepeatCount())
	}
	if c.Progress() != 1 {
		t.Fatalf("progress during repeat delay = %v", c.Progress())
	}

	c.Advance(time.Second)
	if c.RepeatCount() != 1 {
		t.Fatalf("repeat count at 15s = %d, want 1", c.RepeatCount())
	}
	if c.Progress() != 0 {
		t.Fatalf("progress after repeat = %v", c.Progress())
	}
	if u.Current.Texture != 12 || u.Next.Texture != 13 {
		t.Fatalf("pair after one cycle = %d/%d", u.Current.Texture, u.Next.Texture)
	}

	c.Stop()
	c.Advance(time.Hour)
	if c.RepeatCount() != 1 {
		t.Fatalf("stopped controller kept cycling: %d", c.RepeatCount())
	}
}

func TestNewController_Validation(t *testing.T) {
	var u render.Uniforms
	if _, err := NewController(testImages()[:1], &u, DefaultTiming()); err == nil {
		t.Fatal("expected error for a single image")
	}
	timing := DefaultTiming()
	timing.Duration = 0
	if _, err := NewController(testImages(), &u, timing); err == nil {
		t.Fatal("expected error for zero duration")
	}
}

package crossfade

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matjam/crossfade/internal/render"
	"github.com/matjam/crossfade/internal/tween"
	"github.com/matjam/crossfade/internal/types"
)

// Image is a texture resident in the rendering context with its cover scale.
type Image struct {
	Name         string
	Texture      render.TextureID
	CoveredScale [2]float32
}

func (i Image) sampler() render.Sampler {
	return render.Sampler{Texture: i.Texture, CoveredScale: i.CoveredScale}
}

// Timing configures the progress tween.
type Timing struct {
	Delay       time.Duration
	Duration    time.Duration
	RepeatDelay time.Duration
	Easing      types.EasingMode
}

func DefaultTiming() Timing {
	return Timing{
		Delay:       6 * time.Second,
		Duration:    3 * time.Second,
		RepeatDelay: 6 * time.Second,
		Easing:      types.EasingEaseInOut,
	}
}

// Controller cycles a fixed ring of images through the current and next
// shader slots. Progress is continuous and owned by the tween; the pair only
// changes on repeat boundaries, so two textures are all the shader ever needs.
type Controller struct {
	images   []Image
	head     int // repeat counter modulo len(images)
	repeats  uint64
	uniforms *render.Uniforms
	tween    *tween.Tween
}

func NewController(images []Image, uniforms *render.Uniforms, timing Timing) (*Controller, error) {
	if len(images) < 2 {
		return nil, fmt.Errorf("crossfade needs at least 2 images, got %d", len(images))
	}
	if timing.Duration <= 0 {
		return nil, fmt.Errorf("crossfade duration must be positive, got %v", timing.Duration)
	}

	c := &Controller{
		images:   append([]Image(nil), images...),
		uniforms: uniforms,
	}
	c.apply()

	c.tween = tween.To(&uniforms.Progress, tween.Config{
		Delay:       timing.Delay,
		Duration:    timing.Duration,
		RepeatDelay: timing.RepeatDelay,
		Repeat:      tween.RepeatForever,
		Ease:        timing.Easing,
		OnRepeat:    c.onRepeat,
	})
	return c, nil
}

// Advance moves the crossfade timeline forward.
func (c *Controller) Advance(dt time.Duration) {
	c.tween.Advance(dt)
}

// Pair returns the images currently bound to the current and next slots.
func (c *Controller) Pair() (current, next Image) {
	n := len(c.images)
	return c.images[c.head], c.images[(c.head+1)%n]
}

// RepeatCount is the number of completed cycles.
func (c *Controller) RepeatCount() uint64 {
	return c.repeats
}

func (c *Controller) Progress() float32 {
	return c.uniforms.Progress
}

// Stop kills the tween; the uniforms keep their last values.
func (c *Controller) Stop() {
	c.tween.Kill()
}

func (c *Controller) onRepeat() {
	c.repeats++
	c.head = (c.head + 1) % len(c.images)
	c.apply()

	current, next := c.Pair()
	log.Debugf("crossfade cycle %d: %s -> %s", c.repeats, current.Name, next.Name)
}

func (c *Controller) apply() {
	current, next := c.Pair()
	c.uniforms.Current = current.sampler()
	c.uniforms.Next = next.sampler()
}

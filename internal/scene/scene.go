package scene

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matjam/crossfade/internal/assets"
	"github.com/matjam/crossfade/internal/crossfade"
	"github.com/matjam/crossfade/internal/frame"
	"github.com/matjam/crossfade/internal/orbit"
	"github.com/matjam/crossfade/internal/render"
)

// Plane size in world units, 16:9.
const (
	PlaneWidth  = 1.6
	PlaneHeight = 0.9
)

var imageNames = []string{"image1", "image2", "image3"}

type Options struct {
	Background     string
	CameraDistance float32
	Damping        float32
	Timing         crossfade.Timing
}

func DefaultOptions() Options {
	return Options{
		Background:     "#0a0a0a",
		CameraDistance: 1.8,
		Damping:        0.15,
		Timing:         crossfade.DefaultTiming(),
	}
}

// Snapshot is a copy of the scene state that is safe to read from other
// goroutines.
type Snapshot struct {
	RepeatCount uint64  `json:"repeat_count"`
	Current     string  `json:"current"`
	Next        string  `json:"next"`
	Progress    float32 `json:"progress"`
	Time        float32 `json:"time"`
	Disposed    bool    `json:"disposed"`
}

// Scene loops the image crossfade on a plane in front of an orbit camera.
type Scene struct {
	mu sync.Mutex

	rc         render.Context
	registry   *assets.Registry
	loop       *frame.Loop
	controls   *orbit.Controls
	controller *crossfade.Controller

	uniforms render.Uniforms
	plane    render.Plane
	textures []render.TextureID
	disposed bool
}

// New loads every asset and then builds the scene on rc. If any asset fails
// to load nothing is created on rc and the error is returned. Any later
// failure releases what was created along with the loaded assets. On success the
// frame callback is registered on loop.
func New(ctx context.Context, rc render.Context, registry *assets.Registry, loop *frame.Loop, opts Options) (*Scene, error) {
	if err := registry.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}

	s := &Scene{
		rc:       rc,
		registry: registry,
		loop:     loop,
	}
	if err := s.init(opts); err != nil {
		return nil, s.abort(err)
	}
	images, err := s.createPlane()
	if err != nil {
		return nil, s.abort(err)
	}
	if err := s.createRepeatAnimation(images, opts.Timing); err != nil {
		return nil, s.abort(err)
	}

	loop.Animation(s.anime)
	log.Infof("Scene ready with %d images", len(imageNames))
	return s, nil
}

func (s *Scene) init(opts Options) error {
	bg, err := colorful.Hex(opts.Background)
	if err != nil {
		return fmt.Errorf("background color %q: %w", opts.Background, err)
	}
	s.rc.SetBackground(bg)

	s.controls = orbit.New(opts.CameraDistance,
		orbit.WithDamping(opts.Damping),
		orbit.WithPan(false),
		orbit.WithZoom(false),
		orbit.WithPolarRange(math.Pi*0.3, math.Pi*0.7),
		orbit.WithAzimuthRange(-math.Pi*0.2, math.Pi*0.2),
	)
	s.rc.SetCamera(s.controls.Position(), s.controls.View())

	if src, ok := s.rc.(render.DragSource); ok {
		src.OnDrag(s.controls.Drag)
	}
	return nil
}

func (s *Scene) createPlane() ([]crossfade.Image, error) {
	images := make([]crossfade.Image, 0, len(imageNames))
	for _, name := range imageNames {
		tex := assets.Get[*assets.Texture](s.registry, name)
		id, err := s.rc.UploadTexture(tex)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", name, err)
		}
		s.textures = append(s.textures, id)
		images = append(images, crossfade.Image{
			Name:         name,
			Texture:      id,
			CoveredScale: crossfade.CoveredScale(tex.Aspect, crossfade.TargetAspect),
		})
	}

	env, err := s.rc.UploadCubeMap(assets.Get[*assets.CubeMap](s.registry, "env"))
	if err != nil {
		return nil, fmt.Errorf("upload env: %w", err)
	}
	s.textures = append(s.textures, env)

	s.uniforms = render.Uniforms{
		Current: render.Sampler{Texture: images[0].Texture, CoveredScale: images[0].CoveredScale},
		Next:    render.Sampler{Texture: images[1].Texture, CoveredScale: images[1].CoveredScale},
		Env:     env,
	}

	s.plane, err = s.rc.CreatePlane(PlaneWidth, PlaneHeight, &s.uniforms)
	if err != nil {
		return nil, fmt.Errorf("create plane: %w", err)
	}
	return images, nil
}

func (s *Scene) createRepeatAnimation(images []crossfade.Image, timing crossfade.Timing) error {
	c, err := crossfade.NewController(images, &s.uniforms, timing)
	if err != nil {
		return err
	}
	s.controller = c
	return nil
}

// anime is the per-frame callback.
func (s *Scene) anime(dt time.Duration) error {
	s.mu.Lock()
	s.controls.Update()
	s.uniforms.Time += float32(dt.Seconds())
	s.controller.Advance(dt)
	s.mu.Unlock()

	s.rc.SetCamera(s.controls.Position(), s.controls.View())
	return s.rc.Render()
}

func (s *Scene) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Time:     s.uniforms.Time,
		Progress: s.uniforms.Progress,
		Disposed: s.disposed,
	}
	if s.controller != nil {
		current, next := s.controller.Pair()
		snap.RepeatCount = s.controller.RepeatCount()
		snap.Current = current.Name
		snap.Next = next.Name
	}
	return snap
}

// Dispose unregisters the frame callback and releases the plane, the scene's
// textures and the loaded assets. The rendering context is borrowed and stays
// open; its owner disposes it. Later calls do nothing.
func (s *Scene) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.disposed = true

	s.loop.Stop()
	if s.controller != nil {
		s.controller.Stop()
	}
	s.release()
	s.registry.Release()
	log.Info("Scene disposed")
}

func (s *Scene) release() {
	if s.plane != nil {
		s.plane.Dispose()
		s.plane = nil
	}
	for _, id := range s.textures {
		s.rc.DeleteTexture(id)
	}
	s.textures = nil
}

// abort undoes a partially built scene.
func (s *Scene) abort(err error) error {
	s.release()
	s.registry.Release()
	return err
}

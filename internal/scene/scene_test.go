package scene

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jonboulle/clockwork"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matjam/crossfade/internal/assets"
	"github.com/matjam/crossfade/internal/frame"
	"github.com/matjam/crossfade/internal/render"
)

type fakePlane struct {
	rc       *fakeContext
	uniforms *render.Uniforms
	disposed bool
}

func (p *fakePlane) Dispose() { p.disposed = true }

type fakeContext struct {
	t          *testing.T
	background colorful.Color
	eye        mgl32.Vec3
	nextID     render.TextureID
	live       map[render.TextureID]bool
	planes     []*fakePlane
	renders    int
	drag       func(dx, dy, height float64)
	disposed   bool
}

func newFakeContext(t *testing.T) *fakeContext {
	return &fakeContext{t: t, nextID: 1, live: map[render.TextureID]bool{}}
}

func (f *fakeContext) SetBackground(c colorful.Color)            { f.background = c }
func (f *fakeContext) SetCamera(eye mgl32.Vec3, view mgl32.Mat4) { f.eye = eye }
func (f *fakeContext) OnDrag(h func(dx, dy, height float64))     { f.drag = h }
func (f *fakeContext) Dispose()                                  { f.disposed = true }

func (f *fakeContext) UploadTexture(tex *assets.Texture) (render.TextureID, error) {
	return f.alloc(), nil
}

func (f *fakeContext) UploadCubeMap(cube *assets.CubeMap) (render.TextureID, error) {
	return f.alloc(), nil
}

func (f *fakeContext) alloc() render.TextureID {
	id := f.nextID
	f.nextID++
	f.live[id] = true
	return id
}

func (f *fakeContext) DeleteTexture(id render.TextureID) {
	if !f.live[id] {
		f.t.Fatalf("texture %d deleted twice", id)
	}
	delete(f.live, id)
}

func (f *fakeContext) CreatePlane(width, height float32, u *render.Uniforms) (render.Plane, error) {
	p := &fakePlane{rc: f, uniforms: u}
	f.planes = append(f.planes, p)
	return p, nil
}

func (f *fakeContext) Render() error {
	for _, p := range f.planes {
		if p.disposed {
			f.t.Fatal("render touched a disposed plane")
		}
		for _, id := range []render.TextureID{p.uniforms.Current.Texture, p.uniforms.Next.Texture, p.uniforms.Env} {
			if !f.live[id] {
				f.t.Fatalf("render sampled released texture %d", id)
			}
		}
	}
	f.renders++
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func testRegistry(t *testing.T, src func(assets.Fetcher) assets.Fetcher) *assets.Registry {
	t.Helper()
	fsys := fstest.MapFS{
		"image1.png": {Data: pngBytes(t, 16, 9)},
		"image2.png": {Data: pngBytes(t, 9, 16)},
		"image3.png": {Data: pngBytes(t, 30, 10)},
	}
	for _, face := range assets.CubeFaces("png") {
		fsys["env/"+face] = &fstest.MapFile{Data: pngBytes(t, 4, 4)}
	}
	var f assets.Fetcher = assets.NewFSFetcher(fsys)
	if src != nil {
		f = src(f)
	}
	return assets.Default(f, "png", 0)
}

type rejectFetcher struct {
	assets.Fetcher
	name string
}

func (r *rejectFetcher) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == r.name {
		return nil, errors.New("404")
	}
	return r.Fetcher.Fetch(ctx, name)
}

func TestScene_New(t *testing.T) {
	rc := newFakeContext(t)
	loop := frame.NewLoop(clockwork.NewFakeClock())

	s, err := New(context.Background(), rc, testRegistry(t, nil), loop, DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if rc.background.Hex() != "#0a0a0a" {
		t.Fatalf("background = %s", rc.background.Hex())
	}
	if d := rc.eye.Sub(mgl32.Vec3{0, 0, 1.8}).Len(); d > 1e-5 {
		t.Fatalf("camera = %v", rc.eye)
	}
	if len(rc.planes) != 1 {
		t.Fatalf("planes = %d", len(rc.planes))
	}
	if rc.drag == nil {
		t.Fatal("drag handler not wired")
	}
	if !loop.Active() {
		t.Fatal("frame callback not registered")
	}

	snap := s.Snapshot()
	if snap.Current != "image1" || snap.Next != "image2" || snap.RepeatCount != 0 {
		t.Fatalf("snapshot = %+v", snap)
	}

	u := rc.planes[0].uniforms
	if u.Current.CoveredScale != [2]float32{1, 1} {
		t.Fatalf("image1 covered scale = %v", u.Current.CoveredScale)
	}
}

func TestScene_FrameCycle(t *testing.T) {
	rc := newFakeContext(t)
	clock := clockwork.NewFakeClock()
	loop := frame.NewLoop(clock)

	s, err := New(context.Background(), rc, testRegistry(t, nil), loop, DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 15*50; i++ {
		clock.Advance(20 * time.Millisecond)
		if err := loop.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}

	snap := s.Snapshot()
	if snap.RepeatCount != 1 {
		t.Fatalf("repeat count after 15s = %d, want 1", snap.RepeatCount)
	}
	if snap.Current != "image2" || snap.Next != "image3" {
		t.Fatalf("pair after one cycle = %s/%s", snap.Current, snap.Next)
	}
	if snap.Time < 14.99 || snap.Time > 15.01 {
		t.Fatalf("time uniform = %v", snap.Time)
	}
	if rc.renders != 15*50 {
		t.Fatalf("renders = %d", rc.renders)
	}
}

func TestScene_LoadFailureCreatesNothing(t *testing.T) {
	rc := newFakeContext(t)
	loop := frame.NewLoop(clockwork.NewFakeClock())
	reg := testRegistry(t, func(f assets.Fetcher) assets.Fetcher {
		return &rejectFetcher{Fetcher: f, name: "image2.png"}
	})

	s, err := New(context.Background(), rc, reg, loop, DefaultOptions())
	if err == nil {
		t.Fatal("expected New to fail")
	}
	if s != nil {
		t.Fatal("scene returned on failure")
	}
	if len(rc.planes) != 0 || len(rc.live) != 0 {
		t.Fatalf("created %d planes and %d textures", len(rc.planes), len(rc.live))
	}
	if loop.Active() {
		t.Fatal("frame callback registered on failure")
	}
}

func TestScene_Dispose(t *testing.T) {
	rc := newFakeContext(t)
	clock := clockwork.NewFakeClock()
	loop := frame.NewLoop(clock)

	s, err := New(context.Background(), rc, testRegistry(t, nil), loop, DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	clock.Advance(time.Second)
	loop.Tick()

	s.Dispose()
	if len(rc.live) != 0 {
		t.Fatalf("%d textures still live", len(rc.live))
	}
	if !rc.planes[0].disposed {
		t.Fatal("plane not disposed")
	}
	if rc.disposed {
		t.Fatal("borrowed context must not be disposed by the scene")
	}

	renders := rc.renders
	clock.Advance(time.Second)
	if err := loop.Tick(); err != nil {
		t.Fatalf("Tick after Dispose: %v", err)
	}
	if rc.renders != renders {
		t.Fatal("frame ran after Dispose")
	}

	s.Dispose()
	if !s.Snapshot().Disposed {
		t.Fatal("snapshot should report disposed")
	}
}

func TestScene_BadBackground(t *testing.T) {
	opts := DefaultOptions()
	opts.Background = "not-a-color"
	reg := testRegistry(t, nil)
	_, err := New(context.Background(), newFakeContext(t), reg, frame.NewLoop(clockwork.NewFakeClock()), opts)
	if err == nil {
		t.Fatal("expected error for invalid background")
	}
	if reg.Loaded() {
		t.Fatal("loaded assets kept after a failed New")
	}
}

func TestScene_BadTimingReleasesEverything(t *testing.T) {
	rc := newFakeContext(t)
	opts := DefaultOptions()
	opts.Timing.Duration = 0
	reg := testRegistry(t, nil)

	_, err := New(context.Background(), rc, reg, frame.NewLoop(clockwork.NewFakeClock()), opts)
	if err == nil {
		t.Fatal("expected error for zero duration")
	}
	if reg.Loaded() {
		t.Fatal("loaded assets kept after a failed New")
	}
	if len(rc.live) != 0 {
		t.Fatalf("%d textures left on the context", len(rc.live))
	}
	if len(rc.planes) != 1 || !rc.planes[0].disposed {
		t.Fatal("plane not disposed")
	}
}

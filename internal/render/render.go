package render

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matjam/crossfade/internal/assets"
)

// ErrClosed is returned by Render once the surface has been closed by the user.
var ErrClosed = errors.New("render surface closed")

type TextureID uint32

// Sampler is one image slot of the crossfade shader.
type Sampler struct {
	Texture      TextureID
	CoveredScale [2]float32
}

// Uniforms is the shader state of the crossfade plane. The plane reads it at
// draw time, so writes are visible on the next Render.
type Uniforms struct {
	Current  Sampler
	Next     Sampler
	Env      TextureID
	Time     float32
	Progress float32
}

// Plane is a drawable quad bound to a Uniforms value.
type Plane interface {
	Dispose()
}

// Context is the rendering context borrowed from the embedding application.
// All methods must be called from the thread that owns the GL context.
type Context interface {
	SetBackground(c colorful.Color)
	SetCamera(eye mgl32.Vec3, view mgl32.Mat4)
	UploadTexture(tex *assets.Texture) (TextureID, error)
	UploadCubeMap(cube *assets.CubeMap) (TextureID, error)
	DeleteTexture(id TextureID)
	CreatePlane(width, height float32, uniforms *Uniforms) (Plane, error)
	Render() error
	Dispose()
}

// DragSource is implemented by contexts that report pointer drags. The
// handler receives the drag delta in pixels and the surface height.
type DragSource interface {
	OnDrag(func(dx, dy, height float64))
}

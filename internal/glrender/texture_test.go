package glrender

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/matjam/crossfade/internal/assets"
)

func TestInternalFormat(t *testing.T) {
	if got := internalFormat(assets.ColorSpaceNone); got != gl.RGBA8 {
		t.Fatalf("no color space stored as %#x, want RGBA8", got)
	}
	if got := internalFormat(assets.ColorSpaceSRGB); got != gl.SRGB8_ALPHA8 {
		t.Fatalf("srgb stored as %#x, want SRGB8_ALPHA8", got)
	}
}

// Images decoded by the asset loader must reach the shader unconverted.
func TestLoadedTexturesAreNotSRGB(t *testing.T) {
	tex := &assets.Texture{Image: image.NewRGBA(image.Rect(0, 0, 2, 2))}
	if got := internalFormat(tex.ColorSpace); got != gl.RGBA8 {
		t.Fatalf("default texture stored as %#x, want RGBA8", got)
	}
}

func TestVFlip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 3))
	for y := 0; y < 3; y++ {
		src.SetRGBA(0, y, color.RGBA{R: uint8(y), A: 255})
	}
	dst := vflip(src)
	for y := 0; y < 3; y++ {
		if got := dst.RGBAAt(0, y).R; got != uint8(2-y) {
			t.Fatalf("row %d = %d, want %d", y, got, 2-y)
		}
	}
}

func TestPlaneVertices(t *testing.T) {
	v := planeVertices(1.6, 0.9)
	if len(v) != 6*5 {
		t.Fatalf("len = %d", len(v))
	}
	for i := 0; i < 6; i++ {
		x, y, u, w := v[i*5], v[i*5+1], v[i*5+3], v[i*5+4]
		if (x > 0) != (u == 1) || (y > 0) != (w == 1) {
			t.Fatalf("vertex %d: pos (%v,%v) uv (%v,%v)", i, x, y, u, w)
		}
	}
}

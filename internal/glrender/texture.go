package glrender

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/matjam/crossfade/internal/assets"
	"github.com/matjam/crossfade/internal/render"
)

func wrapMode(w assets.WrapMode) int32 {
	switch w {
	case assets.WrapRepeat:
		return gl.REPEAT
	case assets.WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}

// internalFormat picks the GL storage format. sRGB data is decoded to linear
// on sampling; everything else is sampled unchanged.
func internalFormat(cs assets.ColorSpace) int32 {
	if cs == assets.ColorSpaceSRGB {
		return gl.SRGB8_ALPHA8
	}
	return gl.RGBA8
}

// UploadTexture creates a mipmapped 2D texture. Rows are flipped so that
// v = 0 is the bottom of the image.
func (r *Renderer) UploadTexture(tex *assets.Texture) (render.TextureID, error) {
	if tex == nil || tex.Image == nil {
		return 0, fmt.Errorf("upload texture: no image data")
	}
	rgba := vflip(tex.Image)
	b := rgba.Bounds()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapMode(tex.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapMode(tex.WrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat(tex.ColorSpace),
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.textures[render.TextureID(id)] = gl.TEXTURE_2D
	return render.TextureID(id), nil
}

// UploadCubeMap creates a cube map from six faces in +X, -X, +Y, -Y, +Z, -Z
// order.
func (r *Renderer) UploadCubeMap(cube *assets.CubeMap) (render.TextureID, error) {
	if cube == nil {
		return 0, fmt.Errorf("upload cube map: no data")
	}
	for i, face := range cube.Faces {
		if face == nil {
			return 0, fmt.Errorf("upload cube map: face %d is nil", i)
		}
	}

	format := internalFormat(cube.ColorSpace)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	for i, face := range cube.Faces {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, format,
			int32(cube.Size), int32(cube.Size), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(face.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	r.textures[render.TextureID(id)] = gl.TEXTURE_CUBE_MAP
	return render.TextureID(id), nil
}

func (r *Renderer) DeleteTexture(id render.TextureID) {
	if _, ok := r.textures[id]; !ok {
		return
	}
	delete(r.textures, id)
	glID := uint32(id)
	gl.DeleteTextures(1, &glID)
}

func vflip(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	rowLen := b.Dx() * 4
	h := b.Dy()
	for y := 0; y < h; y++ {
		srcOff := src.PixOffset(b.Min.X, b.Min.Y+y)
		dstOff := dst.PixOffset(0, h-1-y)
		copy(dst.Pix[dstOff:dstOff+rowLen], src.Pix[srcOff:srcOff+rowLen])
	}
	return dst
}

package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

var ErrCubeFace = errors.New("invalid cube map face")

type WrapMode int

const (
	WrapClampToEdge WrapMode = iota
	WrapRepeat
	WrapMirroredRepeat
)

type ColorSpace string

const (
	// ColorSpaceNone marks data sampled as-is, without sRGB decoding.
	ColorSpaceNone ColorSpace = ""
	ColorSpaceSRGB ColorSpace = "srgb"
)

// Texture is a decoded 2D image ready for upload.
type Texture struct {
	Name   string
	Image  *image.RGBA
	Width  int
	Height int
	// Aspect is width/height of the source image in pixels.
	Aspect float64
	WrapS  WrapMode
	WrapT  WrapMode

	// ColorSpace is ColorSpaceNone for loaded images: texels reach the
	// shader exactly as stored.
	ColorSpace ColorSpace
}

// CubeMap holds six square faces in +X, -X, +Y, -Y, +Z, -Z order.
type CubeMap struct {
	Faces      [6]*image.RGBA
	Size       int
	ColorSpace ColorSpace
}

// CubeFaces returns the face file names in upload order.
func CubeFaces(ext string) [6]string {
	var faces [6]string
	for i, f := range []string{"px", "nx", "py", "ny", "pz", "nz"} {
		faces[i] = f + "." + ext
	}
	return faces
}

// TextureLoader decodes a 2D texture with mirrored-repeat wrapping and no
// colour space conversion. Images
// larger than maxSize on either side are scaled down; maxSize <= 0 disables
// the limit.
func TextureLoader(file string, maxSize int) Loader {
	return func(ctx context.Context, src Fetcher) (any, error) {
		img, err := decode(ctx, src, file)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			return nil, fmt.Errorf("%s: empty image", file)
		}

		return &Texture{
			Name:   file,
			Image:  fitWithin(img, maxSize),
			Width:  b.Dx(),
			Height: b.Dy(),
			Aspect: float64(b.Dx()) / float64(b.Dy()),
			WrapS:  WrapMirroredRepeat,
			WrapT:  WrapMirroredRepeat,

			ColorSpace: ColorSpaceNone,
		}, nil
	}
}

// CubeMapLoader decodes the six faces under dir. The result is tagged with
// ColorSpaceNone.
func CubeMapLoader(dir string, faces [6]string) Loader {
	return func(ctx context.Context, src Fetcher) (any, error) {
		var decoded [6]image.Image

		g, gctx := errgroup.WithContext(ctx)
		for i, face := range faces {
			g.Go(func() error {
				img, err := decode(gctx, src, path.Join(dir, face))
				if err != nil {
					return err
				}
				decoded[i] = img
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		cube := &CubeMap{ColorSpace: ColorSpaceNone}
		for i, img := range decoded {
			b := img.Bounds()
			if b.Dx() != b.Dy() {
				return nil, fmt.Errorf("%w: %s is %dx%d, faces must be square", ErrCubeFace, faces[i], b.Dx(), b.Dy())
			}
			if i == 0 {
				cube.Size = b.Dx()
			} else if b.Dx() != cube.Size {
				return nil, fmt.Errorf("%w: %s is %d pixels, expected %d", ErrCubeFace, faces[i], b.Dx(), cube.Size)
			}
			cube.Faces[i] = toRGBA(img)
		}
		return cube, nil
	}
}

func decode(ctx context.Context, src Fetcher, name string) (image.Image, error) {
	rc, err := src.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// fitWithin scales img down, keeping its aspect ratio, so that neither side
// exceeds maxSize.
func fitWithin(img image.Image, maxSize int) *image.RGBA {
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	if maxSize <= 0 || (srcW <= maxSize && srcH <= maxSize) {
		return toRGBA(img)
	}

	scale := float64(maxSize) / float64(max(srcW, srcH))
	w := max(1, int(float64(srcW)*scale))
	h := max(1, int(float64(srcH)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

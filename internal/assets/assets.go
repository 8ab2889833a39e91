package assets

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

var ErrNotLoaded = errors.New("assets not loaded")

// Loader produces the data for a single asset using the registry's source.
type Loader func(ctx context.Context, src Fetcher) (any, error)

// Asset is a named resource. Data is populated once by Registry.Load and is
// read-only afterwards.
type Asset struct {
	Name   string
	Loader Loader
	Data   any
}

// Registry holds a fixed set of named assets that are loaded together.
type Registry struct {
	src    Fetcher
	assets []*Asset
	loaded bool
}

func NewRegistry(src Fetcher, assets ...*Asset) *Registry {
	return &Registry{
		src:    src,
		assets: assets,
	}
}

// Default returns the registry for the three crossfade images and the
// environment cube map.
func Default(src Fetcher, ext string, maxTextureSize int) *Registry {
	if ext == "" {
		ext = "webp"
	}
	return NewRegistry(src,
		&Asset{Name: "image1", Loader: TextureLoader("image1."+ext, maxTextureSize)},
		&Asset{Name: "image2", Loader: TextureLoader("image2."+ext, maxTextureSize)},
		&Asset{Name: "image3", Loader: TextureLoader("image3."+ext, maxTextureSize)},
		&Asset{Name: "env", Loader: CubeMapLoader("env", CubeFaces(ext))},
	)
}

// Load runs every loader concurrently and waits for all of them. The first
// failure cancels the remaining loads; nothing is published unless every
// asset succeeded.
func (r *Registry) Load(ctx context.Context) error {
	results := make([]any, len(r.assets))

	g, gctx := errgroup.WithContext(ctx)
	for i, a := range r.assets {
		g.Go(func() error {
			data, err := a.Loader(gctx, r.src)
			if err != nil {
				return fmt.Errorf("load %s: %w", a.Name, err)
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, a := range r.assets {
		a.Data = results[i]
	}
	r.loaded = true
	return nil
}

func (r *Registry) Loaded() bool {
	return r.loaded
}

// Names lists the registered asset names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.assets))
	for i, a := range r.assets {
		names[i] = a.Name
	}
	return names
}

// Release drops all loaded data.
func (r *Registry) Release() {
	for _, a := range r.assets {
		a.Data = nil
	}
	r.loaded = false
}

// Get returns the data of the named asset. Asking for an unregistered name,
// asking before Load succeeded or asking for the wrong type is a programming
// error and panics.
func Get[T any](r *Registry, name string) T {
	if !r.loaded {
		panic(fmt.Sprintf("assets: get %q: %v", name, ErrNotLoaded))
	}
	for _, a := range r.assets {
		if a.Name != name {
			continue
		}
		data, ok := a.Data.(T)
		if !ok {
			panic(fmt.Sprintf("assets: %q holds %T, not %T", name, a.Data, data))
		}
		return data
	}
	panic(fmt.Sprintf("assets: %q is not registered", name))
}

package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Controls orbits a camera around a target using spherical coordinates.
// Polar angle is measured from +Y, azimuth around +Y with 0 facing +Z.
//
// Input only accumulates a pending rotation; Update applies it, so Update
// must be called once per frame.
type Controls struct {
	target mgl32.Vec3

	radius  float32
	polar   float32
	azimuth float32

	// pending rotation not yet applied by Update
	deltaPolar   float32
	deltaAzimuth float32

	enableDamping bool
	dampingFactor float32
	rotateSpeed   float32
	enableZoom    bool
	enablePan     bool
	zoomSpeed     float32

	minPolar, maxPolar     float32
	minAzimuth, maxAzimuth float32
	minRadius, maxRadius   float32
}

// Option configures Controls.
type Option func(*Controls)

// WithDamping enables inertia: each Update applies factor of the pending
// rotation and keeps the rest for later frames.
func WithDamping(factor float32) Option {
	return func(c *Controls) {
		c.enableDamping = factor > 0
		c.dampingFactor = factor
	}
}

func WithPolarRange(min, max float32) Option {
	return func(c *Controls) {
		c.minPolar = min
		c.maxPolar = max
	}
}

func WithAzimuthRange(min, max float32) Option {
	return func(c *Controls) {
		c.minAzimuth = min
		c.maxAzimuth = max
	}
}

func WithZoom(enabled bool) Option {
	return func(c *Controls) { c.enableZoom = enabled }
}

func WithPan(enabled bool) Option {
	return func(c *Controls) { c.enablePan = enabled }
}

func WithRotateSpeed(speed float32) Option {
	return func(c *Controls) { c.rotateSpeed = speed }
}

// New places the camera at distance on +Z looking at the origin.
func New(distance float32, options ...Option) *Controls {
	c := &Controls{
		radius:      distance,
		polar:       math.Pi / 2,
		rotateSpeed: 1,
		enableZoom:  true,
		enablePan:   true,
		zoomSpeed:   1,

		minPolar:   0,
		maxPolar:   math.Pi,
		minAzimuth: float32(math.Inf(-1)),
		maxAzimuth: float32(math.Inf(1)),
		minRadius:  0,
		maxRadius:  float32(math.Inf(1)),
	}
	for _, option := range options {
		option(c)
	}
	c.clamp()
	return c
}

// Rotate queues a rotation in radians.
func (c *Controls) Rotate(dAzimuth, dPolar float32) {
	c.deltaAzimuth += dAzimuth
	c.deltaPolar += dPolar
}

// Drag converts a pointer drag in pixels into a rotation; a drag across the
// full surface height turns the camera by a full circle.
func (c *Controls) Drag(dx, dy, height float64) {
	if height <= 0 {
		return
	}
	c.Rotate(
		-float32(2*math.Pi*dx/height)*c.rotateSpeed,
		-float32(2*math.Pi*dy/height)*c.rotateSpeed,
	)
}

// Zoom scales the orbit radius. No-op while zoom is disabled.
func (c *Controls) Zoom(scale float32) {
	if !c.enableZoom || scale <= 0 {
		return
	}
	c.radius /= float32(math.Pow(float64(scale), float64(c.zoomSpeed)))
	c.clamp()
}

// Pan moves the target in the camera plane. No-op while pan is disabled.
func (c *Controls) Pan(dx, dy float32) {
	if !c.enablePan {
		return
	}
	view := c.View()
	right := mgl32.Vec3{view[0], view[4], view[8]}
	up := mgl32.Vec3{view[1], view[5], view[9]}
	c.target = c.target.Add(right.Mul(-dx)).Add(up.Mul(dy))
}

// Update applies the pending rotation and reports whether the camera moved.
func (c *Controls) Update() bool {
	prevAzimuth, prevPolar := c.azimuth, c.polar

	if c.enableDamping {
		c.azimuth += c.deltaAzimuth * c.dampingFactor
		c.polar += c.deltaPolar * c.dampingFactor
		c.deltaAzimuth *= 1 - c.dampingFactor
		c.deltaPolar *= 1 - c.dampingFactor
	} else {
		c.azimuth += c.deltaAzimuth
		c.polar += c.deltaPolar
		c.deltaAzimuth = 0
		c.deltaPolar = 0
	}
	c.clamp()

	return c.azimuth != prevAzimuth || c.polar != prevPolar
}

func (c *Controls) clamp() {
	c.azimuth = clamp(c.azimuth, c.minAzimuth, c.maxAzimuth)
	c.polar = clamp(c.polar, c.minPolar, c.maxPolar)
	// keep away from the poles where the up vector degenerates
	const eps = 1e-6
	c.polar = clamp(c.polar, eps, math.Pi-eps)
	c.radius = clamp(c.radius, c.minRadius, c.maxRadius)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (c *Controls) Position() mgl32.Vec3 {
	sinPolar := float32(math.Sin(float64(c.polar)))
	return mgl32.Vec3{
		c.target[0] + c.radius*sinPolar*float32(math.Sin(float64(c.azimuth))),
		c.target[1] + c.radius*float32(math.Cos(float64(c.polar))),
		c.target[2] + c.radius*sinPolar*float32(math.Cos(float64(c.azimuth))),
	}
}

// View returns the look-at matrix for the current position.
func (c *Controls) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.target, mgl32.Vec3{0, 1, 0})
}

func (c *Controls) Target() mgl32.Vec3 { return c.target }
func (c *Controls) Radius() float32    { return c.radius }
func (c *Controls) Polar() float32     { return c.polar }
func (c *Controls) Azimuth() float32   { return c.azimuth }

package tween

import "github.com/matjam/crossfade/internal/types"

// Ease maps linear progress t in [0,1] through the named curve. The
// ease-in-out curve is the quadratic one ("power2").
func Ease(mode types.EasingMode, t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	switch mode {
	case types.EasingLinear:
		return t
	case types.EasingEaseIn:
		return t * t
	case types.EasingEaseOut:
		return t * (2 - t)
	case types.EasingEaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	default:
		return t
	}
}

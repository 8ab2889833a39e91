package crossfade

// TargetAspect is the frame the images are fitted to.
const TargetAspect = 16.0 / 9.0

// CoveredScale returns the UV scale that makes an image of the given aspect
// cover a frame of aspect target. The shader samples
// (uv - 0.5) * scale + 0.5, so both components are in (0, 1], the larger is
// exactly 1 and the sampled region always has the frame's aspect: the excess
// side is cropped, nothing is letterboxed and nothing is zoomed further than
// needed.
func CoveredScale(aspect, target float64) [2]float32 {
	if aspect <= 0 || target <= 0 {
		return [2]float32{1, 1}
	}
	ratio := target / aspect
	if ratio < 1 {
		// image wider than the frame, crop left and right
		return [2]float32{float32(ratio), 1}
	}
	return [2]float32{1, float32(1 / ratio)}
}

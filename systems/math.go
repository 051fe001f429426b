package systems

import "gonum.org/v1/gonum/spatial/r2"

// Clamp functions for common value ranges

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// ClampToBox clamps each axis of p independently into b.
func ClampToBox(p r2.Vec, b r2.Box) r2.Vec {
	return r2.Vec{
		X: clampFloat(p.X, b.Min.X, b.Max.X),
		Y: clampFloat(p.Y, b.Min.Y, b.Max.Y),
	}
}

// BoxContains reports whether p lies inside b, edges included.
func BoxContains(b r2.Box, p r2.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Vector functions

// ClampMagnitude rescales v to length max when it is longer, keeping its direction.
func ClampMagnitude(v r2.Vec, max float64) r2.Vec {
	if max <= 0 {
		return r2.Vec{}
	}
	n := r2.Norm(v)
	if n <= max {
		return v
	}
	return r2.Scale(max/n, v)
}

// distanceSq returns the squared distance between two points.
func distanceSq(a, b r2.Vec) float64 {
	return r2.Norm2(r2.Sub(a, b))
}

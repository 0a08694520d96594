// Package geom provides angle and orientation helpers for track geometry.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WrapRad wraps an angle in radians into (-pi, pi].
func WrapRad(a float32) float32 {
	r := math.Mod(float64(a), 2*math.Pi)
	if r > math.Pi {
		r -= 2 * math.Pi
	} else if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return float32(r)
}

// WrapDeg wraps an angle in degrees into (-180, 180].
func WrapDeg(a float32) float32 {
	d := math.Mod(float64(a), 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return float32(d)
}

// AngleBetween returns the unsigned angle in radians between two vectors.
func AngleBetween(a, b mgl32.Vec3) float32 {
	d := float64(a.Normalize().Dot(b.Normalize()))
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return float32(math.Acos(d))
}

// Pitch returns the elevation angle of a direction in radians.
func Pitch(dir mgl32.Vec3) float32 {
	return float32(math.Asin(float64(dir.Normalize().Y())))
}

// Yaw returns the heading angle of a direction about the world up axis,
// in radians. A direction along +Z has yaw 0.
func Yaw(dir mgl32.Vec3) float32 {
	return float32(math.Atan2(float64(dir.X()), float64(dir.Z())))
}

// Package camera provides the orbit camera used to watch the race.
package camera

import (
	gomath "math"

	"github.com/Faultbox/racer/pkg/math"
)

// Polar angle limits. The lower bound keeps the view direction from
// becoming parallel to the up vector.
const (
	MinPolar = 0.01
	MaxPolar = float32(gomath.Pi)
)

// OrbitCamera orbits a target point on a sphere and projects
// orthographically. The scene is Z-up.
type OrbitCamera struct {
	// Point the camera looks at
	Target math.Vec3
	Up     math.Vec3

	// Spherical coordinates around Target (radians)
	Distance float32
	Azimuth  float32 // around +Z, measured from +X
	Polar    float32 // from +Z

	// Orthographic half-height and depth half-range
	Extent    float32
	Clip      float32
	MinExtent float32
	MinClip   float32

	// Sensitivity
	ZoomStep        float32 // fraction of extent per wheel notch
	DragSensitivity float32 // radians per pixel

	// Follow makes Track move the target.
	Follow bool
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Up:              math.Vec3{Z: 1},
		Distance:        10,
		Azimuth:         -gomath.Pi / 2,
		Polar:           gomath.Pi / 3,
		Extent:          8,
		Clip:            50,
		MinExtent:       1,
		MinClip:         5,
		ZoomStep:        0.1,
		DragSensitivity: 0.01,
		Follow:          true,
	}
}

// Position returns the camera position in world space:
// Target + Distance·(sinP·cosA, sinP·sinA, cosP).
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := gomath.Sincos(float64(c.Polar))
	sa, ca := gomath.Sincos(float64(c.Azimuth))

	offset := math.Vec3{
		X: float32(sp * ca),
		Y: float32(sp * sa),
		Z: float32(cp),
	}
	return c.Target.Add(offset.Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, c.Up)
}

// Projection returns the orthographic projection for the given
// width/height aspect ratio.
func (c *OrbitCamera) Projection(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	w := c.Extent * aspect
	return math.Ortho(-w, w, -c.Extent, c.Extent, -c.Clip, c.Clip)
}

// Orbit rotates the camera by the given angle deltas (radians).
// Azimuth wraps modulo 2π; polar is clamped to [MinPolar, MaxPolar].
func (c *OrbitCamera) Orbit(dAzimuth, dPolar float32) {
	c.Azimuth = math.WrapRadians(c.Azimuth + dAzimuth)
	c.Polar = math.Clamp(c.Polar+dPolar, MinPolar, MaxPolar)
}

// HandleDrag orbits by a pointer movement in pixels.
func (c *OrbitCamera) HandleDrag(dx, dy float32) {
	c.Orbit(-dx*c.DragSensitivity, -dy*c.DragSensitivity)
}

// Zoom changes the orthographic extent and clip distance. Positive delta
// zooms in. Both values are clamped to their minimums.
func (c *OrbitCamera) Zoom(delta float32) {
	scale := 1 - delta*c.ZoomStep
	if scale <= 0 {
		scale = c.ZoomStep
	}
	c.Extent = max(c.Extent*scale, c.MinExtent)
	c.Clip = max(c.Clip*scale, c.MinClip)
}

// Track moves the target to pos when following is enabled.
func (c *OrbitCamera) Track(pos math.Vec3) {
	if c.Follow {
		c.Target = pos
	}
}

// ToggleFollow flips follow mode and returns the new state.
func (c *OrbitCamera) ToggleFollow() bool {
	c.Follow = !c.Follow
	return c.Follow
}

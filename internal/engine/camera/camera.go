// Package camera provides the orbit camera used to inspect loaded models.
package camera

import (
	gomath "math"

	"github.com/Faultbox/objscene/internal/engine/model"
	"github.com/Faultbox/objscene/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// AutoRotate is the yaw speed in radians per second applied by Update.
	AutoRotate float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        5.0,
		RotationX:       0.4,
		MinDistance:     0.1,
		MaxDistance:     1000.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		AutoRotate:      0.3,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns a perspective projection whose clip planes follow
// the orbit distance.
func (c *OrbitCamera) ProjectionMatrix(fovDegrees, aspect float32) math.Mat4 {
	near := max(c.Distance*0.01, 0.001)
	far := c.Distance * 100
	return math.Perspective(fovDegrees*gomath.Pi/180, aspect, near, far)
}

// Update advances the automatic rotation by dt seconds.
func (c *OrbitCamera) Update(dt float32) {
	c.RotationY += c.AutoRotate * dt
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = min(max(c.RotationX, c.MinPitch), c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}

// FitToBounds centers the camera on b and backs off far enough to keep the
// whole box in view for the given vertical field of view.
func (c *OrbitCamera) FitToBounds(b model.Bounds, fovDegrees float32) {
	c.Center = math.V3(b.Center())

	radius := math.V3(b.Size()).Length() / 2
	if radius == 0 {
		radius = 1
	}
	half := float64(fovDegrees) * gomath.Pi / 360
	c.Distance = radius / float32(gomath.Sin(half))

	c.MinDistance = radius * 0.05
	c.MaxDistance = c.Distance * 20
	c.RotationX = 0.4
	c.RotationY = 0.0
}

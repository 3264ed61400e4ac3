// Package lighting provides the directional light used by the viewer.
package lighting

import (
	"math"

	pmath "github.com/Faultbox/objscene/pkg/math"
)

// Sun is a directional light placed by compass angles.
type Sun struct {
	Longitude float32    // Degrees around the Y axis
	Latitude  float32    // Degrees of elevation above the horizon
	Color     [3]float32 // Linear RGB
}

// ToSun returns the normalized vector pointing from the scene towards the sun.
func (s Sun) ToSun() pmath.Vec3 {
	lon := float64(s.Longitude) * math.Pi / 180
	lat := float64(s.Latitude) * math.Pi / 180

	return pmath.Vec3{
		X: float32(math.Cos(lat) * math.Sin(lon)),
		Y: float32(math.Sin(lat)),
		Z: float32(math.Cos(lat) * math.Cos(lon)),
	}
}

// Direction returns the direction the light travels, as the shader expects it.
func (s Sun) Direction() pmath.Vec3 {
	return s.ToSun().Scale(-1)
}

// Radiance returns the light colour as a vector.
func (s Sun) Radiance() pmath.Vec3 {
	return pmath.V3(s.Color)
}

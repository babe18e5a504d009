package lighting

import (
	"math"

	smath "github.com/Faultbox/glscene/pkg/math"
)

// SunDirection converts azimuth/elevation angles in degrees to a light direction.
// Azimuth is rotation around the Y axis, elevation is measured up from the horizon.
// Returns a normalized direction vector pointing towards the sun.
func SunDirection(azimuth, elevation float32) smath.Vec3 {
	azRad := float64(azimuth) * math.Pi / 180.0
	elRad := float64(elevation) * math.Pi / 180.0

	return smath.Vec3{
		X: float32(math.Cos(elRad) * math.Sin(azRad)),
		Y: float32(math.Sin(elRad)),
		Z: float32(math.Cos(elRad) * math.Cos(azRad)),
	}.SnapZero()
}

// Package qibla computes the direction of prayer from an observer toward the
// Kaaba in Mecca.
package qibla

import "math"

// Kaaba coordinates in decimal degrees.
const (
	KaabaLatitude  = 21.4225
	KaabaLongitude = 39.8262
)

// Direction returns the initial great-circle bearing in degrees clockwise from
// true north, normalized to [0, 360).
func Direction(lat, lon float64) float64 {
	phi1 := radians(lat)
	phi2 := radians(KaabaLatitude)
	dLambda := radians(KaabaLongitude - lon)

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)

	bearing := math.Mod(degrees(math.Atan2(y, x))+360, 360)
	if bearing >= 360 {
		bearing = 0
	}
	return bearing
}

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass returns the 16-point compass label for a bearing, e.g. "WNW".
func Compass(bearing float64) string {
	b := math.Mod(math.Mod(bearing, 360)+360, 360)
	return compassPoints[int(math.Floor(b/22.5+0.5))%16]
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

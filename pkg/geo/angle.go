package geo

import (
	"math"

	"github.com/lintang-b-s/streetmapx/pkg/util"
)

// BearingTo. initial compass heading in degrees, 0 is north and 90 is east, of the great circle from p1 to p2.
// result is in [0, 360).
func BearingTo(p1Lat, p1Lon, p2Lat, p2Lon float64) float64 {
	phi1, lambda1 := NewCoordinate(p1Lat, p1Lon).radians()
	phi2, lambda2 := NewCoordinate(p2Lat, p2Lon).radians()
	dLambda := lambda2 - lambda1

	east := math.Sin(dLambda) * math.Cos(phi2)
	north := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)

	deg := util.RadiansToDegree(math.Atan2(east, north))
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

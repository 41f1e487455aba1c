package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// GreatCircleDistance. great-circle distance in km between two coordinates, never larger than the length of any
// road connecting them, so it is an admissible heuristic for road distances.
func GreatCircleDistance(latOne, lonOne, latTwo, lonTwo float64) float64 {
	a := s2.LatLngFromDegrees(latOne, lonOne)
	b := s2.LatLngFromDegrees(latTwo, lonTwo)
	return angleToKM(a.Distance(b))
}

func angleToKM(angle s1.Angle) float64 {
	return angle.Radians() * earthRadiusKM
}

// BoundingBoxCenter. centre (lat, lon) of the rectangle spanned by the two corners.
func BoundingBoxCenter(minLat, minLon, maxLat, maxLon float64) (float64, float64) {
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(minLat, minLon))
	rect = rect.AddPoint(s2.LatLngFromDegrees(maxLat, maxLon))
	center := rect.Center()
	return center.Lat.Degrees(), center.Lng.Degrees()
}

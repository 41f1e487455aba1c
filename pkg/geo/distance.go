package geo

import (
	"math"

	"github.com/lintang-b-s/streetmapx/pkg/util"
)

const earthRadiusKM = 6371.0

// Coordinate. a lat/lon pair in degrees, as sent over the api and encoded into polylines.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Lat: lat, Lon: lon}
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func (c Coordinate) radians() (float64, float64) {
	return util.DegreeToRadians(c.Lat), util.DegreeToRadians(c.Lon)
}

// CalculateHaversineDistance. length in km of the shortest arc between the two points on a spherical earth.
// used as the weight of every street segment.
func CalculateHaversineDistance(latOne, lonOne, latTwo, lonTwo float64) float64 {
	phi1, lambda1 := NewCoordinate(latOne, lonOne).radians()
	phi2, lambda2 := NewCoordinate(latTwo, lonTwo).radians()

	sinHalfDPhi := math.Sin((phi2 - phi1) / 2)
	sinHalfDLambda := math.Sin((lambda2 - lambda1) / 2)
	h := sinHalfDPhi*sinHalfDPhi + math.Cos(phi1)*math.Cos(phi2)*sinHalfDLambda*sinHalfDLambda
	if h > 1 {
		h = 1
	}
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

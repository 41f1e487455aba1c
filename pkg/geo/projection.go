package geo

import (
	"math"

	"github.com/lintang-b-s/streetmapx/pkg"
	"github.com/lintang-b-s/streetmapx/pkg/util"
)

// Projector. Transverse Mercator projection centered at (rootLat, rootLon).
// https://en.wikipedia.org/wiki/Transverse_Mercator_projection
// the same Projector must be used for indexing vertices and for answering nearest queries.
type Projector struct {
	rootLat float64
	rootLon float64
	k0      float64
}

func NewProjector(rootLat, rootLon float64) Projector {
	return Projector{
		rootLat: rootLat,
		rootLon: rootLon,
		k0:      pkg.PROJECTION_K0,
	}
}

// NewProjectorFromBounds. projection centered at the midpoint of the map bounding box.
func NewProjectorFromBounds(minLat, minLon, maxLat, maxLon float64) Projector {
	lat, lon := BoundingBoxCenter(minLat, minLon, maxLat, maxLon)
	return NewProjector(lat, lon)
}

func (p Projector) GetRootLat() float64 {
	return p.rootLat
}

func (p Projector) GetRootLon() float64 {
	return p.rootLon
}

// ProjectToX. flattened, euclidean x-value for (lon, lat).
func (p Projector) ProjectToX(lon, lat float64) float64 {
	dlon := util.DegreeToRadians(lon - p.rootLon)
	phi := util.DegreeToRadians(lat)
	b := math.Sin(dlon) * math.Cos(phi)
	return (p.k0 / 2) * math.Log((1+b)/(1-b))
}

// ProjectToY. flattened, euclidean y-value for (lon, lat).
func (p Projector) ProjectToY(lon, lat float64) float64 {
	dlon := util.DegreeToRadians(lon - p.rootLon)
	phi := util.DegreeToRadians(lat)
	con := math.Atan(math.Tan(phi) / math.Cos(dlon))
	return p.k0 * (con - util.DegreeToRadians(p.rootLat))
}

func (p Projector) Project(lon, lat float64) (float64, float64) {
	return p.ProjectToX(lon, lat), p.ProjectToY(lon, lat)
}

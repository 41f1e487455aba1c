package usecases

import (
	"github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/engine"
	"github.com/lintang-b-s/streetmapx/pkg/geo"
	"github.com/lintang-b-s/streetmapx/pkg/guidance"
)

type RoutingEngine interface {
	Closest(lon, lat float64) int64
	GetLocationsByPrefix(prefix string) []string
	GetLocations(name string) []engine.Location
	SolveRoute(start, goal int64, timeoutSeconds float64) engine.RouteResult
	PathCoordinates(path []int64) []geo.Coordinate
	DrivingDirections(path []int64) []guidance.DrivingDirection
	GetVertex(id int64) (*datastructure.Vertex, bool)
}

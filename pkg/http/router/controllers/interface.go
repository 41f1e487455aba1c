package controllers

import (
	"github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/engine"
	"github.com/lintang-b-s/streetmapx/pkg/guidance"
)

type RoutingService interface {
	Closest(lat, lon float64) (*datastructure.Vertex, error)
	LocationsByPrefix(prefix string) []string
	Locations(name string) []engine.Location
	ShortestPath(startLat, startLon, endLat, endLon, timeoutSeconds float64) (engine.RouteResult, string,
		[]guidance.DrivingDirection, error)
}

package usecases

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/streetmapx/pkg"
	"github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/engine"
	"github.com/lintang-b-s/streetmapx/pkg/engine/routing"
	"github.com/lintang-b-s/streetmapx/pkg/geo"
	"github.com/lintang-b-s/streetmapx/pkg/guidance"
	"github.com/lintang-b-s/streetmapx/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrPathNotFound  = errors.New("no path found between the two locations")
	ErrRouteTimedOut = errors.New("route search ran out of time")
)

// RoutingService. service layer between the http controllers and the engine.
// prefix and exact-name lookups are cached by their canonical key.
type RoutingService struct {
	log            *zap.Logger
	engine         RoutingEngine
	defaultTimeout float64
	prefixCache    *lru.Cache[string, []string]
	locationsCache *lru.Cache[string, []engine.Location]
}

func NewRoutingService(log *zap.Logger, eng RoutingEngine, defaultTimeoutSeconds float64,
	cacheSize int) (*RoutingService, error) {
	if cacheSize <= 0 {
		cacheSize = pkg.DEFAULT_PREFIX_CACHE_SIZE
	}
	if defaultTimeoutSeconds <= 0 {
		defaultTimeoutSeconds = pkg.DEFAULT_ROUTE_TIMEOUT_SECONDS
	}

	prefixCache, err := lru.New[string, []string](cacheSize)
	if err != nil {
		return nil, err
	}
	locationsCache, err := lru.New[string, []engine.Location](cacheSize)
	if err != nil {
		return nil, err
	}

	return &RoutingService{
		log:            log,
		engine:         eng,
		defaultTimeout: defaultTimeoutSeconds,
		prefixCache:    prefixCache,
		locationsCache: locationsCache,
	}, nil
}

func (rs *RoutingService) Closest(lat, lon float64) (*datastructure.Vertex, error) {
	id := rs.engine.Closest(lon, lat)
	v, ok := rs.engine.GetVertex(id)
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrInternalServerError, "closest vertex %d is not in the graph", id)
	}
	return v, nil
}

// LocationsByPrefix. the returned slice is shared with the cache and must not be modified.
func (rs *RoutingService) LocationsByPrefix(prefix string) []string {
	key := util.CleanString(prefix)
	if names, ok := rs.prefixCache.Get(key); ok {
		return names
	}
	names := rs.engine.GetLocationsByPrefix(key)
	rs.prefixCache.Add(key, names)
	return names
}

func (rs *RoutingService) Locations(name string) []engine.Location {
	key := util.CleanString(name)
	if locs, ok := rs.locationsCache.Get(key); ok {
		return locs
	}
	locs := rs.engine.GetLocations(key)
	rs.locationsCache.Add(key, locs)
	return locs
}

// ShortestPath. snaps both endpoints to their closest vertex and runs an A* query. a non positive timeout
// uses the service default. the encoded polyline & driving directions are empty unless the outcome is SOLVED.
func (rs *RoutingService) ShortestPath(startLat, startLon, endLat, endLon,
	timeoutSeconds float64) (engine.RouteResult, string, []guidance.DrivingDirection, error) {
	if timeoutSeconds <= 0 {
		timeoutSeconds = rs.defaultTimeout
	}

	start := rs.engine.Closest(startLon, startLat)
	goal := rs.engine.Closest(endLon, endLat)
	res := rs.engine.SolveRoute(start, goal, timeoutSeconds)

	switch res.Outcome {
	case routing.SOLVED:
		return res, geo.PolylineFromCoords(rs.engine.PathCoordinates(res.Path)),
			rs.engine.DrivingDirections(res.Path), nil
	case routing.TIMEOUT:
		rs.log.Info("route search timed out", zap.Int64("start", start), zap.Int64("goal", goal),
			zap.Int("numStatesExplored", res.Stats.NumStatesExplored))
		return res, "", []guidance.DrivingDirection{}, util.WrapErrorf(ErrRouteTimedOut, util.ErrTimeout,
			"no route from %f,%f to %f,%f within %.3f seconds", startLat, startLon, endLat, endLon, timeoutSeconds)
	default:
		return res, "", []guidance.DrivingDirection{}, util.WrapErrorf(ErrPathNotFound, util.ErrNotFound,
			"no path found from %f,%f to %f,%f", startLat, startLon, endLat, endLon)
	}
}

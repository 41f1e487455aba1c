package engine

import (
	"errors"
	"strings"
	"time"

	da "github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/engine/routing"
	"github.com/lintang-b-s/streetmapx/pkg/geo"
	"github.com/lintang-b-s/streetmapx/pkg/guidance"
	"github.com/lintang-b-s/streetmapx/pkg/landmark"
	"github.com/lintang-b-s/streetmapx/pkg/osmparser"
	"github.com/lintang-b-s/streetmapx/pkg/spatialindex"
	"github.com/lintang-b-s/streetmapx/pkg/util"
	"go.uber.org/zap"
)

var ErrNoRoutableVertex = errors.New("graph has no vertex with at least one edge")

// Location. a named vertex, as returned by GetLocations.
type Location struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
	ID   int64   `json:"id"`
}

type RouteStats struct {
	NumStatesExplored int
	ExplorationTime   time.Duration
}

type RouteResult struct {
	Outcome routing.SolverOutcome
	Path    []int64
	Weight  float64 // km, 0 unless Outcome == SOLVED
	Stats   RouteStats
}

// Engine. street map graph augmented with a nearest-vertex index and a place-name prefix index.
// both indexes are built once in NewEngine and only read afterwards, so an Engine can serve concurrent queries.
type Engine struct {
	graph           *da.StreetMapGraph
	searchGraph     routing.AStarGraph[int64]
	projector       geo.Projector
	kdtree          *spatialindex.KDTree
	search          *da.Trie
	cleanToVertices map[string][]*da.Vertex
	log             *zap.Logger
}

// NewEngineFromFile. load an osm file and build the engine. bounds fixes the projection origin (its midpoint);
// nil means the bounds stored in the file, or the extent of the loaded vertices.
func NewEngineFromFile(mapFile string, bounds *da.BoundingBox, logger *zap.Logger) (*Engine, error) {
	logger.Info("Reading street map from ", zap.String("mapFile", mapFile))
	parser := osmparser.NewOSMParser()
	graph, err := parser.Parse(mapFile, logger)
	if err != nil {
		return nil, err
	}
	if bounds != nil {
		graph.SetBoundingBox(bounds)
	}

	bb := graph.GetBoundingBox()
	projector := geo.NewProjectorFromBounds(bb.GetMinLat(), bb.GetMinLon(), bb.GetMaxLat(), bb.GetMaxLon())
	return NewEngine(graph, projector, logger)
}

func NewEngine(graph *da.StreetMapGraph, projector geo.Projector, logger *zap.Logger) (*Engine, error) {
	e := &Engine{
		graph:           graph,
		searchGraph:     graph,
		projector:       projector,
		search:          da.NewTrie(),
		cleanToVertices: make(map[string][]*da.Vertex),
		log:             logger,
	}

	logger.Info("Building kd-tree spatial index...",
		zap.Float64("rootLat", projector.GetRootLat()), zap.Float64("rootLon", projector.GetRootLon()))
	points := make([]da.Point, 0, graph.NumberOfVertices())
	vertices := make([]*da.Vertex, 0, graph.NumberOfVertices())
	graph.ForVertices(func(v *da.Vertex) {
		if graph.Degree(v.GetID()) == 0 {
			return
		}
		x, y := projector.Project(v.GetLon(), v.GetLat())
		points = append(points, da.NewPoint(x, y))
		vertices = append(vertices, v)
	})
	if len(points) == 0 {
		return nil, util.WrapErrorf(ErrNoRoutableVertex, util.ErrBadParamInput, "cannot build spatial index")
	}
	e.kdtree = spatialindex.NewKDTree(points, vertices)
	logger.Info("kd-tree spatial index built.", zap.Int("numberOfPoints", e.kdtree.Len()))

	logger.Info("Building place name prefix index...")
	graph.ForVertices(func(v *da.Vertex) {
		if !v.HasName() {
			return
		}
		cleanName := util.CleanString(v.GetName())
		if strings.TrimSpace(cleanName) == "" {
			return
		}
		e.search.Add(cleanName)
		e.cleanToVertices[cleanName] = append(e.cleanToVertices[cleanName], v)
	})
	logger.Info("place name prefix index built.", zap.Int("numberOfNames", e.search.Size()))

	return e, nil
}

// UseLandmarks. precompute k planar landmarks and switch route queries to the ALT heuristic.
// must be called before the engine serves queries.
func (e *Engine) UseLandmarks(k int) error {
	lm := landmark.NewLandmark()
	if err := lm.PreprocessALT(k, e.graph, e.log); err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "landmark preprocessing failed")
	}
	e.searchGraph = landmark.NewALTGraph(e.graph, lm)
	return nil
}

// Closest. id of the non-isolated vertex closest to (lon, lat).
func (e *Engine) Closest(lon, lat float64) int64 {
	x, y := e.projector.Project(lon, lat)
	return e.kdtree.NearestVertex(x, y).GetID()
}

// GetLocationsByPrefix. full names of every location whose canonical name starts with the canonical prefix.
func (e *Engine) GetLocationsByPrefix(prefix string) []string {
	names := make([]string, 0)
	for _, cleanName := range e.search.KeysWithPrefix(prefix) {
		for _, v := range e.cleanToVertices[cleanName] {
			names = append(names, v.GetName())
		}
	}
	return names
}

// GetLocations. every location whose canonical name equals the canonical form of name.
func (e *Engine) GetLocations(name string) []Location {
	locations := make([]Location, 0)
	for _, v := range e.cleanToVertices[util.CleanString(name)] {
		locations = append(locations, Location{
			Lat:  v.GetLat(),
			Lon:  v.GetLon(),
			Name: v.GetName(),
			ID:   v.GetID(),
		})
	}
	return locations
}

// SolveRoute. one-shot A* query from start to goal, callers must check Outcome before using Path or Weight.
func (e *Engine) SolveRoute(start, goal int64, timeoutSeconds float64) RouteResult {
	timeout := time.Duration(timeoutSeconds * float64(time.Second))
	solver := routing.NewAStarSolver[int64](e.searchGraph, start, goal, timeout)

	e.log.Debug("route query finished", zap.Int64("start", start), zap.Int64("goal", goal),
		zap.String("outcome", solver.Outcome().String()),
		zap.Int("numStatesExplored", solver.NumStatesExplored()),
		zap.Duration("explorationTime", solver.ExplorationTime()))

	return RouteResult{
		Outcome: solver.Outcome(),
		Path:    solver.Solution(),
		Weight:  solver.SolutionWeight(),
		Stats: RouteStats{
			NumStatesExplored: solver.NumStatesExplored(),
			ExplorationTime:   solver.ExplorationTime(),
		},
	}
}

// PathCoordinates. (lat, lon) of every vertex of path, unknown ids are skipped.
func (e *Engine) PathCoordinates(path []int64) []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(path))
	for _, id := range path {
		v, ok := e.graph.GetVertex(id)
		if !ok {
			continue
		}
		coords = append(coords, geo.NewCoordinate(v.GetLat(), v.GetLon()))
	}
	return coords
}

// DrivingDirections. turn-by-turn maneuvers along path.
func (e *Engine) DrivingDirections(path []int64) []guidance.DrivingDirection {
	return guidance.NewDirectionBuilder(e.graph).GetDrivingDirections(path)
}

func (e *Engine) GetVertex(id int64) (*da.Vertex, bool) {
	return e.graph.GetVertex(id)
}

func (e *Engine) GetGraph() *da.StreetMapGraph {
	return e.graph
}

func (e *Engine) GetProjector() geo.Projector {
	return e.projector
}

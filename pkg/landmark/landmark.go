package landmark

import (
	"errors"
	"math"
	"sort"

	"github.com/lintang-b-s/streetmapx/pkg"
	da "github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/geo"
	"github.com/lintang-b-s/streetmapx/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const MAX_LANDMARKS = 64

var ErrTooManyLandmarks = errors.New("too many landmarks, the maximum number of landmarks is 64")

// Landmark. precomputed landmark distances for the ALT (A*, landmarks, triangle inequality) lower bound.
type Landmark struct {
	lw        [][]float64 // distance from each landmark to every vertex
	vlw       [][]float64 // distance from every vertex to each landmark
	landmarks []int64
	index     map[int64]int32
}

func NewLandmark() *Landmark {
	return &Landmark{
		lw:        make([][]float64, 0),
		vlw:       make([][]float64, 0),
		landmarks: make([]int64, 0),
		index:     make(map[int64]int32),
	}
}

/*
planar landmark selection, section 7 of:
Goldberg, A.V. and Harrelson, C. (2005) 'Computing the shortest path: A* search meets graph theory', SODA '05, pp. 156–165.

k directions evenly spaced around the map centre, each picks the vertex farthest along its direction.
the vertex closest to the centre is appended as an extra landmark. only vertices with at least one edge are candidates.
*/
func (lm *Landmark) SelectLandmarks(k int, graph *da.StreetMapGraph) []*da.Vertex {
	vs := make([]*da.Vertex, 0, graph.NumberOfVertices())
	graph.ForVertices(func(v *da.Vertex) {
		if graph.Degree(v.GetID()) > 0 {
			vs = append(vs, v)
		}
	})
	n := len(vs)
	if n == 0 || k <= 0 {
		return []*da.Vertex{}
	}

	bb := da.NewEmptyBoundingBox()
	for _, v := range vs {
		bb.Extend(v.GetLat(), v.GetLon())
	}
	centerLat, centerLon := geo.BoundingBoxCenter(bb.GetMinLat(), bb.GetMinLon(), bb.GetMaxLat(), bb.GetMaxLon())

	thetaDif := 360.0 / float64(k)
	theta := 0.0
	seen := make(map[int64]struct{}, k+1)
	landmarks := make([]*da.Vertex, 0, k+1)
	for i := 0; i < k; i++ {
		thetaRad := util.DegreeToRadians(theta)
		sint := math.Sin(thetaRad)
		cost := math.Cos(thetaRad)
		// O(V*logV)
		sort.SliceStable(vs, func(i, j int) bool {
			a := (vs[i].GetLon()-centerLon)*cost + (vs[i].GetLat()-centerLat)*sint
			b := (vs[j].GetLon()-centerLon)*cost + (vs[j].GetLat()-centerLat)*sint
			return a < b
		})

		cand := vs[n-1]
		if _, ok := seen[cand.GetID()]; !ok {
			seen[cand.GetID()] = struct{}{}
			landmarks = append(landmarks, cand)
		}
		theta += thetaDif
	}

	var midLandmark *da.Vertex
	minMidDist := math.MaxFloat64
	for _, v := range vs {
		dist := geo.CalculateHaversineDistance(v.GetLat(), v.GetLon(), centerLat, centerLon)
		if dist < minMidDist {
			minMidDist = dist
			midLandmark = v
		}
	}
	if _, ok := seen[midLandmark.GetID()]; !ok {
		landmarks = append(landmarks, midLandmark)
	}

	return landmarks
}

/*
ALT preprocessing. two dijkstra searches per landmark (forward and on the reverse graph).
O((n+m)logn * k), n=number of vertices, m=number of edges, k=number of landmarks.
*/
func (lm *Landmark) PreprocessALT(k int, graph *da.StreetMapGraph, logger *zap.Logger) error {
	if k > MAX_LANDMARKS {
		return ErrTooManyLandmarks
	}
	logger.Info("computing landmarks....", zap.Int("k", k))

	lm.index = make(map[int64]int32, graph.NumberOfVertices())
	graph.ForVertices(func(v *da.Vertex) {
		lm.index[v.GetID()] = int32(len(lm.index))
	})
	n := len(lm.index)

	selected := lm.SelectLandmarks(k, graph)
	k = len(selected)
	lm.landmarks = make([]int64, k)
	lm.lw = make([][]float64, k)
	lm.vlw = make([][]float64, n)
	for v := 0; v < n; v++ {
		lm.vlw[v] = make([]float64, k)
	}

	reverse := reverseAdjacency(graph)
	reverseNeighbors := func(v int64) []da.WeightedEdge[int64] {
		return reverse[v]
	}

	g := errgroup.Group{}
	for i, landmark := range selected {
		i := i
		sid := landmark.GetID()
		lm.landmarks[i] = sid

		g.Go(func() error {
			sps := NewDijkstra(graph.Neighbors, lm.index).ShortestPath(sid)
			lm.lw[i] = make([]float64, n)
			copy(lm.lw[i], sps)
			return nil
		})
		g.Go(func() error {
			sps := NewDijkstra(reverseNeighbors, lm.index).ShortestPath(sid)
			// each goroutine writes only column i
			for v := 0; v < n; v++ {
				lm.vlw[v][i] = sps[v]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("done computing landmarks....", zap.Int("numberOfLandmarks", k))
	return nil
}

func reverseAdjacency(graph *da.StreetMapGraph) map[int64][]da.WeightedEdge[int64] {
	reverse := make(map[int64][]da.WeightedEdge[int64], graph.NumberOfVertices())
	graph.ForVertices(func(v *da.Vertex) {
		for _, e := range graph.Neighbors(v.GetID()) {
			reverse[e.To()] = append(reverse[e.To()], da.NewWeightedEdge(e.To(), e.From(), e.Weight()))
		}
	})
	return reverse
}

/*
FindTighestLowerBound. lower bound of dist(u, t) from the triangle inequality over every landmark L:
dist(u,t) >= dist(u,L) - dist(t,L) and dist(u,t) >= dist(L,t) - dist(L,u). clamped to 0.
section 6 of Goldberg & Harrelson (2005), section 2.2 of Bast et al. (2016) 'Route Planning in Transportation Networks'.
*/
func (lm *Landmark) FindTighestLowerBound(u, t int64) float64 {
	ui, ok := lm.index[u]
	if !ok {
		return 0
	}
	ti, ok := lm.index[t]
	if !ok {
		return 0
	}

	// O(k), k = number of landmarks
	tighestLowerBound := 0.0
	for i := 0; i < len(lm.landmarks); i++ {
		if lm.vlw[ui][i] >= pkg.INF_WEIGHT || lm.lw[i][ti] >= pkg.INF_WEIGHT ||
			lm.vlw[ti][i] >= pkg.INF_WEIGHT || lm.lw[i][ui] >= pkg.INF_WEIGHT {
			continue
		}
		lbOne := lm.vlw[ui][i] - lm.vlw[ti][i]
		lbTwo := lm.lw[i][ti] - lm.lw[i][ui]

		tighestLowerBound = math.Max(tighestLowerBound, math.Max(lbOne, lbTwo))
	}
	return tighestLowerBound
}

func (lm *Landmark) GetLandmarks() []int64 {
	return lm.landmarks
}

// ALTGraph. StreetMapGraph whose A* heuristic is the larger of the great-circle distance and the landmark bound.
// both are admissible, so is their maximum.
type ALTGraph struct {
	graph *da.StreetMapGraph
	lm    *Landmark
}

func NewALTGraph(graph *da.StreetMapGraph, lm *Landmark) *ALTGraph {
	return &ALTGraph{graph: graph, lm: lm}
}

func (g *ALTGraph) Neighbors(v int64) []da.WeightedEdge[int64] {
	return g.graph.Neighbors(v)
}

func (g *ALTGraph) EstimatedDistanceToGoal(s, goal int64) float64 {
	return math.Max(g.graph.EstimatedDistanceToGoal(s, goal), g.lm.FindTighestLowerBound(s, goal))
}

package landmark

import (
	"testing"
	"time"

	da "github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/engine/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// randomGrid. rows x cols street grid around Berkeley with roughly 20% of the streets missing.
func randomGrid(t *testing.T, rows, cols int, seed uint64) *da.StreetMapGraph {
	rd := rand.New(rand.NewSource(seed))
	g := da.NewStreetMapGraph()
	id := func(r, c int) int64 { return int64(r*cols + c) }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			lat := 37.85 + float64(r)*0.001 + rd.Float64()*0.0002
			lon := -122.27 + float64(c)*0.001 + rd.Float64()*0.0002
			g.AddVertex(da.NewVertex(id(r, c), lat, lon, ""))
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols && rd.Float64() > 0.2 {
				require.NoError(t, g.AddStreet(id(r, c), id(r, c+1)))
			}
			if r+1 < rows && rd.Float64() > 0.2 {
				require.NoError(t, g.AddStreet(id(r, c), id(r+1, c)))
			}
		}
	}
	return g
}

func TestDijkstraPath(t *testing.T) {
	g := da.NewStreetMapGraph()
	for i := int64(0); i < 4; i++ {
		g.AddVertex(da.NewVertex(i, 0, 0, ""))
	}
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(1, 2, 1))
	require.NoError(t, g.AddEdge(0, 2, 5))

	index := map[int64]int32{0: 0, 1: 1, 2: 2, 3: 3}
	dist := NewDijkstra(g.Neighbors, index).ShortestPath(0)
	assert.Equal(t, []float64{0, 1, 2, 1e15}, dist)
}

func TestLowerBoundIsAdmissible(t *testing.T) {
	g := randomGrid(t, 8, 8, 7)
	lm := NewLandmark()
	require.NoError(t, lm.PreprocessALT(4, g, zap.NewNop()))
	assert.NotEmpty(t, lm.GetLandmarks())
	assert.LessOrEqual(t, len(lm.GetLandmarks()), 5)

	index := make(map[int64]int32)
	g.ForVertices(func(v *da.Vertex) { index[v.GetID()] = int32(len(index)) })

	for _, u := range g.Vertices() {
		dist := NewDijkstra(g.Neighbors, index).ShortestPath(u.GetID())
		for _, v := range g.Vertices() {
			d := dist[index[v.GetID()]]
			if d >= 1e15 {
				continue
			}
			lb := lm.FindTighestLowerBound(u.GetID(), v.GetID())
			assert.GreaterOrEqual(t, lb, 0.0)
			assert.LessOrEqual(t, lb, d+1e-9, "lower bound %d -> %d", u.GetID(), v.GetID())
		}
	}
}

func TestALTGraphMatchesPlainAStar(t *testing.T) {
	g := randomGrid(t, 12, 12, 99)
	lm := NewLandmark()
	require.NoError(t, lm.PreprocessALT(8, g, zap.NewNop()))
	alt := NewALTGraph(g, lm)

	rd := rand.New(rand.NewSource(3))
	n := g.NumberOfVertices()
	for q := 0; q < 50; q++ {
		s := int64(rd.Intn(n))
		goal := int64(rd.Intn(n))

		plain := routing.NewAStarSolver[int64](g, s, goal, time.Hour)
		withALT := routing.NewAStarSolver[int64](alt, s, goal, time.Hour)
		require.Equal(t, plain.Outcome(), withALT.Outcome())
		if plain.Outcome() == routing.SOLVED {
			assert.InDelta(t, plain.SolutionWeight(), withALT.SolutionWeight(), 1e-9)
			assert.LessOrEqual(t, withALT.NumStatesExplored(), g.NumberOfVertices())
		}
	}
}

func TestTooManyLandmarks(t *testing.T) {
	g := randomGrid(t, 3, 3, 1)
	err := NewLandmark().PreprocessALT(MAX_LANDMARKS+1, g, zap.NewNop())
	assert.ErrorIs(t, err, ErrTooManyLandmarks)
}

func TestUnknownVertexBound(t *testing.T) {
	g := randomGrid(t, 3, 3, 1)
	lm := NewLandmark()
	require.NoError(t, lm.PreprocessALT(2, g, zap.NewNop()))
	assert.Equal(t, 0.0, lm.FindTighestLowerBound(-1, 0))
}

func TestSelectLandmarksDirectionalSweep(t *testing.T) {
	g := da.NewStreetMapGraph()
	g.AddVertex(da.NewVertex(1, 0, 0, ""))
	g.AddVertex(da.NewVertex(2, 0, 1, ""))
	g.AddVertex(da.NewVertex(3, 1, 0, ""))
	g.AddVertex(da.NewVertex(4, 0, -1, ""))
	g.AddVertex(da.NewVertex(5, -1, 0, ""))
	g.AddVertex(da.NewVertex(6, 5, 5, ""))
	for i := int64(2); i <= 5; i++ {
		require.NoError(t, g.AddStreet(1, i))
	}

	got := NewLandmark().SelectLandmarks(4, g)
	ids := make([]int64, 0, len(got))
	for _, v := range got {
		ids = append(ids, v.GetID())
	}
	// east, north, west, south, then the vertex at the centre. the isolated vertex 6 is never picked.
	assert.Equal(t, []int64{2, 3, 4, 5, 1}, ids)
}

package engine

import (
	"errors"
	"testing"

	da "github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/engine/routing"
	"github.com/lintang-b-s/streetmapx/pkg/geo"
	"github.com/lintang-b-s/streetmapx/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGraph(t *testing.T) *da.StreetMapGraph {
	g := da.NewStreetMapGraph()
	g.AddVertex(da.NewVertex(1, 37.870, -122.260, "Top Dog"))
	g.AddVertex(da.NewVertex(2, 37.871, -122.260, "Caffe Strada"))
	g.AddVertex(da.NewVertex(3, 37.872, -122.259, "top dog"))
	g.AddVertex(da.NewVertex(4, 37.875, -122.255, ""))
	g.AddVertex(da.NewVertex(5, 37.880, -122.250, "Lonely Cafe"))
	g.AddVertex(da.NewVertex(6, 37.879, -122.251, "123 !!"))
	require.NoError(t, g.AddStreet(1, 2))
	require.NoError(t, g.AddStreet(2, 3))
	require.NoError(t, g.AddStreet(3, 4))
	return g
}

func newTestEngine(t *testing.T) *Engine {
	g := newTestGraph(t)
	bb := g.GetBoundingBox()
	p := geo.NewProjectorFromBounds(bb.GetMinLat(), bb.GetMinLon(), bb.GetMaxLat(), bb.GetMaxLon())
	e, err := NewEngine(g, p, zap.NewNop())
	require.NoError(t, err)
	return e
}

func TestClosest(t *testing.T) {
	e := newTestEngine(t)

	assert.Equal(t, int64(2), e.Closest(-122.260, 37.871))
	assert.Equal(t, int64(1), e.Closest(-122.2601, 37.8699))
	// 5 and 6 are isolated, 4 is the nearest routable vertex.
	assert.Equal(t, int64(4), e.Closest(-122.2500, 37.8800))
}

func TestGetLocationsByPrefix(t *testing.T) {
	e := newTestEngine(t)

	assert.ElementsMatch(t, []string{"Top Dog", "top dog"}, e.GetLocationsByPrefix("top"))
	assert.ElementsMatch(t, []string{"Top Dog", "top dog"}, e.GetLocationsByPrefix("TOP"))
	assert.Equal(t, []string{"Caffe Strada"}, e.GetLocationsByPrefix("caf"))
	assert.Equal(t, []string{"Lonely Cafe"}, e.GetLocationsByPrefix("lon"))
	assert.Empty(t, e.GetLocationsByPrefix("zzz"))
	assert.NotNil(t, e.GetLocationsByPrefix("zzz"))
	assert.Len(t, e.GetLocationsByPrefix(""), 4)
}

func TestGetLocations(t *testing.T) {
	e := newTestEngine(t)

	locs := e.GetLocations("TOP DOG!")
	require.Len(t, locs, 2)
	ids := []int64{locs[0].ID, locs[1].ID}
	assert.ElementsMatch(t, []int64{1, 3}, ids)
	for _, l := range locs {
		v, ok := e.GetVertex(l.ID)
		require.True(t, ok)
		assert.Equal(t, v.GetName(), l.Name)
		assert.Equal(t, v.GetLat(), l.Lat)
		assert.Equal(t, v.GetLon(), l.Lon)
	}

	assert.NotNil(t, e.GetLocations("nowhere"))
	assert.Empty(t, e.GetLocations("nowhere"))
	// canonical form is blank, never indexed.
	assert.Empty(t, e.GetLocations("123 !!"))
}

func TestSolveRoute(t *testing.T) {
	e := newTestEngine(t)
	g := e.GetGraph()

	res := e.SolveRoute(1, 4, 10)
	require.Equal(t, routing.SOLVED, res.Outcome)
	assert.Equal(t, []int64{1, 2, 3, 4}, res.Path)

	want := 0.0
	for i := 0; i+1 < len(res.Path); i++ {
		a, _ := g.GetVertex(res.Path[i])
		b, _ := g.GetVertex(res.Path[i+1])
		want += geo.CalculateHaversineDistance(a.GetLat(), a.GetLon(), b.GetLat(), b.GetLon())
	}
	assert.InDelta(t, want, res.Weight, 1e-9)
	assert.Greater(t, res.Stats.NumStatesExplored, 0)

	coords := e.PathCoordinates(res.Path)
	require.Len(t, coords, 4)
	assert.Equal(t, 37.870, coords[0].GetLat())
	assert.Equal(t, -122.255, coords[3].GetLon())
}

func TestSolveRouteSameVertex(t *testing.T) {
	e := newTestEngine(t)

	res := e.SolveRoute(2, 2, 10)
	assert.Equal(t, routing.SOLVED, res.Outcome)
	assert.Equal(t, []int64{2}, res.Path)
	assert.Equal(t, 0.0, res.Weight)
	assert.Equal(t, 0, res.Stats.NumStatesExplored)
}

func TestSolveRouteUnsolvable(t *testing.T) {
	e := newTestEngine(t)

	res := e.SolveRoute(1, 5, 10)
	assert.Equal(t, routing.UNSOLVABLE, res.Outcome)
	assert.Empty(t, res.Path)
	assert.Equal(t, 0.0, res.Weight)
}

func TestNewEngineNoRoutableVertex(t *testing.T) {
	g := da.NewStreetMapGraph()
	g.AddVertex(da.NewVertex(1, 37.870, -122.260, "Top Dog"))

	_, err := NewEngine(g, geo.NewProjector(37.87, -122.26), zap.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRoutableVertex))

	var uerr *util.Error
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, util.ErrBadParamInput, uerr.Code())
}

func TestSolveRouteWithLandmarks(t *testing.T) {
	e := newTestEngine(t)
	plain := e.SolveRoute(1, 4, 10)

	require.NoError(t, e.UseLandmarks(2))
	withALT := e.SolveRoute(1, 4, 10)
	assert.Equal(t, routing.SOLVED, withALT.Outcome)
	assert.Equal(t, plain.Path, withALT.Path)
	assert.InDelta(t, plain.Weight, withALT.Weight, 1e-9)

	assert.Equal(t, routing.UNSOLVABLE, e.SolveRoute(1, 5, 10).Outcome)
}

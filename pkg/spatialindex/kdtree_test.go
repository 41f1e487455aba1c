package spatialindex

import (
	"math"
	"testing"

	da "github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/rtree"
	"golang.org/x/exp/rand"
)

func buildTree(points []da.Point) *KDTree {
	vertices := make([]*da.Vertex, len(points))
	for i, p := range points {
		vertices[i] = da.NewVertex(int64(i), p.Y, p.X, "")
	}
	return NewKDTree(points, vertices)
}

func TestKDTreeNearestSmall(t *testing.T) {
	testCases := []struct {
		name   string
		points []da.Point
		qx, qy float64
		want   da.Point
	}{
		{
			name:   "two points query at origin",
			points: []da.Point{da.NewPoint(1, 1), da.NewPoint(2, 2)},
			qx:     0, qy: 0,
			want: da.NewPoint(1, 1),
		},
		{
			name: "classic 2d tree example",
			points: []da.Point{da.NewPoint(2, 3), da.NewPoint(4, 2), da.NewPoint(4, 5),
				da.NewPoint(3, 3), da.NewPoint(1, 5), da.NewPoint(4, 4)},
			qx: 0, qy: 7,
			want: da.NewPoint(1, 5),
		},
		{
			name: "nearest lives across the splitting line",
			points: []da.Point{da.NewPoint(5, 5), da.NewPoint(1, 1), da.NewPoint(9, 9),
				da.NewPoint(4.9, 0), da.NewPoint(5.2, 0.1)},
			qx: 5.1, qy: 0,
			want: da.NewPoint(5.2, 0.1),
		},
		{
			name:   "single point",
			points: []da.Point{da.NewPoint(-3, 7)},
			qx:     100, qy: -100,
			want: da.NewPoint(-3, 7),
		},
		{
			name:   "query equals an indexed point",
			points: []da.Point{da.NewPoint(0, 0), da.NewPoint(1, 0), da.NewPoint(0, 1)},
			qx:     1, qy: 0,
			want: da.NewPoint(1, 0),
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			tree := buildTree(tt.points)
			assert.Equal(t, tt.want, tree.Nearest(tt.qx, tt.qy))
			assert.Equal(t, len(tt.points), tree.Len())
		})
	}
}

func TestKDTreeEmptyPanics(t *testing.T) {
	tree := buildTree(nil)
	assert.Panics(t, func() { tree.Nearest(0, 0) })
}

func TestKDTreeCoincidentPointsLastWins(t *testing.T) {
	p := da.NewPoint(1, 1)
	first := da.NewVertex(10, 1, 1, "first")
	second := da.NewVertex(20, 1, 1, "second")

	tree := NewKDTree([]da.Point{p, da.NewPoint(5, 5), p}, []*da.Vertex{first, da.NewVertex(30, 5, 5, ""), second})

	assert.Equal(t, p, tree.Nearest(0.9, 0.9))
	assert.Equal(t, int64(20), tree.NearestVertex(0.9, 0.9).GetID())
	assert.True(t, tree.Contains(p))
	assert.False(t, tree.Contains(da.NewPoint(2, 2)))
}

func TestKDTreeInvariant(t *testing.T) {
	rd := rand.New(rand.NewSource(7))
	points := make([]da.Point, 500)
	for i := range points {
		points[i] = da.NewPoint(float64(rd.Intn(50)), float64(rd.Intn(50)))
	}
	tree := buildTree(points)

	var check func(idx int32, lo, hi [2]float64)
	check = func(idx int32, lo, hi [2]float64) {
		if idx == nilNode {
			return
		}
		n := tree.nodes[idx]
		for axis := uint8(0); axis < 2; axis++ {
			c := n.point.Coord(axis)
			require.GreaterOrEqual(t, c, lo[axis])
			require.LessOrEqual(t, c, hi[axis])
		}
		leftHi, rightLo := hi, lo
		leftHi[n.axis] = n.point.Coord(n.axis)
		rightLo[n.axis] = n.point.Coord(n.axis)
		check(n.left, lo, leftHi)
		check(n.right, rightLo, hi)
	}
	check(tree.root, [2]float64{math.Inf(-1), math.Inf(-1)}, [2]float64{math.Inf(1), math.Inf(1)})
}

func TestKDTreeMatchesNaivePointSet(t *testing.T) {
	rd := rand.New(rand.NewSource(1234))

	for round := 0; round < 30; round++ {
		n := 1 + rd.Intn(400)
		points := make([]da.Point, n)
		for i := range points {
			if round%3 == 0 {
				// duplicated coordinates on a coarse grid
				points[i] = da.NewPoint(float64(rd.Intn(20)), float64(rd.Intn(20)))
			} else {
				points[i] = da.NewPoint(rd.Float64()*200-100, rd.Float64()*200-100)
			}
		}
		tree := buildTree(points)
		naive := NewNaivePointSet(points)

		for q := 0; q < 200; q++ {
			x, y := rd.Float64()*300-150, rd.Float64()*300-150
			got := tree.Nearest(x, y)
			want := naive.Nearest(x, y)
			assert.Equal(t, want.DistanceSquaredTo(x, y), got.DistanceSquaredTo(x, y))
			assert.True(t, tree.Contains(got))
		}
	}
}

// squared distance from (x, y) to the box [min, max]; exact for point items.
func boxDistSq(x, y float64, min, max [2]float64) float64 {
	dx := math.Max(0, math.Max(min[0]-x, x-max[0]))
	dy := math.Max(0, math.Max(min[1]-y, y-max[1]))
	return dx*dx + dy*dy
}

func TestKDTreeMatchesRtree(t *testing.T) {
	rd := rand.New(rand.NewSource(99))

	points := make([]da.Point, 2000)
	var tr rtree.RTreeG[int]
	for i := range points {
		points[i] = da.NewPoint(rd.Float64()*0.2-0.1, rd.Float64()*0.2-0.1)
		tr.Insert([2]float64{points[i].X, points[i].Y}, [2]float64{points[i].X, points[i].Y}, i)
	}
	tree := buildTree(points)

	for q := 0; q < 500; q++ {
		x, y := rd.Float64()*0.3-0.15, rd.Float64()*0.3-0.15

		rtreeBest := math.Inf(1)
		tr.Nearby(
			func(min, max [2]float64, data int, item bool) float64 {
				return boxDistSq(x, y, min, max)
			},
			func(min, max [2]float64, data int, dist float64) bool {
				rtreeBest = dist
				return false
			},
		)

		got := tree.Nearest(x, y)
		assert.InDelta(t, rtreeBest, got.DistanceSquaredTo(x, y), 1e-15)
	}
}

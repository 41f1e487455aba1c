package spatialindex

import (
	da "github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/util"
)

// NaivePointSet. linear-scan nearest neighbour, used to cross-check the kd-tree.
type NaivePointSet struct {
	points []da.Point
}

func NewNaivePointSet(points []da.Point) *NaivePointSet {
	ps := make([]da.Point, len(points))
	copy(ps, points)
	return &NaivePointSet{points: ps}
}

func (n *NaivePointSet) Nearest(x, y float64) da.Point {
	util.AssertPanic(len(n.points) > 0, "naive point set: nearest called on an empty set")

	best := n.points[0]
	bestDist := best.DistanceSquaredTo(x, y)
	for _, p := range n.points[1:] {
		if d := p.DistanceSquaredTo(x, y); d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

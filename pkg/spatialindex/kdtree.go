package spatialindex

import (
	"sort"

	da "github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/util"
)

const nilNode int32 = -1

type kdNode struct {
	point       da.Point
	vertex      *da.Vertex
	left, right int32
	axis        uint8 // 0 = x, 1 = y
}

// KDTree. static 2-d tree over projected vertex coordinates for exact nearest-neighbour queries.
// nodes are stored in one slice and refer to their children by index.
// every point in the left subtree of a node has coord(axis) <= node, every point in the right subtree >= node.
type KDTree struct {
	nodes         []kdNode
	root          int32
	pointToVertex map[da.Point]*da.Vertex
}

type pointVertex struct {
	point  da.Point
	vertex *da.Vertex
}

// NewKDTree. build the tree once from points[i] -> vertices[i]. when two vertices share a point the later one
// wins in the point -> vertex lookup.
func NewKDTree(points []da.Point, vertices []*da.Vertex) *KDTree {
	util.AssertPanic(len(points) == len(vertices), "kdtree: points and vertices must have the same length")

	t := &KDTree{
		nodes:         make([]kdNode, 0, len(points)),
		root:          nilNode,
		pointToVertex: make(map[da.Point]*da.Vertex, len(points)),
	}

	items := make([]pointVertex, len(points))
	for i := range points {
		items[i] = pointVertex{point: points[i], vertex: vertices[i]}
		t.pointToVertex[points[i]] = vertices[i]
	}

	t.root = t.build(items, 0)
	return t
}

// build. split on the median of the current axis, axis alternates x/y with depth.
func (t *KDTree) build(items []pointVertex, depth int) int32 {
	if len(items) == 0 {
		return nilNode
	}

	axis := uint8(depth % 2)
	sort.Slice(items, func(i, j int) bool {
		return items[i].point.Coord(axis) < items[j].point.Coord(axis)
	})

	median := len(items) / 2
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, kdNode{
		point:  items[median].point,
		vertex: items[median].vertex,
		left:   nilNode,
		right:  nilNode,
		axis:   axis,
	})

	left := t.build(items[:median], depth+1)
	right := t.build(items[median+1:], depth+1)
	t.nodes[idx].left = left
	t.nodes[idx].right = right
	return idx
}

// Nearest. the indexed point closest (euclidean) to (x, y). panics on an empty tree.
func (t *KDTree) Nearest(x, y float64) da.Point {
	util.AssertPanic(t.root != nilNode, "kdtree: nearest called on an empty index")

	best := t.root
	bestDist := t.nodes[t.root].point.DistanceSquaredTo(x, y)
	t.nearest(t.root, x, y, &best, &bestDist)
	return t.nodes[best].point
}

func (t *KDTree) nearest(idx int32, x, y float64, best *int32, bestDist *float64) {
	if idx == nilNode {
		return
	}
	n := &t.nodes[idx]

	dist := n.point.DistanceSquaredTo(x, y)
	if dist < *bestDist {
		*bestDist = dist
		*best = idx
	}

	q := x
	if n.axis == 1 {
		q = y
	}
	diff := q - n.point.Coord(n.axis)

	near, far := n.left, n.right
	if diff >= 0 {
		near, far = n.right, n.left
	}

	t.nearest(near, x, y, best, bestDist)

	// the far half-space can only hold a closer point if the splitting line is closer than the current best.
	if diff*diff < *bestDist {
		t.nearest(far, x, y, best, bestDist)
	}
}

// NearestVertex. vertex of the nearest point, resolved through the point -> vertex lookup.
func (t *KDTree) NearestVertex(x, y float64) *da.Vertex {
	return t.pointToVertex[t.Nearest(x, y)]
}

// GetVertex. vertex registered for point p, nil when p is not indexed.
func (t *KDTree) GetVertex(p da.Point) *da.Vertex {
	return t.pointToVertex[p]
}

func (t *KDTree) Contains(p da.Point) bool {
	_, ok := t.pointToVertex[p]
	return ok
}

func (t *KDTree) Len() int {
	return len(t.nodes)
}

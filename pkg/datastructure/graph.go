package datastructure

import (
	"github.com/lintang-b-s/streetmapx/pkg/geo"
	"github.com/lintang-b-s/streetmapx/pkg/util"
)

// Vertex. an osm node of the street map. immutable once loaded.
type Vertex struct {
	id   int64
	lat  float64
	lon  float64
	name string
}

func NewVertex(id int64, lat, lon float64, name string) *Vertex {
	return &Vertex{
		id:   id,
		lat:  lat,
		lon:  lon,
		name: name,
	}
}

func (v *Vertex) GetID() int64 {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetName() string {
	return v.name
}

func (v *Vertex) HasName() bool {
	return v.name != ""
}

type WeightedEdge[V comparable] struct {
	from   V
	to     V
	weight float64
}

func NewWeightedEdge[V comparable](from, to V, weight float64) WeightedEdge[V] {
	return WeightedEdge[V]{from: from, to: to, weight: weight}
}

func (e WeightedEdge[V]) From() V {
	return e.from
}

func (e WeightedEdge[V]) To() V {
	return e.to
}

func (e WeightedEdge[V]) Weight() float64 {
	return e.weight
}

// StreetMapGraph. directed weighted graph of osm nodes keyed by osm id. edge weights are distances in km.
// vertex iteration follows insertion order.
type StreetMapGraph struct {
	vertices    map[int64]*Vertex
	order       []int64
	adj         map[int64][]WeightedEdge[int64]
	numEdges    int
	streetNames map[[2]int64]string
	boundingBox *BoundingBox
}

func NewStreetMapGraph() *StreetMapGraph {
	return &StreetMapGraph{
		vertices:    make(map[int64]*Vertex),
		order:       make([]int64, 0),
		adj:         make(map[int64][]WeightedEdge[int64]),
		streetNames: make(map[[2]int64]string),
	}
}

// AddVertex. a vertex added twice keeps its first insertion position but takes the new coordinates & name.
func (g *StreetMapGraph) AddVertex(v *Vertex) {
	if _, ok := g.vertices[v.id]; !ok {
		g.order = append(g.order, v.id)
	}
	g.vertices[v.id] = v
}

func (g *StreetMapGraph) AddEdge(from, to int64, weight float64) error {
	if _, ok := g.vertices[from]; !ok {
		return util.WrapErrorf(nil, util.ErrNotFound, "edge tail %d is not a vertex", from)
	}
	if _, ok := g.vertices[to]; !ok {
		return util.WrapErrorf(nil, util.ErrNotFound, "edge head %d is not a vertex", to)
	}
	g.adj[from] = append(g.adj[from], NewWeightedEdge(from, to, weight))
	g.numEdges++
	return nil
}

// AddStreet. two-way street segment between a and b, weighted by its haversine length.
func (g *StreetMapGraph) AddStreet(a, b int64) error {
	va, ok := g.vertices[a]
	if !ok {
		return util.WrapErrorf(nil, util.ErrNotFound, "street endpoint %d is not a vertex", a)
	}
	vb, ok := g.vertices[b]
	if !ok {
		return util.WrapErrorf(nil, util.ErrNotFound, "street endpoint %d is not a vertex", b)
	}
	dist := geo.CalculateHaversineDistance(va.lat, va.lon, vb.lat, vb.lon)
	if err := g.AddEdge(a, b, dist); err != nil {
		return err
	}
	return g.AddEdge(b, a, dist)
}

// SetStreetName. name of the street segment between a and b, in both directions.
func (g *StreetMapGraph) SetStreetName(a, b int64, name string) {
	g.streetNames[[2]int64{a, b}] = name
	g.streetNames[[2]int64{b, a}] = name
}

// GetStreetName. empty for unnamed segments.
func (g *StreetMapGraph) GetStreetName(from, to int64) string {
	return g.streetNames[[2]int64{from, to}]
}

// Neighbors. outgoing edges of v. the returned slice is owned by the graph and must not be modified.
func (g *StreetMapGraph) Neighbors(v int64) []WeightedEdge[int64] {
	return g.adj[v]
}

func (g *StreetMapGraph) Degree(v int64) int {
	return len(g.adj[v])
}

// EstimatedDistanceToGoal. great-circle distance in km, a lower bound of any road path between s and goal.
func (g *StreetMapGraph) EstimatedDistanceToGoal(s, goal int64) float64 {
	vs, ok := g.vertices[s]
	if !ok {
		return 0
	}
	vg, ok := g.vertices[goal]
	if !ok {
		return 0
	}
	return geo.GreatCircleDistance(vs.lat, vs.lon, vg.lat, vg.lon)
}

func (g *StreetMapGraph) GetVertex(id int64) (*Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// Vertices. all vertices in insertion order.
func (g *StreetMapGraph) Vertices() []*Vertex {
	vs := make([]*Vertex, 0, len(g.order))
	for _, id := range g.order {
		vs = append(vs, g.vertices[id])
	}
	return vs
}

// ForVertices. iterate vertices in insertion order.
func (g *StreetMapGraph) ForVertices(handle func(v *Vertex)) {
	for _, id := range g.order {
		handle(g.vertices[id])
	}
}

func (g *StreetMapGraph) NumberOfVertices() int {
	return len(g.order)
}

func (g *StreetMapGraph) NumberOfEdges() int {
	return g.numEdges
}

func (g *StreetMapGraph) SetBoundingBox(bb *BoundingBox) {
	g.boundingBox = bb
}

// GetBoundingBox. the configured map bounds, or the extent of all vertices when none were set.
func (g *StreetMapGraph) GetBoundingBox() *BoundingBox {
	if g.boundingBox != nil && !g.boundingBox.IsEmpty() {
		return g.boundingBox
	}
	bb := NewEmptyBoundingBox()
	for _, id := range g.order {
		v := g.vertices[id]
		bb.Extend(v.lat, v.lon)
	}
	return bb
}

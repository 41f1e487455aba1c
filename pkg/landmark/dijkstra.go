package landmark

import (
	"github.com/lintang-b-s/streetmapx/pkg"
	da "github.com/lintang-b-s/streetmapx/pkg/datastructure"
)

type adjacencyFunc func(v int64) []da.WeightedEdge[int64]

// Dijkstra. one-to-all shortest path distances over dense vertex indexes. with a reverse adjacency
// the distances are from every vertex to the source instead.
type Dijkstra struct {
	neighbors adjacencyFunc
	index     map[int64]int32

	dist      []float64
	heapNodes []*da.PriorityQueueNode[int64]
	pq        *da.MinHeap[int64]

	numSettledNodes int
}

func NewDijkstra(neighbors adjacencyFunc, index map[int64]int32) *Dijkstra {
	return &Dijkstra{
		neighbors: neighbors,
		index:     index,
		dist:      make([]float64, len(index)),
		heapNodes: make([]*da.PriorityQueueNode[int64], len(index)),
		pq:        da.NewFourAryHeap[int64](),
	}
}

// ShortestPath. distance label of every vertex, unreachable vertices keep pkg.INF_WEIGHT.
func (d *Dijkstra) ShortestPath(s int64) []float64 {
	for i := range d.dist {
		d.dist[i] = pkg.INF_WEIGHT
	}
	si, ok := d.index[s]
	if !ok {
		return d.dist
	}

	d.dist[si] = 0
	sNode := da.NewPriorityQueueNode(0, s)
	d.heapNodes[si] = sNode
	d.pq.Insert(sNode)

	for !d.pq.IsEmpty() {
		d.settle()
		d.numSettledNodes++
	}
	return d.dist
}

func (d *Dijkstra) settle() {
	uNode, _ := d.pq.ExtractMin()
	u := uNode.GetItem()
	ui := d.index[u]
	d.heapNodes[ui] = nil

	for _, e := range d.neighbors(u) {
		v := e.To()
		vi, ok := d.index[v]
		if !ok {
			continue
		}

		newDist := d.dist[ui] + e.Weight()
		if newDist >= pkg.INF_WEIGHT || newDist >= d.dist[vi] {
			// not better
			continue
		}

		vAlreadyLabelled := d.dist[vi] < pkg.INF_WEIGHT
		d.dist[vi] = newDist
		if vAlreadyLabelled && d.heapNodes[vi] != nil {
			_ = d.pq.DecreaseKey(d.heapNodes[vi], newDist)
		} else if !vAlreadyLabelled {
			vNode := da.NewPriorityQueueNode(newDist, v)
			d.heapNodes[vi] = vNode
			d.pq.Insert(vNode)
		}
	}
}

func (d *Dijkstra) NumSettledNodes() int {
	return d.numSettledNodes
}

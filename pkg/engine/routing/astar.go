package routing

import (
	"time"

	da "github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/util"
)

// AStarSolver. single-use A* search from start to goal. all search state belongs to one instance and is
// dropped with it.
type AStarSolver[V comparable] struct {
	graph   AStarGraph[V]
	start   V
	goal    V
	timeout time.Duration

	pq        *da.MinHeap[V]
	heapNodes map[V]*da.PriorityQueueNode[V]
	distTo    map[V]float64
	edgeTo    map[V]V

	outcome           SolverOutcome
	solution          []V
	numStatesExplored int
	explorationTime   time.Duration
}

// NewAStarSolver. runs the search right away, the returned solver is already in a terminal state.
func NewAStarSolver[V comparable](graph AStarGraph[V], start, goal V, timeout time.Duration) *AStarSolver[V] {
	as := &AStarSolver[V]{
		graph:     graph,
		start:     start,
		goal:      goal,
		timeout:   timeout,
		pq:        da.NewFourAryHeap[V](),
		heapNodes: make(map[V]*da.PriorityQueueNode[V]),
		distTo:    make(map[V]float64),
		edgeTo:    make(map[V]V),
		outcome:   RUNNING,
		solution:  make([]V, 0),
	}
	as.solve()
	return as
}

func (as *AStarSolver[V]) solve() {
	startTime := time.Now()

	as.distTo[as.start] = 0
	as.insert(as.start, as.graph.EstimatedDistanceToGoal(as.start, as.goal))

	for as.outcome == RUNNING {
		top, err := as.pq.GetMin()
		if err != nil {
			as.outcome = UNSOLVABLE
			break
		}
		// goal test on peek: the goal ends the search as soon as it has the minimum priority, it is never expanded.
		if top.GetItem() == as.goal {
			as.outcome = SOLVED
			break
		}
		if time.Since(startTime) > as.timeout {
			as.outcome = TIMEOUT
			break
		}

		pNode, _ := as.pq.ExtractMin()
		p := pNode.GetItem()
		delete(as.heapNodes, p)
		as.numStatesExplored++

		for _, e := range as.graph.Neighbors(p) {
			as.relax(e)
		}
	}

	as.explorationTime = time.Since(startTime)

	if as.outcome == SOLVED {
		as.solution = as.retrievePath()
	}
}

func (as *AStarSolver[V]) insert(v V, priority float64) {
	node := da.NewPriorityQueueNode(priority, v)
	as.heapNodes[v] = node
	as.pq.Insert(node)
}

func (as *AStarSolver[V]) relax(e da.WeightedEdge[V]) {
	p, q, w := e.From(), e.To(), e.Weight()

	newDist := as.distTo[p] + w
	qDist, labelled := as.distTo[q]
	if labelled && newDist >= qDist {
		return
	}

	as.distTo[q] = newDist
	as.edgeTo[q] = p

	priority := newDist + as.graph.EstimatedDistanceToGoal(q, as.goal)
	if node, inQueue := as.heapNodes[q]; inQueue {
		// h(q) is fixed, so the new priority is strictly lower than the queued one.
		_ = as.pq.DecreaseKey(node, priority)
		return
	}
	as.insert(q, priority)
}

func (as *AStarSolver[V]) retrievePath() []V {
	path := []V{as.goal}
	for v := as.goal; v != as.start; {
		prev, ok := as.edgeTo[v]
		util.AssertPanic(ok && len(path) <= len(as.edgeTo)+1, "astar: broken predecessor chain")
		path = append(path, prev)
		v = prev
	}
	return util.ReverseG(path)
}

var _ ShortestPathsSolver[int64] = (*AStarSolver[int64])(nil)

func (as *AStarSolver[V]) Outcome() SolverOutcome {
	return as.outcome
}

// Solution. vertices from start to goal inclusive, empty unless SOLVED.
func (as *AStarSolver[V]) Solution() []V {
	if as.outcome != SOLVED {
		return []V{}
	}
	return as.solution
}

// SolutionWeight. total weight of Solution, 0 unless SOLVED.
func (as *AStarSolver[V]) SolutionWeight() float64 {
	if as.outcome != SOLVED {
		return 0
	}
	return as.distTo[as.goal]
}

func (as *AStarSolver[V]) NumStatesExplored() int {
	return as.numStatesExplored
}

func (as *AStarSolver[V]) ExplorationTime() time.Duration {
	return as.explorationTime
}

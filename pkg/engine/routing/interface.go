package routing

import (
	"time"

	da "github.com/lintang-b-s/streetmapx/pkg/datastructure"
)

// AStarGraph. graph searched by AStarSolver. EstimatedDistanceToGoal must never overestimate the remaining
// distance for the solution to be optimal; the solver does not check this.
type AStarGraph[V comparable] interface {
	Neighbors(v V) []da.WeightedEdge[V]
	EstimatedDistanceToGoal(s, goal V) float64
}

type ShortestPathsSolver[V comparable] interface {
	Outcome() SolverOutcome
	Solution() []V
	SolutionWeight() float64
	NumStatesExplored() int
	ExplorationTime() time.Duration
}

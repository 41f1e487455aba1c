package routing

type SolverOutcome uint8

const (
	RUNNING SolverOutcome = iota
	SOLVED
	TIMEOUT
	UNSOLVABLE
)

func (o SolverOutcome) String() string {
	switch o {
	case RUNNING:
		return "RUNNING"
	case SOLVED:
		return "SOLVED"
	case TIMEOUT:
		return "TIMEOUT"
	case UNSOLVABLE:
		return "UNSOLVABLE"
	default:
		return "UNKNOWN"
	}
}

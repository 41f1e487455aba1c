package guidance

import (
	"github.com/lintang-b-s/streetmapx/pkg/geo"
)

type instruction struct {
	sign       TurnSign
	streetName string
	lat, lon   float64
	bearing    float64
	distance   float64
	points     []geo.Coordinate
}

// DirectionBuilder. groups the edges of a vertex path into maneuvers. a new maneuver starts where the street name
// changes or where the path turns at least TURN_LEFT / TURN_RIGHT.
type DirectionBuilder struct {
	graph        Graph
	instructions []*instruction
}

func NewDirectionBuilder(graph Graph) *DirectionBuilder {
	return &DirectionBuilder{
		graph:        graph,
		instructions: make([]*instruction, 0),
	}
}

// GetDrivingDirections. empty for paths with fewer than two vertices or with unknown vertex ids.
func (db *DirectionBuilder) GetDrivingDirections(path []int64) []DrivingDirection {
	db.instructions = db.instructions[:0]
	if len(path) < 2 {
		return []DrivingDirection{}
	}

	coords := make([]geo.Coordinate, len(path))
	for i, id := range path {
		v, ok := db.graph.GetVertex(id)
		if !ok {
			return []DrivingDirection{}
		}
		coords[i] = geo.NewCoordinate(v.GetLat(), v.GetLon())
	}

	var (
		curr        *instruction
		prevBearing float64
	)
	for i := 0; i+1 < len(path); i++ {
		a, b := coords[i], coords[i+1]
		bearing := geo.BearingTo(a.GetLat(), a.GetLon(), b.GetLat(), b.GetLon())
		dist := geo.CalculateHaversineDistance(a.GetLat(), a.GetLon(), b.GetLat(), b.GetLon())
		streetName := db.graph.GetStreetName(path[i], path[i+1])

		if curr == nil {
			curr = db.newInstruction(START, streetName, a, bearing)
		} else {
			sign := getTurnDirection(prevBearing, bearing)
			if streetName != curr.streetName || isSignificantTurn(sign) {
				curr = db.newInstruction(sign, streetName, a, bearing)
			}
		}

		curr.distance += dist
		curr.points = append(curr.points, b)
		prevBearing = bearing
	}

	last := coords[len(coords)-1]
	finish := db.newInstruction(FINISH, "", last, prevBearing)

	directions := make([]DrivingDirection, len(db.instructions))
	for i, ins := range db.instructions {
		polyline := ""
		if ins != finish {
			polyline = geo.PolylineFromCoords(ins.points)
		}
		directions[i] = DrivingDirection{
			Instruction: turnDescription(ins.sign, ins.streetName, ins.bearing),
			TurnType:    ins.sign.String(),
			StreetName:  ins.streetName,
			Distance:    ins.distance,
			Lat:         ins.lat,
			Lon:         ins.lon,
			Bearing:     ins.bearing,
			Polyline:    polyline,
		}
	}
	return directions
}

func (db *DirectionBuilder) newInstruction(sign TurnSign, streetName string, at geo.Coordinate,
	bearing float64) *instruction {
	ins := &instruction{
		sign:       sign,
		streetName: streetName,
		lat:        at.GetLat(),
		lon:        at.GetLon(),
		bearing:    bearing,
		points:     []geo.Coordinate{at},
	}
	db.instructions = append(db.instructions, ins)
	return ins
}

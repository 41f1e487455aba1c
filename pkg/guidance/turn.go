package guidance

import (
	"math"
)

// deltaBearing. signed change of heading in degrees within (-180, 180], positive is clockwise (to the right).
func deltaBearing(prevBearing, bearing float64) float64 {
	delta := math.Mod(bearing-prevBearing+540.0, 360.0) - 180.0
	if delta == -180.0 {
		return 180.0
	}
	return delta
}

func getTurnDirection(prevBearing, bearing float64) TurnSign {
	delta := deltaBearing(prevBearing, bearing)
	deltaDegree := math.Abs(delta)
	if deltaDegree < 12 {
		return CONTINUE_ON_STREET
	} else if deltaDegree < 40 {
		if delta < 0 {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	} else if deltaDegree < 105 {
		if delta < 0 {
			return TURN_LEFT
		}
		return TURN_RIGHT
	} else if deltaDegree < 170 {
		if delta < 0 {
			return TURN_SHARP_LEFT
		}
		return TURN_SHARP_RIGHT
	} else if delta < 0 {
		return U_TURN_LEFT
	}
	return U_TURN_RIGHT
}

// isSignificantTurn. turns that get their own instruction even without a street name change.
func isSignificantTurn(sign TurnSign) bool {
	return sign <= TURN_LEFT || (sign >= TURN_RIGHT && sign != FINISH && sign != START)
}

package guidance

import (
	"fmt"
	"strings"
)

type TurnSign int

const (
	U_TURN_LEFT        TurnSign = -8
	TURN_SHARP_LEFT    TurnSign = -3
	TURN_LEFT          TurnSign = -2
	TURN_SLIGHT_LEFT   TurnSign = -1
	CONTINUE_ON_STREET TurnSign = 0
	TURN_SLIGHT_RIGHT  TurnSign = 1
	TURN_RIGHT         TurnSign = 2
	TURN_SHARP_RIGHT   TurnSign = 3
	FINISH             TurnSign = 4
	START              TurnSign = 5
	U_TURN_RIGHT       TurnSign = 8
)

func (s TurnSign) String() string {
	switch s {
	case U_TURN_LEFT:
		return "U_TURN_LEFT"
	case TURN_SHARP_LEFT:
		return "TURN_SHARP_LEFT"
	case TURN_LEFT:
		return "TURN_LEFT"
	case TURN_SLIGHT_LEFT:
		return "TURN_SLIGHT_LEFT"
	case CONTINUE_ON_STREET:
		return "CONTINUE_ON_STREET"
	case TURN_SLIGHT_RIGHT:
		return "TURN_SLIGHT_RIGHT"
	case TURN_RIGHT:
		return "TURN_RIGHT"
	case TURN_SHARP_RIGHT:
		return "TURN_SHARP_RIGHT"
	case FINISH:
		return "FINISH"
	case START:
		return "START"
	case U_TURN_RIGHT:
		return "U_TURN_RIGHT"
	default:
		return "UNKNOWN"
	}
}

// DrivingDirection. one maneuver of a route. Distance is the length in km driven after the maneuver,
// up to the next one.
type DrivingDirection struct {
	Instruction string  `json:"instruction"`
	TurnType    string  `json:"turn_type"`
	StreetName  string  `json:"street_name"`
	Distance    float64 `json:"distance"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Bearing     float64 `json:"bearing"`
	Polyline    string  `json:"polyline"`
}

func bearingToCompass(bearing float64) string {
	if bearing < 22.5 {
		return "North"
	} else if bearing < 67.5 {
		return "North East"
	} else if bearing < 112.5 {
		return "East"
	} else if bearing < 157.5 {
		return "South East"
	} else if bearing < 202.5 {
		return "South"
	} else if bearing < 247.5 {
		return "South West"
	} else if bearing < 292.5 {
		return "West"
	} else if bearing < 337.5 {
		return "North West"
	}
	return "North"
}

func isEmpty(str string) bool {
	return strings.TrimSpace(str) == ""
}

func turnDescription(sign TurnSign, streetName string, heading float64) string {
	switch sign {
	case START:
		if isEmpty(streetName) {
			return fmt.Sprintf("Head %s", bearingToCompass(heading))
		}
		return fmt.Sprintf("Head %s on %s", bearingToCompass(heading), streetName)
	case FINISH:
		return "You have arrived at your destination"
	case CONTINUE_ON_STREET:
		if isEmpty(streetName) {
			return "Continue"
		}
		return fmt.Sprintf("Continue onto %s", streetName)
	}

	var dir string
	switch sign {
	case U_TURN_LEFT:
		dir = "Make U-turn left"
	case U_TURN_RIGHT:
		dir = "Make U-turn right"
	case TURN_SHARP_LEFT:
		dir = "Turn sharp left"
	case TURN_LEFT:
		dir = "Turn left"
	case TURN_SLIGHT_LEFT:
		dir = "Turn slight left"
	case TURN_SLIGHT_RIGHT:
		dir = "Turn slight right"
	case TURN_RIGHT:
		dir = "Turn right"
	case TURN_SHARP_RIGHT:
		dir = "Turn sharp right"
	default:
		return fmt.Sprintf("unknown %d", sign)
	}
	if isEmpty(streetName) {
		return dir
	}
	return fmt.Sprintf("%s onto %s", dir, streetName)
}

package pkg

const (
	INF_WEIGHT float64 = 1e15

	// scale factor at the natural origin. 1 instead of the UTM 0.9996.
	PROJECTION_K0 = 1.0

	DEFAULT_ROUTE_TIMEOUT_SECONDS = 10.0
	DEFAULT_PREFIX_CACHE_SIZE     = 1 << 12
)

const (
	DEBUG = false
)

type OsmHighwayType uint8

// highway types accepted as routable streets.
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	UNCLASSIFIED   OsmHighwayType = 6
	LIVING_STREET  OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	UNKNOWN        OsmHighwayType = 13
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "living_street":
		return LIVING_STREET
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	default:
		return UNKNOWN
	}
}

func IsAllowedHighway(roadType string) bool {
	return GetHighwayType(roadType) != UNKNOWN
}

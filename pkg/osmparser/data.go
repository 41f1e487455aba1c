package osmparser

type MapFormat uint8

const (
	FORMAT_XML MapFormat = iota
	FORMAT_PBF
)

type osmNode struct {
	id   int64
	lat  float64
	lon  float64
	name string
}

type osmWay struct {
	id    int64
	nodes []int64
	hwTag string
	name  string
}

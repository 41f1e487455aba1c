package guidance

import "github.com/lintang-b-s/streetmapx/pkg/datastructure"

type Graph interface {
	GetVertex(id int64) (*datastructure.Vertex, bool)
	GetStreetName(from, to int64) string
}

package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/streetmapx/pkg"
	"github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

// OsmParser. builds a StreetMapGraph from an osm extract. vertices are the nodes of accepted highway ways plus
// every node with a name tag; consecutive nodes of an accepted way become a two-way street.
type OsmParser struct {
	nodes       map[int64]osmNode
	nodeOrder   []int64
	ways        []osmWay
	wayNodeSet  map[int64]struct{}
	boundingBox *datastructure.BoundingBox
}

func NewOSMParser() *OsmParser {
	return &OsmParser{
		nodes:      make(map[int64]osmNode),
		nodeOrder:  make([]int64, 0),
		ways:       make([]osmWay, 0),
		wayNodeSet: make(map[int64]struct{}),
	}
}

// Parse. .pbf files are read as protobuf, everything else as xml. a trailing .bz2 is decompressed on the fly.
func (p *OsmParser) Parse(mapFile string, logger *zap.Logger) (*datastructure.StreetMapGraph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, fmt.Errorf("open map file %s: %w", mapFile, err)
	}
	defer f.Close()

	var r io.Reader = f
	name := mapFile
	if strings.HasSuffix(name, ".bz2") {
		bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, fmt.Errorf("open bzip2 stream %s: %w", mapFile, err)
		}
		defer bz.Close()
		r = bz
		name = strings.TrimSuffix(name, ".bz2")
	}

	format := FORMAT_XML
	if strings.HasSuffix(name, ".pbf") {
		format = FORMAT_PBF
	}
	return p.ParseReader(r, format, logger)
}

type osmScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

func (p *OsmParser) ParseReader(r io.Reader, format MapFormat, logger *zap.Logger) (*datastructure.StreetMapGraph, error) {
	ctx := context.Background()

	var scanner osmScanner
	switch format {
	case FORMAT_PBF:
		pbfScanner := osmpbf.New(ctx, r, 1)
		if header, err := pbfScanner.Header(); err == nil && header.Bounds != nil {
			p.setBounds(header.Bounds)
		}
		scanner = pbfScanner
	default:
		scanner = osmxml.New(ctx, r)
	}
	// must not be parallel, vertex order follows the file order
	defer scanner.Close()

	countWays := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Bounds:
			p.setBounds(o)
		case *osm.Node:
			p.addNode(o)
		case *osm.Way:
			if !p.acceptWay(o) {
				continue
			}
			if (countWays+1)%50000 == 0 {
				logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
			}
			countWays++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan osm data: %w", err)
	}

	graph, err := p.buildGraph()
	if err != nil {
		return nil, err
	}
	logger.Info("street map graph built", zap.Int("numberOfVertices", graph.NumberOfVertices()),
		zap.Int("numberOfEdges", graph.NumberOfEdges()), zap.Int("numberOfWays", countWays))
	return graph, nil
}

func (p *OsmParser) setBounds(b *osm.Bounds) {
	p.boundingBox = datastructure.NewBoundingBox(b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
}

func (p *OsmParser) addNode(n *osm.Node) {
	id := int64(n.ID)
	if _, ok := p.nodes[id]; !ok {
		p.nodeOrder = append(p.nodeOrder, id)
	}
	p.nodes[id] = osmNode{
		id:   id,
		lat:  n.Lat,
		lon:  n.Lon,
		name: n.Tags.Find("name"),
	}
}

func (p *OsmParser) acceptWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 {
		return false
	}
	hwTag := way.Tags.Find("highway")
	if !pkg.IsAllowedHighway(hwTag) {
		return false
	}

	nodes := make([]int64, 0, len(way.Nodes))
	for _, wn := range way.Nodes {
		nodes = append(nodes, int64(wn.ID))
		p.wayNodeSet[int64(wn.ID)] = struct{}{}
	}
	p.ways = append(p.ways, osmWay{id: int64(way.ID), nodes: nodes, hwTag: hwTag,
		name: way.Tags.Find("name")})
	return true
}

func (p *OsmParser) buildGraph() (*datastructure.StreetMapGraph, error) {
	graph := datastructure.NewStreetMapGraph()

	for _, id := range p.nodeOrder {
		n := p.nodes[id]
		_, onWay := p.wayNodeSet[id]
		if !onWay && n.name == "" {
			continue
		}
		graph.AddVertex(datastructure.NewVertex(n.id, n.lat, n.lon, n.name))
	}

	for _, way := range p.ways {
		for i := 0; i+1 < len(way.nodes); i++ {
			from, to := way.nodes[i], way.nodes[i+1]
			if from == to {
				continue
			}
			_, fromOk := graph.GetVertex(from)
			_, toOk := graph.GetVertex(to)
			if !fromOk || !toOk {
				// way references a node outside of the extract
				continue
			}
			if err := graph.AddStreet(from, to); err != nil {
				return nil, err
			}
			if way.name != "" {
				graph.SetStreetName(from, to, way.name)
			}
		}
	}

	if p.boundingBox != nil {
		graph.SetBoundingBox(p.boundingBox)
	}
	return graph, nil
}

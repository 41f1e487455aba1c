package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/lintang-b-s/streetmapx/pkg/concurrent"
	"github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/engine"
	"github.com/lintang-b-s/streetmapx/pkg/engine/routing"
	log "github.com/lintang-b-s/streetmapx/pkg/logger"
	"github.com/lintang-b-s/streetmapx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	mapFile    = flag.String("map_file", "", "openstreetmap file, overrides MAP_FILE")
	numQueries = flag.Int("n", 10000, "number of random route queries")
	numWorkers = flag.Int("workers", 16, "number of concurrent workers")
	seed       = flag.Uint64("seed", 42, "random seed")
	timeout    = flag.Float64("timeout", 10.0, "per query timeout in seconds")
	outFile    = flag.String("out", "rand_queries_result.csv", "result csv")
	landmarks  = flag.Int("landmarks", 0, "number of ALT landmarks, 0 runs plain A*")
)

type query struct {
	row int
	// random coordinates inside the map bounds, snapped with Closest.
	startLat, startLon float64
	endLat, endLon     float64
}

type queryResult struct {
	row               int
	start, goal       int64
	outcome           routing.SolverOutcome
	weight            float64
	numStatesExplored int
	duration          time.Duration
}

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	file := viper.GetString("MAP_FILE")
	if *mapFile != "" {
		file = *mapFile
	}
	re, err := engine.NewEngineFromFile(file, nil, logger)
	if err != nil {
		panic(err)
	}
	if *landmarks > 0 {
		if err := re.UseLandmarks(*landmarks); err != nil {
			panic(err)
		}
	}

	bb := re.GetGraph().GetBoundingBox()
	queries := generateQueries(bb, *numQueries, *seed)

	calcSP := func(q query) queryResult {
		before := time.Now()
		start := re.Closest(q.startLon, q.startLat)
		goal := re.Closest(q.endLon, q.endLat)
		res := re.SolveRoute(start, goal, *timeout)
		if (q.row+1)%1000 == 0 {
			logger.Sugar().Infof("done query %v", q.row+1)
		}
		return queryResult{
			row:               q.row,
			start:             start,
			goal:              goal,
			outcome:           res.Outcome,
			weight:            res.Weight,
			numStatesExplored: res.Stats.NumStatesExplored,
			duration:          time.Since(before),
		}
	}

	workers := concurrent.NewWorkerPool[query, queryResult](*numWorkers, *numWorkers*4)
	results := workers.Run(queries, calcSP)
	sort.Slice(results, func(i, j int) bool {
		return results[i].row < results[j].row
	})

	if err := writeResults(*outFile, results); err != nil {
		panic(err)
	}
	logSummary(logger, results)
}

func generateQueries(bb *datastructure.BoundingBox, n int, seed uint64) []query {
	rd := rand.New(rand.NewSource(seed))
	between := func(lo, hi float64) float64 {
		return lo + rd.Float64()*(hi-lo)
	}

	queries := make([]query, n)
	for i := range queries {
		queries[i] = query{
			row:      i,
			startLat: between(bb.GetMinLat(), bb.GetMaxLat()),
			startLon: between(bb.GetMinLon(), bb.GetMaxLon()),
			endLat:   between(bb.GetMinLat(), bb.GetMaxLat()),
			endLon:   between(bb.GetMinLon(), bb.GetMaxLon()),
		}
	}
	return queries
}

func writeResults(path string, results []queryResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "start,goal,outcome,weight_km,num_states_explored,duration_ms")
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%d,%d,%s,%f,%d,%d\n", r.start, r.goal, r.outcome, r.weight,
			r.numStatesExplored, r.duration.Milliseconds()); err != nil {
			return err
		}
	}
	return w.Flush()
}

func logSummary(logger *zap.Logger, results []queryResult) {
	counts := make(map[routing.SolverOutcome]int)
	durations := make([]time.Duration, 0, len(results))
	for _, r := range results {
		counts[r.outcome]++
		durations = append(durations, r.duration)
	}
	if len(durations) == 0 {
		return
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	logger.Info("random queries finished",
		zap.Int("queries", len(results)),
		zap.Int("solved", counts[routing.SOLVED]),
		zap.Int("unsolvable", counts[routing.UNSOLVABLE]),
		zap.Int("timeout", counts[routing.TIMEOUT]),
		zap.Duration("p50", durations[len(durations)/2]),
		zap.Duration("p99", durations[len(durations)*99/100]),
		zap.Duration("max", durations[len(durations)-1]))
}

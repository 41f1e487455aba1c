package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/engine"
	"github.com/lintang-b-s/streetmapx/pkg/http"
	"github.com/lintang-b-s/streetmapx/pkg/http/usecases"
	"github.com/lintang-b-s/streetmapx/pkg/logger"
	"github.com/lintang-b-s/streetmapx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	mapFile      = flag.String("map_file", "", "openstreetmap file (.osm, .osm.xml, .osm.bz2, .osm.pbf), overrides MAP_FILE")
	useRateLimit = flag.Bool("rate_limit", false, "enable the global api rate limiter (RATE_LIMIT_RPS, RATE_LIMIT_BURST)")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	file := viper.GetString("MAP_FILE")
	if *mapFile != "" {
		file = *mapFile
	}

	var bounds *datastructure.BoundingBox
	if ulLat, ulLon, lrLat, lrLon, ok := util.MapBoundsFromConfig(); ok {
		bounds = datastructure.NewBoundingBox(lrLat, ulLon, ulLat, lrLon)
	}

	routingEngine, err := engine.NewEngineFromFile(file, bounds, logger)
	if err != nil {
		panic(err)
	}

	if k := viper.GetInt("ALT_LANDMARKS"); k > 0 {
		if err := routingEngine.UseLandmarks(k); err != nil {
			panic(err)
		}
	}

	routingService, err := usecases.NewRoutingService(logger, routingEngine,
		viper.GetFloat64("ROUTE_TIMEOUT_SECONDS"), viper.GetInt("PREFIX_CACHE_SIZE"))
	if err != nil {
		panic(err)
	}

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)
	if _, err := api.Use(ctx, logger, *useRateLimit, routingService); err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("server error", zap.Error(err))
	}
	logger.Info("streetmapx server stopped", zap.String("signal", signal.String()))
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}

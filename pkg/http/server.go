package http

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/streetmapx/pkg/http/router"
	"github.com/lintang-b-s/streetmapx/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/streetmapx/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. start the api, websocket and proxy servers in the background. they stop when ctx is canceled.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,
) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("WEBSOCKET_PORT", 6666)
	viper.SetDefault("PROXY_PORT", 6767)

	viper.SetDefault("API_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")

	config := http_server.Config{
		Port:          viper.GetInt("API_PORT"),
		WebsocketPort: viper.GetInt("WEBSOCKET_PORT"),
		ProxyPort:     viper.GetInt("PROXY_PORT"),
		Timeout:       viper.GetDuration("API_TIMEOUT"),
	}

	server := http_router.NewAPI(log)

	s.g = &errgroup.Group{}
	s.g.Go(func() error {
		err := server.Run(
			ctx, config, log,
			useRateLimit, routingService,
		)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped with error", zap.Error(err))
			return err
		}
		return nil
	})

	return s, nil
}

// Wait. blocks until the servers started by Use have returned.
func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}

// GracefulShutdown. blocks until SIGINT or SIGTERM and returns the received signal.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          int
	WebsocketPort int
	ProxyPort     int
	Timeout       time.Duration
}

// New. http.Server bound to config.Port, or config.WebsocketPort when websocket is set.
// the write timeout leaves room for a full route query on top of HTTP_SERVER_WRITE_TIMEOUT.
func New(ctx context.Context, handler http.Handler, config Config, websocket bool) *http.Server {
	port := config.Port
	if websocket {
		port = config.WebsocketPort
	}

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: http.TimeoutHandler(handler, config.Timeout, "request timed out"),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},

		ReadTimeout:       viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"),
		WriteTimeout:      config.Timeout + viper.GetDuration("HTTP_SERVER_WRITE_TIMEOUT"),
		IdleTimeout:       viper.GetDuration("HTTP_SERVER_IDLE_TIMEOUT"),
		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
	}
}

package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/lintang-b-s/streetmapx/pkg/concurrent"
	"github.com/lintang-b-s/streetmapx/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/streetmapx/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"go.uber.org/zap"
)

const (
	wsPoolSize     = 64
	wsPoolQueue    = 16
	wsPoolSpawn    = 8
	acceptTimeout  = 1000 * time.Millisecond
	acceptCooldown = 5 * time.Millisecond
)

// handleWebsocket. autocomplete websocket server. connections are watched with epoll (netpoll) and
// requests are served by the goroutine pool, so idle clients do not hold a goroutine.
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	routingService controllers.RoutingService, errChan chan error,
) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.WebsocketPort))
	if err != nil {
		errChan <- err
		return
	}
	api.log.Info(fmt.Sprintf("autocomplete websocket API run on port %d", config.WebsocketPort))

	acceptDesc, err := netpoll.HandleListener(ln, netpoll.EventRead|netpoll.EventOneShot)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.poller, err = netpoll.New(nil)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.pool = concurrent.NewPool(wsPoolSize, wsPoolQueue)
	api.hub = controllers.NewHub(routingService)
	api.pool.Spawn(wsPoolSpawn)

	// accept carries the result of the next ln.Accept().
	accept := make(chan error, 1)

	err = api.poller.Start(acceptDesc, func(ev netpoll.Event) {
		defer api.poller.Resume(acceptDesc)
		err := api.pool.ScheduleTimeout(acceptTimeout, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(conn)
		})
		if err == nil {
			err = <-accept
		}
		if err == nil {
			return
		}

		// pool busy for a whole acceptTimeout or a temporary accept error: cool the listener down.
		var ne net.Error
		if errors.Is(err, concurrent.ErrScheduleTimeout) || (errors.As(err, &ne) && ne.Timeout()) {
			api.log.Sugar().Infof("accept error: %v; retrying in %s", err, acceptCooldown)
			time.Sleep(acceptCooldown)
			return
		}
		if errors.Is(err, net.ErrClosed) {
			return
		}
		api.log.Error("accept error", zap.Error(err))
	})
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	<-ctx.Done()

	_ = api.poller.Stop(acceptDesc)
	ln.Close()
	api.hub.RemoveAllUser()
	api.pool.Close()

	api.log.Info("websocket server stopped")
}

// handle. upgrade conn and register it on the poller, every readable event schedules one autocomplete request.
func (api *API) handle(conn net.Conn) {
	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc, err := netpoll.HandleRead(conn)
	if err != nil {
		api.log.Error("netpoll handle read error", zap.Error(err))
		api.hub.Remove(user)
		conn.Close()
		return
	}

	err = api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			api.log.Info("user disconnected from websocket server", zap.Uint("user", user.GetID()))
			_ = api.poller.Stop(desc)
			api.hub.Remove(user)
			return
		}

		api.pool.Schedule(func() {
			if err := user.Autocomplete(); err != nil {
				api.log.Info("autocomplete connection closed", zap.Uint("user", user.GetID()), zap.Error(err))
				_ = api.poller.Stop(desc)
				api.hub.Remove(user)
			}
		})
	})
	if err != nil {
		api.log.Error("netpoll start error", zap.Error(err))
		api.hub.Remove(user)
		conn.Close()
	}
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}

package routerhelper

import (
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup. httprouter routes sharing a path prefix.
type RouteGroup struct {
	r *httprouter.Router
	p string
}

func NewRouteGroup(r *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{r: r, p: cleanPrefix(prefix)}
}

func (g *RouteGroup) Group(prefix string) *RouteGroup {
	return NewRouteGroup(g.r, g.subPath(prefix))
}

func (g *RouteGroup) Handle(method, p string, handle httprouter.Handle) {
	g.r.Handle(method, g.subPath(p), handle)
}

func (g *RouteGroup) Handler(method, p string, handler http.Handler) {
	g.r.Handler(method, g.subPath(p), handler)
}

func (g *RouteGroup) GET(p string, handle httprouter.Handle) {
	g.Handle(http.MethodGet, p, handle)
}

func (g *RouteGroup) POST(p string, handle httprouter.Handle) {
	g.Handle(http.MethodPost, p, handle)
}

func (g *RouteGroup) DELETE(p string, handle httprouter.Handle) {
	g.Handle(http.MethodDelete, p, handle)
}

func (g *RouteGroup) subPath(p string) string {
	result := path.Join(g.p, p)
	// path.Join drops the trailing slash, httprouter treats /x and /x/ as different routes.
	if len(p) > 1 && p[len(p)-1] == '/' && result[len(result)-1] != '/' {
		result += "/"
	}
	return result
}

func cleanPrefix(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}

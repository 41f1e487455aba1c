package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/engine"
	"github.com/lintang-b-s/streetmapx/pkg/guidance"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(r.RemoteAddr))
})

func TestHeartbeat(t *testing.T) {
	h := Heartbeat("healthz")(http.NotFoundHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRealIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"x-real-ip", map[string]string{"X-Real-IP": "10.0.0.7"}, "10.0.0.7"},
		{"x-forwarded-for", map[string]string{"X-Forwarded-For": "10.0.0.8, 10.0.0.1"}, "10.0.0.8"},
		{"garbage kept remote addr", map[string]string{"X-Real-IP": "not-an-ip"}, "192.0.2.1:1234"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range c.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			RealIP(okHandler).ServeHTTP(rec, req)
			assert.Equal(t, c.want, rec.Body.String())
		})
	}
}

func TestEnforceJSONHandler(t *testing.T) {
	h := EnforceJSONHandler(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLimit(t *testing.T) {
	h := Limit(0.001, 2)(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRecoverPanic(t *testing.T) {
	api := NewAPI(zap.NewNop())
	h := api.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
}

type stubRoutingService struct{}

func (stubRoutingService) Closest(lat, lon float64) (*datastructure.Vertex, error) {
	return datastructure.NewVertex(1, lat, lon, ""), nil
}

func (stubRoutingService) LocationsByPrefix(prefix string) []string {
	return []string{"Top Dog"}
}

func (stubRoutingService) Locations(name string) []engine.Location {
	return []engine.Location{}
}

func (stubRoutingService) ShortestPath(startLat, startLon, endLat, endLon,
	timeoutSeconds float64) (engine.RouteResult, string, []guidance.DrivingDirection, error) {
	return engine.RouteResult{}, "", nil, nil
}

func TestHandlerChain(t *testing.T) {
	viper.Set("RATE_LIMIT_RPS", 1000.0)
	viper.Set("RATE_LIMIT_BURST", 1000)
	h := NewAPI(zap.NewNop()).Handler(stubRoutingService{}, true)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/locationsByPrefix?prefix=top", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"names":["Top Dog"]}}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/closest?lat=1&lon=2", nil)
	req.Header.Set("Origin", "http://example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

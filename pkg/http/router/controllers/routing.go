package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/streetmapx/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/closest", api.closest)
	group.GET("/locationsByPrefix", api.locationsByPrefix)
	group.GET("/locations", api.locations)
	group.GET("/route", api.shortestPath)
}

// closest
//
//	@Summary		closest non-isolated vertex to a coordinate
//	@Tags			routing
//	@Produce		json
//	@Param			lat	query		number	true	"latitude"
//	@Param			lon	query		number	true	"longitude"
//	@Success		200	{object}	closestResponse
//	@Failure		400	{object}	errorResponse
//	@Router			/closest [get]
func (api *routingAPI) closest(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request closestRequest
		err     error
	)
	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	v, err := api.routingService.Closest(request.Lat, request.Lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewClosestResponse(v)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// locationsByPrefix
//
//	@Summary		full names of every location whose cleaned name starts with the cleaned prefix
//	@Tags			search
//	@Produce		json
//	@Param			prefix	query		string	false	"name prefix"
//	@Success		200		{object}	locationsByPrefixResponse
//	@Router			/locationsByPrefix [get]
func (api *routingAPI) locationsByPrefix(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request := locationsByPrefixRequest{Prefix: r.URL.Query().Get("prefix")}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	names := api.routingService.LocationsByPrefix(request.Prefix)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": locationsByPrefixResponse{Names: names}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// locations
//
//	@Summary		every location whose cleaned name equals the cleaned query name
//	@Tags			search
//	@Produce		json
//	@Param			name	query		string	true	"location name"
//	@Success		200		{array}		engine.Location
//	@Failure		400		{object}	errorResponse
//	@Router			/locations [get]
func (api *routingAPI) locations(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request := locationsRequest{Name: r.URL.Query().Get("name")}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	locs := api.routingService.Locations(request.Name)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": locs}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// shortestPath
//
//	@Summary		A* route between the vertices closest to the start and end coordinates
//	@Tags			routing
//	@Produce		json
//	@Param			start_lat	query		number	true	"start latitude"
//	@Param			start_lon	query		number	true	"start longitude"
//	@Param			end_lat		query		number	true	"end latitude"
//	@Param			end_lon		query		number	true	"end longitude"
//	@Param			timeout		query		number	false	"search timeout in seconds"
//	@Success		200			{object}	shortestPathResponse
//	@Failure		400			{object}	errorResponse
//	@Failure		404			{object}	errorResponse
//	@Failure		408			{object}	errorResponse
//	@Router			/route [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request shortestPathRequest
		err     error
	)
	query := r.URL.Query()

	request.StartLat, err = strconv.ParseFloat(query.Get("start_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("start_lat is required and must be a valid float"))
		return
	}
	request.StartLon, err = strconv.ParseFloat(query.Get("start_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("start_lon is required and must be a valid float"))
		return
	}
	request.EndLat, err = strconv.ParseFloat(query.Get("end_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("end_lat is required and must be a valid float"))
		return
	}
	request.EndLon, err = strconv.ParseFloat(query.Get("end_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("end_lon is required and must be a valid float"))
		return
	}
	if timeout := query.Get("timeout"); timeout != "" {
		request.Timeout, err = strconv.ParseFloat(timeout, 64)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("timeout must be a valid float"))
			return
		}
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, polyline, directions, err := api.routingService.ShortestPath(request.StartLat, request.StartLon,
		request.EndLat, request.EndLon, request.Timeout)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(res, polyline, directions)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

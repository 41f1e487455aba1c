package controllers

import (
	"github.com/lintang-b-s/streetmapx/pkg/datastructure"
	"github.com/lintang-b-s/streetmapx/pkg/engine"
	"github.com/lintang-b-s/streetmapx/pkg/guidance"
)

type closestRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type closestResponse struct {
	ID  int64   `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewClosestResponse(v *datastructure.Vertex) closestResponse {
	return closestResponse{
		ID:  v.GetID(),
		Lat: v.GetLat(),
		Lon: v.GetLon(),
	}
}

type locationsByPrefixRequest struct {
	Prefix string `json:"prefix" validate:"max=256"`
}

type locationsByPrefixResponse struct {
	Names []string `json:"names"`
}

type locationsRequest struct {
	Name string `json:"name" validate:"required,max=256"`
}

type shortestPathRequest struct {
	StartLat float64 `json:"start_lat" validate:"min=-90,max=90"`
	StartLon float64 `json:"start_lon" validate:"min=-180,max=180"`
	EndLat   float64 `json:"end_lat" validate:"min=-90,max=90"`
	EndLon   float64 `json:"end_lon" validate:"min=-180,max=180"`
	Timeout  float64 `json:"timeout" validate:"min=0,max=600"`
}

type shortestPathResponse struct {
	Outcome           string  `json:"outcome"`
	Path              []int64 `json:"path"`
	Polyline          string  `json:"polyline"`
	Distance          float64 `json:"distance"`
	NumStatesExplored int     `json:"num_states_explored"`
	ExplorationTime   float64 `json:"exploration_time"`

	DrivingDirections []guidance.DrivingDirection `json:"driving_directions"`
}

func NewShortestPathResponse(res engine.RouteResult, polyline string,
	directions []guidance.DrivingDirection) shortestPathResponse {
	path := res.Path
	if path == nil {
		path = []int64{}
	}
	return shortestPathResponse{
		Outcome:           res.Outcome.String(),
		Path:              path,
		Polyline:          polyline,
		Distance:          res.Weight,
		NumStatesExplored: res.Stats.NumStatesExplored,
		ExplorationTime:   res.Stats.ExplorationTime.Seconds(),
		DrivingDirections: directions,
	}
}

// websocket autocomplete

type autocompleteRequest struct {
	Prefix string `json:"prefix" validate:"max=256"`
	Limit  int    `json:"limit" validate:"min=0,max=1000"`
}

type autocompleteResponse struct {
	Prefix string   `json:"prefix"`
	Names  []string `json:"names"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

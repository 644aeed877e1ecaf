package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/transitcat/pkg/catalogue"
	"github.com/matzehuels/transitcat/pkg/routing"
)

// Error messages used in responses.
const (
	MsgNotFound       = "not found"
	MsgUnknownType    = "unknown type"
	MsgMapUnsupported = "map rendering is not supported"

	MsgInvalidID       = "invalid request id"
	MsgInvalidType     = "invalid type"
	MsgInvalidBusName  = "invalid bus name"
	MsgInvalidStopName = "invalid stop name"
	MsgInvalidRoute    = "invalid route request"
)

// Response is the answer to one stat request. It is one of
// [BusResponse], [StopResponse], [RouteResponse], or [ErrorResponse].
type Response interface {
	ID() int
}

// BusResponse reports the statistics of one bus.
type BusResponse struct {
	RequestID       int     `json:"request_id"`
	Curvature       float64 `json:"curvature"`
	RouteLength     float64 `json:"route_length"`
	StopCount       int     `json:"stop_count"`
	UniqueStopCount int     `json:"unique_stop_count"`
}

// StopResponse lists the buses serving a stop.
type StopResponse struct {
	RequestID int      `json:"request_id"`
	Buses     []string `json:"buses"`
}

// RouteResponse is the fastest route between two stops.
type RouteResponse struct {
	RequestID int         `json:"request_id"`
	TotalTime float64     `json:"total_time"`
	Items     []RouteItem `json:"items"`
}

// RouteItem is one wait or ride in a [RouteResponse].
type RouteItem struct {
	Type      string  `json:"type"`
	StopName  string  `json:"stop_name,omitempty"`
	Bus       string  `json:"bus,omitempty"`
	SpanCount int     `json:"span_count,omitempty"`
	Time      float64 `json:"time"`
}

// ErrorResponse reports a request that could not be answered.
type ErrorResponse struct {
	RequestID    int    `json:"request_id"`
	ErrorMessage string `json:"error_message"`
}

func (r BusResponse) ID() int   { return r.RequestID }
func (r StopResponse) ID() int  { return r.RequestID }
func (r RouteResponse) ID() int { return r.RequestID }
func (r ErrorResponse) ID() int { return r.RequestID }

// BusStats answers a Bus request.
func BusStats(cat *catalogue.Catalogue, id int, name string) Response {
	stats, ok := cat.RouteStatistics(name)
	if !ok {
		return ErrorResponse{RequestID: id, ErrorMessage: MsgNotFound}
	}
	return BusResponse{
		RequestID:       id,
		Curvature:       stats.Curvature,
		RouteLength:     stats.RouteLength,
		StopCount:       stats.StopCount,
		UniqueStopCount: stats.UniqueStopCount,
	}
}

// StopBuses answers a Stop request.
func StopBuses(cat *catalogue.Catalogue, id int, name string) Response {
	buses, ok := cat.BusesThroughStop(name)
	if !ok {
		return ErrorResponse{RequestID: id, ErrorMessage: MsgNotFound}
	}
	return StopResponse{RequestID: id, Buses: buses}
}

// FindRoute answers a Route request.
func FindRoute(ctx context.Context, net *routing.Network, id int, from, to string) Response {
	route, err := net.FindRoute(ctx, from, to)
	if err != nil {
		return ErrorResponse{RequestID: id, ErrorMessage: MsgNotFound}
	}
	return NewRouteResponse(id, route)
}

// NewRouteResponse converts a route into its response form.
func NewRouteResponse(id int, route routing.Route) RouteResponse {
	resp := RouteResponse{RequestID: id, TotalTime: route.TotalTime, Items: make([]RouteItem, 0, len(route.Actions))}
	for _, a := range route.Actions {
		item := RouteItem{Type: a.Kind.String(), Time: a.Time}
		switch a.Kind {
		case routing.Wait:
			item.StopName = a.StopName
		case routing.Bus:
			item.Bus = a.BusName
			item.SpanCount = a.SpanCount
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

// WriteResponses writes responses as an indented JSON array.
func WriteResponses(w io.Writer, responses []Response) error {
	if responses == nil {
		responses = []Response{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(responses); err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}
	return nil
}

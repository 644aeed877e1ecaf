package requests

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/transitcat/pkg/catalogue"
	"github.com/matzehuels/transitcat/pkg/routing"
)

// Options configures [Process].
type Options struct {
	// Settings are the routing defaults. The document's routing_settings
	// replace WaitTime and Velocity; SpanCap always comes from here.
	// A zero value means [routing.DefaultSettings].
	Settings routing.Settings

	// Logger receives debug output. Nil disables logging.
	Logger *log.Logger
}

// Result is the outcome of processing a document.
type Result struct {
	Catalogue *catalogue.Catalogue
	// Network is nil when the document has no Route requests.
	Network   *routing.Network
	Responses []Response
}

// Settings returns the settings the document asks for, layered over
// defaults.
func (d *Document) Settings(defaults routing.Settings) routing.Settings {
	s := defaults
	if d.RoutingSettings != nil {
		s.WaitTime = d.RoutingSettings.BusWaitTime
		s.Velocity = d.RoutingSettings.BusVelocity
	}
	return s
}

// Process builds the catalogue described by doc and answers every stat
// request in order. It fails only if the network itself cannot be built;
// individual requests that cannot be answered get an [ErrorResponse].
func Process(ctx context.Context, doc *Document, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	defaults := opts.Settings
	if defaults == (routing.Settings{}) {
		defaults = routing.DefaultSettings()
	}

	cat, err := doc.Catalogue()
	if err != nil {
		return nil, err
	}
	logger.Debug("catalogue built", "stops", cat.StopCount(), "buses", cat.BusCount())

	res := &Result{Catalogue: cat, Responses: make([]Response, 0, len(doc.StatRequests))}
	if doc.HasRouteRequests() {
		res.Network, err = routing.BuildContext(ctx, cat, doc.Settings(defaults))
		if err != nil {
			return nil, err
		}
		logger.Debug("routing graph built",
			"vertices", res.Network.Graph().VertexCount(),
			"edges", res.Network.Graph().EdgeCount())
	}

	for _, req := range doc.StatRequests {
		res.Responses = append(res.Responses, answer(ctx, res, req))
	}
	return res, nil
}

func answer(ctx context.Context, res *Result, req StatRequest) Response {
	if req.Invalid != "" {
		return ErrorResponse{RequestID: req.ID, ErrorMessage: req.Invalid}
	}
	switch req.Type {
	case TypeBus:
		return BusStats(res.Catalogue, req.ID, req.Name)
	case TypeStop:
		return StopBuses(res.Catalogue, req.ID, req.Name)
	case TypeRoute:
		return FindRoute(ctx, res.Network, req.ID, req.From, req.To)
	case TypeMap:
		return ErrorResponse{RequestID: req.ID, ErrorMessage: MsgMapUnsupported}
	default:
		return ErrorResponse{RequestID: req.ID, ErrorMessage: MsgUnknownType}
	}
}

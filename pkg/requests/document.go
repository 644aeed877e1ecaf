package requests

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/transitcat/pkg/catalogue"
	"github.com/matzehuels/transitcat/pkg/errors"
	"github.com/matzehuels/transitcat/pkg/geo"
)

// Base and stat request types.
const (
	TypeStop  = "Stop"
	TypeBus   = "Bus"
	TypeRoute = "Route"
	TypeMap   = "Map"
)

// Document is a decoded request document.
type Document struct {
	BaseRequests    []BaseRequest    `json:"base_requests" validate:"dive"`
	RoutingSettings *RoutingSettings `json:"routing_settings,omitempty"`
	RenderSettings  json.RawMessage  `json:"render_settings,omitempty"`
	StatRequests    []StatRequest    `json:"stat_requests"`
}

// BaseRequest describes one stop or one bus.
type BaseRequest struct {
	Type string `json:"type" validate:"oneof=Stop Bus"`
	Name string `json:"name" validate:"required"`

	// Stop fields.
	Latitude      float64            `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude     float64            `json:"longitude" validate:"gte=-180,lte=180"`
	RoadDistances map[string]float64 `json:"road_distances,omitempty" validate:"dive,gte=0"`

	// Bus fields.
	Stops       []string `json:"stops,omitempty"`
	IsRoundtrip *bool    `json:"is_roundtrip,omitempty"`
}

// Roundtrip reports whether a bus request describes a roundtrip. A missing
// flag means true.
func (r BaseRequest) Roundtrip() bool {
	return r.IsRoundtrip == nil || *r.IsRoundtrip
}

// RoutingSettings is the "routing_settings" section.
type RoutingSettings struct {
	BusWaitTime float64 `json:"bus_wait_time" validate:"gte=0"`
	BusVelocity float64 `json:"bus_velocity" validate:"gt=0"`
}

// StatRequest is one query. Bus and Stop requests use Name; Route requests
// use From and To.
//
// A request whose fields are missing or of the wrong JSON type still
// decodes; Invalid then holds the error message its response carries and
// ID is 0 when the id itself is unusable.
type StatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	Invalid string `json:"-"`
}

// UnmarshalJSON decodes one stat request field by field so that a single
// malformed request is answered with an error response instead of
// rejecting the whole document.
func (r *StatRequest) UnmarshalJSON(data []byte) error {
	*r = StatRequest{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		if !json.Valid(data) {
			return err
		}
		r.Invalid = MsgInvalidID
		return nil
	}

	id, ok := decodeField[int](fields, "id")
	if !ok {
		r.Invalid = MsgInvalidID
		return nil
	}
	r.ID = id
	if r.Type, ok = decodeField[string](fields, "type"); !ok {
		r.Invalid = MsgInvalidType
		return nil
	}

	switch r.Type {
	case TypeBus, TypeStop:
		if r.Name, ok = decodeField[string](fields, "name"); !ok {
			r.Invalid = MsgInvalidStopName
			if r.Type == TypeBus {
				r.Invalid = MsgInvalidBusName
			}
		}
	case TypeRoute:
		var okTo bool
		r.From, ok = decodeField[string](fields, "from")
		r.To, okTo = decodeField[string](fields, "to")
		if !ok || !okTo {
			r.Invalid = MsgInvalidRoute
		}
	}
	return nil
}

// decodeField decodes fields[key] into T. A missing key, a null value, or a
// value of another JSON type reports false.
func decodeField[T any](fields map[string]json.RawMessage, key string) (T, bool) {
	var v T
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}

var documentValidator = sync.OnceValue(func() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
})

// Load decodes and validates a request document from r. Load does not
// close r.
func Load(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request document")
	}
	if err := documentValidator().Struct(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request document")
	}
	return &doc, nil
}

// LoadFile reads the request document at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Catalogue builds a catalogue from the document's base requests.
//
// Road distances are added in lexicographic order of the target stop so
// that the result does not depend on map iteration order.
func (d *Document) Catalogue() (*catalogue.Catalogue, error) {
	sb := catalogue.NewStopBuilder()
	for _, r := range d.BaseRequests {
		if r.Type != TypeStop {
			continue
		}
		if err := sb.AddStop(r.Name, geo.Coordinates{Lat: r.Latitude, Lng: r.Longitude}); err != nil {
			return nil, err
		}
	}

	nb := sb.Seal()
	for _, r := range d.BaseRequests {
		if r.Type != TypeStop {
			continue
		}
		for _, to := range slices.Sorted(maps.Keys(r.RoadDistances)) {
			if err := nb.AddDistance(r.Name, to, r.RoadDistances[to]); err != nil {
				return nil, fmt.Errorf("distance %s -> %s: %w", r.Name, to, err)
			}
		}
	}
	for _, r := range d.BaseRequests {
		if r.Type != TypeBus {
			continue
		}
		if err := nb.AddRoute(r.Name, r.Stops, r.Roundtrip()); err != nil {
			return nil, err
		}
	}
	return nb.Build(), nil
}

// HasRouteRequests reports whether any stat request asks for a route.
func (d *Document) HasRouteRequests() bool {
	return slices.ContainsFunc(d.StatRequests, func(r StatRequest) bool {
		return r.Type == TypeRoute
	})
}

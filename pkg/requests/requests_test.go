package requests

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/transitcat/pkg/catalogue"
	"github.com/matzehuels/transitcat/pkg/errors"
	"github.com/matzehuels/transitcat/pkg/geo"
	"github.com/matzehuels/transitcat/pkg/routing"
)

const testDocument = `{
  "base_requests": [
    {"type": "Bus", "name": "14", "stops": ["A", "B", "C"], "is_roundtrip": false},
    {"type": "Bus", "name": "loop", "stops": ["A", "C", "A"], "is_roundtrip": true},
    {"type": "Stop", "name": "A", "latitude": 0, "longitude": 0, "road_distances": {"B": 2000, "C": 9000}},
    {"type": "Stop", "name": "B", "latitude": 0, "longitude": 0.01, "road_distances": {"C": 3000, "A": 2500}},
    {"type": "Stop", "name": "C", "latitude": 0, "longitude": 0.02},
    {"type": "Stop", "name": "Lonely", "latitude": 1, "longitude": 1}
  ],
  "routing_settings": {"bus_wait_time": 6, "bus_velocity": 60},
  "render_settings": {"width": 600},
  "stat_requests": [
    {"id": 1, "type": "Bus", "name": "14"},
    {"id": 2, "type": "Bus", "name": "999"},
    {"id": 3, "type": "Stop", "name": "A"},
    {"id": 4, "type": "Stop", "name": "Lonely"},
    {"id": 5, "type": "Stop", "name": "Ghost"},
    {"id": 6, "type": "Route", "from": "A", "to": "C"},
    {"id": 7, "type": "Route", "from": "A", "to": "Lonely"},
    {"id": 8, "type": "Route", "from": "B", "to": "B"},
    {"id": 9, "type": "Map"},
    {"id": 10, "type": "Teleport"}
  ]
}`

func process(t *testing.T, doc string) *Result {
	t.Helper()
	d, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	res, err := Process(context.Background(), d, Options{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	return res
}

func TestProcess(t *testing.T) {
	res := process(t, testDocument)
	if len(res.Responses) != 10 {
		t.Fatalf("got %d responses, want 10", len(res.Responses))
	}
	for i, r := range res.Responses {
		if r.ID() != i+1 {
			t.Errorf("response %d has id %d", i, r.ID())
		}
	}

	t.Run("bus", func(t *testing.T) {
		got, ok := res.Responses[0].(BusResponse)
		if !ok {
			t.Fatalf("got %T", res.Responses[0])
		}
		// A,B,C,B,A: 2000 + 3000 + (C->B falls back to B->C) 3000 + 2500.
		if got.RouteLength != 10500 {
			t.Errorf("RouteLength = %v, want 10500", got.RouteLength)
		}
		if got.StopCount != 5 || got.UniqueStopCount != 3 {
			t.Errorf("stop counts = %d/%d, want 5/3", got.StopCount, got.UniqueStopCount)
		}
		ab := geo.Distance(geo.Coordinates{}, geo.Coordinates{Lng: 0.01})
		bc := geo.Distance(geo.Coordinates{Lng: 0.01}, geo.Coordinates{Lng: 0.02})
		want := 10500 / (2*ab + 2*bc)
		if math.Abs(got.Curvature-want) > 1e-9 {
			t.Errorf("Curvature = %v, want %v", got.Curvature, want)
		}
	})

	t.Run("stop", func(t *testing.T) {
		got := res.Responses[2].(StopResponse)
		if !slices.Equal(got.Buses, []string{"14", "loop"}) {
			t.Errorf("Buses = %v", got.Buses)
		}
		lonely := res.Responses[3].(StopResponse)
		if lonely.Buses == nil || len(lonely.Buses) != 0 {
			t.Errorf("Lonely buses = %#v, want empty slice", lonely.Buses)
		}
	})

	t.Run("route", func(t *testing.T) {
		got := res.Responses[5].(RouteResponse)
		// Wait 6, then bus 14 for two stops: 5000 m at 1000 m/min.
		if got.TotalTime != 11 || len(got.Items) != 2 {
			t.Fatalf("route = %+v", got)
		}
		if got.Items[0] != (RouteItem{Type: "Wait", StopName: "A", Time: 6}) {
			t.Errorf("first item = %+v", got.Items[0])
		}
		if got.Items[1] != (RouteItem{Type: "Bus", Bus: "14", SpanCount: 2, Time: 5}) {
			t.Errorf("second item = %+v", got.Items[1])
		}
		same := res.Responses[7].(RouteResponse)
		if same.TotalTime != 0 || len(same.Items) != 0 {
			t.Errorf("B->B = %+v, want empty", same)
		}
	})

	t.Run("errors", func(t *testing.T) {
		want := map[int]string{
			1: MsgNotFound,
			4: MsgNotFound,
			6: MsgNotFound,
			8: MsgMapUnsupported,
			9: MsgUnknownType,
		}
		for i, msg := range want {
			got, ok := res.Responses[i].(ErrorResponse)
			if !ok || got.ErrorMessage != msg {
				t.Errorf("response %d = %+v, want error %q", i+1, res.Responses[i], msg)
			}
		}
	})
}

func TestProcessSkipsNetworkWithoutRouteRequests(t *testing.T) {
	res := process(t, `{
		"base_requests": [{"type": "Stop", "name": "A", "latitude": 1, "longitude": 2}],
		"stat_requests": [{"id": 1, "type": "Stop", "name": "A"}]
	}`)
	if res.Network != nil {
		t.Error("network should not be built without route requests")
	}
}

func TestInvalidStatRequests(t *testing.T) {
	tests := []struct {
		name    string
		req     string
		wantID  int
		wantMsg string
	}{
		{"missing id", `{"type": "Bus", "name": "14"}`, 0, MsgInvalidID},
		{"string id", `{"id": "x", "type": "Bus", "name": "14"}`, 0, MsgInvalidID},
		{"fractional id", `{"id": 1.5, "type": "Bus", "name": "14"}`, 0, MsgInvalidID},
		{"not an object", `[1, 2]`, 0, MsgInvalidID},
		{"missing type", `{"id": 3, "name": "14"}`, 3, MsgInvalidType},
		{"numeric type", `{"id": 3, "type": 5}`, 3, MsgInvalidType},
		{"bus without name", `{"id": 4, "type": "Bus"}`, 4, MsgInvalidBusName},
		{"bus with numeric name", `{"id": 4, "type": "Bus", "name": 14}`, 4, MsgInvalidBusName},
		{"stop with null name", `{"id": 5, "type": "Stop", "name": null}`, 5, MsgInvalidStopName},
		{"route without to", `{"id": 6, "type": "Route", "from": "A"}`, 6, MsgInvalidRoute},
		{"route with numeric from", `{"id": 6, "type": "Route", "from": 1, "to": "B"}`, 6, MsgInvalidRoute},
		{"empty stop name", `{"id": 7, "type": "Stop", "name": ""}`, 7, MsgNotFound},
		{"unknown type", `{"id": 8, "type": "Teleport"}`, 8, MsgUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := process(t, `{
				"base_requests": [
					{"type": "Stop", "name": "A", "latitude": 0, "longitude": 0},
					{"type": "Stop", "name": "B", "latitude": 0, "longitude": 0.01},
					{"type": "Bus", "name": "14", "stops": ["A", "B"], "is_roundtrip": false}
				],
				"stat_requests": [`+tt.req+`, {"id": 99, "type": "Bus", "name": "14"}]
			}`)
			if len(res.Responses) != 2 {
				t.Fatalf("got %d responses, want 2", len(res.Responses))
			}
			got, ok := res.Responses[0].(ErrorResponse)
			if !ok {
				t.Fatalf("got %T, want ErrorResponse", res.Responses[0])
			}
			if got.RequestID != tt.wantID || got.ErrorMessage != tt.wantMsg {
				t.Errorf("got %+v, want id %d and %q", got, tt.wantID, tt.wantMsg)
			}
			if _, ok := res.Responses[1].(BusResponse); !ok {
				t.Errorf("following request = %T, want BusResponse", res.Responses[1])
			}
		})
	}
}

func TestDocumentValidatorShared(t *testing.T) {
	if documentValidator() != documentValidator() {
		t.Error("documentValidator should return one shared instance")
	}
	for range 2 {
		if _, err := Load(strings.NewReader(`{"base_requests": [{"type": "Stop"}]}`)); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Load error = %v, want code %s", err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestDocumentSettings(t *testing.T) {
	defaults := routing.Settings{WaitTime: 1, Velocity: 2, SpanCap: 3}

	var d Document
	if got := d.Settings(defaults); got != defaults {
		t.Errorf("no routing_settings: got %+v", got)
	}
	d.RoutingSettings = &RoutingSettings{BusWaitTime: 6, BusVelocity: 40}
	want := routing.Settings{WaitTime: 6, Velocity: 40, SpanCap: 3}
	if got := d.Settings(defaults); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRoundtripDefault(t *testing.T) {
	res := process(t, `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 0, "longitude": 0},
			{"type": "Stop", "name": "B", "latitude": 0, "longitude": 0.01},
			{"type": "Bus", "name": "r", "stops": ["A", "B"]}
		],
		"stat_requests": []
	}`)
	bus, _ := res.Catalogue.FindBus("r")
	if !bus.Roundtrip || len(bus.Stops) != 3 {
		t.Errorf("bus without is_roundtrip = %+v, want closed roundtrip", bus)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantCode errors.Code
	}{
		{"malformed", `{"base_requests": [`, errors.ErrCodeInvalidFormat},
		{"unknown base type", `{"base_requests": [{"type": "Tram", "name": "x"}]}`, errors.ErrCodeInvalidInput},
		{"missing name", `{"base_requests": [{"type": "Stop"}]}`, errors.ErrCodeInvalidInput},
		{"latitude out of range", `{"base_requests": [{"type": "Stop", "name": "A", "latitude": 91}]}`, errors.ErrCodeInvalidInput},
		{"negative distance", `{"base_requests": [{"type": "Stop", "name": "A", "road_distances": {"B": -1}}]}`, errors.ErrCodeInvalidInput},
		{"zero velocity", `{"routing_settings": {"bus_wait_time": 1, "bus_velocity": 0}}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Load error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestCatalogueErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			"duplicate stop",
			`{"base_requests": [{"type": "Stop", "name": "A"}, {"type": "Stop", "name": "A"}]}`,
			catalogue.ErrDuplicateStop,
		},
		{
			"distance to unknown stop",
			`{"base_requests": [{"type": "Stop", "name": "A", "road_distances": {"Z": 10}}]}`,
			catalogue.ErrUnknownStop,
		},
		{
			"bus through unknown stop",
			`{"base_requests": [{"type": "Stop", "name": "A"}, {"type": "Bus", "name": "1", "stops": ["A", "Z"]}]}`,
			catalogue.ErrUnknownStop,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Load(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := d.Catalogue(); !stderrors.Is(err, tt.wantErr) {
				t.Errorf("Catalogue error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteResponses(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResponses(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("nil responses = %q, want []", buf.String())
	}

	buf.Reset()
	err := WriteResponses(&buf, []Response{
		StopResponse{RequestID: 1, Buses: []string{}},
		ErrorResponse{RequestID: 2, ErrorMessage: MsgNotFound},
	})
	if err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if buses, ok := decoded[0]["buses"].([]any); !ok || len(buses) != 0 {
		t.Errorf("empty bus list should encode as [], got %v", decoded[0]["buses"])
	}
	if decoded[1]["error_message"] != MsgNotFound {
		t.Errorf("error response = %v", decoded[1])
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(testDocument), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.BaseRequests) != 6 {
		t.Errorf("got %d base requests, want 6", len(d.BaseRequests))
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v", err)
	}
}

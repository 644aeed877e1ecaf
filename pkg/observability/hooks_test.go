package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRoutingHooks{}
	r.OnGraphBuilt(ctx, 10, 42, time.Millisecond)
	r.OnRouteQuery(ctx, "A", "B", time.Millisecond, nil)
	r.OnRouteQuery(ctx, "A", "Z", time.Millisecond, errors.New("not found"))

	s := NoopServerHooks{}
	s.OnRequest(ctx, "id", "GET", "/healthz")
	s.OnResponse(ctx, "id", "GET", "/healthz", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Routing().(NoopRoutingHooks); !ok {
		t.Error("Routing() should return NoopRoutingHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	customRouting := &testRoutingHooks{}
	SetRoutingHooks(customRouting)
	if Routing() != customRouting {
		t.Error("SetRoutingHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	Reset()
	if _, ok := Routing().(NoopRoutingHooks); !ok {
		t.Error("Reset() should restore NoopRoutingHooks")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Reset() should restore NoopServerHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testRoutingHooks{}
	SetRoutingHooks(custom)
	SetRoutingHooks(nil)
	if Routing() != custom {
		t.Error("SetRoutingHooks(nil) should not replace registered hooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testRoutingHooks{}
	SetRoutingHooks(h)
	Routing().OnGraphBuilt(context.Background(), 4, 9, time.Second)
	Routing().OnRouteQuery(context.Background(), "A", "B", time.Second, nil)

	if h.vertices != 4 || h.edges != 9 {
		t.Errorf("OnGraphBuilt got %d/%d, want 4/9", h.vertices, h.edges)
	}
	if h.queries != 1 {
		t.Errorf("queries = %d, want 1", h.queries)
	}
}

type testRoutingHooks struct {
	vertices, edges int
	queries         int
}

func (h *testRoutingHooks) OnGraphBuilt(_ context.Context, vertices, edges int, _ time.Duration) {
	h.vertices, h.edges = vertices, edges
}

func (h *testRoutingHooks) OnRouteQuery(context.Context, string, string, time.Duration, error) {
	h.queries++
}

type testServerHooks struct{}

func (testServerHooks) OnRequest(context.Context, string, string, string) {}
func (testServerHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
}

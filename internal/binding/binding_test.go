package binding

import (
	"errors"
	"testing"
)

type recorder struct {
	events []Event
}

func (r *recorder) VariableChanged(ev Event) {
	r.events = append(r.events, ev)
}

func TestAttachNotifyDetach(t *testing.T) {
	reg := NewRegistry()
	a := &recorder{}
	b := &recorder{}

	if err := reg.Attach("node-1", a); err != nil {
		t.Fatalf("attach a: %v", err)
	}
	if err := reg.Attach("node-1", b); err != nil {
		t.Fatalf("attach b: %v", err)
	}
	if reg.Count("node-1") != 2 {
		t.Fatalf("expected 2 listeners, got %d", reg.Count("node-1"))
	}

	reg.Notify(Event{Kind: EventRead, NodeID: "node-1", Value: []byte("v")})
	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("fan-out mismatch: a=%d b=%d", len(a.events), len(b.events))
	}
	if a.events[0].Kind != EventRead || string(a.events[0].Value) != "v" {
		t.Fatalf("event payload mismatch: %+v", a.events[0])
	}

	reg.Notify(Event{Kind: EventWrite, NodeID: "node-2"})
	if len(a.events) != 1 {
		t.Fatalf("listener received event for an unrelated node")
	}

	reg.Detach("node-1", a)
	reg.Notify(Event{Kind: EventWrite, NodeID: "node-1"})
	if len(a.events) != 1 || len(b.events) != 2 {
		t.Fatalf("detach mismatch: a=%d b=%d", len(a.events), len(b.events))
	}
}

func TestAttachNilListener(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Attach("node-1", nil); !errors.Is(err, ErrNilListener) {
		t.Fatalf("expected ErrNilListener, got %v", err)
	}
}

func TestNilRegistryNotifyIsNoop(t *testing.T) {
	var reg *Registry
	reg.Notify(Event{Kind: EventRead, NodeID: "node-1"})
}

func TestEventKindString(t *testing.T) {
	if EventRead.String() != "read" || EventWrite.String() != "write" {
		t.Fatalf("event kind strings wrong: %s %s", EventRead, EventWrite)
	}
}

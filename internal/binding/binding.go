// Package binding notifies listeners when a grammar node resolves a value.
//
// The registry holds back-references keyed by node identifier; it never owns
// the nodes or the listeners. Notification is a synchronous fan-out in
// attachment order.
package binding

import (
	"errors"

	"github.com/2cute2die/netzob/internal/token"
)

var ErrNilListener = errors.New("binding: nil listener")

// EventKind distinguishes read-access and write-access notifications.
type EventKind uint8

const (
	EventRead EventKind = iota + 1
	EventWrite
)

func (k EventKind) String() string {
	switch k {
	case EventRead:
		return "read"
	case EventWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Event describes one resolved access of a node. Value is the resolved bytes
// for read events; write events carry the value implicitly in the token.
type Event struct {
	Kind   EventKind
	NodeID string
	Token  token.Token
	Value  []byte
}

// Listener receives events for the node ids it is attached to.
type Listener interface {
	VariableChanged(ev Event)
}

// Registry maps node identifiers to their attached listeners.
type Registry struct {
	listeners map[string][]Listener
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{listeners: make(map[string][]Listener)}
}

// Attach registers l for events of nodeID.
func (r *Registry) Attach(nodeID string, l Listener) error {
	if l == nil {
		return ErrNilListener
	}
	r.listeners[nodeID] = append(r.listeners[nodeID], l)
	return nil
}

// Detach removes every registration of l for nodeID.
func (r *Registry) Detach(nodeID string, l Listener) {
	kept := r.listeners[nodeID][:0]
	for _, reg := range r.listeners[nodeID] {
		if reg != l {
			kept = append(kept, reg)
		}
	}
	if len(kept) == 0 {
		delete(r.listeners, nodeID)
		return
	}
	r.listeners[nodeID] = kept
}

// Count returns the number of listeners attached to nodeID.
func (r *Registry) Count(nodeID string) int {
	return len(r.listeners[nodeID])
}

// Notify fans ev out to the listeners of ev.NodeID. A nil registry is a
// valid no-op target so unbound nodes need no guard.
func (r *Registry) Notify(ev Event) {
	if r == nil {
		return
	}
	for _, l := range r.listeners[ev.NodeID] {
		l.VariableChanged(ev)
	}
}

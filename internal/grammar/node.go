// Package grammar implements the variable-node tree describing a message
// format. A tree of typed nodes can read a raw byte buffer against the
// grammar, write bound or generated values back into bytes, and derive a
// pattern locating instances of the format inside unstructured data.
package grammar

import (
	"fmt"
	"sync/atomic"

	"github.com/2cute2die/netzob/internal/binding"
	"github.com/2cute2die/netzob/internal/pattern"
	"github.com/2cute2die/netzob/internal/token"
)

// Kind identifies a node variant.
type Kind uint8

const (
	KindAgg Kind = iota + 1
	KindAlt
	KindRepeat
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindAgg:
		return "agg"
	case KindAlt:
		return "alt"
	case KindRepeat:
		return "repeat"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

// Node is the contract shared by every grammar node variant.
//
// Read and Write report grammar-matching failure through the token's Ok
// flag; their error return is reserved for contract violations such as a
// nil token, which abort before any state mutation.
type Node interface {
	ID() string
	Name() string
	Kind() Kind
	Mutable() bool
	IsDefined(tok token.Token) (bool, error)
	Read(tok *token.Reading) error
	Write(tok *token.Writing) error
	BuildPattern() pattern.Pattern
}

// Container is implemented by node variants holding an ordered child
// sequence. Structural mutation is legal only between traversals.
type Container interface {
	Children() []Node
	Append(child Node)
	Remove(child Node) bool
}

var idSeq atomic.Uint64

func newID(kind Kind) string {
	return fmt.Sprintf("%s-%d", kind, idSeq.Add(1))
}

// base carries the state every node variant shares.
type base struct {
	id       string
	name     string
	kind     Kind
	mutable  bool
	bindings *binding.Registry
}

func newBase(kind Kind, name string) base {
	return base{id: newID(kind), name: name, kind: kind}
}

func (b *base) ID() string { return b.id }

func (b *base) Name() string { return b.name }

func (b *base) Kind() Kind { return b.kind }

func (b *base) Mutable() bool { return b.mutable }

// SetMutable toggles randomized traversal ordering for read and write.
// Pattern derivation never consults it.
func (b *base) SetMutable(mutable bool) { b.mutable = mutable }

// BindTo routes this node's notifications through reg. Listeners attach to
// reg under the node's id.
func (b *base) BindTo(reg *binding.Registry) { b.bindings = reg }

func (b *base) notify(kind binding.EventKind, tok token.Token, value []byte) {
	b.bindings.Notify(binding.Event{Kind: kind, NodeID: b.id, Token: tok, Value: value})
}

// composite is the shared child-sequence state of Agg and Alt.
type composite struct {
	base
	children []Node
}

func newComposite(kind Kind, name string, children []Node) composite {
	c := composite{base: newBase(kind, name)}
	for _, child := range children {
		if child != nil {
			c.children = append(c.children, child)
		}
	}
	return c
}

// Children returns the declaration-ordered child sequence.
func (c *composite) Children() []Node {
	out := make([]Node, len(c.children))
	copy(out, c.children)
	return out
}

// Append adds child at the end of the sequence.
func (c *composite) Append(child Node) {
	if child == nil {
		return
	}
	c.children = append(c.children, child)
}

// Remove drops the first occurrence of child.
func (c *composite) Remove(child Node) bool {
	for i, cur := range c.children {
		if cur == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return true
		}
	}
	return false
}

// readOrder computes the mutable read-side ordering: children already
// defined under tok come first, relative order preserved. This is distinct
// from the write-side shuffle.
func (c *composite) readOrder(tok token.Token) []Node {
	order := make([]Node, 0, len(c.children))
	rest := make([]Node, 0, len(c.children))
	for _, child := range c.children {
		if ok, err := child.IsDefined(tok); err == nil && ok {
			order = append(order, child)
			continue
		}
		rest = append(rest, child)
	}
	return append(order, rest...)
}

// writeOrder computes the mutable write-side ordering: a permutation drawn
// from the traversal-local random source.
func (c *composite) writeOrder(tok *token.Writing) []Node {
	order := make([]Node, len(c.children))
	copy(order, c.children)
	tok.Rand().Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// Walk visits n and every node under it, parents before children.
func Walk(n Node, visit func(Node)) {
	if n == nil {
		return
	}
	visit(n)
	switch v := n.(type) {
	case Container:
		for _, child := range v.Children() {
			Walk(child, visit)
		}
	case *Repeat:
		Walk(v.Child(), visit)
	}
}

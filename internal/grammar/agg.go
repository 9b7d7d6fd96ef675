package grammar

import (
	"github.com/rs/zerolog/log"

	"github.com/2cute2die/netzob/internal/binding"
	"github.com/2cute2die/netzob/internal/pattern"
	"github.com/2cute2die/netzob/internal/token"
)

// Agg is the aggregate (AND) node: every child must succeed, in order, for
// the node to succeed. A mutable aggregate reorders its children per
// traversal; pattern derivation always uses declaration order.
type Agg struct {
	composite
}

// NewAgg creates an aggregate over children. Nil children are dropped.
func NewAgg(name string, children ...Node) *Agg {
	return &Agg{composite: newComposite(KindAgg, name, children)}
}

// IsDefined reports whether the aggregate has at least one child and every
// child is defined under tok. It short-circuits on the first undefined
// child.
func (a *Agg) IsDefined(tok token.Token) (bool, error) {
	if tok == nil {
		return false, ErrNilToken
	}
	if len(a.children) == 0 {
		return false, nil
	}
	for _, child := range a.children {
		ok, err := child.IsDefined(tok)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Read parses input by delegating to every child in sequence against the
// same token. The first failing child stops delegation; cursor state from
// attempted children is not rolled back. On success the bound variables of
// the node are notified once with the read event.
func (a *Agg) Read(tok *token.Reading) error {
	if tok == nil {
		return ErrNilToken
	}
	log.Debug().Str("node", a.name).Int("children", len(a.children)).
		Int("index", tok.Index()).Msg("agg: read access")

	if len(a.children) == 0 {
		log.Debug().Str("node", a.name).Msg("agg: read abort, no child")
		tok.Fail()
		return nil
	}

	start := tok.Index()
	order := a.children
	if a.mutable {
		order = a.readOrder(tok)
	}
	for _, child := range order {
		if err := child.Read(tok); err != nil {
			return err
		}
		if !tok.Ok() {
			break
		}
	}

	if tok.Ok() {
		tok.SetValue(tok.Consumed(start))
		a.notify(binding.EventRead, tok, tok.Value())
	}
	return nil
}

// Write produces output by delegating to every child in sequence. The
// token's chopped-index state for this node is reset first, unconditionally:
// a new write access invalidates any previously computed final value. On
// success the bound variables of the node are notified once with the write
// event; the value stays implicit in the token.
func (a *Agg) Write(tok *token.Writing) error {
	if tok == nil {
		return ErrNilToken
	}
	log.Debug().Str("node", a.name).Int("children", len(a.children)).
		Msg("agg: write access")

	tok.ResetChopped(a.id)

	if len(a.children) == 0 {
		log.Debug().Str("node", a.name).Msg("agg: write abort, no child")
		tok.Fail()
		return nil
	}

	order := a.children
	if a.mutable {
		order = a.writeOrder(tok)
	}
	for _, child := range order {
		if err := child.Write(tok); err != nil {
			return err
		}
		if !tok.Ok() {
			break
		}
	}

	if tok.Ok() {
		a.notify(binding.EventWrite, tok, nil)
	}
	return nil
}

// BuildPattern concatenates the child patterns in declaration order. An
// aggregate without children yields the neutral pattern.
func (a *Agg) BuildPattern() pattern.Pattern {
	ps := make([]pattern.Pattern, 0, len(a.children))
	for _, child := range a.children {
		ps = append(ps, child.BuildPattern())
	}
	return pattern.Concat(ps...)
}

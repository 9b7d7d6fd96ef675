package grammar

import (
	"github.com/rs/zerolog/log"

	"github.com/2cute2die/netzob/internal/binding"
	"github.com/2cute2die/netzob/internal/pattern"
	"github.com/2cute2die/netzob/internal/token"
)

// Alt is the alternative (OR) node: the first child to succeed wins. A
// failed branch restores the token to the checkpoint taken before the
// attempt, unlike Agg which never rolls back.
type Alt struct {
	composite
}

// NewAlt creates an alternative over children. Nil children are dropped.
func NewAlt(name string, children ...Node) *Alt {
	return &Alt{composite: newComposite(KindAlt, name, children)}
}

// IsDefined reports whether at least one child is defined under tok.
func (a *Alt) IsDefined(tok token.Token) (bool, error) {
	if tok == nil {
		return false, ErrNilToken
	}
	for _, child := range a.children {
		ok, err := child.IsDefined(tok)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Read tries each child in order against a checkpoint of the token; the
// first successful branch is kept. All branches failing fails the token.
func (a *Alt) Read(tok *token.Reading) error {
	if tok == nil {
		return ErrNilToken
	}
	log.Debug().Str("node", a.name).Int("children", len(a.children)).
		Msg("alt: read access")

	if len(a.children) == 0 {
		tok.Fail()
		return nil
	}

	start := tok.Index()
	order := a.children
	if a.mutable {
		order = a.readOrder(tok)
	}
	mark := tok.Checkpoint()
	matched := false
	for _, child := range order {
		if err := child.Read(tok); err != nil {
			return err
		}
		if tok.Ok() {
			matched = true
			break
		}
		tok.Restore(mark)
	}

	if !matched {
		tok.Fail()
		return nil
	}
	tok.SetValue(tok.Consumed(start))
	a.notify(binding.EventRead, tok, tok.Value())
	return nil
}

// Write tries each child in order, restoring the token after a failed
// branch, until one produces output.
func (a *Alt) Write(tok *token.Writing) error {
	if tok == nil {
		return ErrNilToken
	}
	log.Debug().Str("node", a.name).Int("children", len(a.children)).
		Msg("alt: write access")

	tok.ResetChopped(a.id)

	if len(a.children) == 0 {
		tok.Fail()
		return nil
	}

	order := a.children
	if a.mutable {
		order = a.writeOrder(tok)
	}
	mark := tok.Checkpoint()
	matched := false
	for _, child := range order {
		if err := child.Write(tok); err != nil {
			return err
		}
		if tok.Ok() {
			matched = true
			break
		}
		tok.Restore(mark)
	}

	if !matched {
		tok.Fail()
		return nil
	}
	a.notify(binding.EventWrite, tok, nil)
	return nil
}

// BuildPattern alternates the child patterns in declaration order.
func (a *Alt) BuildPattern() pattern.Pattern {
	ps := make([]pattern.Pattern, 0, len(a.children))
	for _, child := range a.children {
		ps = append(ps, child.BuildPattern())
	}
	return pattern.Alternate(ps...)
}

package grammar

import (
	"github.com/rs/zerolog/log"

	"github.com/2cute2die/netzob/internal/binding"
	"github.com/2cute2die/netzob/internal/pattern"
	"github.com/2cute2die/netzob/internal/token"
)

// Repeat is the repetition node: one child read or written between min and
// max consecutive times.
type Repeat struct {
	base
	child Node
	min   int
	max   int
}

// NewRepeat creates a repetition of child bounded by [min, max]. Bounds are
// clamped to a sane range.
func NewRepeat(name string, child Node, min, max int) *Repeat {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return &Repeat{base: newBase(KindRepeat, name), child: child, min: min, max: max}
}

// Child returns the repeated node.
func (r *Repeat) Child() Node { return r.child }

// Bounds returns the iteration bounds.
func (r *Repeat) Bounds() (min, max int) { return r.min, r.max }

// IsDefined reports whether the repeated child is defined under tok.
func (r *Repeat) IsDefined(tok token.Token) (bool, error) {
	if tok == nil {
		return false, ErrNilToken
	}
	if r.child == nil {
		return false, nil
	}
	return r.child.IsDefined(tok)
}

// Read consumes the child greedily up to max iterations, rewinding the last
// failed attempt, and fails the token when fewer than min succeeded.
func (r *Repeat) Read(tok *token.Reading) error {
	if tok == nil {
		return ErrNilToken
	}
	log.Debug().Str("node", r.name).Int("min", r.min).Int("max", r.max).
		Msg("repeat: read access")

	if r.child == nil {
		tok.Fail()
		return nil
	}

	start := tok.Index()
	count := 0
	for count < r.max {
		mark := tok.Checkpoint()
		if err := r.child.Read(tok); err != nil {
			return err
		}
		if !tok.Ok() {
			tok.Restore(mark)
			break
		}
		count++
	}

	if count < r.min {
		tok.Fail()
		return nil
	}
	tok.SetValue(tok.Consumed(start))
	r.notify(binding.EventRead, tok, tok.Value())
	return nil
}

// Write emits min iterations of the child, or a random count within the
// bounds when the node is mutable.
func (r *Repeat) Write(tok *token.Writing) error {
	if tok == nil {
		return ErrNilToken
	}
	log.Debug().Str("node", r.name).Int("min", r.min).Int("max", r.max).
		Msg("repeat: write access")

	tok.ResetChopped(r.id)

	if r.child == nil {
		tok.Fail()
		return nil
	}

	count := r.min
	if r.mutable && r.max > r.min {
		count = r.min + tok.Rand().IntN(r.max-r.min+1)
	}
	for i := 0; i < count; i++ {
		if err := r.child.Write(tok); err != nil {
			return err
		}
		if !tok.Ok() {
			return nil
		}
	}

	r.notify(binding.EventWrite, tok, nil)
	return nil
}

// BuildPattern loops the child pattern over the iteration bounds.
func (r *Repeat) BuildPattern() pattern.Pattern {
	if r.child == nil {
		return pattern.Empty()
	}
	return pattern.Loop(r.child.BuildPattern(), r.min, r.max)
}

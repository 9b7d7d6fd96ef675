package grammar

import (
	"bytes"

	"github.com/rs/zerolog/log"

	"github.com/2cute2die/netzob/internal/binding"
	"github.com/2cute2die/netzob/internal/pattern"
	"github.com/2cute2die/netzob/internal/token"
)

// Data is the terminal leaf node. It either carries a fixed byte value or
// accepts a bounded run of arbitrary bytes. Value encoding of richer
// terminal types lives outside this layer.
type Data struct {
	base
	value   []byte
	minSize int
	maxSize int
	learn   bool
}

// NewData creates a leaf bound to a fixed value.
func NewData(name string, value []byte) *Data {
	buf := make([]byte, len(value))
	copy(buf, value)
	return &Data{base: newBase(KindData, name), value: buf}
}

// NewSizedData creates a variable leaf accepting between min and max bytes.
func NewSizedData(name string, min, max int) *Data {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return &Data{base: newBase(KindData, name), minSize: min, maxSize: max}
}

// SetLearn memorizes values read by a variable leaf into the token memory,
// making the leaf defined for later traversals.
func (d *Data) SetLearn(learn bool) { d.learn = learn }

// Value returns the fixed value, nil for a variable leaf.
func (d *Data) Value() []byte { return d.value }

// Size returns the accepted size bounds of a variable leaf.
func (d *Data) Size() (min, max int) { return d.minSize, d.maxSize }

// IsDefined reports whether the leaf has a fixed value or a memorized one
// under the token's memory.
func (d *Data) IsDefined(tok token.Token) (bool, error) {
	if tok == nil {
		return false, ErrNilToken
	}
	if len(d.value) > 0 {
		return true, nil
	}
	return tok.Memory().Known(d.id), nil
}

// Read consumes the leaf's share of the input: the exact fixed or memorized
// value, or a bounded greedy run for a variable leaf.
func (d *Data) Read(tok *token.Reading) error {
	if tok == nil {
		return ErrNilToken
	}

	target := d.value
	if len(target) == 0 {
		if v, ok := tok.Memory().Recall(d.id); ok {
			target = v
		}
	}

	if len(target) > 0 {
		got, ok := tok.Consume(len(target))
		if !ok || !bytes.Equal(got, target) {
			log.Debug().Str("node", d.name).Msg("data: read mismatch")
			tok.Fail()
			return nil
		}
		tok.SetValue(got)
	} else {
		n := d.maxSize
		if remaining := tok.Remaining(); n > remaining {
			n = remaining
		}
		if n < d.minSize {
			log.Debug().Str("node", d.name).Int("remaining", tok.Remaining()).
				Msg("data: read short")
			tok.Fail()
			return nil
		}
		got, _ := tok.Consume(n)
		tok.SetValue(got)
		if d.learn {
			tok.Memory().Memorize(d.id, got)
		}
	}

	d.notify(binding.EventRead, tok, tok.Value())
	return nil
}

// Write emits the fixed or memorized value, or random bytes within the size
// bounds for an unbound variable leaf.
func (d *Data) Write(tok *token.Writing) error {
	if tok == nil {
		return ErrNilToken
	}

	tok.ResetChopped(d.id)

	v := d.value
	if len(v) == 0 {
		if recalled, ok := tok.Memory().Recall(d.id); ok {
			v = recalled
		}
	}
	if len(v) == 0 {
		if d.maxSize == 0 {
			log.Debug().Str("node", d.name).Msg("data: write abort, no value")
			tok.Fail()
			return nil
		}
		n := d.minSize
		if d.maxSize > d.minSize {
			n = d.minSize + tok.Rand().IntN(d.maxSize-d.minSize+1)
		}
		v = make([]byte, n)
		for i := range v {
			v[i] = byte(tok.Rand().UintN(256))
		}
	}

	tok.Append(d.id, v)
	d.notify(binding.EventWrite, tok, nil)
	return nil
}

// BuildPattern matches the fixed value exactly, or any run within the size
// bounds for a variable leaf.
func (d *Data) BuildPattern() pattern.Pattern {
	if len(d.value) > 0 {
		return pattern.Fixed(d.value)
	}
	return pattern.Variable(d.minSize, d.maxSize)
}

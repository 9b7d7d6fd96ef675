// Package format drives traversals over a grammar tree: it holds the root
// node, the shared variable memory, and the bound-variable registry, and
// hands each read or write a fresh processing token.
package format

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/2cute2die/netzob/internal/binding"
	"github.com/2cute2die/netzob/internal/grammar"
	"github.com/2cute2die/netzob/internal/memory"
	"github.com/2cute2die/netzob/internal/observability"
	"github.com/2cute2die/netzob/internal/pattern"
	"github.com/2cute2die/netzob/internal/token"
)

var (
	ErrNilRoot  = errors.New("format: nil root node")
	ErrNoMatch  = errors.New("format: data does not match the grammar")
	ErrGenerate = errors.New("format: grammar could not produce a value")
)

// Format is one message-format definition.
type Format struct {
	name     string
	root     grammar.Node
	mem      *memory.Memory
	bindings *binding.Registry
}

// New assembles a format around root. Every node in the tree is routed
// through the format's binding registry.
func New(name string, root grammar.Node) (*Format, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	f := &Format{
		name:     name,
		root:     root,
		mem:      memory.New(),
		bindings: binding.NewRegistry(),
	}
	grammar.Walk(root, func(n grammar.Node) {
		type bindable interface {
			BindTo(*binding.Registry)
		}
		if b, ok := n.(bindable); ok {
			b.BindTo(f.bindings)
		}
	})
	return f, nil
}

func (f *Format) Name() string { return f.name }

func (f *Format) Root() grammar.Node { return f.root }

func (f *Format) Memory() *memory.Memory { return f.mem }

func (f *Format) Bindings() *binding.Registry { return f.bindings }

// ReadBytes parses data against the grammar and returns the number of bytes
// consumed. The shared memory keeps any values learned on the way, even for
// a failed traversal.
func (f *Format) ReadBytes(data []byte) (int, error) {
	tok := token.NewReading(data, f.mem)
	err := f.root.Read(tok)
	ok := err == nil && tok.Ok()
	observability.RecordRead(f.name, ok)
	log.Debug().Str("format", f.name).Int("consumed", tok.Index()).
		Bool("ok", ok).Msg("format: read")
	if err != nil {
		return tok.Index(), err
	}
	if !tok.Ok() {
		return tok.Index(), ErrNoMatch
	}
	return tok.Index(), nil
}

// WriteBytes generates one instance of the format.
func (f *Format) WriteBytes() ([]byte, error) {
	return f.write(token.NewWriting(f.mem))
}

// WriteSeeded generates one instance with a deterministic random source,
// making mutable shuffles and generated leaves reproducible.
func (f *Format) WriteSeeded(seed uint64) ([]byte, error) {
	tok := token.NewWriting(f.mem)
	tok.Reseed(seed)
	return f.write(tok)
}

func (f *Format) write(tok *token.Writing) ([]byte, error) {
	err := f.root.Write(tok)
	ok := err == nil && tok.Ok()
	observability.RecordWrite(f.name, ok)
	log.Debug().Str("format", f.name).Int("bytes", len(tok.Bytes())).
		Bool("ok", ok).Msg("format: write")
	if err != nil {
		return nil, err
	}
	if !tok.Ok() {
		return nil, ErrGenerate
	}
	return tok.Bytes(), nil
}

// BuildPattern derives the format's matcher, fresh on every call.
func (f *Format) BuildPattern() pattern.Pattern {
	observability.RecordPatternBuild(f.name)
	return f.root.BuildPattern()
}

// Locate finds instances of the format inside unstructured data and returns
// their byte ranges.
func (f *Format) Locate(data []byte) ([]token.Span, error) {
	hits, err := f.BuildPattern().Find(data)
	if err != nil {
		return nil, fmt.Errorf("format %s: pattern: %w", f.name, err)
	}
	spans := make([]token.Span, 0, len(hits))
	for _, hit := range hits {
		spans = append(spans, token.Span{Start: hit[0], End: hit[1]})
	}
	return spans, nil
}

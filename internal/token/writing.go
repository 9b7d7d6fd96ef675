package token

import (
	"math/rand/v2"

	"github.com/2cute2die/netzob/internal/memory"
)

// Span is one chopped-index entry: the half-open range a node contributed
// to the final value.
type Span struct {
	Start int
	End   int
}

// Writing tracks one generation traversal building an output buffer.
type Writing struct {
	out   []byte
	spans map[string][]Span
	ok    bool
	value []byte
	mem   *memory.Memory
	rng   *rand.Rand
}

// NewWriting builds a token for one write. mem may be shared across
// traversals; it is referenced, not copied.
func NewWriting(mem *memory.Memory) *Writing {
	if mem == nil {
		mem = memory.New()
	}
	return &Writing{
		spans: make(map[string][]Span),
		ok:    true,
		mem:   mem,
		rng:   newRand(),
	}
}

// Reseed replaces the traversal-local random source with a deterministic one.
func (t *Writing) Reseed(seed uint64) {
	t.rng = seededRand(seed)
}

func (t *Writing) Ok() bool { return t.ok }

func (t *Writing) Fail() { t.ok = false }

func (t *Writing) Memory() *memory.Memory { return t.mem }

func (t *Writing) Rand() *rand.Rand { return t.rng }

// Bytes returns the output accumulated so far.
func (t *Writing) Bytes() []byte { return t.out }

// Append records v as nodeID's contribution to the final value and indexes
// the span it occupies.
func (t *Writing) Append(nodeID string, v []byte) {
	start := len(t.out)
	t.out = append(t.out, v...)
	t.spans[nodeID] = append(t.spans[nodeID], Span{Start: start, End: len(t.out)})
	t.value = v
}

// Spans returns the chopped-index entries recorded for nodeID.
func (t *Writing) Spans(nodeID string) []Span {
	return t.spans[nodeID]
}

// ResetChopped drops the final-value index references recorded for nodeID.
// A new write access of a node always invalidates its prior written state.
func (t *Writing) ResetChopped(nodeID string) {
	delete(t.spans, nodeID)
}

// Value returns the value produced by the node most recently processed.
func (t *Writing) Value() []byte { return t.value }

// SetValue records the value produced by the node being processed.
func (t *Writing) SetValue(v []byte) { t.value = v }

// WritingMark is a snapshot of a writing token's state.
type WritingMark struct {
	outLen int
	spans  map[string][]Span
	ok     bool
	value  []byte
}

// Checkpoint snapshots the output, chopped indexes, flag, and current value.
func (t *Writing) Checkpoint() WritingMark {
	spans := make(map[string][]Span, len(t.spans))
	for id, s := range t.spans {
		cp := make([]Span, len(s))
		copy(cp, s)
		spans[id] = cp
	}
	return WritingMark{outLen: len(t.out), spans: spans, ok: t.ok, value: t.value}
}

// Restore rewinds the token to a snapshot taken earlier in the same
// traversal.
func (t *Writing) Restore(m WritingMark) {
	t.out = t.out[:m.outLen]
	t.spans = make(map[string][]Span, len(m.spans))
	for id, s := range m.spans {
		cp := make([]Span, len(s))
		copy(cp, s)
		t.spans[id] = cp
	}
	t.ok = m.ok
	t.value = m.value
}

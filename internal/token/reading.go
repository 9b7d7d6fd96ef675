package token

import (
	"math/rand/v2"

	"github.com/2cute2die/netzob/internal/memory"
)

// Reading tracks one parse traversal over an input buffer.
type Reading struct {
	data  []byte
	index int
	ok    bool
	value []byte
	mem   *memory.Memory
	rng   *rand.Rand
}

// NewReading builds a token for one read of data. mem may be shared across
// traversals; it is referenced, not copied.
func NewReading(data []byte, mem *memory.Memory) *Reading {
	if mem == nil {
		mem = memory.New()
	}
	return &Reading{data: data, ok: true, mem: mem, rng: newRand()}
}

// Reseed replaces the traversal-local random source with a deterministic one.
func (t *Reading) Reseed(seed uint64) {
	t.rng = seededRand(seed)
}

func (t *Reading) Ok() bool { return t.ok }

func (t *Reading) Fail() { t.ok = false }

func (t *Reading) Memory() *memory.Memory { return t.mem }

func (t *Reading) Rand() *rand.Rand { return t.rng }

// Index returns the cursor position.
func (t *Reading) Index() int { return t.index }

// Remaining returns the number of unconsumed bytes.
func (t *Reading) Remaining() int { return len(t.data) - t.index }

// Consume advances the cursor by n bytes and returns them. It returns false
// without moving the cursor when fewer than n bytes remain.
func (t *Reading) Consume(n int) ([]byte, bool) {
	if n < 0 || n > t.Remaining() {
		return nil, false
	}
	out := t.data[t.index : t.index+n]
	t.index += n
	return out, true
}

// Consumed returns the bytes consumed since the cursor stood at from.
func (t *Reading) Consumed(from int) []byte {
	if from < 0 || from > t.index {
		return nil
	}
	return t.data[from:t.index]
}

// Value returns the value produced by the node most recently processed.
func (t *Reading) Value() []byte { return t.value }

// SetValue records the value produced by the node being processed.
func (t *Reading) SetValue(v []byte) { t.value = v }

// ReadingMark is a snapshot of a reading token's state.
type ReadingMark struct {
	index int
	ok    bool
	value []byte
}

// Checkpoint snapshots the cursor, flag, and current value.
func (t *Reading) Checkpoint() ReadingMark {
	return ReadingMark{index: t.index, ok: t.ok, value: t.value}
}

// Restore rewinds the token to a snapshot taken earlier in the same
// traversal.
func (t *Reading) Restore(m ReadingMark) {
	t.index = m.index
	t.ok = m.ok
	t.value = m.value
}

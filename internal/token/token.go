// Package token carries the mutable state of one grammar traversal.
//
// A token belongs to exactly one read or one write of one tree. The Ok flag
// starts true and only ever goes false through Fail; nodes never set it back
// within a traversal. Branching node kinds that need to retry use the
// explicit Checkpoint/Restore pair instead.
package token

import (
	"math/rand/v2"

	"github.com/2cute2die/netzob/internal/memory"
)

// Token is the propagation contract shared by reading and writing tokens.
type Token interface {
	// Ok reports whether the traversal is still succeeding.
	Ok() bool
	// Fail marks the traversal as failed.
	Fail()
	// Memory returns the shared variable memory.
	Memory() *memory.Memory
	// Rand returns the traversal-local random source.
	Rand() *rand.Rand
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func seededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Package trainer implements the recognition drill: drawing random pieces,
// checking typed letters against the memo tables, and keeping score.
package trainer

import (
	"math/rand/v2"

	"github.com/coolbeans/memodrill/pkg/cube"
	"github.com/coolbeans/memodrill/pkg/memo"
)

// Sampler draws uniformly random piece orientations. Draws are independent,
// so the same piece may come up twice in a row. A Sampler is not safe for
// concurrent use.
type Sampler struct {
	enc *memo.Encoder
	rng *rand.Rand
}

// NewSampler returns a sampler with a reproducible sequence for seed.
func NewSampler(enc *memo.Encoder, seed uint64) *Sampler {
	return &Sampler{
		enc: enc,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewRandomSampler returns a sampler seeded from the runtime's random source.
func NewRandomSampler(enc *memo.Encoder) *Sampler {
	return &Sampler{
		enc: enc,
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Index draws a schema index in [0, memo.Size).
func (s *Sampler) Index() int {
	return s.rng.IntN(memo.Size)
}

// Sample draws a random orientation of piece type p.
func (s *Sampler) Sample(p cube.PieceType) cube.Tuple {
	// Index is always in range, so TupleAt cannot fail.
	t, _ := s.enc.Table(p).TupleAt(s.Index())
	return t
}

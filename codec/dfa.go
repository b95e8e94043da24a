package codec

import (
	"math/big"

	"github.com/cutonbuminband/rcounting-go/automaton"
)

// DFAEncoder adapts an automaton.Enumerator — one of the five
// constrained-digit-string machines (no-consecutive, no-successive,
// no-repeating, only-repeating, not-any-of-those) — to the Encoder
// interface, so constrained-form side threads go through the same
// registry surface as every other encoder (spec §4.2 / §4.3).
type DFAEncoder struct {
	enumerator *automaton.Enumerator
}

func NewDFAEncoder(enumerator *automaton.Enumerator) *DFAEncoder {
	return &DFAEncoder{enumerator: enumerator}
}

func (e *DFAEncoder) CountToBody(n *big.Int) (string, error) {
	return e.enumerator.CountToBody(n)
}

func (e *DFAEncoder) BodyToCount(body string) (*big.Int, error) {
	return e.enumerator.CountPrefix(body), nil
}

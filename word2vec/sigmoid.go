package word2vec

import "math"

const (
	// MaxExp bounds the dot products handled by the
	// sigmoid table.
	MaxExp = 6

	expTableSize = 1000
)

// A SigmoidTable approximates the logistic function on
// [-MaxExp, MaxExp] with evenly spaced bins.
type SigmoidTable []float32

// NewSigmoidTable computes the table.
func NewSigmoidTable() SigmoidTable {
	res := make(SigmoidTable, expTableSize)
	for i := range res {
		e := math.Exp((float64(i)/expTableSize*2 - 1) * MaxExp)
		res[i] = float32(e / (e + 1))
	}
	return res
}

// Lookup approximates the sigmoid of x.
//
// Callers decide what to do with saturated inputs; x is
// clamped to the table range.
func (s SigmoidTable) Lookup(x float32) float32 {
	idx := int((x + MaxExp) * (float32(expTableSize) / (2 * MaxExp)))
	if idx < 0 {
		idx = 0
	} else if idx >= len(s) {
		idx = len(s) - 1
	}
	return s[idx]
}

package word2vec

// Rand is the linear congruential generator that drives
// every random choice made during training.
//
// Each worker owns its own Rand, seeded with the worker
// index, so a worker's choices depend only on its shard.
type Rand uint64

// Next advances the generator and returns the new state.
func (r *Rand) Next() uint64 {
	*r = *r*25214903917 + 11
	return uint64(*r)
}

// Intn returns a value in [0, n).
func (r *Rand) Intn(n int) int {
	return int(r.Next() % uint64(n))
}

// Uniform returns a value in [0, 1) with 16 bits of
// precision.
func (r *Rand) Uniform() float64 {
	return float64(r.Next()&0xFFFF) / 65536
}

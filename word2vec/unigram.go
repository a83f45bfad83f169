package word2vec

import (
	"math"

	"github.com/lmthang/bivec/vocab"
)

// DefaultTableSize is the default number of unigram
// table slots.
const DefaultTableSize = 100000000

const unigramPower = 0.75

// A UnigramTable draws negative samples with probability
// proportional to count^0.75.
//
// Each slot holds a vocabulary index; a word owns a run
// of slots as long as its share of the distribution.
type UnigramTable []int32

// NewUnigramTable builds a table with size slots.
func NewUnigramTable(v *vocab.Vocab, size int) UnigramTable {
	var total float64
	for _, e := range v.Entries {
		total += math.Pow(float64(e.Count), unigramPower)
	}
	res := make(UnigramTable, size)
	var i int
	cumulative := math.Pow(float64(v.Entries[0].Count), unigramPower) / total
	for a := range res {
		res[a] = int32(i)
		if float64(a)/float64(size) > cumulative && i+1 < len(v.Entries) {
			i++
			cumulative += math.Pow(float64(v.Entries[i].Count), unigramPower) / total
		}
	}
	return res
}

// Sample draws a word index for a vocabulary of
// vocabSize words.
//
// The sentence boundary is never returned: a draw that
// lands on it is replaced by a uniform draw over the
// other words.
// The vocabulary must have at least two words.
func (u UnigramTable) Sample(r *Rand, vocabSize int) int32 {
	n := r.Next()
	target := u[(n>>16)%uint64(len(u))]
	if target == 0 {
		target = int32(n%uint64(vocabSize-1) + 1)
	}
	return target
}

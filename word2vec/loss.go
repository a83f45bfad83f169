package word2vec

import (
	"io"

	"github.com/lmthang/bivec"
	"github.com/lmthang/bivec/vocab"
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/essentials"
)

// A Pair is an (input word, output word) pair of
// vocabulary indices.
type Pair struct {
	In  int32
	Out int32
}

// WindowPairs lists the skip-gram pairs of sentences:
// every word within window positions of a word predicts
// that word.
func WindowPairs(sentences [][]int32, window int) []Pair {
	var res []Pair
	for _, s := range sentences {
		for pos, word := range s {
			for c := pos - window; c <= pos+window; c++ {
				if c < 0 || c >= len(s) || c == pos {
					continue
				}
				res = append(res, Pair{In: s[c], Out: word})
			}
		}
	}
	return res
}

// ReadSentences reads a corpus as vocabulary indices.
// Unknown words are left out.
func (l *LanguageModel) ReadSentences(r io.Reader) ([][]int32, error) {
	tokens := bivec.NewTokenReader(r)
	var res [][]int32
	for {
		words, err := tokens.Sentence()
		var ids []int32
		for _, w := range words {
			if idx := l.Vocab.Lookup(w); idx != vocab.NotFound {
				ids = append(ids, int32(idx))
			}
		}
		if len(ids) > 0 {
			res = append(res, ids)
		}
		if err == io.EOF {
			return res, nil
		} else if err != nil {
			return nil, essentials.AddCtx("read sentences", err)
		}
	}
}

// Loss computes the mean cost of the pairs.
//
// With negative sampling vectors, the cost is the sigmoid
// cross-entropy of each true pair plus that of negative
// noise words drawn per pair from the unigram table, using
// a generator seeded with seed.
// Without a table, only the true pairs are scored.
//
// A model with only hierarchical softmax vectors is
// scored by the cross-entropy of the Huffman path of each
// output word, and negative is ignored.
// A model with neither scores 0.
func (l *LanguageModel) Loss(pairs []Pair, negative int, seed uint64) float64 {
	if len(pairs) == 0 {
		return 0
	}
	var logits, labels []float32
	switch {
	case l.Syn1Neg != nil:
		logits, labels = l.negativeLogits(pairs, negative, seed)
	case l.Syn1 != nil:
		logits, labels = l.pathLogits(pairs)
	}
	if len(logits) == 0 {
		return 0
	}

	desired := anydiff.NewConst(anyvec32.MakeVectorData(labels))
	actual := anydiff.NewConst(anyvec32.MakeVectorData(logits))
	cost := anynet.SigmoidCE{}.Cost(desired, actual, len(logits))
	total := anyvec.Sum(cost.Output()).(float32)
	return float64(total) / float64(len(pairs))
}

func (l *LanguageModel) negativeLogits(pairs []Pair, negative int,
	seed uint64) (logits, labels []float32) {
	if l.Table == nil {
		negative = 0
	}
	rng := Rand(seed)
	for _, p := range pairs {
		hidden := l.InputVector(int(p.In))
		logits = append(logits, dot(hidden, l.OutputVector(int(p.Out))))
		labels = append(labels, 1)
		for i := 0; i < negative; i++ {
			target := l.Table.Sample(&rng, l.Vocab.Len())
			if target == p.Out {
				continue
			}
			logits = append(logits, dot(hidden, l.OutputVector(int(target))))
			labels = append(labels, 0)
		}
	}
	return
}

// pathLogits scores each node of the output word's
// Huffman path, whose desired output is 1 minus the code
// bit.
func (l *LanguageModel) pathLogits(pairs []Pair) (logits, labels []float32) {
	for _, p := range pairs {
		hidden := l.InputVector(int(p.In))
		e := &l.Vocab.Entries[p.Out]
		for d, node := range e.Point {
			logits = append(logits, dot(hidden, l.nodeVector(node)))
			labels = append(labels, 1-float32(e.Code[d]))
		}
	}
	return
}

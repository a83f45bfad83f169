package word2vec

// cbow predicts the word out of the model out from the
// average input vector of the window around pos in ctx,
// whose words belong to the model in.
//
// The window excludes pos itself.
func (w *worker) cbow(in *LanguageModel, ctx []int32, pos, b int, out *LanguageModel,
	word int32, alpha float32) {
	zero(w.neu1)
	zero(w.neu1e)
	lo, hi := w.t.windowBounds(pos, b, len(ctx))
	var count int
	for c := lo; c <= hi; c++ {
		if c != pos {
			axpy(1, in.InputVector(int(ctx[c])), w.neu1)
			count++
		}
	}
	if count == 0 {
		return
	}
	scal(1/float32(count), w.neu1)

	w.output(w.neu1, out, word, alpha)

	for c := lo; c <= hi; c++ {
		if c != pos {
			axpy(1, w.neu1e, in.InputVector(int(ctx[c])))
		}
	}
}

// skipPair lets the input vector of inWord (from the
// model in) predict outWord (from the model out).
func (w *worker) skipPair(in *LanguageModel, inWord int32, out *LanguageModel,
	outWord int32, alpha float32) {
	hidden := in.InputVector(int(inWord))
	zero(w.neu1e)
	w.output(hidden, out, outWord, alpha)
	axpy(1, w.neu1e, hidden)
}

// output runs the enabled objectives for predicting word
// from the hidden vector, updating the output vectors of
// out and accumulating the hidden error in neu1e.
func (w *worker) output(hidden []float32, out *LanguageModel, word int32, alpha float32) {
	if w.t.Config.HS {
		e := &out.Vocab.Entries[word]
		for d, node := range e.Point {
			nodeVec := out.nodeVector(node)
			f := dot(hidden, nodeVec)
			if f <= -MaxExp || f >= MaxExp {
				continue
			}
			g := (1 - float32(e.Code[d]) - w.t.sigmoid.Lookup(f)) * alpha
			axpy(g, nodeVec, w.neu1e)
			axpy(g, hidden, nodeVec)
		}
	}
	negative := w.t.Config.Negative
	if negative == 0 {
		return
	}
	for d := 0; d <= negative; d++ {
		target, label := word, float32(1)
		if d > 0 {
			target = w.noise(out, word)
			if target < 0 {
				continue
			}
			label = 0
		}
		outVec := out.OutputVector(int(target))
		f := dot(hidden, outVec)
		var g float32
		switch {
		case f > MaxExp:
			g = (label - 1) * alpha
		case f < -MaxExp:
			g = label * alpha
		default:
			g = (label - w.t.sigmoid.Lookup(f)) * alpha
		}
		axpy(g, outVec, w.neu1e)
		axpy(g, hidden, outVec)
	}
}

// noise draws a negative sample other than word, or
// returns -1 if every draw hit word.
func (w *worker) noise(out *LanguageModel, word int32) int32 {
	for i := 0; i < maxResample; i++ {
		if target := out.Table.Sample(&w.rng, out.Vocab.Len()); target != word {
			return target
		}
	}
	return -1
}

// alignPair lets the word at index idx of one sentence
// predict the window around index otherIdx of the other
// sentence, which is in the other language.
func (w *worker) alignPair(s *sentence, idx int, other *sentence, otherIdx int, alpha float32) {
	word := s.words[idx]
	b := w.rng.Intn(w.t.Config.Window)
	if w.t.Config.CBOW {
		w.cbow(other.lm, other.words, otherIdx, b, s.lm, word, alpha)
		return
	}
	lo, hi := w.t.windowBounds(otherIdx, b, len(other.words))
	for c := lo; c <= hi; c++ {
		if c != otherIdx {
			w.skipPair(s.lm, word, other.lm, other.words[c], alpha)
		}
	}
}

package word2vec

import (
	"fmt"

	"github.com/lmthang/bivec/vecio"
	"github.com/lmthang/bivec/vocab"
	"github.com/sirupsen/logrus"
	"github.com/unixpickle/essentials"
)

// VectorPaths lists the files written for a language by
// SaveVectors with the given prefix.
func VectorPaths(prefix, lang string) (in, out, sum string) {
	return prefix + "." + lang, prefix + ".outvec." + lang, prefix + ".sumvec." + lang
}

// Vectors returns the input vectors of the model.
// The data aliases Syn0.
func (l *LanguageModel) Vectors() *vecio.Vectors {
	return &vecio.Vectors{Words: l.Vocab.Words(), Dim: l.Dim, Data: l.Syn0}
}

// InitVectors copies the vectors of v into Syn0 for every
// word the vocabulary knows, and returns how many words
// were copied.
func (l *LanguageModel) InitVectors(v *vecio.Vectors) (int, error) {
	if v.Dim != l.Dim {
		return 0, fmt.Errorf("vectors have dimension %d but the model has %d", v.Dim, l.Dim)
	}
	var n int
	for i, word := range v.Words {
		if idx := l.Vocab.Lookup(word); idx != vocab.NotFound {
			copy(l.InputVector(idx), v.Row(i))
			n++
		}
	}
	return n, nil
}

// SaveVectors writes the input vectors of every model to
// "<prefix>.<lang>".
//
// If outVecs is set, the negative sampling vectors go to
// "<prefix>.outvec.<lang>"; if sumVecs is set, the sum of
// both goes to "<prefix>.sumvec.<lang>".
// Both only apply to negative sampling without
// hierarchical softmax, and are skipped otherwise.
func (t *Trainer) SaveVectors(prefix string, format vecio.Format, outVecs, sumVecs bool) error {
	nsOnly := t.Config.Negative > 0 && !t.Config.HS
	for _, l := range t.Models() {
		inPath, outPath, sumPath := VectorPaths(prefix, l.Lang)
		if err := vecio.WriteFile(inPath, l.Vectors(), format); err != nil {
			return essentials.AddCtx("save vectors", err)
		}
		written := []string{inPath}
		if nsOnly && outVecs {
			v := &vecio.Vectors{Words: l.Vocab.Words(), Dim: l.Dim, Data: l.Syn1Neg}
			if err := vecio.WriteFile(outPath, v, format); err != nil {
				return essentials.AddCtx("save vectors", err)
			}
			written = append(written, outPath)
		}
		if nsOnly && sumVecs {
			v := &vecio.Vectors{Words: l.Vocab.Words(), Dim: l.Dim, Data: l.SumVectors()}
			if err := vecio.WriteFile(sumPath, v, format); err != nil {
				return essentials.AddCtx("save vectors", err)
			}
			written = append(written, sumPath)
		}
		t.Log.WithFields(logrus.Fields{
			"lang":  l.Lang,
			"files": written,
		}).Info("saved vectors")
	}
	return nil
}

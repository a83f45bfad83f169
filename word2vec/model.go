// Package word2vec trains skip-gram and CBOW embeddings,
// alone or jointly for two languages of a parallel
// corpus.
package word2vec

import (
	"math"
	"sync/atomic"

	"github.com/lmthang/bivec/corpus"
	"github.com/lmthang/bivec/vocab"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	serializer.RegisterTypedDeserializer((&LanguageModel{}).SerializerType(),
		DeserializeLanguageModel)
}

// A LanguageModel holds the vocabulary and parameters
// trained for one language.
//
// The matrices are flat and row-major, with one row of
// Dim values per vocabulary index (or, for Syn1, per
// internal Huffman node).
type LanguageModel struct {
	Lang  string
	Vocab *vocab.Vocab
	Dim   int

	// Syn0 holds the input vectors.
	Syn0 []float32

	// Syn1 holds the hierarchical softmax node vectors.
	Syn1 []float32

	// Syn1Neg holds the negative sampling output vectors.
	Syn1Neg []float32

	// Table is set when negative sampling is enabled.
	Table UnigramTable

	// Shards splits the training file across workers.
	Shards *corpus.Shards

	// MonoShards splits the mono corpus, if there is one.
	MonoShards *corpus.Shards

	// Sample is the subsampling threshold.
	Sample float64

	wordCountActual atomic.Int64
}

// NewLanguageModel creates a model with randomized input
// vectors and zeroed output vectors.
//
// The input vectors are drawn uniformly from
// [-0.5/dim, 0.5/dim) by a generator with a fixed seed,
// so equal vocabularies get equal initial vectors.
func NewLanguageModel(lang string, v *vocab.Vocab, dim int, hs, negative bool) *LanguageModel {
	rows := v.Len()
	res := &LanguageModel{
		Lang:  lang,
		Vocab: v,
		Dim:   dim,
		Syn0:  make([]float32, rows*dim),
	}
	r := Rand(1)
	for i := range res.Syn0 {
		res.Syn0[i] = float32((r.Uniform() - 0.5) / float64(dim))
	}
	if hs {
		nodes := rows - 1
		if nodes < 1 {
			nodes = 1
		}
		res.Syn1 = make([]float32, nodes*dim)
	}
	if negative {
		res.Syn1Neg = make([]float32, rows*dim)
	}
	return res
}

// DeserializeLanguageModel deserializes a LanguageModel.
// Only the vocabulary and matrices are restored.
func DeserializeLanguageModel(d []byte) (*LanguageModel, error) {
	var lang serializer.Bytes
	var res LanguageModel
	err := serializer.DeserializeAny(d, &lang, &res.Vocab, &res.Dim, &res.Syn0,
		&res.Syn1, &res.Syn1Neg)
	if err != nil {
		return nil, essentials.AddCtx("deserialize LanguageModel", err)
	}
	res.Lang = string(lang)
	if len(res.Syn1) == 0 {
		res.Syn1 = nil
	}
	if len(res.Syn1Neg) == 0 {
		res.Syn1Neg = nil
	}
	return &res, nil
}

// InputVector returns the input vector of a word.
// The slice aliases Syn0.
func (l *LanguageModel) InputVector(word int) []float32 {
	return l.Syn0[word*l.Dim : (word+1)*l.Dim]
}

// OutputVector returns the negative sampling vector of a
// word.
// The slice aliases Syn1Neg.
func (l *LanguageModel) OutputVector(word int) []float32 {
	return l.Syn1Neg[word*l.Dim : (word+1)*l.Dim]
}

func (l *LanguageModel) nodeVector(node int32) []float32 {
	return l.Syn1[int(node)*l.Dim : int(node+1)*l.Dim]
}

// KeepProbability returns the chance that subsampling
// keeps an occurrence of a word.
// Values of 1 or more mean the word is always kept.
func (l *LanguageModel) KeepProbability(word int) float64 {
	if l.Sample <= 0 {
		return 1
	}
	threshold := l.Sample * float64(l.Vocab.TrainWords)
	count := float64(l.Vocab.Entries[word].Count)
	return (math.Sqrt(count/threshold) + 1) * threshold / count
}

// SumVectors returns Syn0 + Syn1Neg.
// It returns nil without negative sampling vectors.
func (l *LanguageModel) SumVectors() []float32 {
	if l.Syn1Neg == nil {
		return nil
	}
	res := append([]float32{}, l.Syn0...)
	axpy(1, l.Syn1Neg, res)
	return res
}

// MatrixStats summarizes the values of a matrix.
type MatrixStats struct {
	Min  float64
	Max  float64
	Mean float64
}

// Stats summarizes every allocated matrix, keyed by
// matrix name.
func (l *LanguageModel) Stats() map[string]MatrixStats {
	res := map[string]MatrixStats{}
	for name, m := range map[string][]float32{
		"syn0":    l.Syn0,
		"syn1":    l.Syn1,
		"syn1neg": l.Syn1Neg,
	} {
		if len(m) == 0 {
			continue
		}
		stats := MatrixStats{Min: math.Inf(1), Max: math.Inf(-1)}
		var sum float64
		for _, x := range m {
			v := float64(x)
			stats.Min = math.Min(stats.Min, v)
			stats.Max = math.Max(stats.Max, v)
			sum += v
		}
		stats.Mean = sum / float64(len(m))
		res[name] = stats
	}
	return res
}

// SerializerType returns the unique ID used to serialize
// a LanguageModel with the serializer package.
func (l *LanguageModel) SerializerType() string {
	return "github.com/lmthang/bivec/word2vec.LanguageModel"
}

// Serialize serializes the vocabulary and matrices.
func (l *LanguageModel) Serialize() ([]byte, error) {
	return serializer.SerializeAny(
		serializer.Bytes(l.Lang),
		l.Vocab,
		l.Dim,
		l.Syn0,
		l.Syn1,
		l.Syn1Neg,
	)
}

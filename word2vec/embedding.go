package word2vec

import (
	"github.com/lmthang/bivec"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/anyvec/anyvecsave"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	serializer.RegisterTypedDeserializer((&Embedding{}).SerializerType(),
		DeserializeEmbedding)
}

// Embedding is a trained word embedding.
type Embedding struct {
	// Tokens is the list of available words.
	Tokens *bivec.TokenSet

	// Vectors contains one row per token ID.
	Vectors *anyvec.Matrix
}

var _ bivec.Embedding = (*Embedding)(nil)

// NewEmbedding creates an Embedding from a row-major
// matrix with one row per word.
// The data is copied.
func NewEmbedding(words []string, dim int, data []float32) *Embedding {
	return &Embedding{
		Tokens: bivec.NewTokenSet(words),
		Vectors: &anyvec.Matrix{
			Data: anyvec32.MakeVectorData(append([]float32{}, data...)),
			Rows: len(words),
			Cols: dim,
		},
	}
}

// Embedding copies the input vectors of the model.
func (l *LanguageModel) Embedding() *Embedding {
	return NewEmbedding(l.Vocab.Words(), l.Dim, l.Syn0)
}

// DeserializeEmbedding deserializes an Embedding.
func DeserializeEmbedding(d []byte) (*Embedding, error) {
	var res Embedding
	var rows, cols int
	var data *anyvecsave.S
	if err := serializer.DeserializeAny(d, &res.Tokens, &rows, &cols, &data); err != nil {
		return nil, essentials.AddCtx("deserialize Embedding", err)
	}
	res.Vectors = &anyvec.Matrix{
		Data: data.Vector,
		Rows: rows,
		Cols: cols,
	}
	return &res, nil
}

// Dim returns the dimensionality of the embedding.
func (e *Embedding) Dim() int {
	return e.Vectors.Cols
}

// Token looks up the token for the token ID.
func (e *Embedding) Token(id int) string {
	return e.Tokens.Token(id)
}

// Normalize makes all the vectors have unit magnitude.
func (e *Embedding) Normalize() {
	anyvec.ScaleChunks(e.Vectors.Data, e.inverseNorms())
}

// Embed returns the embedding for the token, or nil if
// the token is unknown.
func (e *Embedding) Embed(token string) anyvec.Vector {
	id := e.Tokens.ID(token)
	if id < 0 {
		return nil
	}
	return e.EmbedID(id)
}

// EmbedID returns the embedding for the token ID.
func (e *Embedding) EmbedID(id int) anyvec.Vector {
	idx := e.Vectors.Cols * id
	return e.Vectors.Data.Slice(idx, idx+e.Vectors.Cols).Copy()
}

// Lookup finds the n closest token IDs to the given
// vector, using cosine similarity.
// For each ID, it also returns the similarity.
//
// If n is greater than the number of IDs, then there will
// be fewer than n results.
func (e *Embedding) Lookup(vec anyvec.Vector, n int) ([]int, []anyvec.Numeric) {
	if vec.Len() != e.Vectors.Cols {
		panic("incorrect vector length")
	}

	c := e.Vectors.Data.Creator()
	masked := e.Vectors.Data.Copy()
	anyvec.ScaleChunks(masked, e.inverseNorms())
	normVec := vec.Copy()
	normVec.Scale(c.NumOps().Div(c.MakeNumeric(1), anyvec.Norm(vec)))
	anyvec.ScaleRepeated(masked, normVec)
	dots := anyvec.SumCols(masked, e.Vectors.Rows)

	var ids []int
	var dists []anyvec.Numeric
	for i := 0; i < n && i < dots.Len(); i++ {
		idx := anyvec.MaxIndex(dots)
		ids = append(ids, idx)
		dists = append(dists, anyvec.Sum(dots.Slice(idx, idx+1)))

		// Cosine similarities are never below -1.
		dots.Slice(idx, idx+1).AddScalar(c.MakeNumeric(-3))
	}
	return ids, dists
}

// Nearest finds the n words closest to a known word,
// leaving out the word itself.
// It returns nil if the word is unknown.
func (e *Embedding) Nearest(word string, n int) ([]string, []float32) {
	vec := e.Embed(word)
	if vec == nil {
		return nil, nil
	}
	ids, sims := e.Lookup(vec, n+1)
	var words []string
	var scores []float32
	for i, id := range ids {
		tok := e.Token(id)
		if tok == word || len(words) == n {
			continue
		}
		words = append(words, tok)
		scores = append(scores, sims[i].(float32))
	}
	return words, scores
}

// SerializerType returns the unique ID used to serialize
// an Embedding with the serializer package.
func (e *Embedding) SerializerType() string {
	return "github.com/lmthang/bivec/word2vec.Embedding"
}

// Serialize serializes the Embedding.
func (e *Embedding) Serialize() ([]byte, error) {
	return serializer.SerializeAny(
		e.Tokens,
		e.Vectors.Rows,
		e.Vectors.Cols,
		&anyvecsave.S{Vector: e.Vectors.Data},
	)
}

func (e *Embedding) inverseNorms() anyvec.Vector {
	c := e.Vectors.Data.Creator()
	squares := e.Vectors.Data.Copy()
	anyvec.Pow(squares, c.MakeNumeric(2))
	norms := anyvec.SumCols(squares, e.Vectors.Rows)
	anyvec.Pow(norms, c.MakeNumeric(-0.5))
	return norms
}

package word2vec

import (
	"math"
	"reflect"
	"testing"

	"github.com/unixpickle/serializer"
)

func testEmbedding() *Embedding {
	return NewEmbedding([]string{"x", "a", "b", "c"}, 2, []float32{
		1, 0,
		0.9, 0.1,
		0, 2,
		-1, 0,
	})
}

func TestEmbeddingLookup(t *testing.T) {
	e := testEmbedding()
	ids, sims := e.Lookup(e.Embed("x"), 3)
	if !reflect.DeepEqual(ids, []int{0, 1, 2}) {
		t.Errorf("unexpected IDs: %v", ids)
	}
	expected := []float64{1, 0.9 / math.Sqrt(0.82), 0}
	for i, x := range expected {
		if math.Abs(float64(sims[i].(float32))-x) > 1e-4 {
			t.Errorf("similarity %d: expected %f but got %v", i, x, sims[i])
		}
	}

	ids, _ = e.Lookup(e.Embed("x"), 10)
	if len(ids) != 4 {
		t.Errorf("expected 4 results but got %d", len(ids))
	}
}

func TestEmbeddingNearest(t *testing.T) {
	e := testEmbedding()
	words, _ := e.Nearest("x", 2)
	if !reflect.DeepEqual(words, []string{"a", "b"}) {
		t.Errorf("unexpected neighbors: %v", words)
	}
	if words, _ := e.Nearest("unknown", 2); words != nil {
		t.Errorf("expected no neighbors but got %v", words)
	}
	if e.Embed("unknown") != nil {
		t.Error("expected nil vector for unknown word")
	}
}

func TestEmbeddingNormalize(t *testing.T) {
	e := testEmbedding()
	e.Normalize()
	vec := e.EmbedID(2).Data().([]float32)
	if math.Abs(float64(vec[1])-1) > 1e-5 {
		t.Errorf("unexpected normalized vector: %v", vec)
	}
}

func TestEmbeddingSerialize(t *testing.T) {
	e := testEmbedding()
	data, err := serializer.SerializeAny(e)
	if err != nil {
		t.Fatal(err)
	}
	var e1 *Embedding
	if err := serializer.DeserializeAny(data, &e1); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(e1.Tokens.Tokens(), e.Tokens.Tokens()) {
		t.Errorf("expected tokens %v but got %v", e.Tokens.Tokens(), e1.Tokens.Tokens())
	}
	if e1.Dim() != 2 || e1.Vectors.Rows != 4 {
		t.Errorf("unexpected shape: %dx%d", e1.Vectors.Rows, e1.Dim())
	}
	if !reflect.DeepEqual(e1.Vectors.Data.Data(), e.Vectors.Data.Data()) {
		t.Error("vectors do not match")
	}
}

func TestLanguageModelEmbedding(t *testing.T) {
	l := NewLanguageModel("en", vocabWithCounts(3, 2), 4, false, true)
	e := l.Embedding()
	if e.Token(1) != "a" || e.Dim() != 4 {
		t.Errorf("unexpected embedding: %s %d", e.Token(1), e.Dim())
	}
	if !reflect.DeepEqual(e.EmbedID(1).Data(), l.InputVector(1)) {
		t.Error("vectors do not match")
	}
	l.Syn0[4] = 100
	if e.EmbedID(1).Data().([]float32)[0] == 100 {
		t.Error("embedding should not alias the model")
	}
}

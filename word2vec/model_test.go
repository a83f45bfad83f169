package word2vec

import (
	"math"
	"reflect"
	"testing"

	"github.com/unixpickle/serializer"
)

func TestNewLanguageModel(t *testing.T) {
	v := vocabWithCounts(5, 4, 2, 1)
	l := NewLanguageModel("en", v, 8, true, true)
	if len(l.Syn0) != 5*8 || len(l.Syn1) != 4*8 || len(l.Syn1Neg) != 5*8 {
		t.Fatalf("unexpected sizes: %d %d %d", len(l.Syn0), len(l.Syn1), len(l.Syn1Neg))
	}
	for _, x := range l.Syn0 {
		if x < -0.5/8 || x >= 0.5/8 {
			t.Fatalf("initial value out of range: %f", x)
		}
	}
	for _, x := range append(l.Syn1, l.Syn1Neg...) {
		if x != 0 {
			t.Fatal("output vectors should start at zero")
		}
	}
	l1 := NewLanguageModel("en", v, 8, false, false)
	if !reflect.DeepEqual(l.Syn0, l1.Syn0) {
		t.Error("initialization should be deterministic")
	}
	if l1.Syn1 != nil || l1.Syn1Neg != nil {
		t.Error("unused matrices should not be allocated")
	}
}

func TestKeepProbability(t *testing.T) {
	v := vocabWithCounts(1000, 100, 10, 1)
	l := NewLanguageModel("en", v, 2, false, true)
	for i := 1; i < v.Len(); i++ {
		if l.KeepProbability(i) != 1 {
			t.Fatal("subsampling should be disabled")
		}
	}

	l.Sample = 1e-3
	last := 0.0
	for i := 1; i < v.Len(); i++ {
		p := l.KeepProbability(i)
		if p <= last {
			t.Errorf("word %d: probability %f should exceed %f", i, p, last)
		}
		last = p
	}
	threshold := 1e-3 * float64(v.TrainWords)
	expected := (math.Sqrt(1000/threshold) + 1) * threshold / 1000
	if actual := l.KeepProbability(1); math.Abs(actual-expected) > 1e-9 {
		t.Errorf("expected %f but got %f", expected, actual)
	}
}

func TestSumVectors(t *testing.T) {
	v := vocabWithCounts(2)
	l := NewLanguageModel("en", v, 2, false, true)
	copy(l.Syn0, []float32{1, 2, 3, 4})
	copy(l.Syn1Neg, []float32{0.5, 0.5, -1, 1})
	expected := []float32{1.5, 2.5, 2, 5}
	if actual := l.SumVectors(); !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
	if l.Syn0[0] != 1 {
		t.Error("input vectors were modified")
	}

	l.Syn1Neg = nil
	if l.SumVectors() != nil {
		t.Error("expected nil without output vectors")
	}
}

func TestStats(t *testing.T) {
	v := vocabWithCounts(2)
	l := NewLanguageModel("en", v, 2, false, true)
	copy(l.Syn0, []float32{1, 2, 3, -2})
	stats := l.Stats()
	expected := MatrixStats{Min: -2, Max: 3, Mean: 1}
	if stats["syn0"] != expected {
		t.Errorf("expected %v but got %v", expected, stats["syn0"])
	}
	if _, ok := stats["syn1"]; ok {
		t.Error("unexpected stats for unallocated matrix")
	}
	if stats["syn1neg"] != (MatrixStats{}) {
		t.Errorf("unexpected stats: %v", stats["syn1neg"])
	}
}

func TestLanguageModelSerialize(t *testing.T) {
	v := vocabWithCounts(5, 4, 2, 1)
	l := NewLanguageModel("fr", v, 3, false, true)
	l.Syn1Neg[4] = 0.25

	data, err := serializer.SerializeAny(l)
	if err != nil {
		t.Fatal(err)
	}
	var l1 *LanguageModel
	if err := serializer.DeserializeAny(data, &l1); err != nil {
		t.Fatal(err)
	}
	if l1.Lang != "fr" || l1.Dim != 3 {
		t.Errorf("unexpected header: %s %d", l1.Lang, l1.Dim)
	}
	if !reflect.DeepEqual(l1.Vocab.Words(), v.Words()) {
		t.Errorf("expected words %v but got %v", v.Words(), l1.Vocab.Words())
	}
	if l1.Vocab.TrainWords != v.TrainWords {
		t.Errorf("expected %d train words but got %d", v.TrainWords, l1.Vocab.TrainWords)
	}
	if !reflect.DeepEqual(l1.Syn0, l.Syn0) || !reflect.DeepEqual(l1.Syn1Neg, l.Syn1Neg) {
		t.Error("matrices do not match")
	}
	if l1.Syn1 != nil {
		t.Error("expected no hierarchical softmax vectors")
	}
}

package vocab

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/unixpickle/serializer"
)

func counts(v *Vocab) map[string]int64 {
	res := map[string]int64{}
	for _, e := range v.Entries {
		res[e.Word] = e.Count
	}
	return res
}

func TestLearnFrom(t *testing.T) {
	v := New(64)
	if err := v.LearnFrom(strings.NewReader("a b a b a")); err != nil {
		t.Fatal(err)
	}
	v.Finalize(1)
	expected := []string{"</s>", "a", "b"}
	if actual := v.Words(); !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
	if actual := counts(v); actual["a"] != 3 || actual["b"] != 2 {
		t.Errorf("unexpected counts: %v", actual)
	}
	if v.TrainWords != 5 {
		t.Errorf("expected 5 train words but got %d", v.TrainWords)
	}
}

func TestLearnFromBoundaries(t *testing.T) {
	v := New(64)
	if err := v.LearnFrom(strings.NewReader("x y\ny x x\n")); err != nil {
		t.Fatal(err)
	}
	if v.TrainWords != 7 {
		t.Errorf("expected 7 tokens but got %d", v.TrainWords)
	}
	v.Finalize(1)
	expected := []string{"</s>", "x", "y"}
	if actual := v.Words(); !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
	if c := v.Entries[0].Count; c != 2 {
		t.Errorf("expected boundary count 2 but got %d", c)
	}
}

func TestCountTokens(t *testing.T) {
	n, err := CountTokens(strings.NewReader("x y\ny x x\nz"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 {
		t.Errorf("expected 8 tokens but got %d", n)
	}
}

func TestLookup(t *testing.T) {
	// A tiny table forces collisions and wraparound.
	v := New(13)
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta"}
	for _, w := range words {
		if _, err := v.AddWord(w); err != nil {
			t.Fatal(err)
		}
	}
	for i, w := range words {
		if idx := v.Lookup(w); idx != i+1 {
			t.Errorf("word %s: expected %d but got %d", w, i+1, idx)
		}
	}
	if idx := v.Lookup("theta"); idx != NotFound {
		t.Errorf("expected NotFound but got %d", idx)
	}
	if idx := v.Lookup("</s>"); idx != 0 {
		t.Errorf("expected 0 but got %d", idx)
	}
}

func TestAddWordFull(t *testing.T) {
	v := New(4)
	for _, w := range []string{"a", "b"} {
		if _, err := v.AddWord(w); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := v.AddWord("c"); err != ErrFull {
		t.Errorf("expected ErrFull but got %v", err)
	}
	if idx := v.Lookup("c"); idx != NotFound {
		t.Errorf("expected NotFound but got %d", idx)
	}
}

func TestPruneInfrequent(t *testing.T) {
	v := New(64)
	for w, c := range map[string]int{"a": 1, "b": 2, "c": 3, "d": 4} {
		for i := 0; i < c; i++ {
			if err := v.Observe(w); err != nil {
				t.Fatal(err)
			}
		}
	}
	v.PruneInfrequent()
	actual := counts(v)
	expected := map[string]int64{"</s>": 0, "b": 2, "c": 3, "d": 4}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
	v.PruneInfrequent()
	actual = counts(v)
	expected = map[string]int64{"</s>": 0, "c": 3, "d": 4}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
	for w := range expected {
		if v.Lookup(w) == NotFound {
			t.Errorf("word %s missing after rebuild", w)
		}
	}
	if v.Lookup("a") != NotFound {
		t.Error("pruned word still indexed")
	}
}

func TestObservePrunesWhenFull(t *testing.T) {
	v := New(10)
	for i := 0; i < 6; i++ {
		if err := v.Observe(fmt.Sprintf("w%d", i)); err != nil {
			t.Fatal(err)
		}
	}
	if v.Len() != 7 {
		t.Fatalf("expected 7 entries but got %d", v.Len())
	}
	if err := v.Observe("w6"); err != nil {
		t.Fatal(err)
	}
	if v.Len() != 1 || v.Entries[0].Word != "</s>" {
		t.Errorf("expected only the boundary but got %v", v.Words())
	}
}

func TestFinalize(t *testing.T) {
	v := New(64)
	text := "c b a c b a c d d e e e e\n"
	if err := v.LearnFrom(strings.NewReader(text)); err != nil {
		t.Fatal(err)
	}
	v.Finalize(2)
	expected := []string{"</s>", "e", "c", "b", "a", "d"}
	if actual := v.Words(); !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
	if v.TrainWords != 14 {
		t.Errorf("expected 14 train words but got %d", v.TrainWords)
	}

	v.Finalize(3)
	expected = []string{"</s>", "e", "c"}
	if actual := v.Words(); !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
	if v.TrainWords != 8 {
		t.Errorf("expected 8 train words but got %d", v.TrainWords)
	}
	if v.Lookup("b") != NotFound || v.Lookup("c") != 2 {
		t.Error("hash index was not rebuilt")
	}
}

func TestReadWrite(t *testing.T) {
	v := New(64)
	if err := v.LearnFrom(strings.NewReader("the cat sat on the mat\n")); err != nil {
		t.Fatal(err)
	}
	v.Finalize(1)
	var buf strings.Builder
	if _, err := v.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "</s> 1\nthe 2\n") {
		t.Errorf("unexpected file contents: %q", buf.String())
	}
	v1, err := Read(strings.NewReader(buf.String()), 64)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v.Words(), v1.Words()) {
		t.Errorf("expected %v but got %v", v.Words(), v1.Words())
	}
	if !reflect.DeepEqual(counts(v), counts(v1)) {
		t.Errorf("expected %v but got %v", counts(v), counts(v1))
	}
	if v1.TrainWords != v.TrainWords {
		t.Errorf("expected %d train words but got %d", v.TrainWords, v1.TrainWords)
	}
}

func TestReadMalformed(t *testing.T) {
	if _, err := Read(strings.NewReader("a 1\nb\n"), 64); err == nil {
		t.Error("expected error for missing count")
	}
	if _, err := Read(strings.NewReader("a x\n"), 64); err == nil {
		t.Error("expected error for bad count")
	}
}

func TestSerialize(t *testing.T) {
	v := New(64)
	if err := v.LearnFrom(strings.NewReader("a b c a b a\n")); err != nil {
		t.Fatal(err)
	}
	v.Finalize(1)
	data, err := serializer.SerializeAny(v)
	if err != nil {
		t.Fatal(err)
	}
	var v1 *Vocab
	if err := serializer.DeserializeAny(data, &v1); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, v1) {
		t.Errorf("expected %v but got %v", v, v1)
	}
}

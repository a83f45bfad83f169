package word2vec

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lmthang/bivec/vecio"
)

func TestSaveVectors(t *testing.T) {
	c := testConfig(englishCorpus(t))
	c.CBOW = false
	c.Iters = 1
	tr := prepareTrainer(t, c)
	copy(tr.Src.Syn1Neg, []float32{1, 2, 3})

	prefix := filepath.Join(t.TempDir(), "vectors")
	if err := tr.SaveVectors(prefix, vecio.Binary, true, true); err != nil {
		t.Fatal(err)
	}
	in, out, sum := VectorPaths(prefix, "en")
	for _, x := range []struct {
		path     string
		expected []float32
	}{
		{in, tr.Src.Syn0},
		{out, tr.Src.Syn1Neg},
		{sum, tr.Src.SumVectors()},
	} {
		v, err := vecio.ReadFile(x.path, vecio.Binary)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(v.Words, tr.Src.Vocab.Words()) {
			t.Errorf("%s: unexpected words %v", x.path, v.Words)
		}
		if !reflect.DeepEqual(v.Data, x.expected) {
			t.Errorf("%s: vectors do not match", x.path)
		}
	}
}

func TestSaveVectorsHierarchical(t *testing.T) {
	c := testConfig(englishCorpus(t))
	c.HS = true
	c.Iters = 1
	tr := prepareTrainer(t, c)

	prefix := filepath.Join(t.TempDir(), "vectors")
	if err := tr.SaveVectors(prefix, vecio.Text, true, true); err != nil {
		t.Fatal(err)
	}
	in, out, sum := VectorPaths(prefix, "en")
	if _, err := os.Stat(in); err != nil {
		t.Error(err)
	}
	for _, path := range []string{out, sum} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s should not exist", path)
		}
	}
}

func TestTrainInitialVectors(t *testing.T) {
	c := testConfig(englishCorpus(t))
	pretrained := &vecio.Vectors{
		Words: []string{"cat", "unicorn"},
		Dim:   c.Dim,
		Data:  make([]float32, 2*c.Dim),
	}
	for i := range pretrained.Data {
		pretrained.Data[i] = float32(i) / 10
	}
	c.Src.VectorFile = filepath.Join(t.TempDir(), "init.bin")
	c.Src.VectorFormat = "binary"
	if err := vecio.WriteFile(c.Src.VectorFile, pretrained, vecio.Binary); err != nil {
		t.Fatal(err)
	}
	tr := prepareTrainer(t, c)
	cat := tr.Src.Vocab.Lookup("cat")
	if !reflect.DeepEqual(tr.Src.InputVector(cat), pretrained.Row(0)) {
		t.Errorf("expected %v but got %v", pretrained.Row(0), tr.Src.InputVector(cat))
	}
	fresh := NewLanguageModel("en", tr.Src.Vocab, c.Dim, false, true)
	dog := tr.Src.Vocab.Lookup("dog")
	if !reflect.DeepEqual(tr.Src.InputVector(dog), fresh.InputVector(dog)) {
		t.Error("words without pretrained vectors should keep their initial vectors")
	}
}

func TestInitVectorsMismatch(t *testing.T) {
	l := NewLanguageModel("en", vocabWithCounts(3, 2), 4, false, true)
	v := &vecio.Vectors{Words: []string{"a"}, Dim: 2, Data: []float32{1, 2}}
	if _, err := l.InitVectors(v); err == nil {
		t.Error("expected dimension mismatch error")
	}
	v = &vecio.Vectors{Words: []string{"a", "z"}, Dim: 4, Data: make([]float32, 8)}
	n, err := l.InitVectors(v)
	if err != nil {
		t.Fatal(err)
	} else if n != 1 {
		t.Errorf("expected 1 word but got %d", n)
	}
}

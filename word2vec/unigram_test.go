package word2vec

import (
	"testing"

	"github.com/lmthang/bivec/vocab"
)

func vocabWithCounts(counts ...int64) *vocab.Vocab {
	v := vocab.New(1024)
	for i, c := range counts {
		idx, _ := v.AddWord(string(rune('a' + i)))
		v.Entries[idx].Count = c
	}
	v.Finalize(1)
	return v
}

func TestUnigramTableCoverage(t *testing.T) {
	v := vocabWithCounts(5, 4, 2, 1)
	table := NewUnigramTable(v, 1000)
	seen := map[int32]int{}
	for _, x := range table {
		seen[x]++
	}
	for i := 1; i < v.Len(); i++ {
		if seen[int32(i)] == 0 {
			t.Errorf("word %d missing from table", i)
		}
	}
	for i := 2; i < v.Len(); i++ {
		if seen[int32(i)] > seen[int32(i-1)] {
			t.Errorf("word %d has more slots than word %d", i, i-1)
		}
	}
}

func TestUnigramTableSample(t *testing.T) {
	v := vocabWithCounts(8, 1)
	table := NewUnigramTable(v, 1000)
	r := Rand(3)
	counts := make([]int, v.Len())
	for i := 0; i < 10000; i++ {
		x := table.Sample(&r, v.Len())
		if x <= 0 || int(x) >= v.Len() {
			t.Fatalf("bad sample: %d", x)
		}
		counts[x]++
	}
	if counts[1] < 3*counts[2] {
		t.Errorf("frequent word drawn too rarely: %v", counts)
	}
}

// Package vocab counts the words of a corpus and indexes
// them for training.
//
// A Vocab maps words to dense indices through an
// open-addressing hash table.
// Index 0 is always the sentence boundary token.
package vocab

import (
	"sort"

	"github.com/lmthang/bivec"
)

const (
	// DefaultHashSize is the number of hash slots used
	// when no size is given.
	DefaultHashSize = 30000000

	// MaxCodeLength is the longest allowed Huffman code.
	MaxCodeLength = 40

	// NotFound is the index reported for unknown words.
	NotFound = -1

	maxLoad = 0.7
)

// An Entry stores a vocabulary word.
type Entry struct {
	Word  string
	Count int64

	// Code is the Huffman code of the word, from the root
	// down to the leaf.
	Code []byte

	// Point lists the internal nodes on the path from the
	// root, one per bit of Code.
	// Internal nodes are numbered from 0 to len-2, with
	// the root numbered len-2.
	Point []int32
}

// A Vocab is a vocabulary with a hash index.
//
// Entries must not be reordered or resized outside of
// the Vocab methods, since the hash index refers to them
// by position.
type Vocab struct {
	Entries []Entry

	// TrainWords is the number of corpus tokens that
	// training will visit per epoch.
	TrainWords int64

	// FileSize is the size of the corpus the vocabulary
	// was learned from, if any.
	FileSize int64

	hash      []int32
	minReduce int64
}

// New creates a vocabulary with the given number of hash
// slots.
// The vocabulary starts with the sentence boundary token.
//
// If hashSize is not positive, DefaultHashSize is used.
func New(hashSize int) *Vocab {
	if hashSize <= 0 {
		hashSize = DefaultHashSize
	}
	v := &Vocab{
		hash:      make([]int32, hashSize),
		minReduce: 1,
	}
	v.rebuildHash()
	v.AddWord(bivec.SentenceBoundary)
	return v
}

// Len returns the number of words.
func (v *Vocab) Len() int {
	return len(v.Entries)
}

// HashSize returns the number of hash slots.
func (v *Vocab) HashSize() int {
	return len(v.hash)
}

// Words returns the words in index order.
func (v *Vocab) Words() []string {
	res := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		res[i] = e.Word
	}
	return res
}

// AddWord appends a word with a count of zero and
// returns its index.
//
// The caller must make sure the word is not already
// present.
func (v *Vocab) AddWord(word string) (int, error) {
	// One slot always stays free so that probing for an
	// absent word terminates.
	if len(v.Entries)+1 >= len(v.hash) {
		return NotFound, ErrFull
	}
	idx := len(v.Entries)
	v.Entries = append(v.Entries, Entry{Word: word})
	v.insert(word, idx)
	return idx, nil
}

// Lookup finds the index of a word.
// It returns NotFound if the word is absent.
func (v *Vocab) Lookup(word string) int {
	h := v.hashWord(word)
	for {
		idx := v.hash[h]
		if idx == -1 {
			return NotFound
		}
		if v.Entries[idx].Word == word {
			return int(idx)
		}
		h = (h + 1) % uint64(len(v.hash))
	}
}

// Observe counts one occurrence of a word, adding the
// word if it is new.
//
// When the hash index becomes too full, the least
// frequent words are pruned with PruneInfrequent.
func (v *Vocab) Observe(word string) error {
	idx := v.Lookup(word)
	if idx == NotFound {
		var err error
		idx, err = v.AddWord(word)
		if err != nil {
			return err
		}
	}
	v.Entries[idx].Count++
	if float64(len(v.Entries)) > maxLoad*float64(len(v.hash)) {
		v.PruneInfrequent()
	}
	return nil
}

// PruneInfrequent drops every word whose count does not
// exceed the pruning threshold, then raises the threshold
// by one for the next call.
// The threshold starts at 1.
//
// The sentence boundary token is never dropped.
func (v *Vocab) PruneInfrequent() {
	old := len(v.Entries)
	kept := v.Entries[:0]
	for i, e := range v.Entries {
		if e.Count > v.minReduce || v.pinned(i) {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < old; i++ {
		v.Entries[i] = Entry{}
	}
	v.Entries = kept
	v.rebuildHash()
	v.minReduce++
}

// Finalize sorts the words by decreasing count and drops
// words seen fewer than minCount times.
//
// The sentence boundary token stays at index 0 whatever
// its count.
// Words with equal counts keep their relative order.
// TrainWords becomes the total count of the words kept,
// and any Huffman codes are discarded.
func (v *Vocab) Finalize(minCount int64) {
	if len(v.Entries) > 1 {
		rest := v.Entries[1:]
		sort.SliceStable(rest, func(i, j int) bool {
			return rest[i].Count > rest[j].Count
		})
	}
	old := len(v.Entries)
	kept := v.Entries[:0]
	v.TrainWords = 0
	for i, e := range v.Entries {
		if e.Count < minCount && !v.pinned(i) {
			continue
		}
		e.Code = nil
		e.Point = nil
		kept = append(kept, e)
		v.TrainWords += e.Count
	}
	for i := len(kept); i < old; i++ {
		v.Entries[i] = Entry{}
	}
	v.Entries = kept
	v.rebuildHash()
}

func (v *Vocab) pinned(idx int) bool {
	return idx == 0 && v.Entries[0].Word == bivec.SentenceBoundary
}

func (v *Vocab) hashWord(word string) uint64 {
	var h uint64
	for i := 0; i < len(word); i++ {
		h = h*257 + uint64(word[i])
	}
	return h % uint64(len(v.hash))
}

func (v *Vocab) insert(word string, idx int) {
	h := v.hashWord(word)
	for v.hash[h] != -1 {
		h = (h + 1) % uint64(len(v.hash))
	}
	v.hash[h] = int32(idx)
}

func (v *Vocab) rebuildHash() {
	for i := range v.hash {
		v.hash[i] = -1
	}
	for i, e := range v.Entries {
		v.insert(e.Word, i)
	}
}

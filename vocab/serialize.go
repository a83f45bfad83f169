package vocab

import (
	"encoding/json"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	serializer.RegisterTypedDeserializer((&Vocab{}).SerializerType(), DeserializeVocab)
}

// DeserializeVocab deserializes a Vocab.
//
// Huffman codes are not stored; call BuildHuffman again
// if they are needed.
func DeserializeVocab(d []byte) (*Vocab, error) {
	var wordData serializer.Bytes
	var counts []int
	var trainWords, fileSize, hashSize int
	err := serializer.DeserializeAny(d, &wordData, &counts, &trainWords, &fileSize, &hashSize)
	if err != nil {
		return nil, essentials.AddCtx("deserialize Vocab", err)
	}
	var words []string
	if err := json.Unmarshal(wordData, &words); err != nil {
		return nil, essentials.AddCtx("deserialize Vocab", err)
	}
	if len(words) != len(counts) || len(words) == 0 {
		return nil, essentials.AddCtx("deserialize Vocab", ErrTooSmall)
	}
	v := &Vocab{
		Entries:    make([]Entry, len(words)),
		TrainWords: int64(trainWords),
		FileSize:   int64(fileSize),
		hash:       make([]int32, hashSize),
		minReduce:  1,
	}
	for i, w := range words {
		v.Entries[i] = Entry{Word: w, Count: int64(counts[i])}
	}
	v.rebuildHash()
	return v, nil
}

// SerializerType returns the unique ID used to serialize
// a Vocab with the serializer package.
func (v *Vocab) SerializerType() string {
	return "github.com/lmthang/bivec/vocab.Vocab"
}

// Serialize serializes the words and counts.
func (v *Vocab) Serialize() ([]byte, error) {
	wordData, err := json.Marshal(v.Words())
	if err != nil {
		return nil, err
	}
	counts := make([]int, len(v.Entries))
	for i, e := range v.Entries {
		counts[i] = int(e.Count)
	}
	return serializer.SerializeAny(
		serializer.Bytes(wordData),
		counts,
		int(v.TrainWords),
		int(v.FileSize),
		len(v.hash),
	)
}

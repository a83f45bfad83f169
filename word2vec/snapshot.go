package word2vec

import (
	"fmt"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	serializer.RegisterTypedDeserializer((&Snapshot{}).SerializerType(),
		DeserializeSnapshot)
}

// A Snapshot saves the models of a training run between
// epochs, so that training can resume later.
type Snapshot struct {
	// NextIter is the first epoch not yet trained.
	NextIter int

	// Models holds the source model, then the target
	// model if there is one.
	Models []*LanguageModel
}

// DeserializeSnapshot deserializes a Snapshot.
func DeserializeSnapshot(d []byte) (snap *Snapshot, err error) {
	defer essentials.AddCtxTo("deserialize Snapshot", &err)
	var res Snapshot
	var modelData serializer.Bytes
	if err := serializer.DeserializeAny(d, &res.NextIter, &modelData); err != nil {
		return nil, err
	}
	models, err := serializer.DeserializeSlice(modelData)
	if err != nil {
		return nil, err
	}
	for _, m := range models {
		if obj, ok := m.(*LanguageModel); ok {
			res.Models = append(res.Models, obj)
		} else {
			return nil, fmt.Errorf("unexpected type: %T", m)
		}
	}
	return &res, nil
}

// LoadSnapshot reads a Snapshot from a file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, essentials.AddCtx("load snapshot", err)
	}
	var res *Snapshot
	if err := serializer.DeserializeAny(data, &res); err != nil {
		return nil, essentials.AddCtx("load snapshot", err)
	}
	return res, nil
}

// Save writes the Snapshot to a file.
func (s *Snapshot) Save(path string) error {
	data, err := serializer.SerializeAny(s)
	if err != nil {
		return essentials.AddCtx("save snapshot", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return essentials.AddCtx("save snapshot", err)
	}
	return nil
}

// SerializerType returns the unique ID used to serialize
// a Snapshot with the serializer package.
func (s *Snapshot) SerializerType() string {
	return "github.com/lmthang/bivec/word2vec.Snapshot"
}

// Serialize serializes the Snapshot.
func (s *Snapshot) Serialize() ([]byte, error) {
	var models []serializer.Serializer
	for _, m := range s.Models {
		models = append(models, m)
	}
	modelData, err := serializer.SerializeSlice(models)
	if err != nil {
		return nil, err
	}
	return serializer.SerializeAny(s.NextIter, serializer.Bytes(modelData))
}

// Snapshot captures the trainer's models, to resume at
// epoch nextIter.
// The models are shared, not copied.
func (t *Trainer) Snapshot(nextIter int) *Snapshot {
	return &Snapshot{NextIter: nextIter, Models: t.Models()}
}

// Restore makes the trainer continue from a Snapshot.
// It must be called before Prepare.
func (t *Trainer) Restore(s *Snapshot) error {
	if len(s.Models) == 0 || len(s.Models) > 2 {
		return fmt.Errorf("restore: unexpected model count %d", len(s.Models))
	}
	if (len(s.Models) == 2) != t.Config.Bilingual() {
		return fmt.Errorf("restore: snapshot has %d models", len(s.Models))
	}
	if s.NextIter > t.Config.Iters {
		return fmt.Errorf("restore: snapshot is at epoch %d of %d", s.NextIter,
			t.Config.Iters)
	}
	t.Src = s.Models[0]
	if len(s.Models) == 2 {
		t.Tgt = s.Models[1]
	}
	t.Config.StartIter = s.NextIter
	return nil
}

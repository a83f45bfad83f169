package vecio

import (
	"bufio"
	"os"
	"strings"

	"github.com/kshedden/gonpy"
	"github.com/pkg/errors"
)

// WordsSuffix is appended to a numpy file name to get
// the name of its word list.
const WordsSuffix = ".words"

func writeNpy(path string, v *Vectors) error {
	if err := v.check(); err != nil {
		return err
	}
	wtr, err := gonpy.NewFileWriter(path)
	if err != nil {
		return errors.Wrap(err, "write npy")
	}
	wtr.Shape = []int{len(v.Words), v.Dim}
	wtr.Version = 2
	if err := wtr.WriteFloat32(v.Data); err != nil {
		return errors.Wrap(err, "write npy")
	}
	words := strings.Join(v.Words, "\n") + "\n"
	return errors.Wrap(os.WriteFile(path+WordsSuffix, []byte(words), 0644), "write npy words")
}

func readNpy(path string) (*Vectors, error) {
	rdr, err := gonpy.NewFileReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "read npy")
	}
	if len(rdr.Shape) != 2 {
		return nil, errors.Errorf("read npy: expected a matrix but got shape %v", rdr.Shape)
	}
	data, err := rdr.GetFloat32()
	if err != nil {
		return nil, errors.Wrap(err, "read npy")
	}

	f, err := os.Open(path + WordsSuffix)
	if err != nil {
		return nil, errors.Wrap(err, "read npy words")
	}
	defer f.Close()
	res := &Vectors{Dim: rdr.Shape[1], Data: data}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		res.Words = append(res.Words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read npy words")
	}
	if len(res.Words) != rdr.Shape[0] {
		return nil, errors.Errorf("read npy: %d words for %d rows", len(res.Words), rdr.Shape[0])
	}
	return res, nil
}

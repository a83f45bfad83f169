package vocab

import (
	"io"
	"os"

	"github.com/lmthang/bivec"
	"github.com/unixpickle/essentials"
)

// LearnFromFile counts every token of a corpus file.
// It also records the file size.
//
// The vocabulary is not finalized; call Finalize before
// training with it.
func (v *Vocab) LearnFromFile(path string) (err error) {
	defer essentials.AddCtxTo("learn vocabulary", &err)
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	v.FileSize = info.Size()
	return v.learn(f)
}

// LearnFrom counts every token of a corpus stream.
//
// Each token, including sentence boundaries, adds one to
// TrainWords.
func (v *Vocab) LearnFrom(r io.Reader) error {
	if err := v.learn(r); err != nil {
		return essentials.AddCtx("learn vocabulary", err)
	}
	return nil
}

func (v *Vocab) learn(r io.Reader) error {
	tokens := bivec.NewTokenReader(r)
	for {
		tok, err := tokens.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		v.TrainWords++
		if err := v.Observe(tok); err != nil {
			return err
		}
	}
}

// CountWords counts the tokens of a corpus file,
// including sentence boundaries and unknown words.
func CountWords(path string) (n int64, err error) {
	defer essentials.AddCtxTo("count words", &err)
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return CountTokens(f)
}

// CountTokens is like CountWords for a stream.
func CountTokens(r io.Reader) (n int64, err error) {
	tokens := bivec.NewTokenReader(r)
	for {
		_, err := tokens.Next()
		if err == io.EOF {
			return n, nil
		} else if err != nil {
			return 0, err
		}
		n++
	}
}

package vocab

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/unixpickle/essentials"
)

// WriteTo writes one "word count" line per entry, in
// index order.
func (v *Vocab) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, e := range v.Entries {
		n, err := fmt.Fprintf(bw, "%s %d\n", e.Word, e.Count)
		total += int64(n)
		if err != nil {
			return total, essentials.AddCtx("write vocabulary", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return total, essentials.AddCtx("write vocabulary", err)
	}
	return total, nil
}

// WriteFile saves the vocabulary to a file.
func (v *Vocab) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return essentials.AddCtx("write vocabulary", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = essentials.AddCtx("write vocabulary", closeErr)
		}
	}()
	_, err = v.WriteTo(f)
	return err
}

// ReadFile loads a vocabulary saved with WriteFile.
//
// The words keep the order of the file; call Finalize to
// sort them and apply a minimum count.
func ReadFile(path string, hashSize int) (v *Vocab, err error) {
	defer essentials.AddCtxTo("read vocabulary", &err)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f, hashSize)
}

// Read loads a vocabulary from a stream of "word count"
// lines.
func Read(r io.Reader, hashSize int) (*Vocab, error) {
	v, err := read(r, hashSize)
	if err != nil {
		return nil, essentials.AddCtx("read vocabulary", err)
	}
	return v, nil
}

func read(r io.Reader, hashSize int) (*Vocab, error) {
	v := New(hashSize)
	scanner := bufio.NewScanner(r)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected word and count", lineNum)
		}
		count, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", lineNum, err)
		}
		word := fields[0]
		idx := v.Lookup(word)
		if idx == NotFound {
			idx, err = v.AddWord(word)
			if err != nil {
				return nil, err
			}
		}
		v.Entries[idx].Count += count
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	v.TrainWords = 0
	for _, e := range v.Entries {
		v.TrainWords += e.Count
	}
	return v, nil
}

// Package vecio reads and writes word vector files.
//
// Text and binary files start with a "count dim" header
// line and hold one vector per word.
// A text row is "word v1 v2 ... vn"; a binary row is the
// word, a space, and n little-endian float32 values.
// Numpy files hold the matrix alone, with the words in a
// companion file.
package vecio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Headers are not trusted for more than this much
// preallocated space; larger files grow as rows are read.
const (
	maxPreallocRows   = 1 << 16
	maxPreallocValues = 1 << 22
)

// Format selects a vector file encoding.
type Format int

const (
	Text Format = iota
	Binary
	Npy
)

// ParseFormat parses "text", "binary", or "npy".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "txt":
		return Text, nil
	case "binary", "bin":
		return Binary, nil
	case "npy":
		return Npy, nil
	}
	return 0, errors.Errorf("unknown vector format: %s", s)
}

// Vectors is a matrix of word vectors, one row per word.
type Vectors struct {
	Words []string
	Dim   int
	Data  []float32
}

// Row returns the vector of word i.
func (v *Vectors) Row(i int) []float32 {
	return v.Data[i*v.Dim : (i+1)*v.Dim]
}

func (v *Vectors) check() error {
	if v.Dim < 1 || len(v.Data) != len(v.Words)*v.Dim {
		return errors.Errorf("matrix of %d values does not fit %d words of dimension %d",
			len(v.Data), len(v.Words), v.Dim)
	}
	return nil
}

// Write encodes the vectors as text or binary.
func Write(w io.Writer, v *Vectors, format Format) error {
	if err := v.check(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(v.Words), v.Dim)
	var buf [4]byte
	for i, word := range v.Words {
		bw.WriteString(word)
		switch format {
		case Text:
			for _, x := range v.Row(i) {
				bw.WriteByte(' ')
				bw.WriteString(strconv.FormatFloat(float64(x), 'g', -1, 32))
			}
		case Binary:
			bw.WriteByte(' ')
			for _, x := range v.Row(i) {
				binary.LittleEndian.PutUint32(buf[:], math.Float32bits(x))
				bw.Write(buf[:])
			}
		default:
			return errors.Errorf("format %d cannot be streamed", format)
		}
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "write vectors")
}

// Read decodes text or binary vectors.
func Read(r io.Reader, format Format) (*Vectors, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil {
		return nil, errors.Wrap(err, "read vector header")
	}
	var count int
	res := &Vectors{}
	if _, err := fmt.Sscanf(header, "%d %d", &count, &res.Dim); err != nil {
		return nil, errors.Wrap(err, "parse vector header")
	}
	if count < 0 || res.Dim < 1 {
		return nil, errors.Errorf("invalid vector header: %q", strings.TrimSpace(header))
	}
	rows := count
	if rows > maxPreallocRows {
		rows = maxPreallocRows
	}
	values := maxPreallocValues
	if rows == 0 || res.Dim <= maxPreallocValues/rows {
		values = rows * res.Dim
	}
	res.Words = make([]string, 0, rows)
	res.Data = make([]float32, 0, values)
	for i := 0; i < count; i++ {
		switch format {
		case Text:
			err = readTextRow(br, res)
		case Binary:
			err = readBinaryRow(br, res)
		default:
			err = errors.Errorf("format %d cannot be streamed", format)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read vector %d", i)
		}
	}
	return res, nil
}

func readTextRow(r *bufio.Reader, v *Vectors) error {
	line, err := r.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return err
	}
	fields := strings.Fields(line)
	if len(fields) != v.Dim+1 {
		return errors.Errorf("expected %d fields but got %d", v.Dim+1, len(fields))
	}
	v.Words = append(v.Words, fields[0])
	for _, f := range fields[1:] {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return err
		}
		v.Data = append(v.Data, float32(x))
	}
	return nil
}

func readBinaryRow(r *bufio.Reader, v *Vectors) error {
	word, err := r.ReadString(' ')
	if err != nil {
		return err
	}
	word = strings.TrimLeft(word[:len(word)-1], "\n")
	buf := make([]byte, 4*v.Dim)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	v.Words = append(v.Words, word)
	for i := 0; i < v.Dim; i++ {
		v.Data = append(v.Data, math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])))
	}
	return nil
}

// WriteFile saves the vectors to path.
//
// For Npy, the matrix goes to path and the words, one
// per line, to path+".words".
func WriteFile(path string, v *Vectors, format Format) (err error) {
	if format == Npy {
		return writeNpy(path, v)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "write vectors")
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "write vectors")
		}
	}()
	return Write(f, v, format)
}

// ReadFile loads vectors saved with WriteFile.
func ReadFile(path string, format Format) (*Vectors, error) {
	if format == Npy {
		return readNpy(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "read vectors")
	}
	defer f.Close()
	return Read(f, format)
}

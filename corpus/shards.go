// Package corpus splits corpus files into per-thread
// shards and parses word alignments.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/unixpickle/essentials"
)

// Shards divides a file into contiguous byte ranges, one
// per worker, on line boundaries.
//
// Shard i covers [Offsets[i], Offsets[i+1]).
type Shards struct {
	Path    string
	Offsets []int64
	Lines   int64
	Size    int64
}

// ComputeShards splits the file at path into n shards of
// ceil(lines/n) lines each.
// When the file has fewer than n lines, the trailing
// shards are empty.
func ComputeShards(path string, n int) (*Shards, error) {
	return ComputeShardsLimit(path, n, 0)
}

// ComputeShardsLimit is like ComputeShards, but only the
// first maxLines lines of the file are sharded.
// A maxLines of zero or less uses the whole file.
func ComputeShardsLimit(path string, n int, maxLines int64) (s *Shards, err error) {
	defer essentials.AddCtxTo("compute shards", &err)
	if n < 1 {
		return nil, fmt.Errorf("invalid shard count: %d", n)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, size, err := countLines(f)
	if err != nil {
		return nil, err
	}
	if maxLines > 0 && lines > maxLines {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		if size, err = lineOffset(f, maxLines); err != nil {
			return nil, err
		}
		lines = maxLines
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	s = &Shards{Path: path, Lines: lines, Size: size, Offsets: []int64{0}}
	blockSize := (lines-1)/int64(n) + 1
	if blockSize < 1 {
		blockSize = 1
	}
	r := bufio.NewReader(f)
	var offset, lineCount int64
	for len(s.Offsets) < n && offset < size {
		line, err := r.ReadSlice('\n')
		offset += int64(len(line))
		if err == bufio.ErrBufferFull {
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		lineCount++
		if lineCount%blockSize == 0 {
			s.Offsets = append(s.Offsets, offset)
		}
	}
	for len(s.Offsets) < n+1 {
		s.Offsets = append(s.Offsets, size)
	}
	s.Offsets[n] = size
	return s, nil
}

// Len returns the number of shards.
func (s *Shards) Len() int {
	return len(s.Offsets) - 1
}

// Section returns a reader for shard i of a file opened
// from s.Path.
func (s *Shards) Section(r io.ReaderAt, i int) *io.SectionReader {
	return io.NewSectionReader(r, s.Offsets[i], s.Offsets[i+1]-s.Offsets[i])
}

// CheckParallel makes sure that sharded parallel files
// have the same number of lines.
func CheckParallel(shards ...*Shards) error {
	for _, s := range shards[1:] {
		if s.Lines != shards[0].Lines {
			return fmt.Errorf("%w: %s has %d lines but %s has %d", ErrLineMismatch,
				shards[0].Path, shards[0].Lines, s.Path, s.Lines)
		}
	}
	return nil
}

// countLines counts newline-terminated lines, plus a
// final line without a newline.
func countLines(r io.Reader) (lines, size int64, err error) {
	br := bufio.NewReader(r)
	var last byte
	buf := make([]byte, 1<<16)
	for {
		n, err := br.Read(buf)
		for _, b := range buf[:n] {
			if b == '\n' {
				lines++
			}
		}
		if n > 0 {
			last = buf[n-1]
		}
		size += int64(n)
		if err == io.EOF {
			break
		} else if err != nil {
			return 0, 0, err
		}
	}
	if size > 0 && last != '\n' {
		lines++
	}
	return lines, size, nil
}

// lineOffset returns the offset just past the first
// lines lines of r.
func lineOffset(r io.Reader, lines int64) (int64, error) {
	br := bufio.NewReader(r)
	var offset int64
	for lines > 0 {
		line, err := br.ReadSlice('\n')
		offset += int64(len(line))
		if err == bufio.ErrBufferFull {
			continue
		} else if err != nil {
			return offset, err
		}
		lines--
	}
	return offset, nil
}

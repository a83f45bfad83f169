package bivec

import (
	"bufio"
	"io"
)

// SentenceBoundary is the token reported for every line
// break in a corpus.
const SentenceBoundary = "</s>"

// MaxTokenLen is the maximum number of bytes in a token.
// Longer tokens are truncated.
const MaxTokenLen = 100

// A TokenReader splits a corpus stream into tokens.
//
// Tokens are separated by spaces, tabs, and newlines.
// Carriage returns are dropped.
// Each newline is reported as SentenceBoundary, so that
// one line of a corpus is one sentence.
type TokenReader struct {
	r   *bufio.Reader
	buf []byte
}

// NewTokenReader creates a TokenReader for the stream.
func NewTokenReader(r io.Reader) *TokenReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &TokenReader{r: br}
}

// Next reads the next token.
//
// A token which ends at the end of the stream is returned
// normally; the following call returns io.EOF.
func (t *TokenReader) Next() (string, error) {
	t.buf = t.buf[:0]
	for {
		ch, err := t.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(t.buf) > 0 {
				return string(t.buf), nil
			}
			return "", err
		}
		switch ch {
		case '\r':
			continue
		case ' ', '\t', '\n':
			if len(t.buf) > 0 {
				if ch == '\n' {
					// Report the boundary on the next call.
					t.r.UnreadByte()
				}
				return string(t.buf), nil
			}
			if ch == '\n' {
				return SentenceBoundary, nil
			}
			continue
		}
		if len(t.buf) < MaxTokenLen {
			t.buf = append(t.buf, ch)
		}
	}
}

// Sentence reads tokens up to the next sentence boundary.
// The boundary itself is not included.
//
// If the stream ends, the remaining tokens are returned
// along with io.EOF.
func (t *TokenReader) Sentence() ([]string, error) {
	var res []string
	for {
		tok, err := t.Next()
		if err != nil {
			return res, err
		}
		if tok == SentenceBoundary {
			return res, nil
		}
		res = append(res, tok)
	}
}

package vocab

import "errors"

var (
	// ErrFull is returned when a word cannot be added
	// because the hash index has no free slot.
	ErrFull = errors.New("vocabulary hash table is full")

	// ErrCodeTooLong is returned when a Huffman code
	// exceeds MaxCodeLength.
	ErrCodeTooLong = errors.New("huffman code exceeds maximum length")

	// ErrTooSmall is returned when a Huffman tree is
	// requested for fewer than two words.
	ErrTooSmall = errors.New("vocabulary needs at least two words")
)

package tokenizer

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxWordLengthTooSmall is returned at construction when the
	// configured word length cannot hold the BOW/EOW delimiters plus at
	// least one byte of content.
	ErrMaxWordLengthTooSmall = errors.New("max word length must be at least 3")

	// ErrLengthMismatch is returned by decode when the character id
	// sequence does not have exactly MaxWordLength entries.
	ErrLengthMismatch = errors.New("character id sequence has wrong length")

	// ErrInvalidByteSequence is returned by decode when the filtered
	// character ids are not a valid UTF-8 byte sequence.
	ErrInvalidByteSequence = errors.New("character ids do not decode to valid utf-8")
)

// ItemError attributes a failure to a single element of a batch operation.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

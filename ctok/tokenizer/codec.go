package tokenizer

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Character id layout before the +1 shift applied on encode:
// 0-255 are raw UTF-8 byte values, the rest are reserved markers.
const (
	clsCharacterID  = 256
	sepCharacterID  = 257
	bowCharacterID  = 258
	eowCharacterID  = 259
	padCharacterID  = 260
	maskCharacterID = 261
)

// MinWordLength is the smallest usable word length: BOW + one byte + EOW.
const MinWordLength = 3

// CharacterIDs is one token rendered as a fixed-width sequence of character
// ids, ready to be consumed by a character-aware model. Every entry is in
// [0, 262] after the shift; the all-zero sequence is the sequence-level pad.
type CharacterIDs []int64

// Special tags the structural tokens that have fixed character id sequences.
type Special int

const (
	SpecialNone Special = iota
	SpecialCLS
	SpecialSEP
	SpecialPAD
	SpecialMASK
)

// Token is either an ordinary word (Special == SpecialNone) or one of the
// structural special tokens. Dispatching on the tag once at the call
// boundary avoids repeated string comparisons against configurable special
// token text deeper in the encode path.
type Token struct {
	Text    string
	Special Special
}

// Word wraps an ordinary word token.
func Word(text string) Token { return Token{Text: text} }

// Codec maps tokens to and from fixed-width character id sequences. The
// special sequences are derived once at construction and never mutated, so
// a Codec is safe for concurrent use.
type Codec struct {
	maxWordLength int

	cls  CharacterIDs
	sep  CharacterIDs
	mask CharacterIDs
	pad  CharacterIDs // all zeros, defined post-shift
}

// NewCodec builds a codec producing sequences of exactly maxWordLength ids.
func NewCodec(maxWordLength int) (*Codec, error) {
	if maxWordLength < MinWordLength {
		return nil, fmt.Errorf("%w: got %d", ErrMaxWordLengthTooSmall, maxWordLength)
	}
	c := &Codec{maxWordLength: maxWordLength}
	c.cls = c.specialCharacterIDs(clsCharacterID)
	c.sep = c.specialCharacterIDs(sepCharacterID)
	c.mask = c.specialCharacterIDs(maskCharacterID)
	c.pad = make(CharacterIDs, maxWordLength)
	return c, nil
}

// MaxWordLength returns the fixed width of every produced sequence.
func (c *Codec) MaxWordLength() int { return c.maxWordLength }

// specialCharacterIDs builds the fixed sequence for a marker identity:
// BOW, marker, EOW, intra-word padding, then the uniform +1 shift.
func (c *Codec) specialCharacterIDs(marker int64) CharacterIDs {
	ids := make(CharacterIDs, c.maxWordLength)
	for i := range ids {
		ids[i] = padCharacterID
	}
	ids[0] = bowCharacterID
	ids[1] = marker
	ids[2] = eowCharacterID
	for i := range ids {
		ids[i]++
	}
	return ids
}

// Encode maps a token to its character id sequence. The boolean reports
// whether an ordinary token was truncated to fit maxWordLength-2 bytes.
func (c *Codec) Encode(tok Token) (CharacterIDs, bool) {
	switch tok.Special {
	case SpecialCLS:
		return slices.Clone(c.cls), false
	case SpecialSEP:
		return slices.Clone(c.sep), false
	case SpecialMASK:
		return slices.Clone(c.mask), false
	case SpecialPAD:
		return slices.Clone(c.pad), false
	}
	return c.encodeWord(tok.Text)
}

func (c *Codec) encodeWord(word string) (CharacterIDs, bool) {
	raw := validUTF8Bytes(word)
	truncated := len(raw) > c.maxWordLength-2
	if truncated {
		raw = raw[:c.maxWordLength-2]
	}

	ids := make(CharacterIDs, c.maxWordLength)
	for i := range ids {
		ids[i] = padCharacterID
	}
	ids[0] = bowCharacterID
	for i, b := range raw {
		ids[i+1] = int64(b)
	}
	ids[len(raw)+1] = eowCharacterID

	// Shift everything so that the all-zero vector stays reserved for the
	// sequence-level PAD token.
	for i := range ids {
		ids[i]++
	}
	return ids, truncated
}

// Decode reverses Encode. Special sequences come back as their tag, anything
// else is unshifted, stripped of BOW/EOW/intra-word padding and decoded as
// UTF-8 bytes.
func (c *Codec) Decode(ids CharacterIDs) (Token, error) {
	if len(ids) != c.maxWordLength {
		return Token{}, fmt.Errorf("%w: got %d ids, want %d", ErrLengthMismatch, len(ids), c.maxWordLength)
	}

	switch {
	case slices.Equal(ids, c.pad):
		return Token{Special: SpecialPAD}, nil
	case slices.Equal(ids, c.cls):
		return Token{Special: SpecialCLS}, nil
	case slices.Equal(ids, c.sep):
		return Token{Special: SpecialSEP}, nil
	case slices.Equal(ids, c.mask):
		return Token{Special: SpecialMASK}, nil
	}

	raw := make([]byte, 0, c.maxWordLength)
	for _, id := range ids {
		v := id - 1
		if v == bowCharacterID || v == eowCharacterID || v == padCharacterID {
			continue
		}
		if v < 0 || v > 255 {
			return Token{}, fmt.Errorf("%w: id %d out of byte range", ErrInvalidByteSequence, id)
		}
		raw = append(raw, byte(v))
	}
	if !utf8.Valid(raw) {
		return Token{}, fmt.Errorf("%w: % x", ErrInvalidByteSequence, raw)
	}
	return Word(string(raw)), nil
}

// IsSpecial reports whether a sequence is one of the four special sequences.
func (c *Codec) IsSpecial(ids CharacterIDs) bool {
	return slices.Equal(ids, c.pad) ||
		slices.Equal(ids, c.cls) ||
		slices.Equal(ids, c.sep) ||
		slices.Equal(ids, c.mask)
}

// validUTF8Bytes returns the UTF-8 encoding of s with invalid sequences
// dropped rather than replaced.
func validUTF8Bytes(s string) []byte {
	if utf8.ValidString(s) {
		return []byte(s)
	}
	buf := make([]byte, 0, len(s))
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size <= 1 {
				continue
			}
		}
		buf = utf8.AppendRune(buf, r)
	}
	return buf
}

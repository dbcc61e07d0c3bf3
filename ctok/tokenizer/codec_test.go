package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"ConstructionRejectsShortWordLength", testCodecConstructionRejectsShortWordLength},
		{"EncodeKnownWord", testCodecEncodeKnownWord},
		{"RoundTrip", testCodecRoundTrip},
		{"SpecialSequencesAreFixedPoints", testCodecSpecialSequencesAreFixedPoints},
		{"SpecialSequencesAreDisjoint", testCodecSpecialSequencesAreDisjoint},
		{"LengthInvariant", testCodecLengthInvariant},
		{"Truncation", testCodecTruncation},
		{"DecodeErrors", testCodecDecodeErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func testCodecConstructionRejectsShortWordLength(t *testing.T) {
	for _, n := range []int{-1, 0, 1, 2} {
		c, err := NewCodec(n)
		assert.ErrorIs(t, err, ErrMaxWordLengthTooSmall, "max word length %d", n)
		assert.Nil(t, c)
	}

	c, err := NewCodec(3)
	require.NoError(t, err)
	assert.Equal(t, 3, c.MaxWordLength())
}

func testCodecEncodeKnownWord(t *testing.T) {
	c, err := NewCodec(8)
	require.NoError(t, err)

	// "hi" is bytes [104 105]: BOW, bytes, EOW, intra-word padding, then
	// every value shifted by one.
	ids, truncated := c.Encode(Word("hi"))
	assert.False(t, truncated)
	assert.Equal(t, CharacterIDs{259, 105, 106, 260, 261, 261, 261, 261}, ids)
}

func testCodecRoundTrip(t *testing.T) {
	c, err := NewCodec(10)
	require.NoError(t, err)

	words := []string{"a", "hi", "hello", "ccc", "中", "øre", "1234"}
	for _, word := range words {
		ids, truncated := c.Encode(Word(word))
		require.False(t, truncated, "word %q should fit", word)

		tok, err := c.Decode(ids)
		require.NoError(t, err, "word %q", word)
		assert.Equal(t, Word(word), tok)
	}
}

func testCodecSpecialSequencesAreFixedPoints(t *testing.T) {
	c, err := NewCodec(6)
	require.NoError(t, err)

	for _, sp := range []Special{SpecialCLS, SpecialSEP, SpecialPAD, SpecialMASK} {
		first, _ := c.Encode(Token{Special: sp})
		second, _ := c.Encode(Token{Special: sp})
		assert.Equal(t, first, second, "special %v must encode identically across calls", sp)

		tok, err := c.Decode(first)
		require.NoError(t, err)
		assert.Equal(t, Token{Special: sp}, tok)
	}

	// PAD is the all-zero sequence, defined post-shift.
	pad, _ := c.Encode(Token{Special: SpecialPAD})
	assert.Equal(t, CharacterIDs{0, 0, 0, 0, 0, 0}, pad)
}

func testCodecSpecialSequencesAreDisjoint(t *testing.T) {
	c, err := NewCodec(5)
	require.NoError(t, err)

	seen := map[string]Special{}
	for _, sp := range []Special{SpecialCLS, SpecialSEP, SpecialPAD, SpecialMASK} {
		ids, _ := c.Encode(Token{Special: sp})
		key := idsKey(ids)
		prev, dup := seen[key]
		assert.False(t, dup, "special %v collides with %v", sp, prev)
		seen[key] = sp
	}

	ordinary, _ := c.Encode(Word("a"))
	_, collides := seen[idsKey(ordinary)]
	assert.False(t, collides, "ordinary token must not collide with special sequences")
}

func testCodecLengthInvariant(t *testing.T) {
	for _, n := range []int{3, 8, 50} {
		c, err := NewCodec(n)
		require.NoError(t, err)

		for _, tok := range []Token{Word(""), Word("x"), Word("a longer token"), {Special: SpecialCLS}, {Special: SpecialPAD}} {
			ids, _ := c.Encode(tok)
			assert.Len(t, ids, n, "token %+v with max word length %d", tok, n)
		}
	}
}

func testCodecTruncation(t *testing.T) {
	c, err := NewCodec(8)
	require.NoError(t, err)

	long := strings.Repeat("ab", 10)
	ids, truncated := c.Encode(Word(long))
	assert.True(t, truncated)
	assert.Len(t, ids, 8)

	// Truncation is lossy: decoding yields the surviving prefix only.
	tok, err := c.Decode(ids)
	require.NoError(t, err)
	assert.Equal(t, 6, len(tok.Text), "six bytes of content fit next to BOW/EOW")

	// A word that exactly fills the sequence is not truncated.
	ids, truncated = c.Encode(Word("sixsix"))
	assert.False(t, truncated)
	tok, err = c.Decode(ids)
	require.NoError(t, err)
	assert.Equal(t, "sixsix", tok.Text)
}

func testCodecDecodeErrors(t *testing.T) {
	c, err := NewCodec(8)
	require.NoError(t, err)

	_, err = c.Decode(CharacterIDs{1, 2, 3})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = c.Decode(make(CharacterIDs, 9))
	assert.ErrorIs(t, err, ErrLengthMismatch)

	// 0xC3 alone is a dangling UTF-8 continuation start.
	bad, _ := c.Encode(Word("é"))
	bad[2] = 261 // overwrite the second byte with intra-word padding
	_, err = c.Decode(bad)
	assert.ErrorIs(t, err, ErrInvalidByteSequence)
}

func idsKey(ids CharacterIDs) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteRune(rune(id))
		b.WriteByte(',')
	}
	return b.String()
}

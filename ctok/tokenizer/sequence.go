package tokenizer

// Sequence assembly: concatenates already-encoded token sequences with the
// structural special tokens and derives the aligned type id and special
// token mask arrays. Single sequences become [CLS] A [SEP], pairs become
// [CLS] A [SEP] B [SEP].

// BuildInputsWithSpecialTokens concatenates one or two encoded sequences
// with CLS/SEP sequences. seqB may be nil.
func (t *CharacterTokenizer) BuildInputsWithSpecialTokens(seqA, seqB []CharacterIDs) []CharacterIDs {
	cls, _ := t.codec.Encode(Token{Special: SpecialCLS})
	sep, _ := t.codec.Encode(Token{Special: SpecialSEP})

	out := make([]CharacterIDs, 0, len(seqA)+len(seqB)+3)
	out = append(out, cls)
	out = append(out, seqA...)
	out = append(out, sep)
	if seqB != nil {
		out = append(out, seqB...)
		sep2, _ := t.codec.Encode(Token{Special: SpecialSEP})
		out = append(out, sep2)
	}
	return out
}

// CreateTokenTypeIDs builds the segment membership array matching the shape
// of BuildInputsWithSpecialTokens: zeros for CLS+seqA+SEP, ones for
// seqB+SEP when a pair is given.
func (t *CharacterTokenizer) CreateTokenTypeIDs(seqA, seqB []CharacterIDs) []int64 {
	firstLen := len(seqA) + 2
	if seqB == nil {
		return make([]int64, firstLen)
	}
	out := make([]int64, firstLen+len(seqB)+1)
	for i := firstLen; i < len(out); i++ {
		out[i] = 1
	}
	return out
}

// SpecialTokensMask marks CLS/SEP positions with 1 in an array matching the
// shape of BuildInputsWithSpecialTokens. When alreadyHasSpecialTokens is
// set the caller asserts the sequences carry their special tokens already;
// positions are then recovered by scanning for the special sequences
// instead of being recomputed from the assembly layout.
func (t *CharacterTokenizer) SpecialTokensMask(seqA, seqB []CharacterIDs, alreadyHasSpecialTokens bool) []int64 {
	if alreadyHasSpecialTokens {
		out := make([]int64, 0, len(seqA)+len(seqB))
		for _, ids := range seqA {
			out = append(out, boolToID(t.codec.IsSpecial(ids)))
		}
		for _, ids := range seqB {
			out = append(out, boolToID(t.codec.IsSpecial(ids)))
		}
		return out
	}

	out := make([]int64, 0, len(seqA)+len(seqB)+3)
	out = append(out, 1)
	out = append(out, make([]int64, len(seqA))...)
	out = append(out, 1)
	if seqB != nil {
		out = append(out, make([]int64, len(seqB))...)
		out = append(out, 1)
	}
	return out
}

func boolToID(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Package tokenizer converts raw text into fixed-width sequences of
// byte-derived character ids suitable as direct input to a character-aware
// language model. There is no subword vocabulary: every token maps to a
// fixed-length array of UTF-8 byte values plus reserved markers.
package tokenizer

import (
	"log/slog"
	"strings"

	internal "github.com/ZanzyTHEbar/character-tokenizer/ctok"
	"github.com/ZanzyTHEbar/character-tokenizer/ctok/vocab"
)

// Config holds the construction parameters of a CharacterTokenizer.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	// MaxWordLength is the fixed number of character ids per token,
	// at least MinWordLength.
	MaxWordLength int
	// DoLowerCase lower cases tokens during basic tokenization.
	DoLowerCase bool
	// DoBasicTokenize enables the full segmentation pipeline; when false
	// the input is only whitespace split.
	DoBasicTokenize bool
	// NeverSplit lists tokens exempt from casing, accent stripping and
	// punctuation splitting.
	NeverSplit []string
	// TokenizeChineseChars isolates CJK ideographs as single tokens.
	TokenizeChineseChars bool
	// StripAccents overrides the accent stripping behaviour. When nil it
	// follows DoLowerCase.
	StripAccents *bool
	// DoSplitOnPunc splits punctuation characters into their own tokens.
	DoSplitOnPunc bool

	UnkToken  string
	SepToken  string
	PadToken  string
	ClsToken  string
	MaskToken string

	// MLMVocabPath optionally points to the auxiliary word vocabulary
	// used by the masked-language-model head.
	MLMVocabPath string
}

// DefaultConfig mirrors the pretrained character-BERT defaults.
func DefaultConfig() Config {
	return Config{
		MaxWordLength:        internal.DefaultMaxWordLength,
		DoLowerCase:          true,
		DoBasicTokenize:      true,
		TokenizeChineseChars: true,
		DoSplitOnPunc:        true,
		UnkToken:             internal.DefaultUnkToken,
		SepToken:             internal.DefaultSepToken,
		PadToken:             internal.DefaultPadToken,
		ClsToken:             internal.DefaultClsToken,
		MaskToken:            internal.DefaultMaskToken,
	}
}

// CharacterTokenizer is the full pipeline: segmentation, character id
// encoding and sequence assembly. Configuration is read-only after New, so
// one instance may be shared across goroutines.
type CharacterTokenizer struct {
	cfg   Config
	basic *BasicTokenizer // nil when DoBasicTokenize is false
	codec *Codec
	mlm   *vocab.MLM // nil when no vocabulary was given
}

// New validates the configuration and derives the special id sequences.
func New(cfg Config) (*CharacterTokenizer, error) {
	codec, err := NewCodec(cfg.MaxWordLength)
	if err != nil {
		return nil, err
	}

	t := &CharacterTokenizer{cfg: cfg, codec: codec}
	if cfg.DoBasicTokenize {
		t.basic = NewBasicTokenizer(
			cfg.DoLowerCase,
			cfg.NeverSplit,
			cfg.TokenizeChineseChars,
			cfg.StripAccents,
			cfg.DoSplitOnPunc,
		)
	}
	if cfg.MLMVocabPath != "" {
		mlm, err := vocab.Load(cfg.MLMVocabPath, cfg.UnkToken)
		if err != nil {
			return nil, err
		}
		t.mlm = mlm
	}
	return t, nil
}

// MaxWordLength returns the fixed width of every character id sequence.
func (t *CharacterTokenizer) MaxWordLength() int { return t.codec.MaxWordLength() }

// DoLowerCase reports whether basic tokenization lower cases input.
func (t *CharacterTokenizer) DoLowerCase() bool {
	return t.basic != nil && t.basic.DoLowerCase()
}

// VocabSize is always zero: there is no token vocabulary, model input is
// built from character ids alone.
func (t *CharacterTokenizer) VocabSize() int { return 0 }

// ClsToken returns the configured classifier token string.
func (t *CharacterTokenizer) ClsToken() string { return t.cfg.ClsToken }

// SepToken returns the configured separator token string.
func (t *CharacterTokenizer) SepToken() string { return t.cfg.SepToken }

// PadToken returns the configured padding token string.
func (t *CharacterTokenizer) PadToken() string { return t.cfg.PadToken }

// MaskToken returns the configured mask token string.
func (t *CharacterTokenizer) MaskToken() string { return t.cfg.MaskToken }

// UnkToken returns the configured unknown token string.
func (t *CharacterTokenizer) UnkToken() string { return t.cfg.UnkToken }

// AllSpecialTokens returns the special token strings that must never be
// split by the segmenter.
func (t *CharacterTokenizer) AllSpecialTokens() []string {
	return []string{t.cfg.UnkToken, t.cfg.SepToken, t.cfg.PadToken, t.cfg.ClsToken, t.cfg.MaskToken}
}

// Tokenize segments text into word-like tokens. Special token strings are
// preserved verbatim.
func (t *CharacterTokenizer) Tokenize(text string) []string {
	if t.basic != nil {
		return t.basic.Tokenize(text, t.AllSpecialTokens()...)
	}
	return whitespaceTokenize(text)
}

// classify resolves configured special token strings to their tag exactly
// once, at the call boundary.
func (t *CharacterTokenizer) classify(token string) Token {
	switch token {
	case t.cfg.ClsToken:
		return Token{Special: SpecialCLS}
	case t.cfg.SepToken:
		return Token{Special: SpecialSEP}
	case t.cfg.PadToken:
		return Token{Special: SpecialPAD}
	case t.cfg.MaskToken:
		return Token{Special: SpecialMASK}
	}
	return Word(token)
}

// EncodeToken converts one token to its character id sequence. Tokens
// longer than MaxWordLength-2 bytes are truncated; that is lossy and only
// logged, not an error.
func (t *CharacterTokenizer) EncodeToken(token string) CharacterIDs {
	ids, truncated := t.codec.Encode(t.classify(token))
	if truncated {
		slog.Warn("token exceeds max word length, truncating",
			"token", token,
			"max_word_length", t.codec.MaxWordLength())
	}
	return ids
}

// DecodeIDs converts a character id sequence back to its token string.
// Special sequences decode to their configured token strings.
func (t *CharacterTokenizer) DecodeIDs(ids CharacterIDs) (string, error) {
	tok, err := t.codec.Decode(ids)
	if err != nil {
		return "", err
	}
	switch tok.Special {
	case SpecialCLS:
		return t.cfg.ClsToken, nil
	case SpecialSEP:
		return t.cfg.SepToken, nil
	case SpecialPAD:
		return t.cfg.PadToken, nil
	case SpecialMASK:
		return t.cfg.MaskToken, nil
	}
	return tok.Text, nil
}

// Encoding is a model-ready rendering of one text or text pair.
type Encoding struct {
	// Tokens are the segmented tokens including the added special tokens.
	Tokens []string
	// InputIDs holds one fixed-width character id sequence per token.
	InputIDs []CharacterIDs
	// TokenTypeIDs marks the first segment with 0 and the second with 1.
	TokenTypeIDs []int64
	// SpecialTokensMask is 1 at CLS/SEP positions and 0 elsewhere.
	SpecialTokensMask []int64
}

// Encode runs the full pipeline on a single text: segment, encode every
// token and assemble [CLS] text [SEP] with its derived arrays.
func (t *CharacterTokenizer) Encode(text string) *Encoding {
	return t.assemble(t.Tokenize(text), nil)
}

// EncodePair assembles [CLS] textA [SEP] textB [SEP].
func (t *CharacterTokenizer) EncodePair(textA, textB string) *Encoding {
	return t.assemble(t.Tokenize(textA), t.Tokenize(textB))
}

func (t *CharacterTokenizer) assemble(tokensA, tokensB []string) *Encoding {
	seqA := t.encodeTokens(tokensA)
	var seqB []CharacterIDs
	if tokensB != nil {
		seqB = t.encodeTokens(tokensB)
	}

	tokens := make([]string, 0, len(tokensA)+len(tokensB)+3)
	tokens = append(tokens, t.cfg.ClsToken)
	tokens = append(tokens, tokensA...)
	tokens = append(tokens, t.cfg.SepToken)
	if tokensB != nil {
		tokens = append(tokens, tokensB...)
		tokens = append(tokens, t.cfg.SepToken)
	}

	return &Encoding{
		Tokens:            tokens,
		InputIDs:          t.BuildInputsWithSpecialTokens(seqA, seqB),
		TokenTypeIDs:      t.CreateTokenTypeIDs(seqA, seqB),
		SpecialTokensMask: t.SpecialTokensMask(seqA, seqB, false),
	}
}

func (t *CharacterTokenizer) encodeTokens(tokens []string) []CharacterIDs {
	out := make([]CharacterIDs, len(tokens))
	for i, tok := range tokens {
		out[i] = t.EncodeToken(tok)
	}
	return out
}

// ConvertTokensToString joins tokens with spaces. The " ##" continuation
// artifact is stripped for interface compatibility with subword tokenizers
// even though this tokenizer never produces it.
func (t *CharacterTokenizer) ConvertTokensToString(tokens []string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.Join(tokens, " "), " ##", ""))
}

// SaveVocabulary is a no-op: there is no conventional token vocabulary to
// persist. Only the auxiliary MLM vocabulary is ever written to disk.
func (t *CharacterTokenizer) SaveVocabulary(saveDirectory, filenamePrefix string) []string {
	slog.Warn("character tokenizer has no token vocabulary, skipping vocab.txt",
		"save_directory", saveDirectory)
	return nil
}

// MLMVocabSize returns the auxiliary word vocabulary size.
func (t *CharacterTokenizer) MLMVocabSize() int { return t.mlm.Size() }

// ConvertMLMTokenToID resolves a word through the MLM vocabulary, falling
// back to the unknown token's index.
func (t *CharacterTokenizer) ConvertMLMTokenToID(token string) int {
	return t.mlm.TokenToID(token)
}

// ConvertMLMIDToToken resolves an MLM vocabulary index to its word.
func (t *CharacterTokenizer) ConvertMLMIDToToken(id int) string {
	if t.mlm == nil {
		return t.cfg.UnkToken
	}
	return t.mlm.IDToToken(id)
}

// SaveMLMVocabulary writes the auxiliary word vocabulary to saveDirectory.
func (t *CharacterTokenizer) SaveMLMVocabulary(saveDirectory, filenamePrefix string) (string, error) {
	if t.mlm == nil {
		slog.Warn("no MLM vocabulary loaded, skipping save", "save_directory", saveDirectory)
		return "", nil
	}
	return t.mlm.Save(saveDirectory, filenamePrefix)
}

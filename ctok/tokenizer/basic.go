package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// BasicTokenizer splits normalized raw text into word-like tokens:
// whitespace tokenization with optional lower casing, accent stripping,
// CJK character isolation and punctuation splitting. Configuration is
// read-only after construction so concurrent use is safe.
type BasicTokenizer struct {
	doLowerCase          bool
	neverSplit           map[string]struct{}
	tokenizeChineseChars bool
	stripAccents         *bool // nil means "follow doLowerCase"
	doSplitOnPunc        bool
}

// NewBasicTokenizer builds a segmenter. stripAccents may be nil, in which
// case accents are stripped whenever doLowerCase is enabled.
func NewBasicTokenizer(doLowerCase bool, neverSplit []string, tokenizeChineseChars bool, stripAccents *bool, doSplitOnPunc bool) *BasicTokenizer {
	never := make(map[string]struct{}, len(neverSplit))
	for _, tok := range neverSplit {
		never[tok] = struct{}{}
	}
	return &BasicTokenizer{
		doLowerCase:          doLowerCase,
		neverSplit:           never,
		tokenizeChineseChars: tokenizeChineseChars,
		stripAccents:         stripAccents,
		doSplitOnPunc:        doSplitOnPunc,
	}
}

// DoLowerCase reports whether tokens are lower cased.
func (b *BasicTokenizer) DoLowerCase() bool { return b.doLowerCase }

// Tokenize segments text into an ordered list of non-empty tokens.
// Additional never-split tokens can be supplied per call; they are merged
// with the configured set.
func (b *BasicTokenizer) Tokenize(text string, never ...string) []string {
	neverSplit := b.neverSplit
	if len(never) > 0 {
		neverSplit = make(map[string]struct{}, len(b.neverSplit)+len(never))
		for tok := range b.neverSplit {
			neverSplit[tok] = struct{}{}
		}
		for _, tok := range never {
			neverSplit[tok] = struct{}{}
		}
	}

	text = cleanText(text)
	if b.tokenizeChineseChars {
		text = isolateCJKChars(text)
	}
	// NFC prevents treating the same character with different code point
	// sequences as different characters.
	text = norm.NFC.String(text)

	var split []string
	for _, token := range strings.Fields(text) {
		if _, keep := neverSplit[token]; !keep {
			if b.doLowerCase {
				token = strings.ToLower(token)
				if b.stripAccents == nil || *b.stripAccents {
					token = stripAccents(token)
				}
			} else if b.stripAccents != nil && *b.stripAccents {
				token = stripAccents(token)
			}
		}
		split = append(split, b.splitOnPunc(token, neverSplit)...)
	}

	return strings.Fields(strings.Join(split, " "))
}

// splitOnPunc emits every punctuation character as its own token and runs
// of non-punctuation characters between them as word tokens.
func (b *BasicTokenizer) splitOnPunc(text string, neverSplit map[string]struct{}) []string {
	if !b.doSplitOnPunc {
		return []string{text}
	}
	if _, keep := neverSplit[text]; keep {
		return []string{text}
	}

	var out []string
	var current strings.Builder
	for _, r := range text {
		if isPunctuation(r) {
			if current.Len() > 0 {
				out = append(out, current.String())
				current.Reset()
			}
			out = append(out, string(r))
			continue
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

// stripAccents applies canonical decomposition and removes all nonspacing
// marks, without recomposing.
func stripAccents(text string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(stripper, text)
	if err != nil {
		return text
	}
	return out
}

// cleanText removes invalid and control characters and maps every
// whitespace character to a plain ASCII space.
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == 0 || r == 0xFFFD || isControl(r) {
			continue
		}
		if isWhitespace(r) {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isolateCJKChars puts spaces around every CJK ideograph so that whitespace
// splitting yields single-character tokens for them.
func isolateCJKChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isCJKChar(r) {
			b.WriteByte(' ')
			b.WriteRune(r)
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isCJKChar reports whether r falls in one of the CJK Unified Ideograph
// blocks. Hangul, Hiragana and Katakana are deliberately excluded: those
// scripts use space-separated words and need no isolation.
func isCJKChar(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF,
		r >= 0x3400 && r <= 0x4DBF,
		r >= 0x20000 && r <= 0x2A6DF,
		r >= 0x2A700 && r <= 0x2B73F,
		r >= 0x2B740 && r <= 0x2B81F,
		r >= 0x2B820 && r <= 0x2CEAF,
		r >= 0xF900 && r <= 0xFAFF,
		r >= 0x2F800 && r <= 0x2FA1F:
		return true
	}
	return false
}

// isWhitespace treats \t, \n and \r as whitespace even though Unicode
// classifies them as control characters.
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// isControl excludes \t, \n and \r, which are handled as whitespace.
func isControl(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	return unicode.In(r, unicode.Cc, unicode.Cf, unicode.Co, unicode.Cs)
}

// isPunctuation treats all non-alphanumeric ASCII characters as punctuation
// (so characters like "^", "$" and "`" split words even though Unicode does
// not class them as punctuation), plus everything in the Unicode P classes.
func isPunctuation(r rune) bool {
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) || (r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}

// whitespaceTokenize is the fallback segmentation when basic tokenization
// is disabled.
func whitespaceTokenize(text string) []string {
	return strings.Fields(text)
}

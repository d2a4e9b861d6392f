package tokenize

import (
	"iter"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// VTextTokenizer refines Unicode word boundaries with a few rules:
//
//   - runs of the same ASCII punctuation character form one token ("...");
//   - words joined by "-", "@" or "&" stay together ("porte-manteau", "B&B");
//   - numbers joined by "/" or ":" stay together ("1/2", "8:30");
//   - in English, contractions split before the apostrophe ("ca", "n't");
//   - in French, single-letter elisions split after it ("l'", "image").
//
// Languages other than "en" and "fr" use the language independent rules only.
type VTextTokenizer struct {
	lang string
}

// NewVTextTokenizer returns a tokenizer for lang. Unsupported languages fall
// back to "any".
func NewVTextTokenizer(lang string) *VTextTokenizer {
	switch lang {
	case "en", "fr":
	default:
		slog.Debug("No tokenizer rules for language, using language independent rules", "lang", lang)
		lang = "any"
	}
	return &VTextTokenizer{lang: lang}
}

// Lang returns the effective language.
func (t *VTextTokenizer) Lang() string {
	return t.lang
}

func (t *VTextTokenizer) Tokenize(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range t.split(text) {
			if !yield(text[s.start:s.end]) {
				return
			}
		}
	}
}

func (t *VTextTokenizer) split(text string) []span {
	var res []span
	push := func(start, end int) {
		if start < end {
			res = append(res, span{start: start, end: end})
		}
	}

	punctStart := -1
	var punctLast byte
	for s := range segments(text) {
		tok := text[s.start:s.end]
		if len(tok) == 1 && isASCIIPunct(tok[0]) {
			if punctStart < 0 {
				punctStart = s.start
			} else if tok[0] != punctLast {
				push(punctStart, s.start)
				punctStart = s.start
			}
			punctLast = tok[0]
			continue
		}
		if punctStart >= 0 {
			push(punctStart, s.start)
			punctStart = -1
		}
		if isSpace(tok) {
			continue
		}

		if i, ok := t.contraction(tok); ok {
			push(s.start, s.start+i)
			push(s.start+i, s.end)
			continue
		}

		push(s.start, s.end)
		if n := len(res); n >= 3 {
			a, b, c := res[n-3], res[n-2], res[n-1]
			if a.end == b.start && b.end == c.start &&
				joinable(text[a.start:a.end], text[b.start:b.end], text[c.start:c.end]) {
				res = append(res[:n-3], span{start: a.start, end: c.end})
			}
		}
	}
	if punctStart >= 0 {
		push(punctStart, len(text))
	}
	return res
}

// contraction reports where tok splits under the language rules.
func (t *VTextTokenizer) contraction(tok string) (int, bool) {
	switch t.lang {
	case "en":
		for _, apos := range []string{"'", "’"} {
			i := strings.Index(tok, apos)
			if i < 0 {
				continue
			}
			if suffix := "n" + apos + "t"; strings.HasSuffix(tok, suffix) {
				i = len(tok) - len(suffix)
			}
			return i, true
		}
	case "fr":
		if strings.Index(tok, "'") == 1 {
			return 2, true
		}
	}
	return 0, false
}

func joinable(left, mid, right string) bool {
	last, _ := utf8.DecodeLastRuneInString(left)
	first, _ := utf8.DecodeRuneInString(right)
	switch mid {
	case "-", "@", "&":
		return isAlnum(last) && isAlnum(first)
	case "/", ":":
		return unicode.IsNumber(last) && unicode.IsNumber(first)
	}
	return false
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func isASCIIPunct(c byte) bool {
	return strings.IndexByte(asciiPunct, c) >= 0
}

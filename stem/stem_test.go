package stem

import (
	"errors"
	"slices"
	"testing"

	"github.com/happyhackingspace/textvec"
	"github.com/happyhackingspace/textvec/tokenize"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for lang, want := range map[string]string{
		"en": "english", "English": "english", "fr": "french", "es": "spanish",
		"ru": "russian", "sv": "swedish", "no": "norwegian", "hu": "hungarian",
	} {
		s, err := New(lang)
		require.NoError(t, err, lang)
		require.Equal(t, want, s.Algorithm())
	}

	for _, lang := range []string{"", "any", "de", "klingon"} {
		_, err := New(lang)
		require.True(t, errors.Is(err, textvec.ErrInvalidParams), lang)
	}
}

func TestStemEnglish(t *testing.T) {
	s, err := New("en")
	require.NoError(t, err)
	tests := map[string]string{
		"running":     "run",
		"consignment": "consign",
		"generously":  "generous",
		"Jumps":       "jump",
	}
	for word, want := range tests {
		require.Equal(t, want, s.Stem(word), word)
	}
}

func TestTokenizer(t *testing.T) {
	s, err := New("english")
	require.NoError(t, err)
	tok := NewTokenizer(tokenize.NewDefaultRegexpTokenizer(), s)
	require.Equal(t, []string{"the", "cat", "jump", "over", "fenc"},
		slices.Collect(tok.Tokenize("The cats jumped over fences")))
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	require.True(t, slices.IsSorted(langs))
	require.Contains(t, langs, "en")
	require.Contains(t, langs, "hungarian")
}

func TestUnsupportedSnowballLanguages(t *testing.T) {
	want := []string{
		"en", "english", "es", "fr", "french", "hu", "hungarian", "no",
		"norwegian", "ru", "russian", "spanish", "sv", "swedish",
	}
	require.Equal(t, want, Languages())

	for _, lang := range []string{"de", "german", "it", "pt", "nl", "da", "fi", "ro", "tr", "ar", "ta"} {
		_, err := New(lang)
		require.ErrorIs(t, err, textvec.ErrInvalidParams, lang)
	}
}

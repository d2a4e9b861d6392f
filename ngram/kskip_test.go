package ngram

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/happyhackingspace/textvec"
	"github.com/stretchr/testify/require"
)

const lamb = "Mary had a little lamb"

func grams(t *testing.T, g KSkipNGrams, text string, opts ...Option) [][]string {
	t.Helper()
	it, err := g.Transform(slices.Values(strings.Fields(text)), opts...)
	require.NoError(t, err)
	return it.Collect()
}

var pads = []Option{WithPadLeft("<s>"), WithPadRight("</s>")}

func TestBigram(t *testing.T) {
	want := [][]string{
		{"Mary", "had"},
		{"had", "a"},
		{"a", "little"},
		{"little", "lamb"},
	}
	require.Equal(t, want, grams(t, NewBigram(), lamb))
}

func TestTrigramPadding(t *testing.T) {
	want := [][]string{
		{"<s>", "<s>", "Mary"},
		{"<s>", "Mary", "had"},
		{"Mary", "had", "a"},
		{"had", "a", "little"},
		{"a", "little", "lamb"},
		{"little", "lamb", "</s>"},
		{"lamb", "</s>", "</s>"},
	}
	require.Equal(t, want, grams(t, NewTrigram(), lamb, pads...))

	want = [][]string{
		{"Mary", "had", "a"},
		{"had", "a", "little"},
		{"a", "little", "lamb"},
		{"little", "lamb", "</s>"},
		{"lamb", "</s>", "</s>"},
	}
	require.Equal(t, want, grams(t, NewTrigram(), lamb, WithPadRight("</s>")))
}

func TestNGramsPadding(t *testing.T) {
	want := [][]string{
		{"<s>", "<s>", "<s>", "Mary"},
		{"<s>", "<s>", "Mary", "had"},
		{"<s>", "Mary", "had", "a"},
		{"Mary", "had", "a", "little"},
		{"had", "a", "little", "lamb"},
		{"a", "little", "lamb", "</s>"},
		{"little", "lamb", "</s>", "</s>"},
		{"lamb", "</s>", "</s>", "</s>"},
	}
	require.Equal(t, want, grams(t, NewNGrams(4), lamb, pads...))
}

func TestEverygrams(t *testing.T) {
	want := [][]string{
		{"<s>", "Mary"},
		{"<s>", "<s>", "Mary"},
		{"<s>", "Mary", "had"},
		{"Mary"},
		{"Mary", "had"},
		{"Mary", "had", "a"},
		{"had"},
		{"had", "a"},
		{"had", "a", "little"},
		{"a"},
		{"a", "little"},
		{"a", "little", "lamb"},
		{"little"},
		{"little", "lamb"},
		{"lamb"},
		{"lamb", "</s>"},
		{"little", "lamb", "</s>"},
		{"lamb", "</s>", "</s>"},
	}
	require.Equal(t, want, grams(t, NewEverygrams(1, 3), lamb, pads...))
}

func TestSkipgramsPadding(t *testing.T) {
	want := [][]string{
		{"<s>", "Mary"},
		{"<s>", "had"},
		{"Mary", "had"},
		{"Mary", "a"},
		{"had", "a"},
		{"had", "little"},
		{"a", "little"},
		{"a", "lamb"},
		{"little", "lamb"},
		{"lamb", "</s>"},
		{"little", "</s>"},
	}
	require.Equal(t, want, grams(t, NewSkipgrams(2, 1), lamb, pads...))
}

func TestSkipgrams(t *testing.T) {
	want := [][]string{
		{"One", "Two", "Three"},
		{"One", "Two", "Four"},
		{"One", "Two", "Five"},
		{"One", "Three", "Four"},
		{"One", "Three", "Five"},
		{"One", "Four", "Five"},
		{"Two", "Three", "Four"},
		{"Two", "Three", "Five"},
		{"Two", "Four", "Five"},
		{"Three", "Four", "Five"},
	}
	require.Equal(t, want, grams(t, NewSkipgrams(3, 2), "One Two Three Four Five"))
}

func TestKSkipNGrams(t *testing.T) {
	want := [][]string{
		{"One", "Two"},
		{"One", "Three"},
		{"One", "Two", "Three"},
		{"One", "Two", "Four"},
		{"One", "Three", "Four"},
		{"Two", "Three"},
		{"Two", "Four"},
		{"Two", "Three", "Four"},
		{"Three", "Four"},
	}
	require.Equal(t, want, grams(t, New(2, 3, 1), "One Two Three Four"))
}

func TestUnigramIgnoresSkipAndPadding(t *testing.T) {
	want := [][]string{{"Mary"}, {"had"}, {"a"}, {"little"}, {"lamb"}}
	require.Equal(t, want, grams(t, New(1, 1, 1), lamb, pads...))
	require.Equal(t, want, grams(t, New(1, 1, 2), lamb, pads...))
}

func TestWindowCount(t *testing.T) {
	tokens := strings.Fields("a b c d e f g h i j")
	for n := 1; n <= len(tokens); n++ {
		it, err := NewNGrams(n).Transform(slices.Values(tokens))
		require.NoError(t, err)
		plain := it.Collect()
		require.Len(t, plain, len(tokens)-n+1, "n=%d", n)

		it, err = NewNGrams(n).Transform(slices.Values(tokens), WithPadLeft("P"), WithPadRight("P"))
		require.NoError(t, err)
		padded := it.Collect()
		require.Len(t, padded, len(plain)+2*(n-1), "padded n=%d", n)
	}
}

func TestTransformErrors(t *testing.T) {
	tokens := slices.Values(strings.Fields(lamb))

	for _, g := range []KSkipNGrams{New(0, 2, 0), New(3, 2, 0), New(1, 2, -1)} {
		_, err := g.Transform(tokens)
		require.True(t, errors.Is(err, textvec.ErrInvalidParams), "%+v: %v", g, err)
	}

	_, err := NewNGrams(6).Transform(tokens)
	require.True(t, errors.Is(err, textvec.ErrInvalidInput))

	_, err = NewSkipgrams(4, 2).Transform(tokens)
	require.True(t, errors.Is(err, textvec.ErrInvalidInput))

	_, err = NewBigram().Transform(slices.Values([]string(nil)))
	require.True(t, errors.Is(err, textvec.ErrInvalidInput))
}

func TestEarlyStop(t *testing.T) {
	it, err := NewBigram().Transform(slices.Values(strings.Fields(lamb)))
	require.NoError(t, err)
	var got [][]string
	for gram := range it.All() {
		got = append(got, gram)
		if len(got) == 2 {
			break
		}
	}
	require.Len(t, got, 2)

	_, ok := it.Next()
	require.False(t, ok)
}

func TestGramsShareInputStrings(t *testing.T) {
	text := "alpha beta gamma"
	tokens := strings.Fields(text)
	it, err := NewBigram().Transform(slices.Values(tokens))
	require.NoError(t, err)
	gram, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, []string{"alpha", "beta"}, gram)
	gram[0] = "changed"
	require.Equal(t, "alpha", tokens[0])
	it.Close()
}

package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/happyhackingspace/textvec/vectorize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New("test")
	var out bytes.Buffer
	c.rootCmd.SetArgs(append(args, "--silent"))
	c.rootCmd.SetIn(strings.NewReader(stdin))
	c.rootCmd.SetOut(&out)
	c.rootCmd.SetErr(io.Discard)
	err := c.Run()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  []string
	}{
		{"default", "The moon in the sky", nil, []string{"The", "moon", "in", "the", "sky"}},
		{"char", "hello", []string{"--tokenizer", "char", "--window", "3"}, []string{"hel", "ell", "llo"}},
		{"stem", "running jumps", []string{"--stem", "en"}, []string{"run", "jump"}},
		{"vtext", "can't stop", []string{"--tokenizer", "vtext"}, []string{"ca", "n't", "stop"}},
		{"sentence", "One. Two!", []string{"--tokenizer", "sentence"}, []string{"One. ", "Two!"}},
		{"unicode sentence", "Bang!! Done", []string{"--tokenizer", "unicode-sentence"}, []string{"Bang!! ", "Done"}},
		{"non-ascii", "Café naïve", nil, []string{"Café", "naïve"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.stdin, append([]string{"tokenize"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lines(out))
		})
	}
}

func TestTokenizeFile(t *testing.T) {
	path := writeFile(t, "doc.txt", "alpha beta")
	out, err := execute(t, "", "tokenize", path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, lines(out))
}

func TestTokenizeInvalidSettings(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--tokenizer", "bogus"}, "tokenizer: bogus is not one of"},
		{[]string{"--pattern", "("}, "pattern: invalid regular expression"},
		{[]string{"--tokenizer", "char", "--window", "0"}, "window: 0 is below 1"},
		{[]string{"--stem", "klingon"}, `unsupported stemmer language "klingon"`},
	}
	for _, tt := range tests {
		_, err := execute(t, "text", append([]string{"tokenize"}, tt.args...)...)
		require.Error(t, err, "%v", tt.args)
		assert.Contains(t, err.Error(), tt.want)
	}
}

func TestConfigPrecedence(t *testing.T) {
	conf := writeFile(t, "textvec.yaml", "tokenizer: char\nwindow: 2\n")

	out, err := execute(t, "abc", "tokenize", "--config", conf)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "bc"}, lines(out))

	t.Setenv("TEXTVEC_WINDOW", "1")
	out, err = execute(t, "abc", "tokenize", "--config", conf)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, lines(out))

	out, err = execute(t, "abc", "tokenize", "--config", conf, "--window", "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, lines(out))

	_, err = execute(t, "abc", "tokenize", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNgrams(t *testing.T) {
	out, err := execute(t, "Mary had a little lamb", "ngrams",
		"--tokenizer", "unicode", "--max-k", "1", "--pad-left", "<s>", "--pad-right", "</s>")
	require.NoError(t, err)
	want := []string{
		"<s> Mary", "<s> had",
		"Mary had", "Mary a",
		"had a", "had little",
		"a little", "a lamb",
		"little lamb",
		"lamb </s>", "little </s>",
	}
	assert.Equal(t, want, lines(out))

	_, err = execute(t, "one", "ngrams", "--max-n", "3")
	require.Error(t, err)
}

func TestNgramsEmptyPadToken(t *testing.T) {
	out, err := execute(t, "a b", "ngrams", "--tokenizer", "unicode", "--pad-left", "", "--separator", "|")
	require.NoError(t, err)
	assert.Equal(t, []string{"|a", "a|b"}, lines(out))

	out, err = execute(t, "a b", "ngrams", "--tokenizer", "unicode", "--separator", "|")
	require.NoError(t, err)
	assert.Equal(t, []string{"a|b"}, lines(out))
}

func decodeMatrix(t *testing.T, out string) vectorize.CSR {
	t.Helper()
	var m vectorize.CSR
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	return m
}

func TestVectorizeCount(t *testing.T) {
	docs := writeFile(t, "docs.txt", "the moon in the sky\nThe sky sky sky is blue\n")
	vocabPath := filepath.Join(t.TempDir(), "vocab.json")

	out, err := execute(t, "", "vectorize", "count", docs, "--jobs", "2", "--vocab-out", vocabPath)
	require.NoError(t, err)
	m := decodeMatrix(t, out)
	assert.Equal(t, [2]int{2, 6}, m.Shape)
	assert.Equal(t, []int{0, 4, 8}, m.Indptr)
	assert.Equal(t, []int{1, 3, 4, 5, 0, 2, 4, 5}, m.Indices)
	assert.Equal(t, []int{1, 1, 1, 2, 1, 1, 3, 1}, m.Data)

	vocab, err := readVocabulary(vocabPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"blue": 0, "in": 1, "is": 2, "moon": 3, "sky": 4, "the": 5}, vocab)

	other := writeFile(t, "other.txt", "the red moon")
	out, err = execute(t, "", "vectorize", "count", other, "--vocab-in", vocabPath)
	require.NoError(t, err)
	m = decodeMatrix(t, out)
	assert.Equal(t, [2]int{1, 6}, m.Shape)
	assert.Equal(t, []int{3, 5}, m.Indices)
	assert.Equal(t, []int{1, 1}, m.Data)
}

func TestVectorizeCountGrams(t *testing.T) {
	docs := writeFile(t, "docs.txt", "x y y\n\nx y y\n")
	out, err := execute(t, "", "vectorize", "count", docs,
		"--tokenizer", "unicode", "--min-n", "2", "--max-n", "2", "--max-k", "1",
		"--policy", "unique", "--drop-empty", "--drop-duplicates")
	require.NoError(t, err)
	m := decodeMatrix(t, out)
	assert.Equal(t, [2]int{1, 2}, m.Shape)
	assert.Equal(t, []int{1, 1}, m.Data)

	_, err = execute(t, "", "vectorize", "count", docs, "--policy", "max")
	require.Error(t, err)
}

func TestVectorizeHash(t *testing.T) {
	docs := writeFile(t, "docs.txt", "the moon in the sky\nThe sky sky sky is blue\n")
	out, err := execute(t, "", "vectorize", "hash", docs, "--features", "1")
	require.NoError(t, err)
	m := decodeMatrix(t, out)
	assert.Equal(t, [2]int{2, 1}, m.Shape)
	assert.Equal(t, []int{0, 1, 2}, m.Indptr)
	assert.Equal(t, []int{5, 6}, m.Data)

	_, err = execute(t, "", "vectorize", "hash", docs, "--features", "0")
	require.Error(t, err)
}

func TestStem(t *testing.T) {
	out, err := execute(t, "", "stem", "running", "consignment")
	require.NoError(t, err)
	assert.Equal(t, []string{"run", "consign"}, lines(out))

	out, err = execute(t, "generously Jumps", "stem")
	require.NoError(t, err)
	assert.Equal(t, []string{"generous", "jump"}, lines(out))

	_, err = execute(t, "", "stem", "--lang", "xx", "word")
	require.Error(t, err)
}

func TestSimilarity(t *testing.T) {
	out, err := execute(t, "", "similarity", "kitten", "sitting", "--metric", "edit")
	require.NoError(t, err)
	assert.Equal(t, "edit\t3\n", out)

	out, err = execute(t, "", "similarity", "MARTHA", "MARHTA", "--metric", "all")
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 4)
	assert.Equal(t, "edit\t2", got[1])
	assert.Equal(t, "jaro-winkler\t0.9611", got[3])

	_, err = execute(t, "", "similarity", "a", "b", "--metric", "cosine")
	require.Error(t, err)
}

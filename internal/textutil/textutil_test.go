package textutil

import (
	"reflect"
	"testing"
)

func TestNgrams(t *testing.T) {
	tests := []struct {
		s    string
		min  int
		max  int
		want []string
	}{
		{"abc", 2, 3, []string{"ab", "bc", "abc"}},
		{"ab", 3, 5, nil},
		{"hello", 5, 5, []string{"hello"}},
		{"ab", 1, 2, []string{"a", "b", "ab"}},
		{"", 1, 3, nil},
		{"çaé", 2, 2, []string{"ça", "aé"}},
		{"ab", 0, 1, []string{"a", "b"}},
	}
	for _, tt := range tests {
		got := Ngrams(tt.s, tt.min, tt.max)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Ngrams(%q, %d, %d) = %v, want %v", tt.s, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNormalizeWhitespaces(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hello\nworld", "hello world"},
		{"hello\r\nworld", "hello world"},
		{"a  b   c", "a b c"},
	}
	for _, tt := range tests {
		got := NormalizeWhitespaces(tt.input)
		if got != tt.want {
			t.Errorf("NormalizeWhitespaces(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsBlank(t *testing.T) {
	tests := map[string]bool{
		"":         true,
		" \t\n":    true,
		"x":        false,
		"  word  ": false,
		"\u00a0":   true,
	}
	for in, want := range tests {
		if got := IsBlank(in); got != want {
			t.Errorf("IsBlank(%q) = %v, want %v", in, got, want)
		}
	}
}

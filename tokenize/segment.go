package tokenize

import (
	"iter"
	"log/slog"
	"strings"
	"unicode"

	"github.com/blevesearch/segment"
)

// span is a half-open byte range of the tokenized text.
type span struct {
	start, end int
	typ        int
}

// segments walks the UAX#29 word boundaries of text. Segments are contiguous
// and cover the whole input, whitespace and punctuation included.
func segments(text string) iter.Seq[span] {
	return func(yield func(span) bool) {
		seg := segment.NewWordSegmenterDirect([]byte(text))
		off := 0
		for seg.Segment() {
			n := len(seg.Bytes())
			s := span{start: off, end: off + n, typ: seg.Type()}
			off += n
			if !yield(s) {
				return
			}
		}
		if err := seg.Err(); err != nil {
			slog.Debug("Word segmentation stopped early", "offset", off, "error", err)
		}
	}
}

func isSpace(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

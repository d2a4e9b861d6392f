package corpus

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadLines(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"docs.txt": "the moon in the sky\n\nThe sky sky sky is blue\nthe moon in the sky\n",
	})
	path := filepath.Join(dir, "docs.txt")

	docs, err := Load(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 4 {
		t.Fatalf("got %d documents, want 4", len(docs))
	}
	if docs[2].Line != 3 || docs[2].Path != path {
		t.Errorf("unexpected document position: %+v", docs[2])
	}

	docs, err = Load(path, Options{DropEmpty: true, DropDuplicates: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"the moon in the sky", "The sky sky sky is blue"}
	if got := Texts(docs); !reflect.DeepEqual(got, want) {
		t.Errorf("Texts = %q, want %q", got, want)
	}
}

func TestLoadWholeFileHTML(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"page.html": "<html><head><title>Moon</title></head>\n<body><p>the moon</p>\n<p>in the sky</p></body></html>",
	})
	docs, err := Load(filepath.Join(dir, "page.html"), Options{WholeFile: true, HTML: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if docs[0].Title != "Moon" || docs[0].Text != "the moon in the sky" {
		t.Errorf("unexpected document: %+v", docs[0])
	}
}

func TestLoadFolder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.txt":         "second",
		"a.txt":         "first",
		"sub/c.txt":     "third",
		".hidden":       "skipped",
		".git/config":   "skipped",
		"sub/empty.txt": " ",
	})
	docs, err := Load(dir, Options{DropEmpty: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "second", "third"}
	if got := Texts(docs); !reflect.DeepEqual(got, want) {
		t.Errorf("Texts = %q, want %q", got, want)
	}
	if docs[2].Path != filepath.Join("sub", "c.txt") {
		t.Errorf("Path = %q", docs[2].Path)
	}
}

func TestLoadFolderIndex(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		IndexFile: `{
			"z.html": {"url": "https://www.alpha.com/z"},
			"y.html": {"url": "http://blog.zulu.co.uk/y"},
			"x.html": {"url": "https://alpha.com/x"},
			"missing.html": {"url": "https://beta.org/"}
		}`,
		"x.html":     "<p>x</p>",
		"y.html":     "<p>y</p>",
		"z.html":     "<p>z</p>",
		"other.html": "<p>not indexed</p>",
	})
	docs, err := Load(dir, Options{HTML: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"x", "z", "y"}
	if got := Texts(docs); !reflect.DeepEqual(got, want) {
		t.Errorf("Texts = %q, want %q", got, want)
	}
	if docs[2].Domain() != "zulu" {
		t.Errorf("Domain = %q, want zulu", docs[2].Domain())
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope"), Options{}); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestGetDomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://example.org/page", "example"},
		{"https://foo.example.co.uk/path", "example"},
		{"http://www.google.com", "google"},
		{"example.org", "example"},
		{"http://localhost:8080/path", "localhost"},
		{"", ""},
	}
	for _, tt := range tests {
		got := GetDomain(tt.url)
		if got != tt.want {
			t.Errorf("GetDomain(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

// Package corpus loads document collections from disk.
//
// A path can name a text file (one document per line, or one document for
// the whole file) or a folder (one document per file). A folder may carry an
// index.json mapping relative file paths to their source URL:
//
//	{"pages/a.html": {"url": "https://example.org/a"}}
//
// Only the indexed files are loaded then, ordered by domain and path.
package corpus

import (
	"bufio"
	"bytes"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/happyhackingspace/textvec/internal/htmlutil"
	"github.com/happyhackingspace/textvec/internal/textutil"
)

// IndexFile is the optional folder index.
const IndexFile = "index.json"

// Document is one loaded document.
type Document struct {
	Path  string `json:"path"`
	Line  int    `json:"line,omitempty"`
	URL   string `json:"url,omitempty"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

// Domain returns the registered domain name of the document URL.
func (d Document) Domain() string {
	return GetDomain(d.URL)
}

// Options controls how documents are read.
type Options struct {
	// HTML extracts the visible text of every document.
	HTML bool
	// WholeFile reads a file as a single document instead of one per line.
	WholeFile bool
	// DropEmpty skips blank documents.
	DropEmpty bool
	// DropDuplicates skips documents whose text was already seen.
	DropDuplicates bool
}

type indexEntry struct {
	URL string `json:"url"`
}

// Load reads the documents at path.
func Load(path string, opts Options) ([]Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}

	var docs []Document
	if info.IsDir() {
		docs, err = loadFolder(path, opts)
	} else {
		docs, err = loadFile(path, opts)
	}
	if err != nil {
		return nil, err
	}

	kept := docs[:0]
	seen := make(map[[md5.Size]byte]bool)
	for _, d := range docs {
		if opts.DropEmpty && textutil.IsBlank(d.Text) {
			continue
		}
		if opts.DropDuplicates {
			hash := md5.Sum([]byte(d.Text))
			if seen[hash] {
				continue
			}
			seen[hash] = true
		}
		kept = append(kept, d)
	}
	slog.Debug("Loaded corpus", "path", path, "documents", len(kept), "dropped", len(docs)-len(kept))
	return kept, nil
}

// Texts returns the text of every document.
func Texts(docs []Document) []string {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	return texts
}

func loadFile(path string, opts Options) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	if opts.WholeFile {
		d, err := newDocument(path, string(data), opts)
		if err != nil {
			return nil, err
		}
		return []Document{d}, nil
	}

	var docs []Document
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), len(data)+1)
	for line := 1; sc.Scan(); line++ {
		d, err := newDocument(path, sc.Text(), opts)
		if err != nil {
			return nil, fmt.Errorf("corpus: line %d: %w", line, err)
		}
		d.Line = line
		docs = append(docs, d)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	return docs, nil
}

func loadFolder(folder string, opts Options) ([]Document, error) {
	index, err := readIndex(folder)
	if err != nil {
		return nil, err
	}

	type pathInfo struct {
		path string
		url  string
	}
	var files []pathInfo
	if index != nil {
		for path, entry := range index {
			files = append(files, pathInfo{path, entry.URL})
		}
		// Sort by domain + path for deterministic ordering
		sort.Slice(files, func(i, j int) bool {
			di := GetDomain(files[i].url)
			dj := GetDomain(files[j].url)
			if di != dj {
				return di < dj
			}
			return files[i].path < files[j].path
		})
	} else {
		err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if strings.HasPrefix(d.Name(), ".") && path != folder {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() {
				rel, err := filepath.Rel(folder, path)
				if err != nil {
					return err
				}
				files = append(files, pathInfo{path: rel})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("corpus: %w", err)
		}
	}

	docs := make([]Document, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(folder, f.path))
		if err != nil {
			slog.Warn("Cannot read document file", "path", f.path, "error", err)
			continue
		}
		d, err := newDocument(f.path, string(data), opts)
		if err != nil {
			slog.Warn("Cannot parse document file", "path", f.path, "error", err)
			continue
		}
		d.URL = f.url
		docs = append(docs, d)
	}
	return docs, nil
}

func readIndex(folder string) (map[string]indexEntry, error) {
	data, err := os.ReadFile(filepath.Join(folder, IndexFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	var index map[string]indexEntry
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("corpus: %s: %w", IndexFile, err)
	}
	return index, nil
}

func newDocument(path, text string, opts Options) (Document, error) {
	d := Document{Path: path, Text: text}
	if opts.HTML {
		title, body, err := htmlutil.ExtractText(strings.NewReader(text))
		if err != nil {
			return Document{}, err
		}
		d.Title, d.Text = title, body
	}
	return d, nil
}

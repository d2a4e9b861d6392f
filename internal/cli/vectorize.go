package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/happyhackingspace/textvec/internal/corpus"
	"github.com/happyhackingspace/textvec/ngram"
	"github.com/happyhackingspace/textvec/vectorize"
	"github.com/spf13/cobra"
)

func (c *CLI) newVectorizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vectorize",
		Short: "Turn a corpus into a sparse document-term matrix",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	count := &cobra.Command{
		Use:   "count <path>",
		Short: "Count vocabulary terms per document",
		Args:  cobra.ExactArgs(1),
		Example: `  # One document per line
  textvec vectorize count docs.txt

  # Folder of HTML pages, saving the learned vocabulary
  textvec vectorize count pages/ --html --vocab-out vocab.json

  # Reuse a saved vocabulary
  textvec vectorize count new.txt --vocab-in vocab.json

  # Unigrams and bigrams, counted once per document
  textvec vectorize count docs.txt --min-n 1 --max-n 2 --policy unique`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCount(cmd, args[0])
		},
	}
	c.addVectorizeFlags(count)
	count.Flags().String("vocab-in", "", "Transform with the vocabulary saved in this JSON file instead of fitting")
	count.Flags().String("vocab-out", "", "Save the fitted vocabulary to this JSON file")

	hash := &cobra.Command{
		Use:   "hash <path>",
		Short: "Hash terms into a fixed number of columns",
		Args:  cobra.ExactArgs(1),
		Example: `  textvec vectorize hash docs.txt --features 4096
  textvec vectorize hash pages/ --html --jobs 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHash(cmd, args[0])
		},
	}
	c.addVectorizeFlags(hash)
	hash.Flags().Int("features", vectorize.DefaultFeatures, "Number of hashed columns")

	cmd.AddCommand(count, hash)
	return cmd
}

func (c *CLI) addVectorizeFlags(cmd *cobra.Command) {
	addTokenizerFlags(cmd)
	addGramFlags(cmd, 1, 1)
	f := cmd.Flags()
	f.Bool("lowercase", true, "Lowercase documents before tokenizing")
	f.Int("jobs", runtime.NumCPU(), "Number of parallel workers")
	f.String("policy", vectorize.SumWindows.String(), "Repeated gram windows: sum or unique")
	f.Bool("html", false, "Extract the visible text of HTML documents")
	f.Bool("whole-file", false, "Read a file as one document instead of one per line")
	f.Bool("drop-empty", false, "Skip blank documents")
	f.Bool("drop-duplicates", false, "Skip documents with already seen text")
}

func parsePolicy(s string) (vectorize.WindowPolicy, error) {
	for _, p := range []vectorize.WindowPolicy{vectorize.SumWindows, vectorize.UniqueWindows} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown policy %q (want sum or unique)", s)
}

// vectorizerOptions maps the shared flags onto vectorizer options.
func (c *CLI) vectorizerOptions() ([]vectorize.Option, error) {
	policy, err := parsePolicy(c.conf.GetString("policy"))
	if err != nil {
		return nil, err
	}
	opts := []vectorize.Option{
		vectorize.WithLowercase(c.conf.GetBool("lowercase")),
		vectorize.WithJobs(c.conf.GetInt("jobs")),
		vectorize.WithWindowPolicy(policy),
	}
	if g := c.gramParams(); g != ngram.New(1, 1, 0) {
		opts = append(opts, vectorize.WithNGrams(g))
		if c.conf.IsSet("pad-left") {
			opts = append(opts, vectorize.WithPadLeft(c.conf.GetString("pad-left")))
		}
		if c.conf.IsSet("pad-right") {
			opts = append(opts, vectorize.WithPadRight(c.conf.GetString("pad-right")))
		}
	}
	return opts, nil
}

func (c *CLI) loadCorpus(path string) ([]string, error) {
	docs, err := corpus.Load(path, corpus.Options{
		HTML:           c.conf.GetBool("html"),
		WholeFile:      c.conf.GetBool("whole-file"),
		DropEmpty:      c.conf.GetBool("drop-empty"),
		DropDuplicates: c.conf.GetBool("drop-duplicates"),
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Corpus loaded", "path", path, "documents", len(docs))
	return corpus.Texts(docs), nil
}

func (c *CLI) runCount(cmd *cobra.Command, path string) error {
	tok, err := c.tokenizer()
	if err != nil {
		return err
	}
	opts, err := c.vectorizerOptions()
	if err != nil {
		return err
	}

	vocabIn := c.conf.GetString("vocab-in")
	if vocabIn != "" {
		vocab, err := readVocabulary(vocabIn)
		if err != nil {
			return err
		}
		opts = append(opts, vectorize.WithVocabulary(vocab))
	}

	cv, err := vectorize.NewCountVectorizer(tok, opts...)
	if err != nil {
		return err
	}
	docs, err := c.loadCorpus(path)
	if err != nil {
		return err
	}

	start := time.Now()
	var m *vectorize.CSR
	if vocabIn != "" {
		m, err = cv.Transform(docs)
	} else {
		m, err = cv.FitTransform(docs)
	}
	if err != nil {
		return err
	}
	slog.Info("Vectorized", "documents", m.Rows(), "vocabulary", cv.VocabSize(), "nnz", m.Nnz(), "duration", time.Since(start))

	if out := c.conf.GetString("vocab-out"); out != "" {
		if err := writeVocabulary(out, cv.Vocabulary()); err != nil {
			return err
		}
		slog.Info("Vocabulary saved", "path", out)
	}
	return writeMatrix(cmd, m)
}

func (c *CLI) runHash(cmd *cobra.Command, path string) error {
	tok, err := c.tokenizer()
	if err != nil {
		return err
	}
	opts, err := c.vectorizerOptions()
	if err != nil {
		return err
	}
	opts = append(opts, vectorize.WithFeatures(c.conf.GetInt("features")))

	hv, err := vectorize.NewHashingVectorizer(tok, opts...)
	if err != nil {
		return err
	}
	docs, err := c.loadCorpus(path)
	if err != nil {
		return err
	}

	start := time.Now()
	m, err := hv.Transform(docs)
	if err != nil {
		return err
	}
	slog.Info("Vectorized", "documents", m.Rows(), "features", hv.Features(), "nnz", m.Nnz(), "duration", time.Since(start))
	return writeMatrix(cmd, m)
}

func writeMatrix(cmd *cobra.Command, m *vectorize.CSR) error {
	if err := json.NewEncoder(cmd.OutOrStdout()).Encode(m); err != nil {
		return fmt.Errorf("write matrix: %w", err)
	}
	return nil
}

func readVocabulary(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	var vocab map[string]int
	if err := json.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	return vocab, nil
}

func writeVocabulary(path string, vocab map[string]int) error {
	data, err := json.MarshalIndent(vocab, "", "  ")
	if err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	return nil
}

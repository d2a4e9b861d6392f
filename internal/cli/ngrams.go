package cli

import (
	"fmt"
	"strings"

	"github.com/happyhackingspace/textvec/ngram"
	"github.com/spf13/cobra"
)

// addGramFlags registers the k-skip-n-gram flags. With the defaults the
// vectorizers count plain tokens.
func addGramFlags(cmd *cobra.Command, minN, maxN int) {
	f := cmd.Flags()
	f.Int("min-n", minN, "Minimum gram length")
	f.Int("max-n", maxN, "Maximum gram length")
	f.Int("max-k", 0, "Maximum number of skipped tokens per gram")
	f.String("pad-left", "", "Left padding token, no padding when unset")
	f.String("pad-right", "", "Right padding token, no padding when unset")
}

func (c *CLI) gramParams() ngram.KSkipNGrams {
	return ngram.New(c.conf.GetInt("min-n"), c.conf.GetInt("max-n"), c.conf.GetInt("max-k"))
}

func (c *CLI) newNgramsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ngrams [file]",
		Short: "Print the k-skip-n-grams of the tokens of a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Bigrams
  echo "Mary had a little lamb" | textvec ngrams

  # Padded 1-skip-bigrams
  echo "Mary had a little lamb" | textvec ngrams --min-n 2 --max-k 1 --pad-left "<s>" --pad-right "</s>"

  # Everygrams up to length 3
  textvec ngrams story.txt --min-n 1 --max-n 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := c.tokenizer()
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			var opts []ngram.Option
			if c.conf.IsSet("pad-left") {
				opts = append(opts, ngram.WithPadLeft(c.conf.GetString("pad-left")))
			}
			if c.conf.IsSet("pad-right") {
				opts = append(opts, ngram.WithPadRight(c.conf.GetString("pad-right")))
			}
			it, err := c.gramParams().Transform(tok.Tokenize(text), opts...)
			if err != nil {
				return err
			}

			sep := c.conf.GetString("separator")
			out := cmd.OutOrStdout()
			for gram := range it.All() {
				fmt.Fprintln(out, strings.Join(gram, sep))
			}
			return nil
		},
	}
	addTokenizerFlags(cmd)
	addGramFlags(cmd, 2, 2)
	cmd.Flags().String("separator", " ", "Separator between the tokens of a gram")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newTokenizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [file]",
		Short: "Split text from a file or stdin into tokens, one per line",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Default regexp tokenizer
  echo "The moon in the sky" | textvec tokenize

  # Language aware word tokenizer
  textvec tokenize notes.txt --tokenizer vtext --lang fr

  # Character 3-grams
  echo "hello" | textvec tokenize --tokenizer char --window 3

  # Stemmed tokens
  echo "running jumps" | textvec tokenize --stem en`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := c.tokenizer()
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for t := range tok.Tokenize(text) {
				fmt.Fprintln(out, t)
			}
			return nil
		},
	}
	addTokenizerFlags(cmd)
	return cmd
}

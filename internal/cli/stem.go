package cli

import (
	"fmt"
	"strings"

	"github.com/happyhackingspace/textvec/stem"
	"github.com/happyhackingspace/textvec/tokenize"
	"github.com/spf13/cobra"
)

func (c *CLI) newStemCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "stem [word...]",
		Short: "Print the Snowball stem of words given as arguments or read from stdin",
		Example: `  textvec stem running jumps consignment
  echo "Les chats mangeaient" | textvec stem --lang fr`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := stem.New(lang)
			if err != nil {
				return fmt.Errorf("%w (supported: %s)", err, strings.Join(stem.Languages(), ", "))
			}

			words := args
			if len(words) == 0 {
				text, err := readInput(cmd, nil)
				if err != nil {
					return err
				}
				for w := range tokenize.NewUnicodeWordTokenizer(false).Tokenize(text) {
					words = append(words, w)
				}
			}

			out := cmd.OutOrStdout()
			for _, w := range words {
				fmt.Fprintln(out, s.Stem(w))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "en", "Stemmer language")
	return cmd
}

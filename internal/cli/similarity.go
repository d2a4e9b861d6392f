package cli

import (
	"fmt"
	"slices"

	"github.com/happyhackingspace/textvec/metrics"
	"github.com/spf13/cobra"
)

var similarities = map[string]func(x, y string) float64{
	"dice":         metrics.DiceSimilarity,
	"jaro":         metrics.JaroSimilarity,
	"jaro-winkler": metrics.JaroWinklerSimilarity,
	"edit": func(x, y string) float64 {
		return float64(metrics.EditDistance(x, y))
	},
}

func (c *CLI) newSimilarityCommand() *cobra.Command {
	var metric string

	cmd := &cobra.Command{
		Use:   "similarity <a> <b>",
		Short: "Compare two strings with a string similarity metric",
		Args:  cobra.ExactArgs(2),
		Example: `  textvec similarity MARTHA MARHTA --metric jaro-winkler
  textvec similarity kitten sitting --metric edit
  textvec similarity healed sealed --metric all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := []string{metric}
			if metric == "all" {
				names = names[:0]
				for name := range similarities {
					names = append(names, name)
				}
				slices.Sort(names)
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				fn, ok := similarities[name]
				if !ok {
					return fmt.Errorf("unknown metric %q (want dice, jaro, jaro-winkler, edit or all)", name)
				}
				fmt.Fprintf(out, "%s\t%.4g\n", name, fn(args[0], args[1]))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&metric, "metric", "dice", "Metric: dice, jaro, jaro-winkler, edit or all")
	return cmd
}

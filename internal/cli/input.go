package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var errNoInput = errors.New("no input: pass a file or pipe text to stdin")

func isStdinTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// readInput returns the content of the file in args, or stdin when args is
// empty.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if in == os.Stdin && isStdinTerminal() {
		return "", errNoInput
	}
	slog.Debug("Reading from stdin")
	body, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(body), nil
}

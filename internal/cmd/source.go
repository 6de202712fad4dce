package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

const stdinName = "-"

// readSource reads the Markdown document named by args, or standard input
// when no file or "-" is given. It also returns the name to report.
func readSource(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == stdinName {
		src, err := io.ReadAll(cmd.InOrStdin())

		return src, "", err
	}

	src, err := os.ReadFile(args[0])

	return src, args[0], err
}

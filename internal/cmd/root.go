// Package cmd implements the codelabel command line.
package cmd

import (
	"context"
	_ "embed"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//go:embed help/root.md
var rootHelp string

// Execute runs the command line with args and exits the process with a
// non-zero status when the command fails.
func Execute(args []string, stdout, stderr io.Writer) {
	if err := run(context.Background(), args, stdout, stderr); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := rootCmd()

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return root.ExecuteContext(ctx)
}

func rootCmd() *cobra.Command {
	opts := new(options)

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:          "codelabel",
		Short:        "Label fenced code blocks of rendered Markdown",
		Long:         rootHelp,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.createStatus(cmd.ErrOrStderr())
			configureLogging(cmd.ErrOrStderr(), opts.verbose)
		},

		DisableAutoGenTag: true,
	}

	cmd.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "settings file (default <user config dir>/codelabel/data.json)")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "don't print status messages")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "print debug logs")

	cmd.AddCommand(renderCmd(opts), listCmd(opts), settingsCmd(opts))

	return cmd
}

func configureLogging(w io.Writer, verbose bool) {
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

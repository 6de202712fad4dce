package cmd

import (
	_ "embed"
	"fmt"

	"github.com/ezerfernandes/codelabel/internal/fence"
	"github.com/ezerfernandes/codelabel/internal/label"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

//go:embed help/list.md
var listHelp string

func listCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "list [flags] [filename]",
		Aliases: []string{"ls"},
		Short:   "List fenced code blocks and the label each one gets",
		Long:    listHelp,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			opts.filter, err = filter(opts.lang, opts.meta)

			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRun(cmd, args, opts)
		},

		DisableAutoGenTag: true,
	}

	langFlag(cmd, opts)
	metaFlag(cmd, opts)

	return cmd
}

func listRun(cmd *cobra.Command, args []string, opts *options) error {
	src, _, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	s, err := opts.loadSettings(cmd.Context())
	if err != nil {
		return err
	}

	tbl := table.New("Lines", "Language", "Label", "Outcome").WithWriter(cmd.OutOrStdout())
	count := 0

	err = walk(src, s, opts.filter, func(block *fence.Block, decision label.Decision) error {
		tbl.AddRow(
			fmt.Sprintf("L%d-%d", block.StartLine+1, block.EndLine+1),
			block.Lang,
			decision.Label,
			decision.Outcome,
		)
		count++

		return nil
	})
	if err != nil {
		return err
	}

	if count == 0 {
		opts.status("no code blocks found\n")

		return nil
	}

	tbl.Print()

	return nil
}

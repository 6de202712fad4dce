package cmd

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ezerfernandes/codelabel/internal/settings"
	"github.com/spf13/cobra"
)

//go:embed help/settings.md
var settingsHelp string

func settingsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "settings",
		Aliases: []string{"config"},
		Short:   "Show or change the labeling settings",
		Long:    settingsHelp,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showSettings(cmd, opts)
		},

		DisableAutoGenTag: true,
	}

	cmd.AddCommand(
		&cobra.Command{ //nolint:exhaustruct
			Use:   "show",
			Short: "Print the current settings as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return showSettings(cmd, opts)
			},
		},
		&cobra.Command{ //nolint:exhaustruct
			Use:     "set <key> <value>...",
			Short:   "Change one setting",
			Example: "  codelabel settings set ignore-languages dataview mermaid\n  codelabel settings set show-language-as-label false",
			Args:    cobra.MinimumNArgs(2), //nolint:gomnd
			RunE: func(cmd *cobra.Command, args []string) error {
				return editSettings(cmd, opts, func(form *settings.Form) error {
					return form.Set(cmd.Context(), args[0], strings.Join(args[1:], "\n"))
				})
			},
		},
		&cobra.Command{ //nolint:exhaustruct
			Use:   "reset",
			Short: "Restore the default settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return editSettings(cmd, opts, func(form *settings.Form) error {
					return form.Reset(cmd.Context())
				})
			},
		},
		editCmd(opts),
	)

	return cmd
}

func editCmd(opts *options) *cobra.Command {
	var accessible bool

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "edit",
		Short: "Edit the settings interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return editSettings(cmd, opts, func(form *settings.Form) error {
				return form.Accessible(accessible).Prompt(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr())
			})
		},
	}

	cmd.Flags().BoolVar(&accessible, "accessible", len(os.Getenv("ACCESSIBLE")) != 0, "ask plain line-by-line questions instead of drawing a form")

	return cmd
}

func showSettings(cmd *cobra.Command, opts *options) error {
	s, err := opts.loadSettings(cmd.Context())
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))

	return err
}

func editSettings(cmd *cobra.Command, opts *options, edit func(form *settings.Form) error) error {
	store, err := opts.store()
	if err != nil {
		return err
	}

	s, err := settings.Load(cmd.Context(), store)
	if err != nil {
		return err
	}

	if err := edit(settings.NewForm(&s, store)); err != nil {
		return err
	}

	opts.status("settings saved to %s\n", store.Name)

	return nil
}

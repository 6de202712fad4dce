package cmd

import (
	_ "embed"
	"io"
	"os"

	"github.com/ezerfernandes/codelabel/internal/label"
	"github.com/ezerfernandes/codelabel/internal/render"
	"github.com/spf13/cobra"
)

//go:embed help/render.md
var renderHelp string

func renderCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "render [flags] [filename]",
		Aliases: []string{"r"},
		Short:   "Render Markdown to HTML with labeled code blocks",
		Long:    renderHelp,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderRun(cmd, args, opts)
		},

		DisableAutoGenTag: true,
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write HTML to file instead of standard output")

	return cmd
}

func renderRun(cmd *cobra.Command, args []string, opts *options) error {
	src, name, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	s, err := opts.loadSettings(cmd.Context())
	if err != nil {
		return err
	}

	r := render.New(render.WithSourcePath(name))
	r.RegisterPostProcessor(label.PostProcessor(&s))

	doc, err := r.Render(src)
	if err != nil {
		return err
	}

	defer doc.Unload()

	if len(opts.output) == 0 {
		err = doc.WriteHTML(cmd.OutOrStdout())
	} else {
		err = writeHTMLFile(opts.output, doc)
	}

	if err != nil {
		return err
	}

	opts.status("rendered %d section(s)%s\n", len(doc.Sections()), fileLabel(name))

	return nil
}

func writeHTMLFile(name string, doc *render.Document) error {
	file, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fileMode)
	if err != nil {
		return err
	}

	return writeAndClose(file, doc)
}

// writeAndClose writes doc to w and closes it, returning the first error.
func writeAndClose(w io.WriteCloser, doc *render.Document) error {
	if err := doc.WriteHTML(w); err != nil {
		_ = w.Close()

		return err
	}

	return w.Close()
}

func fileLabel(name string) string {
	if len(name) != 0 {
		return " from " + name
	}

	return ""
}

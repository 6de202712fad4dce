package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ezerfernandes/codelabel/internal/settings"
	"github.com/spf13/cobra"
)

const (
	settingsDir  = "codelabel"
	settingsFile = "data.json"
	fileMode     = 0o644
)

type statusFunc func(format string, args ...interface{})

type options struct {
	settingsPath string
	quiet        bool
	verbose      bool
	output       string
	lang         []string
	meta         map[string]string
	filter       filterFunc
	status       statusFunc
}

func (opts *options) createStatus(w io.Writer) {
	if opts.quiet {
		opts.status = func(string, ...interface{}) {}

		return
	}

	opts.status = func(format string, args ...interface{}) {
		fmt.Fprintf(w, format, args...)
	}
}

func (opts *options) store() (*settings.FileStore, error) {
	path := opts.settingsPath

	if len(path) == 0 {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locating settings: %w", err)
		}

		path = filepath.Join(dir, settingsDir, settingsFile)
	}

	return &settings.FileStore{
		FS:   settings.DirFS(filepath.Dir(path)),
		Name: filepath.Base(path),
	}, nil
}

func (opts *options) loadSettings(ctx context.Context) (settings.Settings, error) {
	store, err := opts.store()
	if err != nil {
		return settings.Settings{}, err
	}

	return settings.Load(ctx, store)
}

func langFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringSliceVarP(&opts.lang, "lang", "l", nil, "language glob patterns to include")
}

func metaFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringToStringVarP(&opts.meta, "meta", "m", nil, "metadata key=glob pairs to match")
}

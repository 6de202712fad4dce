package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// Form edits a Settings value field by field. Every edit is persisted to
// the store before the setter returns.
type Form struct {
	settings   *Settings
	store      Store
	accessible bool
}

// NewForm returns a Form editing s in place and persisting it to store.
func NewForm(s *Settings, store Store) *Form {
	return &Form{settings: s, store: store}
}

// Accessible makes Prompt ask one plain question per line instead of
// drawing an interactive form, for screen readers and piped input.
func (f *Form) Accessible(accessible bool) *Form {
	f.accessible = accessible

	return f
}

// Settings returns the current value being edited.
func (f *Form) Settings() Settings {
	return *f.settings
}

// SetIgnoreLanguages replaces the ignore list. The text is stored as typed.
func (f *Form) SetIgnoreLanguages(ctx context.Context, text string) error {
	f.settings.IgnoreLanguages = text

	return f.save(ctx)
}

func (f *Form) SetShowLanguageAsLabel(ctx context.Context, show bool) error {
	f.settings.ShowLanguageAsLabel = show

	return f.save(ctx)
}

// Set assigns a setting by name. Both the persisted key (ignoreLanguages)
// and its dashed form (ignore-languages) are accepted.
func (f *Form) Set(ctx context.Context, key, value string) error {
	switch normalizeKey(key) {
	case normalizeKey(keyIgnoreLanguages):
		return f.SetIgnoreLanguages(ctx, value)
	case normalizeKey(keyShowLanguageAsLabel):
		show, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
		}

		return f.SetShowLanguageAsLabel(ctx, show)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Reset restores and persists the defaults.
func (f *Form) Reset(ctx context.Context) error {
	*f.settings = Defaults()

	return f.save(ctx)
}

// Prompt runs an interactive form over in and out and persists every field
// the user changed. Aborting the form leaves the settings untouched.
//
// Accessible prompts read a single line, so the ignore list is edited as
// space separated words there.
func (f *Form) Prompt(ctx context.Context, in io.Reader, out io.Writer) error {
	ignore := f.settings.IgnoreLanguages
	show := f.settings.ShowLanguageAsLabel
	hint := "One language per line."

	if f.accessible {
		ignore = strings.Join(f.settings.IgnoreList(), " ")
		hint = "Separate languages with spaces."
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Ignore languages").
				Description("Code blocks in these languages are never labeled. " + hint).
				Value(&ignore),
			huh.NewConfirm().
				Title("Show language as label").
				Description("Label blocks without a {label} directive with their language.").
				Affirmative("Yes").
				Negative("No").
				Value(&show),
		),
	).WithInput(in).WithOutput(out).WithAccessible(f.accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}

		return fmt.Errorf("settings form: %w", err)
	}

	if f.accessible {
		ignore = strings.Join(strings.Fields(ignore), "\n")
	}

	return f.apply(ctx, ignore, show)
}

func (f *Form) apply(ctx context.Context, ignore string, show bool) error {
	if ignore != f.settings.IgnoreLanguages {
		if err := f.SetIgnoreLanguages(ctx, ignore); err != nil {
			return err
		}
	}

	if show != f.settings.ShowLanguageAsLabel {
		if err := f.SetShowLanguageAsLabel(ctx, show); err != nil {
			return err
		}
	}

	return nil
}

func (f *Form) save(ctx context.Context) error {
	if err := Save(ctx, f.store, *f.settings); err != nil {
		return fmt.Errorf("persisting settings: %w", err)
	}

	return nil
}

func normalizeKey(key string) string {
	key = strings.ToLower(key)

	return strings.NewReplacer("-", "", "_", "").Replace(key)
}

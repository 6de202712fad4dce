package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/viper"
)

// Load reads the persisted settings from store. Fields missing from the
// stored object take their default value. Nothing stored at all yields
// Defaults.
func Load(ctx context.Context, store Store) (Settings, error) {
	data, err := store.LoadData(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("loading settings: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Defaults(), nil
	}

	defaults := Defaults()

	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault(keyIgnoreLanguages, defaults.IgnoreLanguages)
	v.SetDefault(keyShowLanguageAsLabel, defaults.ShowLanguageAsLabel)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Settings{}, fmt.Errorf("parsing settings: %w", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}

	return s, nil
}

// Save persists s to store, replacing whatever was stored before.
func Save(ctx context.Context, store Store, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return store.SaveData(ctx, append(data, '\n'))
}

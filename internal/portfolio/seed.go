// ABOUTME: First-run seeding of site configuration into the store
// ABOUTME: Supports overriding built-in defaults from a TOML content file

package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/toml"

	"github.com/shuvo-dev/portfolio-server/internal/store"
)

// LoadSeed reads a TOML content file whose top-level tables are config
// sections and converts each section to its JSON form. Unrecognized
// section names are rejected.
func LoadSeed(path string) (map[string]json.RawMessage, error) {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	sections := make(map[string]json.RawMessage, len(raw))
	for name, value := range raw {
		if !IsSection(name) {
			return nil, fmt.Errorf("seed file: unknown section %q", name)
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("seed file: encoding section %q: %w", name, err)
		}
		sections[name] = data
	}

	return sections, nil
}

// EnsureSeeded writes default config sections on first run. An already
// populated store is left untouched. If seedPath is non-empty, sections
// from the seed file override the built-in defaults.
func EnsureSeeded(ctx context.Context, st store.Store, seedPath string) error {
	existing, err := st.GetConfig(ctx)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	sections := Defaults()
	if seedPath != "" {
		seeded, err := LoadSeed(seedPath)
		if err != nil {
			return err
		}
		for name, value := range seeded {
			sections[name] = value
		}
		slog.Info("seeding config from content file", "path", seedPath, "sections", len(seeded))
	}

	if err := st.SetConfigSections(ctx, sections); err != nil {
		return fmt.Errorf("seeding config: %w", err)
	}

	slog.Info("seeded default site configuration", "sections", len(sections))
	return nil
}

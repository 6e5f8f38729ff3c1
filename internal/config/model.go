// Package config builds the typed runtime configuration for the companyform
// binaries.
//
// Layers, lowest precedence first:
//
//   - compiled defaults (Default),
//   - the YAML file passed to Load,
//   - an optional dotenv file, exported into the environment without
//     replacing variables that are already set,
//   - environment variables prefixed COMPANYFORM_, where "__" maps to "."
//     (COMPANYFORM_HTTP__LISTEN_ADDR sets http.listen_addr).
//
// Struct tags use `koanf:"..."`; koanf ignores yaml tags.
package config

import (
	"time"

	theme "github.com/goliatone/go-theme"
)

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr      string        `koanf:"listen_addr"      validate:"required,hostname_port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"gte=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"gte=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`
}

// Catalog points at the company catalog. An empty path selects the bundled
// catalog.
type Catalog struct {
	Path string `koanf:"path"`
}

// Log controls the zap logger.
type Log struct {
	Dir   string `koanf:"dir"`
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	Tee   bool   `koanf:"tee"`
}

// CSRF configures the stateless token guard on form posts. An empty secret
// makes the server generate one per process.
type CSRF struct {
	Secret string        `koanf:"secret" validate:"omitempty,min=16"`
	MaxAge time.Duration `koanf:"max_age" validate:"gt=0"`
}

// ThemeVariant overrides tokens of the base theme.
type ThemeVariant struct {
	Tokens    map[string]string `koanf:"tokens"`
	Templates map[string]string `koanf:"templates"`
}

// Theme describes the go-theme manifest applied to the vanilla renderer.
type Theme struct {
	Name        string                  `koanf:"name"`
	Version     string                  `koanf:"version"`
	Variant     string                  `koanf:"variant"`
	Tokens      map[string]string       `koanf:"tokens"`
	Templates   map[string]string       `koanf:"templates"`
	AssetPrefix string                  `koanf:"asset_prefix"`
	Assets      map[string]string       `koanf:"assets"`
	Variants    map[string]ThemeVariant `koanf:"variants"`
}

// Validation toggles optional rule relaxations.
type Validation struct {
	AllowEmptyOptionalEmail bool `koanf:"allow_empty_optional_email"`
}

// Config is the aggregate returned by Load.
type Config struct {
	HTTP       HTTP       `koanf:"http"`
	Catalog    Catalog    `koanf:"catalog"`
	Log        Log        `koanf:"log"`
	CSRF       CSRF       `koanf:"csrf"`
	Theme      Theme      `koanf:"theme"`
	Validation Validation `koanf:"validation"`
}

// Default returns the compiled defaults every loaded file is layered on.
func Default() Config {
	return Config{
		HTTP: HTTP{
			ListenAddr:      "127.0.0.1:8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: Log{
			Level: "info",
		},
		CSRF: CSRF{
			MaxAge: 2 * time.Hour,
		},
	}
}

// Manifest converts the theme section to a go-theme manifest. It returns nil
// when no theme is configured.
func (t Theme) Manifest() *theme.Manifest {
	if t.Name == "" && len(t.Tokens) == 0 && len(t.Templates) == 0 && len(t.Assets) == 0 {
		return nil
	}
	manifest := &theme.Manifest{
		Name:      t.Name,
		Version:   t.Version,
		Tokens:    cloneStrings(t.Tokens),
		Templates: cloneStrings(t.Templates),
		Assets: theme.Assets{
			Prefix: t.AssetPrefix,
			Files:  cloneStrings(t.Assets),
		},
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, variant := range t.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    cloneStrings(variant.Tokens),
				Templates: cloneStrings(variant.Templates),
			}
		}
	}
	return manifest
}

func cloneStrings(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

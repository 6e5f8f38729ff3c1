package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override file values.
const EnvPrefix = "COMPANYFORM_"

// Load layers the YAML file at path and COMPANYFORM_ environment variables
// over Default, then validates the result. The dotenv file next to path (or
// in the working directory when path is empty) is exported into the
// environment first, so its values override the YAML file but never a
// variable that is already set. A missing dotenv file is not an error; a
// missing YAML file is.
func Load(path string) (*Config, error) {
	if err := loadDotenv(path); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	// COMPANYFORM_HTTP__LISTEN_ADDR -> http.listen_addr
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: env overlay: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := validateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

func envKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", "."))
}

func loadDotenv(path string) error {
	dir := "."
	if path != "" {
		dir = filepath.Dir(path)
	}
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err == nil || errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
		return nil
	}
	return fmt.Errorf("config: dotenv: %w", err)
}

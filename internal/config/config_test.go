package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "companyform.yaml", `
http:
  listen_addr: 0.0.0.0:9090
  read_timeout: 3s
catalog:
  path: ./companies.yaml
log:
  level: debug
theme:
  name: slate
  variant: dark
  tokens:
    color-error: "#b00020"
  variants:
    dark:
      tokens:
        color-error: "#ff6b6b"
validation:
  allow_empty_optional_email: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout, "unset keys keep their defaults")
	assert.Equal(t, "./companies.yaml", cfg.Catalog.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Validation.AllowEmptyOptionalEmail)

	manifest := cfg.Theme.Manifest()
	require.NotNil(t, manifest)
	assert.Equal(t, "slate", manifest.Name)
	assert.Equal(t, "#ff6b6b", manifest.Variants["dark"].Tokens["color-error"])
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "companyform.yaml", "http:\n  listen_addr: 127.0.0.1:7000\n")
	t.Setenv("COMPANYFORM_HTTP__LISTEN_ADDR", "127.0.0.1:7001")
	t.Setenv("COMPANYFORM_LOG__TEE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7001", cfg.HTTP.ListenAddr)
	assert.True(t, cfg.Log.Tee)
}

func TestLoad_DotenvNextToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "companyform.yaml", "log:\n  level: info\n")
	writeFile(t, dir, ".env", "COMPANYFORM_CSRF__SECRET=0123456789abcdef0123\n")
	t.Cleanup(func() { os.Unsetenv("COMPANYFORM_CSRF__SECRET") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef0123", cfg.CSRF.Secret)
}

func TestLoad_DotenvOverridesFileButNotEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "companyform.yaml", "log:\n  level: debug\ncatalog:\n  path: from-file.json\n")
	writeFile(t, dir, ".env", "COMPANYFORM_LOG__LEVEL=warn\nCOMPANYFORM_CATALOG__PATH=from-dotenv.json\n")
	t.Setenv("COMPANYFORM_CATALOG__PATH", "from-env.json")
	t.Cleanup(func() { os.Unsetenv("COMPANYFORM_LOG__LEVEL") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "from-env.json", cfg.Catalog.Path)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad level":    "log:\n  level: chatty\n",
		"bad addr":     "http:\n  listen_addr: nowhere\n",
		"short secret": "csrf:\n  secret: tiny\n",
		"bad yaml":     "http: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "companyform.yaml", body)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestThemeManifest_EmptyIsNil(t *testing.T) {
	assert.Nil(t, Theme{}.Manifest())
}

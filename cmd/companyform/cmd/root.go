// Package cmd implements the companyform command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	companyform "github.com/goliatone/go-companyform"
	"github.com/goliatone/go-companyform/internal/config"
	"github.com/goliatone/go-companyform/internal/logger"
	"github.com/goliatone/go-companyform/pkg/catalog"
	"github.com/goliatone/go-companyform/pkg/form"
	"github.com/goliatone/go-companyform/pkg/render"
	"github.com/goliatone/go-companyform/pkg/validation"
	theme "github.com/goliatone/go-theme"
)

var (
	cfgFile     string
	catalogPath string
	logLevel    string
	verbose     bool

	appConfig  *config.Config
	appLogger  *zap.Logger
	appCatalog *catalog.Catalog
)

var rootCmd = &cobra.Command{
	Use:   "companyform",
	Short: "Company-specific forms for the terminal and the browser",
	Long: `companyform renders the form defined for a company in a catalog,
validates what users enter and collects submissions.

Configuration is read from --config (YAML), an optional .env file next to it
and COMPANYFORM_ environment variables (COMPANYFORM_HTTP__LISTEN_ADDR sets
http.listen_addr).`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog file or directory (default: bundled catalog)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	switch {
	case verbose:
		cfg.Log.Level = "debug"
	case logLevel != "":
		cfg.Log.Level = logLevel
	}

	log, err := logger.New(logger.Options{
		Dir:     cfg.Log.Dir,
		Level:   cfg.Log.Level,
		Tee:     cfg.Log.Tee,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	c, err := companyform.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		log.Error("catalog load failed", zap.String("path", cfg.Catalog.Path), zap.Error(err))
		return err
	}
	log.Debug("catalog loaded", zap.String("path", cfg.Catalog.Path), zap.Int("companies", c.Len()))

	appConfig, appLogger, appCatalog = cfg, log, c
	return nil
}

func newValidator() form.Validator {
	if appConfig != nil && appConfig.Validation.AllowEmptyOptionalEmail {
		return validation.New(validation.AllowEmptyOptionalEmail())
	}
	return validation.New()
}

func newGenerator() (*companyform.Generator, error) {
	return companyform.New(
		companyform.WithCatalog(appCatalog),
		companyform.WithValidator(newValidator()),
		companyform.WithLogger(appLogger),
	)
}

// themeConfig resolves the configured theme; variant overrides the config.
func themeConfig(variant string) *theme.RendererConfig {
	if appConfig == nil {
		return nil
	}
	if variant == "" {
		variant = appConfig.Theme.Variant
	}
	return render.ThemeConfig(appConfig.Theme.Manifest(), variant, nil)
}

func requireCompany(key string) error {
	if !appCatalog.Has(key) {
		return fmt.Errorf("%w: %q (known: %v)", catalog.ErrCompanyNotFound, key, appCatalog.Companies())
	}
	return nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}

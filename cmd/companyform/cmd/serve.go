package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-companyform/internal/server"
)

var (
	serveAddr    string
	serveVariant string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the forms over HTTP",
	Long: `Serve starts the web front end: the company selector at /, form posts
under /forms/{company}, the JSON API under /api and Prometheus metrics at
/metrics. It stops cleanly on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides http.listen_addr)")
	serveCmd.Flags().StringVar(&serveVariant, "variant", "", "theme variant (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	guard, err := server.NewCSRF(appConfig.CSRF.Secret, appConfig.CSRF.MaxAge)
	if err != nil {
		return err
	}
	if appConfig.CSRF.Secret == "" {
		appLogger.Warn("csrf.secret not set, using a random per-process key")
	}

	srv, err := server.New(appCatalog,
		server.WithLogger(appLogger),
		server.WithValidator(newValidator()),
		server.WithCSRF(guard),
		server.WithTheme(themeConfig(serveVariant)),
	)
	if err != nil {
		return err
	}

	addr := appConfig.HTTP.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}
	httpServer := server.NewHTTPServer(addr, srv.Handler(), server.Timeouts{
		Read:  appConfig.HTTP.ReadTimeout,
		Write: appConfig.HTTP.WriteTimeout,
		Idle:  appConfig.HTTP.IdleTimeout,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("http server listening",
			zap.String("addr", addr),
			zap.Int("companies", appCatalog.Len()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.HTTP.ShutdownTimeout)
		defer cancel()
		appLogger.Info("http server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		printError("serve", err)
		return err
	}
	_ = appLogger.Sync()
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/iskwet/internal/config"
	logpkg "github.com/kailas-cloud/iskwet/internal/logger"
	"github.com/kailas-cloud/iskwet/internal/metrics"
	"github.com/kailas-cloud/iskwet/internal/repository/dictionary"
	chiTransport "github.com/kailas-cloud/iskwet/internal/transport/chi"
	healthuc "github.com/kailas-cloud/iskwet/internal/usecase/health"
	searchuc "github.com/kailas-cloud/iskwet/internal/usecase/search"
	"github.com/kailas-cloud/iskwet/internal/version"
)

const (
	// ExitCodeSuccess is the exit code of a clean shutdown.
	ExitCodeSuccess int = iota

	// ExitCodeStartup is the exit code when the server cannot start (config, logger, dictionary).
	ExitCodeStartup

	// ExitCodeUsage is the exit code for a command line usage error.
	ExitCodeUsage
)

func main() {
	// Action errors are cli.ExitCoder values and exit from within Run; what reaches here is a flag error.
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitCodeUsage)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "iskwet",
		Usage:           "Serve a dictionary + thesaurus over HTTP.",
		ArgsUsage:       "DATA",
		Description:     "DATA is a path to a .json file containing dictionary + thesaurus data.",
		Version:         version.String(),
		HideHelpCommand: true,
		Action:          runAction,
	}
}

func runAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(
			fmt.Sprintf("expected exactly one DATA argument, got %d (see --help)", c.NArg()),
			ExitCodeUsage,
		)
	}
	dataPath := c.Args().First()

	if err := config.LoadDotEnv(".env"); err != nil {
		return cli.Exit(err.Error(), ExitCodeStartup)
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return cli.Exit("failed to load config: "+err.Error(), ExitCodeStartup)
	}

	logger, err := logpkg.NewLogger(env, strings.ToLower(cfg.Logging.Level))
	if err != nil {
		return cli.Exit("failed to create logger: "+err.Error(), ExitCodeStartup)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting iskwet",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("data", dataPath),
	)

	store, err := dictionary.Load(dataPath)
	if err != nil {
		logger.Error("Failed to load dictionary", zap.String("data", dataPath), zap.Error(err))
		return cli.Exit("failed to load dictionary: "+err.Error(), ExitCodeStartup)
	}
	logger.Info("Dictionary loaded", zap.Int("words", store.Len()))

	metrics.RegisterDictionaryMetrics()
	metrics.DictionaryWords.Set(float64(store.Len()))
	metrics.DictionaryLoadedAt.Set(float64(store.LoadedAt().Unix()))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, newHandler(cfg, store, logger), logger); err != nil {
		return cli.Exit(err.Error(), ExitCodeStartup)
	}
	return nil
}

// newHandler wires the dictionary snapshot into the HTTP router.
func newHandler(cfg config.Config, store *dictionary.Store, logger *zap.Logger) http.Handler {
	searchSvc := searchuc.New(store, metrics.LookupRecorder{})
	healthSvc := healthuc.New(store)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)
	if cfg.MetricsEnabled() {
		server = server.WithMetrics()
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Mount(r)
	return r
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, cfg config.Config, handler http.Handler, logger *zap.Logger) error {
	addr := cfg.HTTP.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server error", zap.Error(err))
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}

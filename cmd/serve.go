package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atlasdocs/siteatlas/internal/analytics"
	"github.com/atlasdocs/siteatlas/internal/api"
	"github.com/atlasdocs/siteatlas/internal/clock/system"
	"github.com/atlasdocs/siteatlas/internal/config"
	"github.com/atlasdocs/siteatlas/internal/id/uuid"
	"github.com/atlasdocs/siteatlas/internal/logging"
	"github.com/atlasdocs/siteatlas/internal/site"
)

// newServeCmd creates the 'serve' subcommand hosting the documentation and
// analytics HTTP surface.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the documentation server",
		Long: `Serves robots.txt, sitemap.xml, llms.txt, page.json, architecture.txt,
and static HTML fallbacks for the pages declared in configuration, and records
visit analytics to the configured JSON log.`,
		RunE: runServeCommand,
	}
}

func runServeCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := site.NewRegistry()
	for _, p := range cfg.Pages {
		registry.Register(site.Page{Path: p.Path, Name: p.Name, Description: p.Description})
		if p.Hidden {
			registry.MarkHidden(p.Path)
		}
	}

	var (
		recorder analytics.Recorder
		store    *analytics.FileStore
		hub      *analytics.Hub
	)
	if cfg.Analytics.Enabled {
		store, err = analytics.NewFileStore(cfg.Analytics.VisitLogPath, cfg.Analytics.MaxVisits, logger.Named("visits"))
		if err != nil {
			return fmt.Errorf("open visit log: %w", err)
		}
		promSink, err := analytics.NewPrometheusSink(prometheus.DefaultRegisterer)
		if err != nil {
			return fmt.Errorf("register visit metrics: %w", err)
		}
		sinks := []analytics.Sink{store, promSink}
		if cfg.Logging.Development {
			sinks = append(sinks, analytics.NewLogSink(logger.Named("visits")))
		}
		hub = analytics.NewHub(analytics.Config{
			BufferSize:   cfg.Analytics.BufferSize,
			MaxBatchWait: cfg.Analytics.FlushInterval(),
			Logger:       logger.Named("analytics"),
		}, sinks...)
		recorder = hub
	}

	server := api.NewServer(registry, recorder, store, uuid.New(), system.New(), cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("http server started",
			zap.Int("port", cfg.Server.Port),
			zap.Int("pages", len(cfg.Pages)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	if hub != nil {
		if err := hub.Close(shutdownCtx); err != nil {
			logger.Error("analytics hub close error", zap.Error(err))
		}
	}
	logger.Info("shutdown complete")
	return nil
}

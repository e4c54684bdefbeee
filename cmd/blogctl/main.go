// Command blogctl manages the blog database from the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/markdown"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfg   *config.Config
	db    *gorm.DB
	store repository.Store
	svc   *service.ContentService

	dumpMetrics     bool
	shutdownTracing func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:           "blogctl",
	Short:         "Manage blog posts, taxonomy and comments",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		observability.InitLogger(observability.LogOptions{
			Level:      cfg.LogLevel,
			JSON:       cfg.IsProduction(),
			File:       cfg.LogFile,
			MaxSizeMB:  cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		})

		shutdownTracing, err = observability.InitTracing(observability.TracingConfig{
			ServiceName:  "blogctl",
			Environment:  cfg.Env,
			Enabled:      cfg.TracingEnabled,
			Exporter:     cfg.TracingExporter,
			OTLPEndpoint: cfg.OTLPEndpoint,
			SamplerRatio: cfg.TracingSamplerRatio,
		})
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}

		db, err = database.Connect(cfg)
		if err != nil {
			return err
		}
		store = repository.NewStore(db)
		svc = service.NewContentService(store, markdown.NewRenderer(), service.Options{
			DefaultPageSize: cfg.PostPageSize,
			MaxPageSize:     cfg.PostMaxPageSize,
		})
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if dumpMetrics {
			if err := writeMetrics(os.Stderr); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dumpMetrics, "metrics", false, "Print collected Prometheus metrics to stderr when the command finishes")
}

// withSchema applies the configured schema before commands that read or write content.
func withSchema(cmd *cobra.Command) error {
	return database.ApplySchema(cmd.Context(), db, cfg)
}

func writeMetrics(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func cleanup() {
	if shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			observability.Logger.Warn("Tracing shutdown failed", slog.String("error", err.Error()))
		}
	}
	if db != nil {
		_ = database.Close(db)
	}
}

func main() {
	ctx := observability.WithCorrelationID(context.Background(), "")
	err := rootCmd.ExecuteContext(ctx)
	cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

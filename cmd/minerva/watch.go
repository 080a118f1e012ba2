package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/minerva/pkg/audit"
	"mercator-hq/minerva/pkg/audit/retention"
	"mercator-hq/minerva/pkg/cli"
	"mercator-hq/minerva/pkg/config"
	"mercator-hq/minerva/pkg/constraint/engine"
	"mercator-hq/minerva/pkg/ingest"
	rulegit "mercator-hq/minerva/pkg/ingest/git"
	"mercator-hq/minerva/pkg/ontology"
	"mercator-hq/minerva/pkg/telemetry/logging"
	"mercator-hq/minerva/pkg/telemetry/metrics"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run as a long-lived governance process",
	Long: `Load the configured ontology and rule packs and keep them loaded,
reloading on change until interrupted.

Everything is driven by the config file: domain and entity paths, constraint
paths, and the optional Git rule-pack source. With ontology.watch or
constraints.watch set, edits to the underlying YAML files are picked up
automatically. When telemetry.metrics.enabled is set, Prometheus metrics are
served at the configured listen address. Audit retention limits, when
configured, are enforced on the retention schedule.

Examples:
  # Run with hot-reload and metrics
  minerva watch --config minerva.yaml`,
	RunE: watchAction,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watchAction(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("watch requires a config file: set --config")
	}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("config", err.Error())
	}
	if len(cfg.Constraints.Paths) == 0 && cfg.Constraints.Git.URL == "" {
		return fmt.Errorf("config sets no constraint source: set constraints.paths or constraints.git.url")
	}

	logger := watchLogger(cfg)
	ctx := cli.SetupSignalHandler()

	var recorder *metrics.Metrics
	if cfg.Telemetry.Metrics.Enabled {
		recorder, _ = metrics.New(&metrics.Config{
			Enabled:   true,
			Namespace: cfg.Telemetry.Metrics.Namespace,
		}, nil)
	}

	auditLog := audit.NewLog()
	graph := ontology.NewEngine(logger)
	graph.SetMetrics(recorder)
	eng := engine.New(engine.Config{Logger: logger, Metrics: recorder, AuditLog: auditLog})

	loader := ingest.NewLoader(nil, logger)
	if err := loadOntology(loader, cfg, graph); err != nil {
		return cli.NewCommandError("watch", err)
	}
	if len(cfg.Constraints.Paths) > 0 {
		if err := loadConstraintPaths(loader, eng, cfg.Constraints.Paths); err != nil {
			return cli.NewCommandError("watch", err)
		}
	}

	if recorder != nil {
		srv := startMetricsServer(cfg.Telemetry.Metrics, recorder, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	pruner := retention.NewPruner(auditLog, retentionFromConfig(cfg.Audit.Retention))
	if err := pruner.Start(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer pruner.Stop()

	if cfg.Ontology.Watch {
		paths := append(append([]string{}, cfg.Ontology.DomainPaths...), cfg.Ontology.EntityPaths...)
		if err := startWatcher(ctx, paths, logger, func() error {
			return loadOntology(loader, cfg, graph)
		}); err != nil {
			return cli.NewCommandError("watch", err)
		}
	}
	if cfg.Constraints.Watch && len(cfg.Constraints.Paths) > 0 {
		if err := startWatcher(ctx, cfg.Constraints.Paths, logger, func() error {
			return loadConstraintPaths(loader, eng, cfg.Constraints.Paths)
		}); err != nil {
			return cli.NewCommandError("watch", err)
		}
	}

	if cfg.Constraints.Git.URL != "" {
		syncer, err := startGitSync(ctx, cfg, loader, eng, logger)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer syncer.Stop()
	}

	logger.Info("watching",
		"domains", len(cfg.Ontology.DomainPaths),
		"entities", graph.EntityCount(),
		"constraints", eng.ConstraintCount(),
	)

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// watchLogger builds the process logger from the config file rather
// than the --verbose flag, since watch output is all logs.
func watchLogger(cfg *config.Config) *slog.Logger {
	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    os.Stderr,
	})
	if err != nil {
		return slog.Default()
	}
	return logger.Slog()
}

// retentionFromConfig maps the file-backed retention settings onto the
// pruner's configuration.
func retentionFromConfig(rc config.RetentionConfig) *retention.Config {
	return &retention.Config{
		MaxAge:              rc.MaxAge,
		MaxEntries:          rc.MaxEntries,
		PruneSchedule:       rc.Schedule,
		ArchiveBeforeDelete: rc.ArchiveBeforeDelete,
		ArchivePath:         rc.ArchivePath,
	}
}

func loadOntology(loader *ingest.Loader, cfg *config.Config, graph *ontology.Engine) error {
	if len(cfg.Ontology.DomainPaths) > 0 {
		domains, err := loader.LoadDomains(cfg.Ontology.DomainPaths)
		if err != nil {
			return err
		}
		for _, d := range domains {
			graph.RegisterDomain(d)
		}
	}
	if len(cfg.Ontology.EntityPaths) > 0 {
		entities, err := loader.LoadEntities(cfg.Ontology.EntityPaths)
		if err != nil {
			return err
		}
		for _, e := range entities {
			graph.AddEntity(e)
		}
	}
	return nil
}

func loadConstraintPaths(loader *ingest.Loader, eng *engine.Engine, paths []string) error {
	defs, err := loader.LoadConstraints(paths)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := eng.Register(def); err != nil {
			return err
		}
	}
	return nil
}

func startMetricsServer(cfg config.MetricsConfig, recorder *metrics.Metrics, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, recorder.Handler())

	srv := &http.Server{Addr: cfg.ListenAddress, Handler: mux}
	go func() {
		logger.Info("metrics endpoint up", "address", cfg.ListenAddress, "path", cfg.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}

// startWatcher runs a file watcher in the background. Reload failures are
// logged and the previous state stays in effect.
func startWatcher(ctx context.Context, paths []string, logger *slog.Logger, onReload func() error) error {
	if len(paths) == 0 {
		return nil
	}

	wcfg := ingest.DefaultFileWatcherConfig()
	wcfg.Paths = paths

	watcher, err := ingest.NewFileWatcher(wcfg, logger)
	if err != nil {
		return err
	}

	go func() {
		if err := watcher.Watch(ctx, onReload); err != nil {
			logger.Error("file watcher stopped", "error", err)
		}
	}()
	return nil
}

func startGitSync(ctx context.Context, cfg *config.Config, loader *ingest.Loader, eng *engine.Engine, logger *slog.Logger) (*rulegit.Syncer, error) {
	repo, err := rulegit.NewRepository(&cfg.Constraints.Git)
	if err != nil {
		return nil, err
	}
	if err := repo.Clone(ctx); err != nil {
		return nil, err
	}
	if err := loadConstraintPaths(loader, eng, []string{repo.RulePath()}); err != nil {
		return nil, err
	}

	interval := cfg.Constraints.Git.PollInterval
	if interval <= 0 {
		interval = time.Minute
	}

	syncer := rulegit.NewSyncer(repo, interval, func(rulePath string) error {
		return loadConstraintPaths(loader, eng, []string{rulePath})
	})
	syncer.SetLogger(logger)
	if err := syncer.Start(ctx); err != nil {
		return nil, err
	}
	return syncer, nil
}

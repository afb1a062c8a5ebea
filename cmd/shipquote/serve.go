package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"mercator-hq/shipquote/pkg/cli"
	"mercator-hq/shipquote/pkg/config"
	"mercator-hq/shipquote/pkg/rules"
	"mercator-hq/shipquote/pkg/server"
	"mercator-hq/shipquote/pkg/telemetry/logging"
	"mercator-hq/shipquote/pkg/telemetry/metrics"
	"mercator-hq/shipquote/pkg/telemetry/tracing"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
	rulesPath     string
	environment   string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the shipping quote API",
	Long: `Start the HTTP server that answers shipping quote requests.

The server loads the rules file once at startup and serves:
  GET  /               Service information
  GET  /api/health     Service health and loaded rule sections
  POST /api/calculate  Calculate a shipping quote

plus liveness, readiness, version and Prometheus metrics endpoints.

Examples:
  # Start with default configuration
  shipquote serve

  # Start with custom config
  shipquote serve --config /etc/shipquote/config.yaml

  # Override listen address and rules file
  shipquote serve --listen 127.0.0.1:8080 --rules rules.yaml

  # Validate configuration and rules without starting
  shipquote serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level: debug, info, warn, error")
	serveCmd.Flags().StringVarP(&serveFlags.rulesPath, "rules", "r", "", "override rules file path")
	serveCmd.Flags().StringVar(&serveFlags.environment, "environment", "", "override environment: development, production")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate configuration and rules without starting the server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cfg, err = applyServeOverrides(cfg)
	if err != nil {
		return err
	}
	config.SetConfig(cfg)

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
	if err != nil {
		return cli.WrapConfigError("telemetry.logging", "failed to create logger", err)
	}
	defer func() { _ = logger.Shutdown() }()
	slog.SetDefault(logger.Slog())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Shipquote v%s\n", Version)
	if cfgFile != "" {
		fmt.Fprintf(out, "Loading configuration from: %s\n", cfgFile)
	}
	fmt.Fprintln(out, "✓ Configuration loaded")

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
	}

	rs, err := rules.LoadFile(cfg.Rules.Path, cfg.Rules.Strict)
	if collector != nil {
		collector.RecordRulesReload(err == nil)
	}
	if err != nil {
		return cli.WrapConfigError("rules.path", "failed to load rules", err)
	}
	sections := rs.Sections()
	if collector != nil {
		collector.UpdateRulesSections(sections.Pricing, sections.Alerts, sections.DeliveryTimes)
	}
	fmt.Fprintf(out, "✓ Rules loaded from %s\n", cfg.Rules.Path)
	if missing := rs.MissingDeliveryKeys(); len(missing) > 0 {
		slog.Warn("delivery time table incomplete", "missing", missing)
	}

	if serveFlags.dryRun {
		fmt.Fprintln(out, "✓ Dry run complete, server not started")
		return nil
	}

	var tracer *tracing.Tracer
	if cfg.Telemetry.Tracing.Enabled {
		tracer, err = tracing.New(&cfg.Telemetry.Tracing, Version)
		if err != nil {
			return cli.WrapConfigError("telemetry.tracing", "failed to initialize tracing", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracer.Shutdown(ctx); err != nil {
				slog.Warn("tracer shutdown failed", "error", err)
			}
		}()
	}

	srv := server.New(server.Options{
		Config:  cfg,
		Rules:   rs,
		Logger:  logger.Slog(),
		Metrics: collector,
		Tracer:  tracer,
		Build: server.BuildInfo{
			Version:   Version,
			Commit:    GitCommit,
			BuildDate: BuildDate,
		},
	})

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(ctx)
	}()

	select {
	case <-srv.Ready():
	case err := <-errChan:
		return cli.NewCommandError("serve", err)
	}

	addr := srv.Addr()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "✓ Server listening on %s\n", addr)
	fmt.Fprintf(out, "✓ Quote endpoint: http://%s/api/calculate\n", addr)
	if collector != nil {
		fmt.Fprintf(out, "✓ Metrics endpoint: http://%s%s\n", addr, cfg.Telemetry.Metrics.Path)
	}
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	if err := <-errChan; err != nil {
		return cli.NewCommandError("serve", err)
	}
	fmt.Fprintln(out, "✓ Server stopped")
	return nil
}

// applyServeOverrides returns a copy of cfg with the command-line overrides
// applied and validated. cfg itself is never modified, so a rejected
// override leaves the global configuration as loaded. Only scalar fields are
// overridden, which makes the shallow copy sufficient.
func applyServeOverrides(cfg *config.Config) (*config.Config, error) {
	c := *cfg
	if serveFlags.listenAddress != "" {
		c.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.logLevel != "" {
		c.Telemetry.Logging.Level = serveFlags.logLevel
	}
	if serveFlags.environment != "" {
		c.Server.Environment = serveFlags.environment
	}
	c.Rules.Path = rulesPath(serveFlags.rulesPath, cfg)
	if verbose {
		c.Telemetry.Logging.Level = "debug"
	}

	if err := config.Validate(&c); err != nil {
		return nil, cli.WrapConfigError("flags", "invalid command-line override", err)
	}
	return &c, nil
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/leengari/crackdb/internal/config"
	"github.com/leengari/crackdb/internal/engine"
	"github.com/leengari/crackdb/internal/logging"
	"github.com/leengari/crackdb/internal/metrics"
)

var (
	configPath string
	strategy   string
	logLevel   string
	traceOut   bool

	metricsAddr string
	metricsDump bool
)

var rootCmd = &cobra.Command{
	Use:   "crackdb",
	Short: "Adaptive-indexing columnar store",
	Long: `crackdb cracks an int64 column in place as equality queries arrive,
so repeated lookups get cheaper without building an index up front.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVarP(&strategy, "strategy", "s", "", "Run-merge strategy (underswap or overswap); overrides config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level; overrides config")
	rootCmd.PersistentFlags().BoolVar(&traceOut, "trace", false, "Print spans to stdout")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address while running")
	rootCmd.PersistentFlags().BoolVar(&metricsDump, "metrics-dump", false, "Print prometheus metrics when the command finishes")

	rootCmd.AddCommand(newBFSCommand(), newCompareCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runtime bundles what every subcommand needs.
type runtime struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	options  []engine.Option
	close    func()
}

func setup() (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if strategy != "" {
		cfg.Engine.Strategy = strategy
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closeLog := logging.SetupLogger(cfg.Logging)
	slog.SetDefault(logger)

	shutdownTrace, err := setupTracing(traceOut)
	if err != nil {
		closeLog()
		return nil, err
	}

	rt := &runtime{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		options:  []engine.Option{engine.WithLogger(logger)},
		close: func() {
			shutdownTrace()
			closeLog()
		},
	}
	if cfg.Metrics.Enabled {
		rt.options = append(rt.options, engine.WithObserver(metrics.NewObserver(rt.registry, cfg.Metrics.Namespace)))
	}
	if metricsAddr != "" {
		stopMetrics, err := serveMetrics(metricsAddr, rt.registry, logger)
		if err != nil {
			rt.close()
			return nil, err
		}
		closeRest := rt.close
		rt.close = func() {
			stopMetrics()
			closeRest()
		}
	}
	rt.options = append(rt.options, engine.WithObserver(engine.NewLoggingObserver(logger, slog.LevelDebug)))
	return rt, nil
}

// finish prints the gathered metrics when --metrics-dump is set.
func (rt *runtime) finish(w io.Writer) error {
	if !metricsDump {
		return nil
	}
	return dumpMetrics(w, rt.registry)
}

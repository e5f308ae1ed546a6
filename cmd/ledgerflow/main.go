package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	ledgerflow "github.com/ArthurBonsu/ledgerflow"
	"github.com/ArthurBonsu/ledgerflow/internal/config"
	"github.com/ArthurBonsu/ledgerflow/pkg/log"
)

const longHelp = `Validate, aggregate, and submit tabular domain datasets to a
transactional ledger, one audited write per record.

Highlights:
  - Schema validation with per-domain rules; bad rows are dropped and counted, never silently lost.
  - Concurrency-bounded submission with per-record failure isolation and a durable audit trail.
  - Configure via file, environment, or flags; watch mode tails an ingest directory.`

var exampleUsage = strings.TrimSpace(`
  ledgerflow run --domain emissions --csv melbourne.csv --auth-key <api-key>
  ledgerflow watch --domain city --ingest-dir ./ingest --dry-run
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := config.DefaultConfig()
	var (
		cfgPath    string
		domainName string
		csvPath    string
		ingestDir  string
	)

	var logger log.Logger = log.NewZerologAdapter()

	// loadConfig applies file and env configuration under the
	// precedence flags > env > file > defaults.
	loadConfig := func(cmd *cobra.Command) error {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = config.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && config.FileExists(cfgFile) {
			fc, err := config.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := config.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return err
			}
		}
		if err := config.ApplyEnvConfig(&cfg, changed); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			logger = log.NewZerologFileAdapter(f)
		}

		logCfg := cfg
		if len(logCfg.AuthKey) > 0 {
			logCfg.AuthKey = "*****"
		}
		logger.Info("configuration", log.Any("config", logCfg))
		return nil
	}

	root := &cobra.Command{
		Use:     "ledgerflow",
		Short:   "Submit validated domain datasets to a transactional ledger",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to TOML config file (default ~/.ledgerflow/config.toml)")
	root.PersistentFlags().StringVar(&domainName, "domain", "", fmt.Sprintf("data domain, one of: %s", strings.Join(ledgerflow.Domains(), ", ")))
	root.PersistentFlags().StringVar(&cfg.ServiceURL, "service-url", cfg.ServiceURL, "ledger gateway base URL")
	root.PersistentFlags().StringVar(&cfg.AuthKey, "auth-key", cfg.AuthKey, "gateway API key")
	root.PersistentFlags().StringVar(&cfg.Account, "account", cfg.Account, "ledger account for submissions")
	root.PersistentFlags().StringVar(&cfg.LogsDir, "logs-dir", cfg.LogsDir, "directory for per-domain audit logs")
	root.PersistentFlags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "mirror diagnostic logs to this JSON file")
	root.PersistentFlags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for watch-mode run state (default logs-dir)")
	root.PersistentFlags().IntVar(&cfg.MaxConcurrent, "max-concurrent", cfg.MaxConcurrent, "max in-flight ledger submissions")
	root.PersistentFlags().IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "records per submission batch")
	root.PersistentFlags().DurationVar(&cfg.ConfirmTimeout, "confirm-timeout", cfg.ConfirmTimeout, "per-record confirmation timeout")
	root.PersistentFlags().DurationVar(&cfg.HTTPTimeout, "http-timeout", cfg.HTTPTimeout, "per-request gateway timeout")
	root.PersistentFlags().StringVar(&cfg.RangePolicy, "range-policy", cfg.RangePolicy, "out-of-range handling: drop or clamp (default per domain)")
	root.PersistentFlags().BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "submit to an in-memory ledger instead of the gateway")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Process one dataset and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if domainName == "" || csvPath == "" {
				return fmt.Errorf("--domain and --csv are required")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, err := ledgerflow.Run(ctx, cfg, domainName, csvPath, logger)
			if err != nil {
				return err
			}

			out, merr := json.MarshalIndent(summary, "", "  ")
			if merr != nil {
				return merr
			}
			fmt.Println(string(out))

			if summary.Failed > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&csvPath, "csv", "", "path to the dataset CSV")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Tail an ingest directory and process every new dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if domainName == "" || ingestDir == "" {
				return fmt.Errorf("--domain and --ingest-dir are required")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err := ledgerflow.Watch(ctx, cfg, domainName, ingestDir, logger)
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}
	watchCmd.Flags().StringVar(&ingestDir, "ingest-dir", "", "directory to watch for dataset CSVs")

	root.AddCommand(runCmd, watchCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

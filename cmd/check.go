// File: cmd/check.go
package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/expectlint/internal/analysis/expectchain"
	"github.com/xkilldash9x/expectlint/internal/config"
	"github.com/xkilldash9x/expectlint/internal/discovery"
	"github.com/xkilldash9x/expectlint/internal/engine"
	"github.com/xkilldash9x/expectlint/internal/findings"
	"github.com/xkilldash9x/expectlint/internal/observability"
	"github.com/xkilldash9x/expectlint/internal/reporting"
	"github.com/xkilldash9x/expectlint/internal/source"
	"github.com/xkilldash9x/expectlint/internal/store"
)

// newCheckCmd creates and configures the `check` command.
func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Analyzes test files under the given paths for broken expect() chains",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to their viper keys so command-line flags override
			// config file and environment values.
			bindings := map[string]string{
				"output.format":               "format",
				"output.path":                 "output",
				"output.fail_on":              "fail-on",
				"rules.valid_expect.min_args": "min-args",
				"rules.valid_expect.max_args": "max-args",
				"engine.concurrency":          "concurrency",
				"discovery.changed_only":      "changed",
			}
			for key, flag := range bindings {
				if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			// Flags were bound after the persistent setup ran, so the final
			// configuration is assembled here.
			if raw := viper.GetStringMap("rules.valid_expect"); len(raw) > 0 {
				if err := config.ValidateRuleOptions(raw); err != nil {
					return fmt.Errorf("invalid rule options: %w", err)
				}
			}
			cfg, err := config.NewConfigFromViper(viper.GetViper())
			if err != nil {
				return err
			}

			run, err := runCheck(cmd.Context(), cfg, args, logger)
			if err != nil {
				return err
			}

			failOn := findings.Severity(cfg.Output.FailOn)
			if cfg.Output.FailOn != "never" && run.HasAtOrAbove(failOn) {
				return errFindings
			}
			return nil
		},
	}

	checkCmd.Flags().StringP("format", "f", "text", "Report format: text, json, junit or sarif")
	checkCmd.Flags().StringP("output", "o", "", "Report output path (default is stdout)")
	checkCmd.Flags().String("fail-on", "error", "Minimum severity that fails the run: error, warning, info or never")
	checkCmd.Flags().Int("min-args", 1, "Minimum number of arguments expect() must receive")
	checkCmd.Flags().Int("max-args", 2, "Maximum number of arguments expect() may receive")
	checkCmd.Flags().IntP("concurrency", "j", 8, "Number of files analyzed in parallel")
	checkCmd.Flags().Bool("changed", false, "Only analyze files the enclosing git worktree reports as changed")

	return checkCmd
}

// runCheck wires discovery, the analysis engine, reporting and the optional
// history store for one run. It is independent of cobra so tests can drive
// it directly.
func runCheck(ctx context.Context, cfg *config.Config, roots []string, logger *zap.Logger) (*findings.Run, error) {
	files, err := discovery.Discover(ctx, cfg.Discovery, roots, logger)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	if cfg.Discovery.ChangedOnly {
		files, err = discovery.ChangedOnly(".", files, logger)
		if err != nil {
			return nil, err
		}
	}

	parser := source.NewParser(logger, cfg.Discovery.MaxFileSize)
	analyzer := expectchain.NewAnalyzer(expectchain.Options{
		MinArgs: cfg.Rules.ValidExpect.MinArgs,
		MaxArgs: cfg.Rules.ValidExpect.MaxArgs,
	}, logger)
	logger.Debug("Analyzer configured",
		zap.Int("min_args", analyzer.Options().MinArgs),
		zap.Int("max_args", analyzer.Options().MaxArgs),
		zap.Int("files", len(files)))

	eng, err := engine.New(cfg.Engine, parser, analyzer, logger)
	if err != nil {
		return nil, err
	}

	run, err := eng.Run(ctx, files)
	if err != nil {
		return nil, err
	}

	reporter, err := reporting.New(cfg.Output.Format, cfg.Output.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize reporter: %w", err)
	}
	if err := reporter.Write(run); err != nil {
		reporter.Close()
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	if err := reporter.Close(); err != nil {
		return nil, err
	}

	// History is best-effort: a broken database never invalidates the
	// analysis that already completed.
	if cfg.History.Enabled() {
		saveHistory(ctx, cfg.History, run, logger)
	}

	return run, nil
}

func saveHistory(ctx context.Context, cfg config.HistoryConfig, run *findings.Run, logger *zap.Logger) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		logger.Warn("Failed to connect to history database; run not persisted", zap.Error(err))
		return
	}
	defer pool.Close()

	st, err := store.New(ctx, pool, logger)
	if err != nil {
		logger.Warn("Failed to initialize history store; run not persisted", zap.Error(err))
		return
	}
	if err := st.SaveRun(ctx, run); err != nil {
		logger.Warn("Failed to persist run history", zap.Error(err), zap.String("run_id", run.RunID))
		return
	}
	logger.Debug("Run history persisted", zap.String("run_id", run.RunID))
}

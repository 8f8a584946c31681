// File: cmd/root.go
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/expectlint/internal/config"
	"github.com/xkilldash9x/expectlint/internal/observability"
)

var cfgFile string

// errFindings signals that the run completed but found violations at or
// above the fail-on threshold. It maps to exit code 1; every other error
// is operational and maps to exit code 2.
var errFindings = errors.New("findings at or above the fail-on severity")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "expectlint",
	Short: "expectlint validates expect() assertion chains in JavaScript and TypeScript test files.",
	Long: `expectlint statically analyzes test files for assertion chains that can
never fail: expect() calls missing a matcher, matchers that are named but
never invoked, and expect() calls with the wrong number of arguments.`,
	// Version is set at build time. See cmd/version.go.
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Runs before any command, setting up config and logging.
		if err := config.InitializeViper(viper.GetViper(), cfgFile); err != nil {
			return err
		}
		config.SetDefaults(viper.GetViper())

		cfg, err := config.NewConfigFromViper(viper.GetViper())
		if err != nil {
			// Fall back to a minimal console logger so the failure itself
			// is still reported through the normal channel.
			observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "expectlint"})
			return err
		}

		observability.InitializeLogger(cfg.Logger)
		observability.GetLogger().Debug("Starting expectlint", zap.String("version", Version))
		return nil
	},
}

// Execute runs the root command and translates the outcome into the process
// exit status: 0 clean, 1 findings at the fail-on threshold, 2 operational
// failure.
func Execute() {
	err := rootCmd.Execute()
	// os.Exit skips deferred functions, so flush the file core here.
	observability.Sync()
	if err == nil {
		return
	}
	if errors.Is(err, errFindings) {
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(2)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.expectlint.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newConfigCmd())
}

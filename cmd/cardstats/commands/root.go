package commands

import (
	"cardstats/lib/telemetry"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath *string
var verbose *bool

// loaded by the root command before any subcommand runs
var config Config

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "cardstats.json5", "The configuration file, a sibling <name>.local.json5 overrides it.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enables debug logs.")
}

var rootCmd = &cobra.Command{
	Use:   "cardstats",
	Short: "cardstats republishes the bank-wise ATM/POS/card statistics workbooks as JSON.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)

		cfg, err := LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("read config %s: %w", *configPath, err)
		}
		config = cfg
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the command line and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

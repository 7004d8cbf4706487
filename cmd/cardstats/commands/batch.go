package commands

import (
	"cardstats/internal/batch"
	"cardstats/lib/serviceutil"
	"os"

	"github.com/spf13/cobra"
)

var batchManifest *string

func init() {
	batchManifest = batchCmd.Flags().String("manifest", "", "The manifest to read, defaults to the configured one.")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch [--manifest <path/to/manifest.jsonl>]",
	Short: "Publishes every workbook of the manifest, skipping the ones that cannot be published.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		manifestPath := config.Manifest
		if *batchManifest != "" {
			manifestPath = *batchManifest
		}

		emitter, database, err := config.NewEmitter(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to create emitter", err)
		}
		if database != nil {
			defer database.Close()
		}

		opts, err := config.Extract.Compile()
		if err != nil {
			serviceutil.Fatal("failed to compile extract patterns", err)
		}
		runner, err := batch.NewRunner(emitter, os.Stdout, opts.PreviewRows)
		if err != nil {
			serviceutil.Fatal("failed to create batch runner", err)
		}

		_, err = runner.Run(cmd.Context(), manifestPath)
		if err != nil {
			serviceutil.Fatal("batch failed", err)
		}
	},
}

package commands

import (
	"cardstats/internal/acquire"
	"cardstats/internal/telemetry"
	"cardstats/lib/serviceutil"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(downloadCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Downloads every statistics workbook linked from the listing page and writes the manifest.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, err := acquire.NewClient(config.AcquireConfig(), telemetry.SlogAPI{})
		if err != nil {
			serviceutil.Fatal("failed to create client", err)
		}

		result, err := client.Acquire(cmd.Context(), config.DownloadsDir, config.Manifest)
		if err != nil {
			serviceutil.Fatal("failed to download documents", err)
		}
		if len(result.Entries) == 0 {
			fmt.Println("No documents found on the listing page, it may be blocked or have changed.")
		}
		for _, doc := range result.Failed {
			fmt.Printf("Failed: %s\n", doc.URL)
		}
		fmt.Printf("Saved %d entries to %s\n", len(result.Entries), config.Manifest)
	},
}

package commands

import (
	"cardstats/lib/serviceutil"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(emitCmd)
}

var emitCmd = &cobra.Command{
	Use:   "emit <path/to/workbook> <year> <month>",
	Short: "Publishes a single workbook as the given month.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid year %q: %w", args[1], err)
		}
		month, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid month %q: %w", args[2], err)
		}

		emitter, database, err := config.NewEmitter(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to create emitter", err)
		}
		if database != nil {
			defer database.Close()
		}

		summary, err := emitter.EmitMonth(cmd.Context(), args[0], year, month)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d banks)\n", filepath.Join(config.OutputDir, summary.Path), summary.Records)
		for _, b := range summary.NewBanks {
			fmt.Printf("New bank: %d %s\n", b.ID, b.Name)
		}
		return nil
	},
}

package commands

import (
	"cardstats/internal/catalog"
	"cardstats/internal/publish"
	"cardstats/internal/telemetry"
	"cardstats/lib/serviceutil"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(banksCmd)
}

var banksCmd = &cobra.Command{
	Use:   "banks",
	Short: "Prints the bank catalog.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cat, err := catalog.Load(filepath.Join(config.OutputDir, publish.BanksFile), nil, telemetry.SlogAPI{})
		if err != nil {
			serviceutil.Fatal("failed to read bank catalog", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name"})
		for _, b := range cat.Banks() {
			t.AppendRow(table.Row{b.ID, b.Name})
		}
		t.AppendFooter(table.Row{"", cat.Len()})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

package commands

import (
	"cardstats/internal/extract"
	"cardstats/internal/period"
	"cardstats/internal/workbook"
	"cardstats/lib/serviceutil"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func scoreCell(name string, concept extract.Concept, selected extract.Candidate, found bool) string {
	for _, c := range extract.Candidates([]string{name}, concept) {
		score := strconv.Itoa(c.Score)
		if found && selected.Name == name {
			return score + " *"
		}
		return score
	}
	return ""
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <path/to/workbook>",
	Short: "Prints the detected header, the flattened column names and the score of each column.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		opts, err := config.Extract.Compile()
		if err != nil {
			serviceutil.Fatal("failed to compile extract patterns", err)
		}

		format, err := workbook.Sniff(path)
		if err != nil {
			serviceutil.Fatal("failed to read workbook", err)
		}
		tbl, err := workbook.Open(cmd.Context(), path)
		if err != nil {
			serviceutil.Fatal("failed to read workbook", err)
		}

		fmt.Printf("Format: %s, %d rows x %d columns\n", format, tbl.Len(), tbl.Width())
		if p, err := period.FromFilename(filepath.Base(path)); err == nil {
			fmt.Printf("Period (file name): %s\n", p)
		}
		if p, err := period.FromTable(tbl, opts.PreviewRows); err == nil {
			fmt.Printf("Period (title): %s\n", p)
		}

		start, columns, err := extract.Header(cmd.Context(), tbl, opts)
		if err != nil {
			serviceutil.Fatal("failed to locate header", err)
		}
		fmt.Printf("Header: rows %d-%d\n", start, start+opts.HeaderDepth-1)

		bank, bankErr := extract.SelectColumn(columns, opts.Bank)
		credit, creditErr := extract.SelectColumn(columns, opts.Credit)
		debit, debitErr := extract.SelectColumn(columns, opts.Debit)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Column", "Bank name", "Credit cards", "Debit cards"})
		for i, name := range columns {
			t.AppendRow(table.Row{
				i,
				name,
				scoreCell(name, opts.Bank, bank, bankErr == nil),
				scoreCell(name, opts.Credit, credit, creditErr == nil),
				scoreCell(name, opts.Debit, debit, debitErr == nil),
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		for _, err := range []error{bankErr, creditErr, debitErr} {
			if err != nil {
				fmt.Println(err)
			}
		}
		if bankErr != nil || creditErr != nil || debitErr != nil {
			return
		}

		rows := extract.CleanRows(tbl, start+opts.HeaderDepth, bank.Index, credit.Index, debit.Index)
		fmt.Printf("Rows: %d\n", len(rows))
	},
}

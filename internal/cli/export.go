package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sanitrack/cleanlog-go/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFrom string
	exportTo   string
	exportDays int
	exportDir  string
)

var exportCmd = &cobra.Command{
	Use:   "export <facility-query>",
	Short: "Export cleaning history for matching facilities to a spreadsheet",
	Long: `Run the export pipeline from the command line. The window follows the
same precedence as the export_history tool: --days beats --from/--to,
and with neither the trailing 7 days apply.

Examples:
  cleanlogctl export "Room 5"
  cleanlogctl export "ICU" --from 01/01/2025 --to 31/03/2025
  cleanlogctl export "Reception" --days 30 --out ./exports`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "window start (dd/mm/yyyy)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "window end (dd/mm/yyyy)")
	exportCmd.Flags().IntVar(&exportDays, "days", 0, "trailing day count, overrides --from/--to")
	exportCmd.Flags().StringVar(&exportDir, "out", ".", "directory the workbook is written to")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	pipeline := export.NewPipeline(dbClient, dbClient, dbClient, export.Options{
		ArtifactDir: exportDir,
		PageSize:    cfg.PageSize,
		BatchSize:   cfg.BatchSize,
		RecordCap:   cfg.RecordCap,
		ScoreCutoff: cfg.ScoreCutoff,
	}, logger)

	res, err := pipeline.Run(context.Background(), export.Request{
		Query:    args[0],
		FromDate: exportFrom,
		ToDate:   exportTo,
		Days:     exportDays,
	}, export.DefaultLastSevenDays)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d rows (%d batches, %d skipped) for window %s\n",
		res.Rows, res.Batches, res.Skipped, res.Window)
	if res.Capped {
		fmt.Println("Record cap reached; the file holds the first matching records only.")
	}
	fmt.Println(res.Path)
	return nil
}

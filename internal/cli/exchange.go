package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/smart-task-manager/internal/exchange"
	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

var (
	exportFormat string
	exportOut    string
	resetYes     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks as a JSON backup, CSV, or XLSX",
	Long: `Export all tasks. JSON produces a backup that 'stm import' can read;
CSV and XLSX produce spreadsheets.

Without --out the file is written to the current directory under a dated
name such as smart-task-manager-backup-2025-03-10.json. Use --out - to
write to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		export, err := exporterFor(exportFormat)
		if err != nil {
			return err
		}
		now := Clock.Now()
		tasks := Store.Snapshot()

		if exportOut == "-" {
			return export(cmd.OutOrStdout(), tasks, now)
		}

		path := exportOut
		if path == "" {
			path = exchange.BackupFileName(exportFormat, now)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := export(f, tasks, now); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s\n", len(tasks), path)
		return nil
	},
}

type exportFunc func(w io.Writer, tasks []models.Task, now time.Time) error

func exporterFor(format string) (exportFunc, error) {
	switch format {
	case "json":
		return exchange.ExportJSON, nil
	case "csv":
		return func(w io.Writer, tasks []models.Task, now time.Time) error {
			return exchange.ExportCSV(w, tasks, now.Location())
		}, nil
	case "xlsx":
		return func(w io.Writer, tasks []models.Task, now time.Time) error {
			return exchange.ExportXLSX(w, tasks, now.Location())
		}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (use json, csv, xlsx)", format)
	}
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import tasks from a JSON backup",
	Long: `Import tasks from a JSON backup. Imported tasks are appended under new
ids; existing tasks are never overwritten. Invalid entries are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()

		res := exchange.NewImporter(Store).Import(f)
		if !res.Success {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Message)
		return persistWarning(cmd)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored tasks",
	Long: `Delete the stored task collection. The sample tasks are restored the
next time stm starts. Requires --yes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Data == nil {
			return fmt.Errorf("data store not initialized")
		}
		if !resetYes {
			return fmt.Errorf("refusing to delete all tasks without --yes")
		}
		if err := Data.Clear(); err != nil {
			return fmt.Errorf("clearing data: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All data cleared. Sample tasks will be restored on next start.")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format (json, csv, xlsx)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path, or - for stdout")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm deletion of all tasks")
	rootCmd.AddCommand(exportCmd, importCmd, resetCmd)
}

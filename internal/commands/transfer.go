package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/backup"
	"github.com/havenly-dev/havenly/internal/input"
	"github.com/havenly-dev/havenly/internal/tracker"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var format, output, month string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the budget as a JSON backup, an XLSX workbook or a month of transactions as CSV",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			var buf bytes.Buffer
			var name string
			switch format {
			case "json":
				if err := backup.Export(cmd.Context(), a.tracker, &buf); err != nil {
					return err
				}
				name = backup.FileName(a.now())
			case "xlsx":
				if err := backup.ExportWorkbook(&buf, a.tracker.Snapshot(), a.now()); err != nil {
					return err
				}
				name = backup.WorkbookFileName(a.now())
			case "csv":
				m, err := monthArg(a, month)
				if err != nil {
					return err
				}
				if err := backup.ExportTransactionsCSV(&buf, a.tracker.Snapshot(), m); err != nil {
					return err
				}
				name = fmt.Sprintf("havenly-transactions-%s.csv", m)
			default:
				return &input.Error{Field: "format", Value: format, Reason: "expected json, xlsx or csv"}
			}

			if output == "-" {
				_, err := io.Copy(a.out, &buf)
				return err
			}
			if output == "" {
				output = name
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			abs, _ := filepath.Abs(output)
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", abs)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "json, xlsx or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default a dated name in the current directory)")
	cmd.Flags().StringVar(&month, "month", "", "month YYYY-MM for csv (default current)")

	return cmd
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the budget with a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			a.rec.Describe(filepath.Base(args[0]))
			if _, err := backup.ImportFile(cmd.Context(), a.tracker, args[0]); err != nil {
				if errors.Is(err, backup.ErrInvalidBackup) {
					return fmt.Errorf("%s: %w; please use a valid backup file", args[0], err)
				}
				return err
			}
			a.rec.Record(tracker.Event{Command: "import", At: a.now()})
			a.printf("Imported %s\n", args[0])
			return nil
		}),
	}
}

func newResetCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard all data and start from the default budget",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			if !yes {
				return errors.New("reset deletes every record; rerun with --yes to confirm")
			}
			a.rec.Describe("")
			a.tracker.Reset(cmd.Context())
			a.printf("Budget reset to defaults\n")
			return nil
		}),
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")

	return cmd
}

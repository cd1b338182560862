package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/activity"
	"github.com/havenly-dev/havenly/internal/render"
)

func newLogCommand(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent changes from the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := opts.budgetDir()
			if err != nil {
				return err
			}
			entries, err := activity.Read(dir)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No activity recorded.")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			rows := make([][]string, 0, len(entries))
			for i := len(entries) - 1; i >= 0; i-- {
				e := entries[i]
				rows = append(rows, []string{
					e.Timestamp.Local().Format(time.DateTime), e.Command, shortID(e.RecordID), e.Details, e.CommitHash,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), render.RenderTable(render.Table{
				Headers: []string{"When", "Command", "Record", "Details", "Commit"},
				Rows:    rows,
			}))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show, 0 for all")

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "havenly",
		Short:   "Household budget tracker",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "budget directory (default $HAVENLY_HOME or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&opts.today, "today", "", "treat this date (YYYY-MM-DD) as today")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newStatusCommand(opts),
		newBudgetCommand(opts),
		newExpenseCommand(opts),
		newFundCommand(opts),
		newCardCommand(opts),
		newRothCommand(opts),
		newEmergencyCommand(opts),
		newPaycheckCommand(opts),
		newSettingsCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
		newResetCommand(opts),
		newLogCommand(opts),
	)

	return rootCmd
}

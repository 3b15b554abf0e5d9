package commands

import (
	"github.com/spf13/cobra"

	"github.com/jcjr031064/cafe-ledger-flow/internal/buildinfo"
	"github.com/jcjr031064/cafe-ledger-flow/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "cafeledger",
		Short:   "Double-entry books for a multi-branch coffee chain",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.FileName, "config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newEntitiesCommand(a))
	rootCmd.AddCommand(newAccountsCommand(a))
	rootCmd.AddCommand(newJournalCommand(a))
	rootCmd.AddCommand(newReportCommand(a))
	rootCmd.AddCommand(newTemplatesCommand(a))

	return rootCmd
}

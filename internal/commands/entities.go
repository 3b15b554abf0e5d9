package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcjr031064/cafe-ledger-flow/internal/entities"
	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

func newEntitiesCommand(a *app) *cobra.Command {
	entitiesCmd := &cobra.Command{
		Use:   "entities",
		Short: "Business units of the chain",
	}
	entitiesCmd.AddCommand(newEntitiesListCommand(a))
	return entitiesCmd
}

func newEntitiesListCommand(a *app) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List head office, branches and commissary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.newLedger()
			if err != nil {
				return err
			}

			list := l.SearchEntities(search)
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "CODE\tNAME\tTYPE\tACTIVE\tADDRESS")
			for _, e := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Code, e.Name, e.Type, yesNo(e.IsActive), e.Address)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			counts := entities.CountByType(list)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d entities (%d head office, %d branches, %d commissary)\n",
				len(list), counts[model.EntityTypeHeadOffice], counts[model.EntityTypeBranch], counts[model.EntityTypeCommissary])
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name or code")

	return cmd
}

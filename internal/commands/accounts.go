package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcjr031064/cafe-ledger-flow/internal/accounts"
	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

func newAccountsCommand(a *app) *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts",
	}
	accountsCmd.AddCommand(newAccountsListCommand(a))
	accountsCmd.AddCommand(newAccountsCategoriesCommand())
	accountsCmd.AddCommand(newAccountsExportCommand(a))
	return accountsCmd
}

func newAccountsListCommand(a *app) *cobra.Command {
	var search, typ, entries string
	var grouped bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with their balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := accounts.Filter{Term: search, Type: model.AccountType(typ)}
			if typ != "" && !filter.Type.Valid() {
				return fmt.Errorf("unknown account type %q", typ)
			}

			l, err := a.ledgerWithEntries(entries)
			if err != nil {
				return err
			}

			list := l.SearchAccounts(filter)
			out := cmd.OutOrStdout()
			if !grouped {
				return printAccounts(out, list)
			}
			for i, g := range accounts.GroupByCategory(list) {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s (%d)\n", g.Category, len(g.Accounts))
				if err := printAccounts(out, g.Accounts); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name or code")
	cmd.Flags().StringVar(&typ, "type", "", "filter by type (asset, liability, equity, revenue, expense)")
	cmd.Flags().StringVar(&entries, "entries", "", "journal batch file to record before listing")
	cmd.Flags().BoolVar(&grouped, "group", false, "group by category")

	return cmd
}

func printAccounts(w io.Writer, list []model.Account) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "CODE\tNAME\tTYPE\tCATEGORY\tACTIVE\tBALANCE")
	for _, acct := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			acct.Code, acct.Name, acct.Type, acct.Category, yesNo(acct.IsActive), money(acct.Balance))
	}
	return tw.Flush()
}

func newAccountsCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories <type>",
		Short: "Show suggested categories for an account type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ := model.AccountType(strings.ToLower(args[0]))
			if !typ.Valid() {
				return fmt.Errorf("unknown account type %q", args[0])
			}
			for _, c := range accounts.CategoriesFor(typ) {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newAccountsExportCommand(a *app) *cobra.Command {
	var output, entries string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the chart of accounts as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.ledgerWithEntries(entries)
			if err != nil {
				return err
			}

			list := exportable(l, l.Accounts())
			if output == "" || output == "-" {
				return accounts.WriteAccounts(cmd.OutOrStdout(), list)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := accounts.WriteAccounts(f, list); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&entries, "entries", "", "journal batch file to record before exporting")

	return cmd
}

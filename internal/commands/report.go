package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcjr031064/cafe-ledger-flow/internal/report"
)

// dashboardEntries is how many recent entries the dashboard shows.
const dashboardEntries = 5

func newReportCommand(a *app) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Trial balance and financial summary",
	}
	reportCmd.AddCommand(newTrialBalanceCommand(a))
	reportCmd.AddCommand(newSummaryCommand(a))
	reportCmd.AddCommand(newDashboardCommand(a))
	return reportCmd
}

func newTrialBalanceCommand(a *app) *cobra.Command {
	var entries, csvOut, xlsxOut string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.ledgerWithEntries(entries)
			if err != nil {
				return err
			}
			items := l.TrialBalance()
			out := cmd.OutOrStdout()

			if xlsxOut != "" {
				f, err := os.Create(xlsxOut)
				if err != nil {
					return fmt.Errorf("creating %s: %w", xlsxOut, err)
				}
				if err := report.WriteWorkbook(f, items, l.FinancialSummary()); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", xlsxOut)
				return nil
			}

			switch csvOut {
			case "":
			case "-":
				return report.WriteTrialBalanceCSV(out, items)
			default:
				f, err := os.Create(csvOut)
				if err != nil {
					return fmt.Errorf("creating %s: %w", csvOut, err)
				}
				if err := report.WriteTrialBalanceCSV(f, items); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", csvOut)
				return nil
			}

			tw := newTable(out)
			fmt.Fprintln(tw, "CODE\tACCOUNT\tDEBIT\tCREDIT")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.AccountCode, it.AccountName, money(it.Debit), money(it.Credit))
			}
			debit, credit := report.TrialBalanceTotals(items)
			fmt.Fprintf(tw, "\tTOTAL\t%s\t%s\n", money(debit), money(credit))
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&entries, "entries", "", "journal batch file to record first")
	cmd.Flags().StringVar(&csvOut, "csv", "", "write CSV to this file (- for stdout)")
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "write an Excel workbook to this file")

	return cmd
}

func newSummaryCommand(a *app) *cobra.Command {
	var entries string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print totals by account type and net income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.ledgerWithEntries(entries)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), a.cfg.Business.Currency, l.FinancialSummary())
		},
	}

	cmd.Flags().StringVar(&entries, "entries", "", "journal batch file to record first")

	return cmd
}

func newDashboardCommand(a *app) *cobra.Command {
	var entries string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the summary, entity count and most recent entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.ledgerWithEntries(entries)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s\n\n", a.cfg.Business.Name)
			if err := printSummary(out, a.cfg.Business.Currency, l.FinancialSummary()); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nEntities: %d  Accounts: %d  Entries: %d\n\n",
				len(l.Entities()), len(l.Accounts()), len(l.JournalEntries()))

			fmt.Fprintln(out, "Recent entries")
			return printEntries(out, l.RecentEntries(dashboardEntries))
		},
	}

	cmd.Flags().StringVar(&entries, "entries", "", "journal batch file to record first")

	return cmd
}

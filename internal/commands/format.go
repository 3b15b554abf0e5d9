package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// printEntries writes a one-row-per-entry summary table.
func printEntries(w io.Writer, entries []model.JournalEntry) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "REFERENCE\tDATE\tSTATUS\tDEBIT\tCREDIT\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Reference, e.Date.Format("2006-01-02"), e.Status, money(e.TotalDebit), money(e.TotalCredit), e.Description)
	}
	return tw.Flush()
}

// printSummary writes the financial summary.
func printSummary(w io.Writer, currency string, s model.FinancialSummary) error {
	tw := newTable(w)
	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Total Assets", s.TotalAssets},
		{"Total Liabilities", s.TotalLiabilities},
		{"Total Equity", s.TotalEquity},
		{"Total Revenue", s.TotalRevenue},
		{"Total Expenses", s.TotalExpenses},
		{"Net Income", s.NetIncome},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s %s\n", r.label, currency, money(r.value))
	}
	return tw.Flush()
}

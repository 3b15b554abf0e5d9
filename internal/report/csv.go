package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// TrialBalanceHeader is the CSV header for a trial balance export.
const TrialBalanceHeader = "account_code,account_name,account_type,debit,credit"

const (
	numFields   = 5
	colCode     = 0
	colName     = 1
	colType     = 2
	colDebit    = 3
	colCredit   = 4
	totalsLabel = "TOTAL"
)

// WriteTrialBalanceCSV writes items to w (including header) followed by a
// totals row.
func WriteTrialBalanceCSV(w io.Writer, items []model.TrialBalanceItem) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(TrialBalanceHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, it := range items {
		if err := cw.Write(MarshalItem(it)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	debit, credit := TrialBalanceTotals(items)
	totals := make([]string, numFields)
	totals[colCode] = totalsLabel
	totals[colDebit] = debit.StringFixed(2)
	totals[colCredit] = credit.StringFixed(2)
	if err := cw.Write(totals); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// MarshalItem converts a trial balance row to a CSV record.
func MarshalItem(it model.TrialBalanceItem) []string {
	rec := make([]string, numFields)
	rec[colCode] = it.AccountCode
	rec[colName] = it.AccountName
	rec[colType] = string(it.AccountType)
	rec[colDebit] = it.Debit.StringFixed(2)
	rec[colCredit] = it.Credit.StringFixed(2)
	return rec
}

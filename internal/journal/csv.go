package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// Header is the CSV header for a journal export, one row per line item.
const Header = "entry_id,reference,date,entity_id,status,line_id,account_code,account_name,description,debit,credit"

const (
	numFields   = 11
	dateFormat  = "2006-01-02"
	colEntryID  = 0
	colRef      = 1
	colDate     = 2
	colEntity   = 3
	colStatus   = 4
	colLineID   = 5
	colAcctCode = 6
	colAcctName = 7
	colDesc     = 8
	colDebit    = 9
	colCredit   = 10
)

// WriteEntries writes entries to w (including header), one row per line item.
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 1
	for _, e := range entries {
		for _, line := range e.Lines {
			row++
			if err := cw.Write(MarshalLine(e, line)); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLine converts one line of an entry to a CSV row ([]string).
func MarshalLine(e model.JournalEntry, line model.LineItem) []string {
	rec := make([]string, numFields)
	rec[colEntryID] = e.ID
	rec[colRef] = e.Reference
	rec[colDate] = e.Date.Format(dateFormat)
	rec[colEntity] = e.EntityID
	rec[colStatus] = string(e.Status)
	rec[colLineID] = line.ID
	rec[colAcctCode] = line.AccountCode
	rec[colAcctName] = line.AccountName
	rec[colDesc] = line.Description

	if line.IsDebit() {
		rec[colDebit] = line.Debit.StringFixed(2)
	} else {
		rec[colCredit] = line.Credit.StringFixed(2)
	}
	return rec
}

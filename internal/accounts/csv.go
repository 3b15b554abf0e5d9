package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

const (
	numFields   = 8
	colID       = 0
	colCode     = 1
	colName     = 2
	colType     = 3
	colCategory = 4
	colActive   = 5
	colEntity   = 6
	colBalance  = 7
)

// Header is the CSV header for a chart-of-accounts export.
var Header = []string{"account_id", "code", "name", "type", "category", "is_active", "entity_id", "balance"}

// ReadAccounts reads a chart-of-accounts CSV.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes a chart-of-accounts CSV.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colCategory] = acct.Category
	row[colActive] = strconv.FormatBool(acct.IsActive)
	row[colEntity] = acct.EntityID
	row[colBalance] = acct.Balance.StringFixed(2)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	typ := model.AccountType(record[colType])
	if !typ.Valid() {
		return model.Account{}, fmt.Errorf("unknown account type %q", record[colType])
	}

	active, err := strconv.ParseBool(record[colActive])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing is_active %q: %w", record[colActive], err)
	}

	balance := decimal.Zero
	if record[colBalance] != "" {
		balance, err = decimal.NewFromString(record[colBalance])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
		}
	}

	return model.Account{
		ID:       record[colID],
		Code:     record[colCode],
		Name:     record[colName],
		Type:     typ,
		Category: record[colCategory],
		IsActive: active,
		EntityID: record[colEntity],
		Balance:  balance,
	}, nil
}

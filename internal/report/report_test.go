package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func acct(code, name string, typ model.AccountType, balance string) model.Account {
	return model.Account{ID: code, Code: code, Name: name, Type: typ, IsActive: true, Balance: dec(balance)}
}

func sampleAccounts() []model.Account {
	return []model.Account{
		acct("1001", "Cash", model.AccountTypeAsset, "1500.00"),
		acct("1005", "Equipment", model.AccountTypeAsset, "0"),
		acct("2001", "Accounts Payable", model.AccountTypeLiability, "300.00"),
		acct("3001", "Share Capital", model.AccountTypeEquity, "1000.00"),
		acct("4001", "Coffee Sales", model.AccountTypeRevenue, "900.00"),
		acct("5002", "Rent Expense", model.AccountTypeExpense, "700.00"),
	}
}

func TestTrialBalance_NormalSides(t *testing.T) {
	items := TrialBalance(sampleAccounts())
	require.Len(t, items, 6, "every account gets a row")

	tests := []struct {
		code   string
		debit  string
		credit string
	}{
		{"1001", "1500", "0"},
		{"1005", "0", "0"},
		{"2001", "0", "300"},
		{"3001", "0", "1000"},
		{"4001", "0", "900"},
		{"5002", "700", "0"},
	}
	for i, tt := range tests {
		it := items[i]
		assert.Equal(t, tt.code, it.AccountCode)
		assert.True(t, it.Debit.Equal(dec(tt.debit)), "%s debit = %s", tt.code, it.Debit)
		assert.True(t, it.Credit.Equal(dec(tt.credit)), "%s credit = %s", tt.code, it.Credit)
	}

	debit, credit := TrialBalanceTotals(items)
	assert.True(t, debit.Equal(dec("2200")), "debit total = %s", debit)
	assert.True(t, credit.Equal(dec("2200")), "credit total = %s", credit)
}

func TestTrialBalance_ContraBalances(t *testing.T) {
	items := TrialBalance([]model.Account{
		acct("1001", "Cash", model.AccountTypeAsset, "-250.00"),
		acct("2001", "Accounts Payable", model.AccountTypeLiability, "-40.00"),
	})

	assert.True(t, items[0].Debit.IsZero())
	assert.True(t, items[0].Credit.Equal(dec("250")), "overdraft shows as credit")
	assert.True(t, items[1].Debit.Equal(dec("40")), "overpaid payable shows as debit")
	assert.True(t, items[1].Credit.IsZero())
}

func TestTrialBalance_PositiveBalanceOneColumn(t *testing.T) {
	for _, it := range TrialBalance(sampleAccounts()) {
		if it.Debit.IsPositive() {
			assert.True(t, it.Credit.IsZero(), it.AccountCode)
		}
		if it.Credit.IsPositive() {
			assert.True(t, it.Debit.IsZero(), it.AccountCode)
		}
	}
}

func TestTrialBalance_DoesNotMutate(t *testing.T) {
	accounts := sampleAccounts()
	accounts[0].Balance = dec("-5")
	_ = TrialBalance(accounts)
	assert.True(t, accounts[0].Balance.Equal(dec("-5")))
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleAccounts())
	assert.True(t, s.TotalAssets.Equal(dec("1500")))
	assert.True(t, s.TotalLiabilities.Equal(dec("300")))
	assert.True(t, s.TotalEquity.Equal(dec("1000")))
	assert.True(t, s.TotalRevenue.Equal(dec("900")))
	assert.True(t, s.TotalExpenses.Equal(dec("700")))
	assert.True(t, s.NetIncome.Equal(dec("200")))
}

func TestSummarize_NetLoss(t *testing.T) {
	s := Summarize([]model.Account{
		acct("4001", "Coffee Sales", model.AccountTypeRevenue, "100"),
		acct("5002", "Rent Expense", model.AccountTypeExpense, "350.25"),
	})
	assert.True(t, s.NetIncome.Equal(dec("-250.25")), "net income = %s", s.NetIncome)
	assert.True(t, s.NetIncome.Equal(s.TotalRevenue.Sub(s.TotalExpenses)))
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.NetIncome.IsZero())
	assert.True(t, s.TotalAssets.IsZero())
}

func TestDerivationsAreIdempotent(t *testing.T) {
	accounts := sampleAccounts()
	assert.Equal(t, TrialBalance(accounts), TrialBalance(accounts))
	assert.Equal(t, Summarize(accounts), Summarize(accounts))
}

func TestWriteTrialBalanceCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrialBalanceCSV(&buf, TrialBalance(sampleAccounts())))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 8, "header + 6 rows + totals")

	assert.Equal(t, []string{"account_code", "account_name", "account_type", "debit", "credit"}, records[0])
	assert.Equal(t, []string{"1001", "Cash", "asset", "1500.00", "0.00"}, records[1])
	assert.Equal(t, []string{"TOTAL", "", "", "2200.00", "2200.00"}, records[7])
}

func TestWriteWorkbook(t *testing.T) {
	accounts := sampleAccounts()
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, TrialBalance(accounts), Summarize(accounts)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{TrialBalanceSheet, SummarySheet}, f.GetSheetList())

	raw := excelize.Options{RawCellValue: true}
	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref, raw)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Code", cell(TrialBalanceSheet, "A1"))
	assert.Equal(t, "Cash", cell(TrialBalanceSheet, "B2"))
	assert.Equal(t, "1500", cell(TrialBalanceSheet, "D2"))
	assert.Equal(t, "Total", cell(TrialBalanceSheet, "A8"))
	assert.Equal(t, "2200", cell(TrialBalanceSheet, "D8"))
	assert.Equal(t, "2200", cell(TrialBalanceSheet, "E8"))

	assert.Equal(t, "Net Income", cell(SummarySheet, "A7"))
	assert.Equal(t, "200", cell(SummarySheet, "B7"))
}

package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountTypeDebitNormal(t *testing.T) {
	tests := []struct {
		typ  AccountType
		want bool
	}{
		{AccountTypeAsset, true},
		{AccountTypeExpense, true},
		{AccountTypeLiability, false},
		{AccountTypeEquity, false},
		{AccountTypeRevenue, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.IsDebitNormal(), "IsDebitNormal(%q)", tt.typ)
		assert.True(t, tt.typ.Valid())
	}
	assert.False(t, AccountType("contra").Valid())
}

func TestAccountApply(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	cash := Account{Type: AccountTypeAsset}
	sales := Account{Type: AccountTypeRevenue}

	assert.True(t, cash.Apply(hundred, decimal.Zero).Equal(hundred))
	assert.True(t, cash.Apply(decimal.Zero, hundred).Equal(hundred.Neg()))
	assert.True(t, sales.Apply(decimal.Zero, hundred).Equal(hundred))
	assert.True(t, sales.Apply(hundred, decimal.Zero).Equal(hundred.Neg()))
}

func TestLineTotals(t *testing.T) {
	lines := []LineItem{
		{Debit: decimal.RequireFromString("60.00")},
		{Debit: decimal.RequireFromString("40.00")},
		{Credit: decimal.RequireFromString("100.00")},
	}
	debit, credit := LineTotals(lines)
	assert.True(t, debit.Equal(decimal.NewFromInt(100)))
	assert.True(t, credit.Equal(decimal.NewFromInt(100)))

	debit, credit = LineTotals(nil)
	assert.True(t, debit.IsZero())
	assert.True(t, credit.IsZero())
}

func TestLineIsDebit(t *testing.T) {
	assert.True(t, LineItem{Debit: decimal.RequireFromString("4.50")}.IsDebit())
	assert.False(t, LineItem{Credit: decimal.RequireFromString("4.50")}.IsDebit())
}

func TestCloneDoesNotShareLines(t *testing.T) {
	e := JournalEntry{Lines: []LineItem{{Description: "orig"}}}
	c := e.Clone()
	c.Lines[0].Description = "changed"
	assert.Equal(t, "orig", e.Lines[0].Description)
	assert.False(t, e.IsPosted())
}

package model

import "github.com/shopspring/decimal"

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// AccountTypes lists every account type in chart order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// IsDebitNormal reports whether debits increase accounts of this type.
// Assets and expenses are debit-normal; liabilities, equity and revenue are credit-normal.
func (t AccountType) IsDebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Account is a ledger account in the chart of accounts.
type Account struct {
	ID       string
	Code     string
	Name     string
	Type     AccountType
	Category string
	IsActive bool
	EntityID string // empty = shared by all entities
	Balance  decimal.Decimal
}

// Apply returns the signed change to the account balance for a debit/credit pair.
func (a Account) Apply(debit, credit decimal.Decimal) decimal.Decimal {
	if a.Type.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// NewAccount holds the fields supplied when opening an account.
type NewAccount struct {
	Code     string      `validate:"required"`
	Name     string      `validate:"required"`
	Type     AccountType `validate:"required,oneof=asset liability equity revenue expense"`
	Category string      `validate:"required"`
	IsActive bool
	EntityID string
	Balance  decimal.Decimal // opening balance, usually zero
}

// AccountPatch lists the account fields that may change after creation.
// Nil fields are left untouched.
type AccountPatch struct {
	Name     *string
	Category *string
	IsActive *bool
	EntityID *string
}

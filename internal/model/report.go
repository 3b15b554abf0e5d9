package model

import "github.com/shopspring/decimal"

// TrialBalanceItem is one account row of a trial balance.
type TrialBalanceItem struct {
	AccountCode string
	AccountName string
	AccountType AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// FinancialSummary totals account balances by type.
type FinancialSummary struct {
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
	TotalRevenue     decimal.Decimal
	TotalExpenses    decimal.Decimal
	NetIncome        decimal.Decimal
}

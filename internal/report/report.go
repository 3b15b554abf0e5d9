// Package report derives the trial balance and financial summary from account
// balances. Everything here is pure; nothing mutates the accounts passed in.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// TrialBalance maps every account to a trial-balance row, in input order.
//
// A positive balance goes to the account's normal side: debit for assets and
// expenses, credit for liabilities, equity and revenue. A negative balance is
// a contra balance and goes to the opposite column as its absolute value.
func TrialBalance(accounts []model.Account) []model.TrialBalanceItem {
	items := make([]model.TrialBalanceItem, 0, len(accounts))
	for _, a := range accounts {
		item := model.TrialBalanceItem{
			AccountCode: a.Code,
			AccountName: a.Name,
			AccountType: a.Type,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}

		debitSide := a.Type.IsDebitNormal()
		if a.Balance.IsNegative() {
			debitSide = !debitSide
		}
		amount := a.Balance.Abs()
		if debitSide {
			item.Debit = amount
		} else {
			item.Credit = amount
		}
		items = append(items, item)
	}
	return items
}

// TrialBalanceTotals sums the debit and credit columns.
func TrialBalanceTotals(items []model.TrialBalanceItem) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, it := range items {
		debit = debit.Add(it.Debit)
		credit = credit.Add(it.Credit)
	}
	return debit, credit
}

// Summarize sums balances per account type. NetIncome is revenue minus expenses.
func Summarize(accounts []model.Account) model.FinancialSummary {
	s := model.FinancialSummary{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		TotalRevenue:     decimal.Zero,
		TotalExpenses:    decimal.Zero,
	}
	for _, a := range accounts {
		switch a.Type {
		case model.AccountTypeAsset:
			s.TotalAssets = s.TotalAssets.Add(a.Balance)
		case model.AccountTypeLiability:
			s.TotalLiabilities = s.TotalLiabilities.Add(a.Balance)
		case model.AccountTypeEquity:
			s.TotalEquity = s.TotalEquity.Add(a.Balance)
		case model.AccountTypeRevenue:
			s.TotalRevenue = s.TotalRevenue.Add(a.Balance)
		case model.AccountTypeExpense:
			s.TotalExpenses = s.TotalExpenses.Add(a.Balance)
		}
	}
	s.NetIncome = s.TotalRevenue.Sub(s.TotalExpenses)
	return s
}

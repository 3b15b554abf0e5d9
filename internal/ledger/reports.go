package ledger

import (
	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
	"github.com/jcjr031064/cafe-ledger-flow/internal/report"
)

// TrialBalance returns one row per account in chart order.
func (l *Ledger) TrialBalance() []model.TrialBalanceItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return report.TrialBalance(l.chart.All())
}

// FinancialSummary totals account balances by type.
func (l *Ledger) FinancialSummary() model.FinancialSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return report.Summarize(l.chart.All())
}

package accounts

import "github.com/jcjr031064/cafe-ledger-flow/internal/model"

// DefaultChart returns the coffee-chain chart of accounts. All accounts are
// active, shared across entities and open with a zero balance.
func DefaultChart() []model.NewAccount {
	return []model.NewAccount{
		open("1001", "Cash", model.AccountTypeAsset, "Current Assets"),
		open("1002", "Accounts Receivable", model.AccountTypeAsset, "Current Assets"),
		open("1003", "Inventory - Coffee Beans", model.AccountTypeAsset, "Current Assets"),
		open("1004", "Inventory - Pastries", model.AccountTypeAsset, "Current Assets"),
		open("1005", "Equipment", model.AccountTypeAsset, "Fixed Assets"),
		open("2001", "Accounts Payable", model.AccountTypeLiability, "Current Liabilities"),
		open("2002", "Accrued Expenses", model.AccountTypeLiability, "Current Liabilities"),
		open("2003", "Long-term Debt", model.AccountTypeLiability, "Long-term Liabilities"),
		open("3001", "Share Capital", model.AccountTypeEquity, "Equity"),
		open("3002", "Retained Earnings", model.AccountTypeEquity, "Equity"),
		open("4001", "Coffee Sales", model.AccountTypeRevenue, "Operating Revenue"),
		open("4002", "Pastry Sales", model.AccountTypeRevenue, "Operating Revenue"),
		open("5001", "Cost of Goods Sold", model.AccountTypeExpense, "Operating Expenses"),
		open("5002", "Rent Expense", model.AccountTypeExpense, "Operating Expenses"),
		open("5003", "Utilities Expense", model.AccountTypeExpense, "Operating Expenses"),
		open("5004", "Salaries Expense", model.AccountTypeExpense, "Operating Expenses"),
	}
}

func open(code, name string, typ model.AccountType, category string) model.NewAccount {
	return model.NewAccount{Code: code, Name: name, Type: typ, Category: category, IsActive: true}
}

// CategoriesFor returns the suggested category labels for an account type.
// The first entry is the default when a form switches type.
func CategoriesFor(typ model.AccountType) []string {
	switch typ {
	case model.AccountTypeAsset:
		return []string{"Current Assets", "Fixed Assets", "Other Assets"}
	case model.AccountTypeLiability:
		return []string{"Current Liabilities", "Long-term Liabilities"}
	case model.AccountTypeEquity:
		return []string{"Equity"}
	case model.AccountTypeRevenue:
		return []string{"Operating Revenue", "Other Revenue"}
	case model.AccountTypeExpense:
		return []string{"Operating Expenses", "Other Expenses"}
	default:
		return nil
	}
}

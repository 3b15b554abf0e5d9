package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// Sheet names used by WriteWorkbook.
const (
	TrialBalanceSheet = "Trial Balance"
	SummarySheet      = "Summary"
)

// Built-in excelize number format "#,##0.00".
const amountFormat = 4

// WriteWorkbook writes the trial balance and the financial summary to w as an
// .xlsx workbook with one sheet each.
func WriteWorkbook(w io.Writer, items []model.TrialBalanceItem, summary model.FinancialSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TrialBalanceSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: amountFormat})
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: amountFormat,
		Border: []excelize.Border{
			{Type: "top", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating totals style: %w", err)
	}

	if err := writeTrialBalanceSheet(f, items, headerStyle, amountStyle, totalStyle); err != nil {
		return err
	}
	if err := writeSummarySheet(f, summary, headerStyle, amountStyle, totalStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeTrialBalanceSheet(f *excelize.File, items []model.TrialBalanceItem, headerStyle, amountStyle, totalStyle int) error {
	const sheet = TrialBalanceSheet

	headers := []string{"Code", "Account", "Type", "Debit", "Credit"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("writing header %q: %w", h, err)
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	row := 2
	for _, it := range items {
		values := []interface{}{it.AccountCode, it.AccountName, string(it.AccountType), amount(it.Debit), amount(it.Credit)}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}
	if row > 2 {
		if err := f.SetCellStyle(sheet, "D2", fmt.Sprintf("E%d", row-1), amountStyle); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
	}

	debit, credit := TrialBalanceTotals(items)
	if err := setRow(f, sheet, row, []interface{}{"Total", "", "", amount(debit), amount(credit)}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), totalStyle); err != nil {
		return fmt.Errorf("styling totals: %w", err)
	}

	if err := f.SetColWidth(sheet, "A", "A", 10); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 30); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "C", "E", 14)
}

func writeSummarySheet(f *excelize.File, s model.FinancialSummary, headerStyle, amountStyle, totalStyle int) error {
	const sheet = SummarySheet

	if err := setRow(f, sheet, 1, []interface{}{"Line", "Amount"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	lines := []struct {
		label string
		value decimal.Decimal
	}{
		{"Total Assets", s.TotalAssets},
		{"Total Liabilities", s.TotalLiabilities},
		{"Total Equity", s.TotalEquity},
		{"Total Revenue", s.TotalRevenue},
		{"Total Expenses", s.TotalExpenses},
	}
	row := 2
	for _, l := range lines {
		if err := setRow(f, sheet, row, []interface{}{l.label, amount(l.value)}); err != nil {
			return err
		}
		row++
	}
	if err := f.SetCellStyle(sheet, "B2", fmt.Sprintf("B%d", row-1), amountStyle); err != nil {
		return fmt.Errorf("styling amounts: %w", err)
	}

	if err := setRow(f, sheet, row, []interface{}{"Net Income", amount(s.NetIncome)}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), totalStyle); err != nil {
		return fmt.Errorf("styling net income: %w", err)
	}
	return f.SetColWidth(sheet, "A", "B", 20)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// amount rounds to cents and converts for the cell.
func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

package commands_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jcjr031064/cafe-ledger-flow/internal/accounts"
	"github.com/jcjr031064/cafe-ledger-flow/internal/audit"
	"github.com/jcjr031064/cafe-ledger-flow/internal/commands"
	"github.com/jcjr031064/cafe-ledger-flow/internal/journal"
	"github.com/jcjr031064/cafe-ledger-flow/internal/report"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// noConfig points --config at a file that does not exist, so defaults apply.
func noConfig(t *testing.T) []string {
	t.Helper()
	return []string{"--config", filepath.Join(t.TempDir(), "none.yaml")}
}

// initBook runs init in a temp dir and returns the dir and its --config args.
func initBook(t *testing.T) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	_, err := runCLI(t, "init", dir, "--name", "Bean There", "--config", filepath.Join(dir, "none.yaml"))
	require.NoError(t, err)
	return dir, []string{"--config", filepath.Join(dir, "cafeledger.yaml")}
}

func args(base []string, more ...string) []string {
	return append(append([]string(nil), more...), base...)
}

func TestInit_CreatesFiles(t *testing.T) {
	dir, _ := initBook(t)

	for _, f := range []string{"cafeledger.yaml", "accounts.csv", "entries.yaml", "templates.yaml"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "%s should exist", f)
	}
	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	data, err := os.ReadFile(filepath.Join(dir, "cafeledger.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Bean There")
	assert.Contains(t, string(data), "chart: accounts.csv")

	f, err := os.Open(filepath.Join(dir, "accounts.csv"))
	require.NoError(t, err)
	defer f.Close()
	list, err := accounts.ReadAccounts(f)
	require.NoError(t, err)
	assert.Len(t, list, 16)
	assert.Equal(t, "1001", list[0].Code)
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runCLI(t, args(noConfig(t), "init", t.TempDir())...)
	assert.Error(t, err)
}

func TestEntitiesList(t *testing.T) {
	out, err := runCLI(t, args(noConfig(t), "entities", "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Branch 1 - Downtown")
	assert.Contains(t, out, "COM")
	assert.Contains(t, out, "7 entities (1 head office, 5 branches, 1 commissary)")

	out, err = runCLI(t, args(noConfig(t), "entities", "list", "--search", "mall")...)
	require.NoError(t, err)
	assert.Contains(t, out, "BR02")
	assert.NotContains(t, out, "BR01")
}

func TestAccountsList(t *testing.T) {
	out, err := runCLI(t, args(noConfig(t), "accounts", "list", "--type", "expense")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Salaries Expense")
	assert.NotContains(t, out, "Cash")

	out, err = runCLI(t, args(noConfig(t), "accounts", "list", "--search", "inventory", "--group")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Current Assets (2)")

	_, err = runCLI(t, args(noConfig(t), "accounts", "list", "--type", "contra")...)
	assert.ErrorContains(t, err, "unknown account type")
}

func TestAccountsCategories(t *testing.T) {
	out, err := runCLI(t, args(noConfig(t), "accounts", "categories", "asset")...)
	require.NoError(t, err)
	assert.Equal(t, "Current Assets\nFixed Assets\nOther Assets\n", out)

	_, err = runCLI(t, args(noConfig(t), "accounts", "categories", "stuff")...)
	assert.Error(t, err)
}

func TestAccountsExport_WithEntries(t *testing.T) {
	dir, cfg := initBook(t)
	out, err := runCLI(t, args(cfg, "accounts", "export", "--entries", filepath.Join(dir, "entries.yaml"))...)
	require.NoError(t, err)

	list, err := accounts.ReadAccounts(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, list, 16)
	assert.Equal(t, "50845.50", list[0].Balance.StringFixed(2), "cash after capital and sales")
}

func TestJournalPost(t *testing.T) {
	dir, cfg := initBook(t)
	entries := filepath.Join(dir, "entries.yaml")

	out, err := runCLI(t, args(cfg, "journal", "post", "-f", entries)...)
	require.NoError(t, err)
	assert.Contains(t, out, "JE-2025-01-0001")
	assert.Contains(t, out, "Morning sales, downtown")
	assert.Regexp(t, regexp.MustCompile(`JE-2025-01-0003\s+2025-01-31\s+draft`), out)

	events, err := audit.ReadFile(filepath.Join(dir, "logs", "audit.csv"))
	require.NoError(t, err)
	assert.NotEmpty(t, events, "audit trail appended to the configured file")

	out, err = runCLI(t, args(cfg, "journal", "post", "-f", entries, "--post-drafts")...)
	require.NoError(t, err)
	assert.NotContains(t, out, "draft")
}

func TestJournalPost_CSVAndAudit(t *testing.T) {
	dir, cfg := initBook(t)
	out, err := runCLI(t, args(cfg, "journal", "post", "-f", filepath.Join(dir, "entries.yaml"), "--format", "csv", "--audit")...)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, journal.Header+"\n"))
	assert.Contains(t, out, audit.Header)
	assert.Contains(t, out, audit.ActionEntryPosted)
}

func TestJournalPost_Unbalanced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	batch := "entries:\n  - date: 2025-01-15\n    lines:\n      - account: \"1001\"\n        debit: 100\n      - account: \"4001\"\n        credit: 90\n"
	require.NoError(t, os.WriteFile(path, []byte(batch), 0o644))

	_, err := runCLI(t, args(noConfig(t), "journal", "post", "-f", path)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1")
	assert.Contains(t, err.Error(), "not balanced")
}

func TestJournalPost_RejectedEntryIsAudited(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "cafeledger.yaml")
	yml := "business:\n  name: Kiosk\nledger:\n  reference_prefix: JE\n  seed: true\naudit:\n  path: logs/audit.csv\n"
	require.NoError(t, os.WriteFile(conf, []byte(yml), 0o644))
	path := filepath.Join(dir, "bad.yaml")
	batch := "entries:\n  - date: 2025-01-15\n    lines:\n      - account: \"1001\"\n        debit: 100\n      - account: \"4001\"\n        credit: 90\n"
	require.NoError(t, os.WriteFile(path, []byte(batch), 0o644))

	_, err := runCLI(t, "journal", "post", "-f", path, "--config", conf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not balanced")

	events, err := audit.ReadFile(filepath.Join(dir, "logs", "audit.csv"))
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, audit.ActionEntryRejected, events[len(events)-1].Action)
}

func TestJournalPost_DefaultToleranceWhenOmitted(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "cafeledger.yaml")
	yml := "business:\n  name: Kiosk\nledger:\n  reference_prefix: JE\n  seed: true\n"
	require.NoError(t, os.WriteFile(conf, []byte(yml), 0o644))
	path := filepath.Join(dir, "cent.yaml")
	batch := "entries:\n  - date: 2025-01-15\n    lines:\n      - account: \"1001\"\n        debit: 100.00\n      - account: \"4001\"\n        credit: 99.99\n"
	require.NoError(t, os.WriteFile(path, []byte(batch), 0o644))

	out, err := runCLI(t, "journal", "post", "-f", path, "--config", conf)
	require.NoError(t, err)
	assert.Contains(t, out, "JE-2025-01-0001")
}

func TestJournalPost_RequiresFile(t *testing.T) {
	_, err := runCLI(t, args(noConfig(t), "journal", "post")...)
	assert.Error(t, err)
}

func TestReportTrialBalance(t *testing.T) {
	dir, cfg := initBook(t)
	entries := filepath.Join(dir, "entries.yaml")

	out, err := runCLI(t, args(cfg, "report", "trial-balance", "--entries", entries)...)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`TOTAL\s+50845.50\s+50845.50`), out)

	out, err = runCLI(t, args(cfg, "report", "trial-balance", "--entries", entries, "--csv", "-")...)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 18)
	assert.Equal(t, []string{"TOTAL", "", "", "50845.50", "50845.50"}, records[17])

	xlsx := filepath.Join(t.TempDir(), "tb.xlsx")
	_, err = runCLI(t, args(cfg, "report", "trial-balance", "--entries", entries, "--xlsx", xlsx)...)
	require.NoError(t, err)
	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{report.TrialBalanceSheet, report.SummarySheet}, f.GetSheetList())
}

func TestReportSummary(t *testing.T) {
	dir, cfg := initBook(t)
	out, err := runCLI(t, args(cfg, "report", "summary", "--entries", filepath.Join(dir, "entries.yaml"))...)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`Total Assets\s+USD 50845.50`), out)
	assert.Regexp(t, regexp.MustCompile(`Net Income\s+USD 845.50`), out)
}

func TestReportDashboard(t *testing.T) {
	dir, cfg := initBook(t)
	out, err := runCLI(t, args(cfg, "report", "dashboard", "--entries", filepath.Join(dir, "entries.yaml"))...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Bean There\n"))
	assert.Contains(t, out, "Entities: 7  Accounts: 16  Entries: 3")
	assert.Contains(t, out, "Recent entries")
	assert.Contains(t, out, "January rent, downtown")
}

func TestTemplates(t *testing.T) {
	dir, cfg := initBook(t)
	tpl := filepath.Join(dir, "templates.yaml")

	out, err := runCLI(t, args(cfg, "templates", "list", "-f", tpl, "--category", "sales")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Daily Sales")
	assert.NotContains(t, out, "Monthly Rent")

	out, err = runCLI(t, args(cfg, "templates", "apply", "-f", tpl, "--name", "daily sales",
		"--amount", "0=100", "--amount", "1=70", "--amount", "2=30",
		"--date", "2025-02-01", "--entity", "BR03", "--post")...)
	require.NoError(t, err)
	assert.Contains(t, out, "JE-2025-02-0001 Till takings for one branch (posted, BR03)")
	assert.Contains(t, out, "Pastry Sales")
	assert.Regexp(t, regexp.MustCompile(`1001\s+Cash\s+Dr\s+100.00`), out)
	assert.Regexp(t, regexp.MustCompile(`4002\s+Pastry Sales\s+Cr\s+30.00`), out)

	out, err = runCLI(t, args(cfg, "templates", "apply", "-f", tpl, "--name", "Bean Purchase",
		"--amount", "0=500", "--amount", "1=500", "--date", "2025-02-03")...)
	require.NoError(t, err)
	assert.Contains(t, out, "JE-2025-02-0001 Bean Purchase (draft, COM)", "entity defaults to the template's")

	out, err = runCLI(t, args(cfg, "templates", "list", "-f", tpl, "--category", "purchase")...)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`Bean Purchase\s+purchase\s+COM`), out)

	_, err = runCLI(t, args(cfg, "templates", "apply", "-f", tpl, "--name", "Monthly Rent", "--amount", "0=2100")...)
	assert.ErrorContains(t, err, "is fixed")

	_, err = runCLI(t, args(cfg, "templates", "apply", "-f", tpl, "--name", "Payroll")...)
	assert.ErrorContains(t, err, "no template named")

	_, err = runCLI(t, args(cfg, "templates", "apply", "-f", tpl, "--name", "Daily Sales", "--amount", "zero")...)
	assert.ErrorContains(t, err, "want index=value")
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev (commit: none")
}

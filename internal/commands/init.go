package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jcjr031064/cafe-ledger-flow/internal/accounts"
	"github.com/jcjr031064/cafe-ledger-flow/internal/config"
	"github.com/jcjr031064/cafe-ledger-flow/internal/ledger"
)

const chartFile = "accounts.csv"

const sampleEntries = `entries:
  - date: 2025-01-02
    description: Opening capital
    entity: HO
    posted: true
    lines:
      - account: "1001"
        debit: 50000
      - account: "3001"
        credit: 50000
  - date: 2025-01-15
    description: Morning sales, downtown
    entity: BR01
    posted: true
    lines:
      - account: "1001"
        debit: 845.50
      - account: "4001"
        credit: 620.00
      - account: "4002"
        credit: 225.50
  - date: 2025-01-31
    description: January rent, downtown
    entity: BR01
    lines:
      - account: "5002"
        debit: 2000
      - account: "1001"
        credit: 2000
`

const sampleTemplates = `templates:
  - name: Daily Sales
    description: Till takings for one branch
    category: sales
    lines:
      - account: "1001"
        side: debit
        variable: true
      - account: "4001"
        description: Coffee
        side: credit
        variable: true
      - account: "4002"
        description: Pastries
        side: credit
        variable: true
  - name: Monthly Rent
    category: expense
    lines:
      - account: "5002"
        side: debit
        amount: 2000
      - account: "1001"
        side: credit
        amount: 2000
  - name: Bean Purchase
    category: purchase
    entity: COM
    lines:
      - account: "1003"
        side: debit
        variable: true
      - account: "2001"
        side: credit
        variable: true
`

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new coffee-chain book",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(out io.Writer, dir, name string) error {
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	// Write cafeledger.yaml.
	cfg := config.Default(name)
	cfg.Ledger.Chart = chartFile
	cfg.Audit.Path = filepath.Join("logs", "audit.csv")
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write chart of accounts.
	l, err := ledger.NewSeeded()
	if err != nil {
		return fmt.Errorf("building default chart: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, chartFile))
	if err != nil {
		return fmt.Errorf("creating chart of accounts: %w", err)
	}
	if err := accounts.WriteAccounts(f, exportable(l, l.Accounts())); err != nil {
		f.Close()
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	// Write examples.
	if err := os.WriteFile(filepath.Join(dir, "entries.yaml"), []byte(sampleEntries), 0o644); err != nil {
		return fmt.Errorf("writing sample entries: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "templates.yaml"), []byte(sampleTemplates), 0o644); err != nil {
		return fmt.Errorf("writing sample templates: %w", err)
	}

	fmt.Fprintf(out, "Initialized %s at %s\n", name, dir)
	return nil
}

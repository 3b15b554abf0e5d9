package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jcjr031064/cafe-ledger-flow/internal/accounts"
	"github.com/jcjr031064/cafe-ledger-flow/internal/audit"
	"github.com/jcjr031064/cafe-ledger-flow/internal/config"
	"github.com/jcjr031064/cafe-ledger-flow/internal/entities"
	"github.com/jcjr031064/cafe-ledger-flow/internal/journal"
	"github.com/jcjr031064/cafe-ledger-flow/internal/ledger"
	"github.com/jcjr031064/cafe-ledger-flow/internal/logger"
	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// app carries the state shared by subcommands: the --config flag and what
// was loaded from it.
type app struct {
	configPath string
	cfg        *config.Config
	log        *slog.Logger
}

// load reads the config file (or defaults) and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	return nil
}

// newLedger builds a ledger from the loaded config.
func (a *app) newLedger() (*ledger.Ledger, error) {
	opts := []ledger.Option{
		ledger.WithLogger(a.log),
		ledger.WithReferencePrefix(a.cfg.Ledger.ReferencePrefix),
		ledger.WithTolerance(a.cfg.Ledger.Tolerance),
		ledger.WithActor(a.cfg.Ledger.CreatedBy),
	}

	if a.cfg.Ledger.Seed {
		opts = append(opts, ledger.WithEntities(entities.Default()))
	}
	if a.cfg.Ledger.Chart == "" {
		if a.cfg.Ledger.Seed {
			opts = append(opts, ledger.WithAccounts(accounts.DefaultChart()))
		}
		return ledger.New(opts...)
	}

	l, err := ledger.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := a.loadChart(l); err != nil {
		return nil, err
	}
	return l, nil
}

// loadChart opens the accounts listed in the configured chart CSV.
// The CSV's entity_id column holds entity codes.
func (a *app) loadChart(l *ledger.Ledger) error {
	path := a.resolve(a.cfg.Ledger.Chart)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	list, err := accounts.ReadAccounts(f)
	if err != nil {
		return fmt.Errorf("reading chart of accounts %s: %w", path, err)
	}
	for _, acct := range list {
		in := model.NewAccount{
			Code:     acct.Code,
			Name:     acct.Name,
			Type:     acct.Type,
			Category: acct.Category,
			IsActive: acct.IsActive,
			Balance:  acct.Balance,
		}
		if acct.EntityID != "" {
			e, ok := l.EntityByCode(acct.EntityID)
			if !ok {
				return fmt.Errorf("chart of accounts: account %s: unknown entity %q", acct.Code, acct.EntityID)
			}
			in.EntityID = e.ID
		}
		if _, err := l.AddAccount(in); err != nil {
			return fmt.Errorf("chart of accounts: %w", err)
		}
	}
	return nil
}

// ledgerWithEntries builds the ledger and records the batch at path, if set.
func (a *app) ledgerWithEntries(path string) (*ledger.Ledger, error) {
	l, err := a.newLedger()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := a.replay(l, path); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// replay records every entry of a batch file in order.
func (a *app) replay(l *ledger.Ledger, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening entries: %w", err)
	}
	defer f.Close()

	batch, err := journal.ReadBatch(f)
	if err != nil {
		return err
	}
	inputs, err := batch.ToEntries(entityLookup(l), a.cfg.Ledger.CreatedBy)
	if err != nil {
		return err
	}

	for i, in := range inputs {
		if _, err := l.PostJournalEntry(in); err != nil {
			return fmt.Errorf("%s: entry %d: %w", path, i+1, err)
		}
	}
	a.log.Info("journal batch recorded", "file", path, "entries", len(inputs))
	return nil
}

// saveAudit appends the ledger's audit trail to the configured file, if any.
func (a *app) saveAudit(l *ledger.Ledger) error {
	if a.cfg.Audit.Path == "" {
		return nil
	}
	return audit.AppendFile(a.resolve(a.cfg.Audit.Path), l.AuditTrail())
}

// resolve makes path relative to the config file's directory.
func (a *app) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(a.configPath), path)
}

func entityLookup(l *ledger.Ledger) journal.EntityLookup {
	return func(code string) (string, bool) {
		e, ok := l.EntityByCode(code)
		return e.ID, ok
	}
}

// exportable replaces account entity IDs with entity codes for CSV output.
func exportable(l *ledger.Ledger, list []model.Account) []model.Account {
	out := make([]model.Account, len(list))
	for i, acct := range list {
		if acct.EntityID != "" {
			if e, ok := l.Entity(acct.EntityID); ok {
				acct.EntityID = e.Code
			}
		}
		out[i] = acct
	}
	return out
}

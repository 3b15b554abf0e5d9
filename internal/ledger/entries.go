package ledger

import (
	"fmt"
	"time"

	"github.com/jcjr031064/cafe-ledger-flow/internal/apperrors"
	"github.com/jcjr031064/cafe-ledger-flow/internal/audit"
	"github.com/jcjr031064/cafe-ledger-flow/internal/id"
	"github.com/jcjr031064/cafe-ledger-flow/internal/journal"
	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// view resolves accounts and entities for journal.Validate. Caller holds l.mu.
type view struct {
	l *Ledger
}

// ResolveAccount looks an account up by ID, falling back to its code.
func (v view) ResolveAccount(accountID, code string) (model.Account, bool) {
	if accountID != "" {
		if a, ok := v.l.chart.Get(accountID); ok {
			return a, true
		}
	}
	if code != "" {
		return v.l.chart.ByCode(code)
	}
	return model.Account{}, false
}

func (v view) EntityExists(entityID string) bool {
	_, ok := v.l.entityByID[entityID]
	return ok
}

// JournalEntries returns all entries in the order they were recorded.
func (l *Ledger) JournalEntries() []model.JournalEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.JournalEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Clone()
	}
	return out
}

// JournalEntry returns an entry by ID.
func (l *Ledger) JournalEntry(entryID string) (model.JournalEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.entryByID[entryID]
	if !ok {
		return model.JournalEntry{}, false
	}
	return l.entries[i].Clone(), true
}

// EntryByReference returns an entry by its human reference.
func (l *Ledger) EntryByReference(ref string) (model.JournalEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.entryByRef[ref]
	if !ok {
		return model.JournalEntry{}, false
	}
	return l.entries[i].Clone(), true
}

// RecentEntries returns the last n entries, oldest first.
func (l *Ledger) RecentEntries(n int) []model.JournalEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n <= 0 {
		return nil
	}
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]model.JournalEntry, 0, len(l.entries)-start)
	for _, e := range l.entries[start:] {
		out = append(out, e.Clone())
	}
	return out
}

// PostJournalEntry validates and records a journal entry. When in.Post is
// set its lines are applied to account balances in the same step; otherwise
// the entry is stored as a draft for PostEntry.
//
// A rejected entry returns a *journal.ValidationError (matching
// apperrors.ErrValidation); nothing is stored and no balance moves.
func (l *Ledger) PostJournalEntry(in model.NewJournalEntry) (model.JournalEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := view{l: l}
	if err := journal.Validate(in, res, l.tolerance); err != nil {
		l.record(in.CreatedBy, audit.ActionEntryRejected, in.Reference, err.Error())
		l.log.Warn("journal entry rejected", "reference", in.Reference, "error", err)
		return model.JournalEntry{}, err
	}

	now := l.now().UTC()
	date := in.Date
	if date.IsZero() {
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	ref, err := l.reference(in.Reference, date)
	if err != nil {
		return model.JournalEntry{}, err
	}

	entryID := l.newID()
	lines := make([]model.LineItem, len(in.Lines))
	for i, line := range in.Lines {
		acct, _ := res.ResolveAccount(line.AccountID, line.AccountCode)
		line.ID = l.newID()
		line.AccountID = acct.ID
		line.AccountCode = acct.Code
		line.AccountName = acct.Name
		lines[i] = line
	}
	totalDebit, totalCredit := journal.Totals(in)

	entry := model.JournalEntry{
		ID:          entryID,
		Date:        date,
		Reference:   ref,
		Description: in.Description,
		EntityID:    in.EntityID,
		Lines:       lines,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Status:      model.StatusDraft,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
	}
	if in.Post {
		l.apply(&entry, now)
	}

	l.entryByID[entry.ID] = len(l.entries)
	l.entryByRef[entry.Reference] = len(l.entries)
	l.entries = append(l.entries, entry)

	details := fmt.Sprintf("%s debit %s, credit %s", entry.Reference, totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	l.record(entry.CreatedBy, audit.ActionEntryRecorded, entry.ID, details)
	if entry.IsPosted() {
		l.record(entry.CreatedBy, audit.ActionEntryPosted, entry.ID, entry.Reference)
	}
	l.log.Info("journal entry recorded",
		"id", entry.ID,
		"reference", entry.Reference,
		"status", entry.Status,
		"debit", totalDebit.StringFixed(2),
		"lines", len(entry.Lines))

	return entry.Clone(), nil
}

// PostEntry applies a draft entry to account balances. Posting is one-way:
// an entry already posted returns apperrors.ErrAlreadyPosted and balances
// are left alone. The entry's accounts are checked again before posting.
func (l *Ledger) PostEntry(entryID string) (model.JournalEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.entryByID[entryID]
	if !ok {
		return model.JournalEntry{}, fmt.Errorf("journal entry %q: %w", entryID, apperrors.ErrNotFound)
	}
	e := &l.entries[i]
	if e.IsPosted() {
		return model.JournalEntry{}, fmt.Errorf("journal entry %s: %w", e.Reference, apperrors.ErrAlreadyPosted)
	}

	in := model.NewJournalEntry{
		Date:        e.Date,
		Reference:   e.Reference,
		EntityID:    e.EntityID,
		Lines:       e.Lines,
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
	}
	if err := journal.Validate(in, view{l: l}, l.tolerance); err != nil {
		l.log.Warn("draft entry cannot be posted", "reference", e.Reference, "error", err)
		return model.JournalEntry{}, fmt.Errorf("posting %s: %w", e.Reference, err)
	}

	now := l.now().UTC()
	l.apply(e, now)

	l.record(e.CreatedBy, audit.ActionEntryPosted, e.ID, e.Reference)
	l.log.Info("journal entry posted", "id", e.ID, "reference", e.Reference)
	return e.Clone(), nil
}

// apply moves account balances by the entry's lines and marks it posted.
// Every line's account has been validated under the same lock. Caller holds l.mu.
func (l *Ledger) apply(e *model.JournalEntry, at time.Time) {
	for _, line := range e.Lines {
		a := l.chart.Ref(line.AccountID)
		a.Balance = a.Balance.Add(a.Apply(line.Debit, line.Credit))
	}
	e.Status = model.StatusPosted
	e.PostedAt = at
}

// reference returns ref if it is free, or generates the next
// PREFIX-YYYY-MM-NNNN reference for date when ref is empty. Caller holds l.mu.
func (l *Ledger) reference(ref string, date time.Time) (string, error) {
	if ref == "" {
		for {
			seq := l.refs.Next(date.Year(), int(date.Month()))
			ref = id.FormatReference(l.prefix, date.Year(), int(date.Month()), seq)
			if _, taken := l.entryByRef[ref]; !taken {
				return ref, nil
			}
		}
	}

	if _, taken := l.entryByRef[ref]; taken {
		return "", fmt.Errorf("journal reference %q: %w", ref, apperrors.ErrDuplicate)
	}
	if prefix, year, month, seq, err := id.ParseReference(ref); err == nil && prefix == l.prefix {
		l.refs.Observe(year, month, seq)
	}
	return ref, nil
}

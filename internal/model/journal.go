package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus represents the lifecycle state of a journal entry.
// The only transition is draft -> posted.
type EntryStatus string

const (
	StatusDraft  EntryStatus = "draft"
	StatusPosted EntryStatus = "posted"
)

// LineItem is one debit or credit line of a journal entry.
type LineItem struct {
	ID          string
	AccountID   string
	AccountCode string
	AccountName string
	Description string
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
}

// IsDebit reports whether the line sits on the debit side.
func (l LineItem) IsDebit() bool {
	return !l.Debit.IsZero()
}

// JournalEntry is a recorded double-entry transaction.
type JournalEntry struct {
	ID          string
	Date        time.Time
	Reference   string
	Description string
	EntityID    string
	Lines       []LineItem
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Status      EntryStatus
	CreatedBy   string
	CreatedAt   time.Time
	PostedAt    time.Time // zero while draft
}

// IsPosted reports whether the entry's lines have been applied to balances.
func (e JournalEntry) IsPosted() bool {
	return e.Status == StatusPosted
}

// Clone returns a copy that shares no line storage with e.
func (e JournalEntry) Clone() JournalEntry {
	c := e
	c.Lines = append([]LineItem(nil), e.Lines...)
	return c
}

// NewJournalEntry holds the fields supplied when recording an entry.
// When TotalDebit and TotalCredit are both zero they are derived from Lines.
type NewJournalEntry struct {
	Date        time.Time
	Reference   string // generated when empty
	Description string
	EntityID    string
	Lines       []LineItem
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Post        bool // apply to balances immediately
	CreatedBy   string
}

// LineTotals sums the debit and credit sides of lines.
func LineTotals(lines []LineItem) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// Package ledger owns the entities, chart of accounts and journal of one
// coffee-chain book and keeps account balances in step with posted entries.
//
// A Ledger is safe for concurrent use. Each mutating call runs in a single
// critical section, so an entry's validation, append and balance updates are
// applied together or not at all.
package ledger

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jcjr031064/cafe-ledger-flow/internal/accounts"
	"github.com/jcjr031064/cafe-ledger-flow/internal/apperrors"
	"github.com/jcjr031064/cafe-ledger-flow/internal/audit"
	"github.com/jcjr031064/cafe-ledger-flow/internal/entities"
	"github.com/jcjr031064/cafe-ledger-flow/internal/id"
	"github.com/jcjr031064/cafe-ledger-flow/internal/journal"
	"github.com/jcjr031064/cafe-ledger-flow/internal/logger"
	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// DefaultActor is recorded in the audit trail for changes with no author.
const DefaultActor = "system"

// Ledger is an in-memory book of entities, accounts and journal entries.
type Ledger struct {
	mu sync.RWMutex

	entities     []model.Entity
	entityByID   map[string]int
	entityByCode map[string]int
	chart        *accounts.Chart
	entries      []model.JournalEntry
	entryByID    map[string]int
	entryByRef   map[string]int
	refs         *id.Sequence
	trail        *audit.Trail

	now       func() time.Time
	newID     func() string
	log       *slog.Logger
	prefix    string
	tolerance decimal.Decimal
	actor     string
	validate  *validator.Validate

	seedEntities []model.NewEntity
	seedAccounts []model.NewAccount
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithEntities seeds the ledger with entities, in order.
func WithEntities(seed []model.NewEntity) Option {
	return func(l *Ledger) { l.seedEntities = append(l.seedEntities, seed...) }
}

// WithAccounts seeds the chart of accounts, in order. Seeded accounts go
// through the same checks as AddAccount.
func WithAccounts(seed []model.NewAccount) Option {
	return func(l *Ledger) { l.seedAccounts = append(l.seedAccounts, seed...) }
}

// WithClock sets the time source used for CreatedAt, PostedAt and audit events.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator sets the generator for entity, account, entry and line IDs.
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) { l.newID = gen }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithReferencePrefix sets the prefix of generated entry references.
func WithReferencePrefix(prefix string) Option {
	return func(l *Ledger) { l.prefix = prefix }
}

// WithTolerance sets the largest debit/credit difference accepted as balanced.
func WithTolerance(tol decimal.Decimal) Option {
	return func(l *Ledger) { l.tolerance = tol }
}

// WithActor sets the audit actor for changes that carry no author of their own.
func WithActor(actor string) Option {
	return func(l *Ledger) { l.actor = actor }
}

// New creates a ledger, applying opts and then any seed data.
func New(opts ...Option) (*Ledger, error) {
	l := &Ledger{
		entityByID:   make(map[string]int),
		entityByCode: make(map[string]int),
		chart:        accounts.NewChart(nil),
		entryByID:    make(map[string]int),
		entryByRef:   make(map[string]int),
		refs:         id.NewSequence(),
		trail:        audit.NewTrail(),
		now:          time.Now,
		newID:        id.New,
		log:          logger.Discard(),
		prefix:       id.DefaultPrefix,
		tolerance:    journal.DefaultTolerance,
		actor:        DefaultActor,
		validate:     validator.New(),
	}
	for _, opt := range opts {
		opt(l)
	}

	for i, e := range l.seedEntities {
		if _, err := l.AddEntity(e); err != nil {
			return nil, fmt.Errorf("seeding entity %d: %w", i+1, err)
		}
	}
	for i, a := range l.seedAccounts {
		if _, err := l.AddAccount(a); err != nil {
			return nil, fmt.Errorf("seeding account %d: %w", i+1, err)
		}
	}
	l.seedEntities, l.seedAccounts = nil, nil

	l.log.Debug("ledger ready", "entities", len(l.entities), "accounts", l.chart.Len())
	return l, nil
}

// NewSeeded creates a ledger holding the coffee-chain entities and the
// default chart of accounts. opts may add further seed data.
func NewSeeded(opts ...Option) (*Ledger, error) {
	seeded := []Option{
		WithEntities(entities.Default()),
		WithAccounts(accounts.DefaultChart()),
	}
	return New(append(seeded, opts...)...)
}

// AuditTrail returns every recorded change in order.
func (l *Ledger) AuditTrail() []audit.Event {
	return l.trail.Events()
}

// record appends an audit event. Caller holds l.mu.
func (l *Ledger) record(actor, action, subject, details string) {
	if actor == "" {
		actor = l.actor
	}
	l.trail.Record(audit.Event{
		Timestamp: l.now().UTC(),
		Actor:     actor,
		Action:    action,
		Subject:   subject,
		Details:   details,
	})
}

// checkInput runs struct-tag validation on seed or user input.
func (l *Ledger) checkInput(what string, in interface{}) error {
	if err := l.validate.Struct(in); err != nil {
		return fmt.Errorf("invalid %s: %w: %v", what, apperrors.ErrValidation, err)
	}
	return nil
}

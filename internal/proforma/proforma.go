// Package proforma holds reusable journal entry templates for recurring
// transactions such as daily sales or monthly rent.
package proforma

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jcjr031064/cafe-ledger-flow/internal/apperrors"
	"github.com/jcjr031064/cafe-ledger-flow/internal/id"
	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// Category groups templates by the kind of transaction they record.
type Category string

const (
	CategorySales    Category = "sales"
	CategoryPurchase Category = "purchase"
	CategoryExpense  Category = "expense"
	CategoryTransfer Category = "transfer"
)

// Side is the column a template line posts to.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// TemplateLine is one line of a template. Variable lines take their amount
// when the template is used; fixed lines always post Amount.
type TemplateLine struct {
	AccountCode string          `yaml:"account" validate:"required"`
	Description string          `yaml:"description,omitempty"`
	Side        Side            `yaml:"side" validate:"required,oneof=debit credit"`
	Amount      decimal.Decimal `yaml:"amount,omitempty"`
	Variable    bool            `yaml:"variable,omitempty"`
}

// Template is a stored pro-forma entry.
type Template struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Entity      string // code of the entity the template is scoped to; empty for any
	Lines       []TemplateLine
	IsActive    bool
	CreatedAt   time.Time
}

// NewTemplate holds the fields supplied when creating a template.
type NewTemplate struct {
	Name        string         `yaml:"name" validate:"required"`
	Description string         `yaml:"description,omitempty"`
	Category    Category       `yaml:"category" validate:"required,oneof=sales purchase expense transfer"`
	Entity      string         `yaml:"entity,omitempty"`
	Lines       []TemplateLine `yaml:"lines" validate:"required,min=1,dive"`
}

// Store keeps templates in memory. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	templates []Template
	byID      map[string]int
	byName    map[string]int
	now       func() time.Time
	newID     func() string
	validate  *validator.Validate
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the clock used for CreatedAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the template ID generator.
func WithIDGenerator(newID func() string) StoreOption {
	return func(s *Store) { s.newID = newID }
}

// NewStore creates an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		byID:     make(map[string]int),
		byName:   make(map[string]int),
		now:      time.Now,
		newID:    id.New,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates and stores a template. Names are unique, ignoring case.
func (s *Store) Add(in NewTemplate) (Template, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return Template{}, fmt.Errorf("invalid template: %w: %v", apperrors.ErrValidation, err)
	}
	for i, l := range in.Lines {
		if l.Amount.IsNegative() {
			return Template{}, fmt.Errorf("template %q line %d: negative amount: %w", in.Name, i+1, apperrors.ErrValidation)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(in.Name)
	if _, ok := s.byName[key]; ok {
		return Template{}, fmt.Errorf("template %q: %w", in.Name, apperrors.ErrDuplicate)
	}

	t := Template{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Entity:      strings.TrimSpace(in.Entity),
		Lines:       append([]TemplateLine(nil), in.Lines...),
		IsActive:    true,
		CreatedAt:   s.now().UTC(),
	}
	s.byID[t.ID] = len(s.templates)
	s.byName[key] = len(s.templates)
	s.templates = append(s.templates, t)
	return clone(t), nil
}

// All returns every template in insertion order.
func (s *Store) All() []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Template, len(s.templates))
	for i, t := range s.templates {
		out[i] = clone(t)
	}
	return out
}

// Get returns a template by ID.
func (s *Store) Get(templateID string) (Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[templateID]
	if !ok {
		return Template{}, false
	}
	return clone(s.templates[i]), true
}

// ByName returns a template by name, ignoring case.
func (s *Store) ByName(name string) (Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Template{}, false
	}
	return clone(s.templates[i]), true
}

// ByCategory returns the templates in one category.
func (s *Store) ByCategory(c Category) []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Template
	for _, t := range s.templates {
		if t.Category == c {
			out = append(out, clone(t))
		}
	}
	return out
}

// Deactivate marks a template as no longer usable.
func (s *Store) Deactivate(templateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[templateID]
	if !ok {
		return fmt.Errorf("template %q: %w", templateID, apperrors.ErrNotFound)
	}
	s.templates[i].IsActive = false
	return nil
}

func clone(t Template) Template {
	t.Lines = append([]TemplateLine(nil), t.Lines...)
	return t
}

// Overrides maps a 0-based line index to the amount used for that line.
type Overrides map[int]decimal.Decimal

// Instantiate turns a template into journal entry input for date and entity.
// Only variable lines accept overrides; a variable line with no default
// amount must be given one.
func Instantiate(t Template, o Overrides, date time.Time, entityID string) (model.NewJournalEntry, error) {
	if !t.IsActive {
		return model.NewJournalEntry{}, fmt.Errorf("template %q is inactive: %w", t.Name, apperrors.ErrValidation)
	}
	for i := range o {
		if i < 0 || i >= len(t.Lines) {
			return model.NewJournalEntry{}, fmt.Errorf("template %q has no line %d: %w", t.Name, i, apperrors.ErrValidation)
		}
		if !t.Lines[i].Variable {
			return model.NewJournalEntry{}, fmt.Errorf("template %q line %d is fixed: %w", t.Name, i, apperrors.ErrValidation)
		}
	}

	lines := make([]model.LineItem, len(t.Lines))
	for i, tl := range t.Lines {
		amount := tl.Amount
		if v, ok := o[i]; ok {
			amount = v
		}
		if amount.IsNegative() {
			return model.NewJournalEntry{}, fmt.Errorf("template %q line %d: negative amount: %w", t.Name, i, apperrors.ErrValidation)
		}
		if amount.IsZero() {
			return model.NewJournalEntry{}, fmt.Errorf("template %q line %d needs an amount: %w", t.Name, i, apperrors.ErrValidation)
		}

		li := model.LineItem{AccountCode: tl.AccountCode, Description: tl.Description}
		if tl.Side == SideDebit {
			li.Debit = amount
		} else {
			li.Credit = amount
		}
		lines[i] = li
	}

	desc := t.Description
	if desc == "" {
		desc = t.Name
	}
	return model.NewJournalEntry{
		Date:        date,
		Description: desc,
		EntityID:    entityID,
		Lines:       lines,
	}, nil
}

type templateFile struct {
	Templates []NewTemplate `yaml:"templates"`
}

// LoadTemplates decodes a YAML list of templates under a "templates" key.
func LoadTemplates(r io.Reader) ([]NewTemplate, error) {
	var f templateFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return f.Templates, nil
}

package journal

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// Batch is a YAML file of journal entries to record in order.
type Batch struct {
	Entries []BatchEntry `yaml:"entries"`
}

// BatchEntry is one entry of a Batch. Accounts and entities are referenced by code.
type BatchEntry struct {
	Date        string          `yaml:"date"` // YYYY-MM-DD
	Reference   string          `yaml:"reference,omitempty"`
	Description string          `yaml:"description"`
	Entity      string          `yaml:"entity,omitempty"`
	Posted      bool            `yaml:"posted"`
	CreatedBy   string          `yaml:"created_by,omitempty"`
	TotalDebit  decimal.Decimal `yaml:"total_debit,omitempty"`
	TotalCredit decimal.Decimal `yaml:"total_credit,omitempty"`
	Lines       []BatchLine     `yaml:"lines"`
}

// BatchLine is one line of a BatchEntry.
type BatchLine struct {
	Account     string          `yaml:"account"`
	Description string          `yaml:"description,omitempty"`
	Debit       decimal.Decimal `yaml:"debit,omitempty"`
	Credit      decimal.Decimal `yaml:"credit,omitempty"`
}

// EntityLookup maps an entity code to its ID.
type EntityLookup func(code string) (string, bool)

// ReadBatch decodes a YAML batch.
func ReadBatch(r io.Reader) (*Batch, error) {
	var b Batch
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return &b, nil
		}
		return nil, fmt.Errorf("parsing journal batch: %w", err)
	}
	return &b, nil
}

// ToEntries converts the batch into ledger input. defaultCreatedBy fills
// entries that name no author.
func (b *Batch) ToEntries(lookup EntityLookup, defaultCreatedBy string) ([]model.NewJournalEntry, error) {
	out := make([]model.NewJournalEntry, 0, len(b.Entries))
	for i, be := range b.Entries {
		date, err := time.Parse(dateFormat, be.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %d: parsing date %q: %w", i+1, be.Date, err)
		}

		var entityID string
		if be.Entity != "" {
			id, ok := lookup(be.Entity)
			if !ok {
				return nil, fmt.Errorf("entry %d: unknown entity %q", i+1, be.Entity)
			}
			entityID = id
		}

		createdBy := be.CreatedBy
		if createdBy == "" {
			createdBy = defaultCreatedBy
		}

		lines := make([]model.LineItem, len(be.Lines))
		for j, bl := range be.Lines {
			lines[j] = model.LineItem{
				AccountCode: bl.Account,
				Description: bl.Description,
				Debit:       bl.Debit,
				Credit:      bl.Credit,
			}
		}

		out = append(out, model.NewJournalEntry{
			Date:        date,
			Reference:   be.Reference,
			Description: be.Description,
			EntityID:    entityID,
			Lines:       lines,
			TotalDebit:  be.TotalDebit,
			TotalCredit: be.TotalCredit,
			Post:        be.Posted,
			CreatedBy:   createdBy,
		})
	}
	return out, nil
}

package ledger

import (
	"fmt"
	"strings"

	"github.com/jcjr031064/cafe-ledger-flow/internal/apperrors"
	"github.com/jcjr031064/cafe-ledger-flow/internal/audit"
	"github.com/jcjr031064/cafe-ledger-flow/internal/entities"
	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// Entities returns all entities in insertion order.
func (l *Ledger) Entities() []model.Entity {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.Entity(nil), l.entities...)
}

// Entity returns an entity by ID.
func (l *Ledger) Entity(id string) (model.Entity, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.entityByID[id]
	if !ok {
		return model.Entity{}, false
	}
	return l.entities[i], true
}

// EntityByCode returns an entity by its short code.
func (l *Ledger) EntityByCode(code string) (model.Entity, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.entityByCode[code]
	if !ok {
		return model.Entity{}, false
	}
	return l.entities[i], true
}

// SearchEntities returns the entities whose name or code contains term,
// ignoring case.
func (l *Ledger) SearchEntities(term string) []model.Entity {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var result []model.Entity
	for _, e := range l.entities {
		if entities.Match(e, term) {
			result = append(result, e)
		}
	}
	return result
}

// AddEntity registers a business unit. Entity codes are unique.
func (l *Ledger) AddEntity(in model.NewEntity) (model.Entity, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if err := l.checkInput("entity", in); err != nil {
		return model.Entity{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.entityByCode[in.Code]; ok {
		return model.Entity{}, fmt.Errorf("entity code %q: %w", in.Code, apperrors.ErrDuplicate)
	}

	e := model.Entity{
		ID:       l.newID(),
		Code:     in.Code,
		Name:     in.Name,
		Type:     in.Type,
		Address:  in.Address,
		IsActive: in.IsActive,
	}
	l.entityByID[e.ID] = len(l.entities)
	l.entityByCode[e.Code] = len(l.entities)
	l.entities = append(l.entities, e)

	l.record("", audit.ActionEntityAdded, e.ID, fmt.Sprintf("%s %s (%s)", e.Code, e.Name, e.Type))
	l.log.Debug("entity added", "id", e.ID, "code", e.Code)
	return e, nil
}

package ledger

import (
	"fmt"
	"strings"

	"github.com/jcjr031064/cafe-ledger-flow/internal/accounts"
	"github.com/jcjr031064/cafe-ledger-flow/internal/apperrors"
	"github.com/jcjr031064/cafe-ledger-flow/internal/audit"
	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// Accounts returns all accounts in insertion order.
func (l *Ledger) Accounts() []model.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.chart.All()
}

// Account returns an account by ID.
func (l *Ledger) Account(id string) (model.Account, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.chart.Get(id)
}

// AccountByCode returns an account by its code.
func (l *Ledger) AccountByCode(code string) (model.Account, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.chart.ByCode(code)
}

// SearchAccounts returns the accounts passing f, in chart order.
func (l *Ledger) SearchAccounts(f accounts.Filter) []model.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.chart.Search(f)
}

// AccountsByCategory groups the chart by category label.
func (l *Ledger) AccountsByCategory() []accounts.CategoryGroup {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return accounts.GroupByCategory(l.chart.All())
}

// AddAccount opens an account. Codes are unique across the chart; a
// duplicate code returns apperrors.ErrDuplicate.
func (l *Ledger) AddAccount(in model.NewAccount) (model.Account, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := l.checkInput("account", in); err != nil {
		return model.Account{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.chart.CodeExists(in.Code) {
		return model.Account{}, fmt.Errorf("account code %q: %w", in.Code, apperrors.ErrDuplicate)
	}
	if in.EntityID != "" {
		if _, ok := l.entityByID[in.EntityID]; !ok {
			return model.Account{}, fmt.Errorf("account %s: unknown entity %q: %w", in.Code, in.EntityID, apperrors.ErrValidation)
		}
	}

	a := model.Account{
		ID:       l.newID(),
		Code:     in.Code,
		Name:     in.Name,
		Type:     in.Type,
		Category: in.Category,
		IsActive: in.IsActive,
		EntityID: in.EntityID,
		Balance:  in.Balance,
	}
	l.chart.Add(a)

	l.record("", audit.ActionAccountAdded, a.ID, fmt.Sprintf("%s %s (%s)", a.Code, a.Name, a.Type))
	l.log.Debug("account added", "id", a.ID, "code", a.Code, "type", a.Type)
	return a, nil
}

// UpdateAccount applies the non-nil fields of patch to an account and
// returns the updated account. A missing ID returns apperrors.ErrNotFound.
// The patch is checked in full before any field changes.
func (l *Ledger) UpdateAccount(id string, patch model.AccountPatch) (model.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a := l.chart.Ref(id)
	if a == nil {
		return model.Account{}, fmt.Errorf("account %q: %w", id, apperrors.ErrNotFound)
	}

	updated := *a
	var changed []string
	if patch.Name != nil {
		updated.Name = strings.TrimSpace(*patch.Name)
		if updated.Name == "" {
			return model.Account{}, fmt.Errorf("account %s: name is required: %w", a.Code, apperrors.ErrValidation)
		}
		changed = append(changed, "name")
	}
	if patch.Category != nil {
		updated.Category = strings.TrimSpace(*patch.Category)
		if updated.Category == "" {
			return model.Account{}, fmt.Errorf("account %s: category is required: %w", a.Code, apperrors.ErrValidation)
		}
		changed = append(changed, "category")
	}
	if patch.EntityID != nil {
		updated.EntityID = *patch.EntityID
		if updated.EntityID != "" {
			if _, ok := l.entityByID[updated.EntityID]; !ok {
				return model.Account{}, fmt.Errorf("account %s: unknown entity %q: %w", a.Code, updated.EntityID, apperrors.ErrValidation)
			}
		}
		changed = append(changed, "entity_id")
	}
	if patch.IsActive != nil {
		updated.IsActive = *patch.IsActive
		changed = append(changed, "is_active")
	}

	*a = updated
	if len(changed) > 0 {
		l.record("", audit.ActionAccountUpdated, a.ID, a.Code+": "+strings.Join(changed, ", "))
		l.log.Debug("account updated", "id", a.ID, "code", a.Code, "fields", changed)
	}
	return updated, nil
}

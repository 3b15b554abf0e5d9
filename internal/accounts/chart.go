package accounts

import (
	"strings"

	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// Chart is an in-memory index over the chart of accounts. It keeps insertion
// order and looks accounts up by ID or code. Chart is not safe for concurrent
// use; the ledger serialises access to it.
type Chart struct {
	accounts []*model.Account
	byID     map[string]*model.Account
	byCode   map[string]*model.Account
}

// NewChart creates a Chart from a slice of accounts.
func NewChart(accounts []model.Account) *Chart {
	c := &Chart{
		byID:   make(map[string]*model.Account, len(accounts)),
		byCode: make(map[string]*model.Account, len(accounts)),
	}
	for _, a := range accounts {
		c.Add(a)
	}
	return c
}

// Add appends an account. Callers check Exists/CodeExists first.
func (c *Chart) Add(a model.Account) {
	p := &a
	c.accounts = append(c.accounts, p)
	c.byID[a.ID] = p
	c.byCode[a.Code] = p
}

// All returns copies of all accounts in insertion order.
func (c *Chart) All() []model.Account {
	out := make([]model.Account, len(c.accounts))
	for i, a := range c.accounts {
		out[i] = *a
	}
	return out
}

// Len returns the number of accounts.
func (c *Chart) Len() int {
	return len(c.accounts)
}

// Get returns an account by ID.
func (c *Chart) Get(id string) (model.Account, bool) {
	a, ok := c.byID[id]
	if !ok {
		return model.Account{}, false
	}
	return *a, true
}

// ByCode returns an account by its code.
func (c *Chart) ByCode(code string) (model.Account, bool) {
	a, ok := c.byCode[code]
	if !ok {
		return model.Account{}, false
	}
	return *a, true
}

// CodeExists reports whether an account code is taken.
func (c *Chart) CodeExists(code string) bool {
	_, ok := c.byCode[code]
	return ok
}

// Ref returns the stored account for in-place mutation, or nil.
func (c *Chart) Ref(id string) *model.Account {
	return c.byID[id]
}

// ByType returns all accounts of the given type.
func (c *Chart) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range c.accounts {
		if a.Type == accountType {
			result = append(result, *a)
		}
	}
	return result
}

// Filter narrows a chart listing.
type Filter struct {
	Term string            // case-insensitive match on name or code
	Type model.AccountType // empty = all types
}

// Match reports whether a passes the filter.
func (f Filter) Match(a model.Account) bool {
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.Term == "" {
		return true
	}
	term := strings.ToLower(f.Term)
	return strings.Contains(strings.ToLower(a.Name), term) ||
		strings.Contains(strings.ToLower(a.Code), term)
}

// Search returns the accounts that pass f, in chart order.
func (c *Chart) Search(f Filter) []model.Account {
	var result []model.Account
	for _, a := range c.accounts {
		if f.Match(*a) {
			result = append(result, *a)
		}
	}
	return result
}

// CategoryGroup is a category label and its accounts.
type CategoryGroup struct {
	Category string
	Accounts []model.Account
}

// GroupByCategory groups accounts by category, ordered by first appearance.
func GroupByCategory(accounts []model.Account) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)
	for _, a := range accounts {
		i, ok := index[a.Category]
		if !ok {
			i = len(groups)
			index[a.Category] = i
			groups = append(groups, CategoryGroup{Category: a.Category})
		}
		groups[i].Accounts = append(groups[i].Accounts, a)
	}
	return groups
}

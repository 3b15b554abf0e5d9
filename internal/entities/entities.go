// Package entities holds the business units of the coffee chain.
package entities

import (
	"strings"

	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// Default returns the head office, five branches and the commissary.
func Default() []model.NewEntity {
	return []model.NewEntity{
		{Code: "HO", Name: "Head Office", Type: model.EntityTypeHeadOffice, IsActive: true},
		{Code: "BR01", Name: "Branch 1 - Downtown", Type: model.EntityTypeBranch, IsActive: true},
		{Code: "BR02", Name: "Branch 2 - Mall", Type: model.EntityTypeBranch, IsActive: true},
		{Code: "BR03", Name: "Branch 3 - University", Type: model.EntityTypeBranch, IsActive: true},
		{Code: "BR04", Name: "Branch 4 - Airport", Type: model.EntityTypeBranch, IsActive: true},
		{Code: "BR05", Name: "Branch 5 - Business District", Type: model.EntityTypeBranch, IsActive: true},
		{Code: "COM", Name: "Commissary", Type: model.EntityTypeCommissary, IsActive: true},
	}
}

// Match reports whether term matches the entity name or code, ignoring case.
// An empty term matches everything.
func Match(e model.Entity, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(e.Name), term) ||
		strings.Contains(strings.ToLower(e.Code), term)
}

// CountByType tallies entities per type.
func CountByType(list []model.Entity) map[model.EntityType]int {
	counts := make(map[model.EntityType]int)
	for _, e := range list {
		counts[e.Type]++
	}
	return counts
}

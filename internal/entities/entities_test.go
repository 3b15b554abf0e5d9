package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

func TestDefault(t *testing.T) {
	list := Default()
	require.Len(t, list, 7)

	codes := make(map[string]bool)
	for _, e := range list {
		assert.False(t, codes[e.Code], "duplicate code %s", e.Code)
		codes[e.Code] = true
		assert.True(t, e.IsActive)
	}
	assert.Equal(t, "HO", list[0].Code)
	assert.Equal(t, model.EntityTypeCommissary, list[6].Type)
}

func TestMatch(t *testing.T) {
	e := model.Entity{Code: "BR02", Name: "Branch 2 - Mall"}

	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"mall", true},
		{"MALL", true},
		{"br02", true},
		{"airport", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(e, tt.term), "Match(%q)", tt.term)
	}
}

func TestCountByType(t *testing.T) {
	var list []model.Entity
	for _, ne := range Default() {
		list = append(list, model.Entity{Code: ne.Code, Type: ne.Type})
	}
	counts := CountByType(list)
	assert.Equal(t, 1, counts[model.EntityTypeHeadOffice])
	assert.Equal(t, 5, counts[model.EntityTypeBranch])
	assert.Equal(t, 1, counts[model.EntityTypeCommissary])
}

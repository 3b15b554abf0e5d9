package model

// EntityType classifies business units.
type EntityType string

const (
	EntityTypeHeadOffice EntityType = "head_office"
	EntityTypeBranch     EntityType = "branch"
	EntityTypeCommissary EntityType = "commissary"
)

// Entity is a business unit that owns journal entries.
type Entity struct {
	ID       string
	Code     string
	Name     string
	Type     EntityType
	Address  string
	IsActive bool
}

// NewEntity holds the fields supplied when registering an entity.
type NewEntity struct {
	Code     string     `validate:"required"`
	Name     string     `validate:"required"`
	Type     EntityType `validate:"required,oneof=head_office branch commissary"`
	Address  string
	IsActive bool
}

package models

// EntityType classifies an organizational unit.
type EntityType string

// Entity represents a row in the entities table.
// ParentEntityID uses string for the nullable self-referencing foreign key.
type Entity struct {
	EntityID       string     `db:"entity_id"`
	EntityCode     string     `db:"entity_code"`
	EntityName     string     `db:"entity_name"`
	EntityType     EntityType `db:"entity_type"`
	ParentEntityID string     `db:"parent_entity_id"` // Nullable
	FiscalYearEnd  string     `db:"fiscal_year_end"`
	CurrencyCode   string     `db:"currency_code"`
	Description    string     `db:"description"`
	IsActive       bool       `db:"is_active"`
	AuditFields
}

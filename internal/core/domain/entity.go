package domain

// EntityType classifies an organizational unit in the public-sector hierarchy.
type EntityType string

const (
	Government EntityType = "GOVERNMENT"
	Agency     EntityType = "AGENCY"
	Department EntityType = "DEPARTMENT"
	Subsidiary EntityType = "SUBSIDIARY"
)

// Entity represents an organizational unit that owns funds and accounts.
// Entities form a tree via ParentEntityID; they are soft-deleted only, so
// posted transactions always keep a valid referent.
type Entity struct {
	EntityID       string     `json:"entityID"`
	EntityCode     string     `json:"entityCode"` // Unique, 2-20 chars
	EntityName     string     `json:"entityName"`
	EntityType     EntityType `json:"entityType"`
	ParentEntityID string     `json:"parentEntityID"` // Empty when root
	FiscalYearEnd  string     `json:"fiscalYearEnd"`  // MM-DD
	CurrencyCode   string     `json:"currencyCode"`   // 3-letter ISO code
	Description    string     `json:"description"`
	IsActive       bool       `json:"isActive"`
	AuditFields
}

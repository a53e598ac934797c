package mapping

import (
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/openfmis/ipsas_ledger/internal/models"
)

// ToModelEntity converts a domain Entity to a model Entity
func ToModelEntity(d domain.Entity) models.Entity {
	return models.Entity{
		EntityID:       d.EntityID,
		EntityCode:     d.EntityCode,
		EntityName:     d.EntityName,
		EntityType:     models.EntityType(d.EntityType),
		ParentEntityID: d.ParentEntityID,
		FiscalYearEnd:  d.FiscalYearEnd,
		CurrencyCode:   d.CurrencyCode,
		Description:    d.Description,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntity converts a model Entity to a domain Entity
func ToDomainEntity(m models.Entity) domain.Entity {
	return domain.Entity{
		EntityID:       m.EntityID,
		EntityCode:     m.EntityCode,
		EntityName:     m.EntityName,
		EntityType:     domain.EntityType(m.EntityType),
		ParentEntityID: m.ParentEntityID,
		FiscalYearEnd:  m.FiscalYearEnd,
		CurrencyCode:   m.CurrencyCode,
		Description:    m.Description,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntitySlice converts a slice of model Entities to domain Entities
func ToDomainEntitySlice(ms []models.Entity) []domain.Entity {
	ds := make([]domain.Entity, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntity(m)
	}
	return ds
}

package mapping

import (
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/openfmis/ipsas_ledger/internal/models"
)

// ToModelFund converts a domain Fund to a model Fund
func ToModelFund(d domain.Fund) models.Fund {
	return models.Fund{
		FundID:              d.FundID,
		FundCode:            d.FundCode,
		FundName:            d.FundName,
		FundType:            models.FundType(d.FundType),
		EntityID:            d.EntityID,
		Description:         d.Description,
		IsActive:            d.IsActive,
		BudgetAuthority:     d.BudgetAuthority,
		CarryForwardAllowed: d.CarryForwardAllowed,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFund converts a model Fund to a domain Fund
func ToDomainFund(m models.Fund) domain.Fund {
	return domain.Fund{
		FundID:              m.FundID,
		FundCode:            m.FundCode,
		FundName:            m.FundName,
		FundType:            domain.FundType(m.FundType),
		EntityID:            m.EntityID,
		Description:         m.Description,
		IsActive:            m.IsActive,
		BudgetAuthority:     m.BudgetAuthority,
		CarryForwardAllowed: m.CarryForwardAllowed,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFundSlice converts a slice of model Funds to domain Funds
func ToDomainFundSlice(ms []models.Fund) []domain.Fund {
	ds := make([]domain.Fund, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFund(m)
	}
	return ds
}

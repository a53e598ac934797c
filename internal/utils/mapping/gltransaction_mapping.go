package mapping

import (
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/openfmis/ipsas_ledger/internal/models"
)

// ToModelTransaction converts a domain GLTransaction header to a model GLTransaction
func ToModelTransaction(d domain.GLTransaction) models.GLTransaction {
	return models.GLTransaction{
		TransactionID:     d.TransactionID,
		TransactionNumber: d.TransactionNumber,
		TransactionDate:   d.TransactionDate,
		PostingDate:       d.PostingDate,
		Description:       d.Description,
		ReferenceNumber:   d.ReferenceNumber,
		SourceModule:      d.SourceModule,
		SourceDocumentID:  d.SourceDocumentID,
		FundID:            d.FundID,
		EntityID:          d.EntityID,
		FiscalYear:        d.FiscalYear,
		Period:            d.Period,
		Status:            models.TransactionStatus(d.Status),
		TotalDebit:        d.TotalDebit,
		TotalCredit:       d.TotalCredit,
		ApprovedBy:        d.ApprovedBy,
		PostedBy:          d.PostedBy,
		PostedAt:          d.PostedAt,
		ReversedBy:        d.ReversedBy,
		ReversedAt:        d.ReversedAt,
		ReversalReason:    d.ReversalReason,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model GLTransaction to a domain GLTransaction header
func ToDomainTransaction(m models.GLTransaction) domain.GLTransaction {
	return domain.GLTransaction{
		TransactionID:     m.TransactionID,
		TransactionNumber: m.TransactionNumber,
		TransactionDate:   m.TransactionDate,
		PostingDate:       m.PostingDate,
		Description:       m.Description,
		ReferenceNumber:   m.ReferenceNumber,
		SourceModule:      m.SourceModule,
		SourceDocumentID:  m.SourceDocumentID,
		FundID:            m.FundID,
		EntityID:          m.EntityID,
		FiscalYear:        m.FiscalYear,
		Period:            m.Period,
		Status:            domain.TransactionStatus(m.Status),
		TotalDebit:        m.TotalDebit,
		TotalCredit:       m.TotalCredit,
		ApprovedBy:        m.ApprovedBy,
		PostedBy:          m.PostedBy,
		PostedAt:          m.PostedAt,
		ReversedBy:        m.ReversedBy,
		ReversedAt:        m.ReversedAt,
		ReversalReason:    m.ReversalReason,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts model GLTransactions to domain headers
func ToDomainTransactionSlice(ms []models.GLTransaction) []domain.GLTransaction {
	ds := make([]domain.GLTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelEntry converts a domain GLEntry to a model GLEntry
func ToModelEntry(d domain.GLEntry) models.GLEntry {
	return models.GLEntry{
		EntryID:        d.EntryID,
		TransactionID:  d.TransactionID,
		AccountID:      d.AccountID,
		DebitAmount:    d.DebitAmount,
		CreditAmount:   d.CreditAmount,
		Description:    d.Description,
		LineNumber:     d.LineNumber,
		CostCenter:     d.CostCenter,
		ProjectCode:    d.ProjectCode,
		DepartmentCode: d.DepartmentCode,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model GLEntry to a domain GLEntry
func ToDomainEntry(m models.GLEntry) domain.GLEntry {
	return domain.GLEntry{
		EntryID:        m.EntryID,
		TransactionID:  m.TransactionID,
		AccountID:      m.AccountID,
		DebitAmount:    m.DebitAmount,
		CreditAmount:   m.CreditAmount,
		Description:    m.Description,
		LineNumber:     m.LineNumber,
		CostCenter:     m.CostCenter,
		ProjectCode:    m.ProjectCode,
		DepartmentCode: m.DepartmentCode,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts model GLEntries to domain GLEntries
func ToDomainEntrySlice(ms []models.GLEntry) []domain.GLEntry {
	ds := make([]domain.GLEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}

package mapping

import (
	"github.com/centbook/centbook_backend/internal/core/domain"
	"github.com/centbook/centbook_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		OwnerID:         d.OwnerID,
		OriginAccountID: d.OriginAccountID,
		TargetAccountID: d.TargetAccountID,
		Amount:          d.Amount,
		Type:            models.TransactionType(d.Type),
		CategoryID:      d.CategoryID,
		Notes:           d.Notes,
		Interval:        d.Interval,
		OccurredAt:      d.OccurredAt,
		Pending:         d.Pending,
		ExpiresAt:       d.ExpiresAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		OwnerID:         m.OwnerID,
		OriginAccountID: m.OriginAccountID,
		TargetAccountID: m.TargetAccountID,
		Amount:          m.Amount,
		Type:            domain.TransactionType(m.Type),
		CategoryID:      m.CategoryID,
		Notes:           m.Notes,
		Interval:        m.Interval,
		OccurredAt:      m.OccurredAt,
		Pending:         m.Pending,
		ExpiresAt:       m.ExpiresAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

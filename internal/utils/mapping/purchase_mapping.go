package mapping

import (
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/models"
)

// ToModelPurchase converts a domain Purchase header to a model row.
func ToModelPurchase(d domain.Purchase) models.Purchase {
	return models.Purchase{
		PurchaseID:   d.PurchaseID,
		SupplierID:   d.SupplierID,
		BatchNumber:  d.BatchNumber,
		PurchaseDate: d.PurchaseDate,
		CurrencyID:   d.CurrencyID,
		ExchangeRate: d.ExchangeRate,
		TotalAmount:  d.TotalAmount,
		PaidAmount:   d.PaidAmount,
		Notes:        d.Notes,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchase converts a model Purchase header to domain.
func ToDomainPurchase(m models.Purchase) domain.Purchase {
	return domain.Purchase{
		PurchaseID:   m.PurchaseID,
		SupplierID:   m.SupplierID,
		BatchNumber:  m.BatchNumber,
		PurchaseDate: m.PurchaseDate,
		CurrencyID:   m.CurrencyID,
		ExchangeRate: m.ExchangeRate,
		TotalAmount:  m.TotalAmount,
		PaidAmount:   m.PaidAmount,
		Notes:        m.Notes,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPurchaseItem converts a domain PurchaseItem to a model row.
func ToModelPurchaseItem(d domain.PurchaseItem) models.PurchaseItem {
	return models.PurchaseItem{
		PurchaseItemID: d.PurchaseItemID,
		PurchaseID:     d.PurchaseID,
		ProductID:      d.ProductID,
		UnitID:         d.UnitID,
		PerPrice:       d.PerPrice,
		Amount:         d.Amount,
		Total:          d.Total,
		CostPrice:      d.CostPrice,
		WholesalePrice: d.WholesalePrice,
		RetailPrice:    d.RetailPrice,
		ExpiryDate:     d.ExpiryDate,
	}
}

// ToDomainPurchaseItem converts a model PurchaseItem to domain.
func ToDomainPurchaseItem(m models.PurchaseItem) domain.PurchaseItem {
	return domain.PurchaseItem{
		PurchaseItemID: m.PurchaseItemID,
		PurchaseID:     m.PurchaseID,
		ProductID:      m.ProductID,
		UnitID:         m.UnitID,
		PerPrice:       m.PerPrice,
		Amount:         m.Amount,
		Total:          m.Total,
		CostPrice:      m.CostPrice,
		WholesalePrice: m.WholesalePrice,
		RetailPrice:    m.RetailPrice,
		ExpiryDate:     m.ExpiryDate,
	}
}

// ToModelPurchasePayment converts a domain PurchasePayment to a model row.
func ToModelPurchasePayment(d domain.PurchasePayment) models.PurchasePayment {
	return models.PurchasePayment{
		PaymentID:   d.PaymentID,
		PurchaseID:  d.PurchaseID,
		AccountID:   d.AccountID,
		Amount:      d.Amount,
		CurrencyID:  d.CurrencyID,
		Rate:        d.Rate,
		BaseAmount:  d.BaseAmount,
		PaymentDate: d.PaymentDate,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchasePayment converts a model PurchasePayment to domain.
func ToDomainPurchasePayment(m models.PurchasePayment) domain.PurchasePayment {
	return domain.PurchasePayment{
		PaymentID:   m.PaymentID,
		PurchaseID:  m.PurchaseID,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		CurrencyID:  m.CurrencyID,
		Rate:        m.Rate,
		BaseAmount:  m.BaseAmount,
		PaymentDate: m.PaymentDate,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

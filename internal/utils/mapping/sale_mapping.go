package mapping

import (
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/models"
)

func toModelDiscountType(d *domain.DiscountType) *string {
	if d == nil {
		return nil
	}
	s := string(*d)
	return &s
}

func toDomainDiscountType(s *string) *domain.DiscountType {
	if s == nil {
		return nil
	}
	d := domain.DiscountType(*s)
	return &d
}

// ToModelSale converts a domain Sale header to a model row.
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:         d.SaleID,
		CustomerID:     d.CustomerID,
		SaleDate:       d.SaleDate,
		CurrencyID:     d.CurrencyID,
		ExchangeRate:   d.ExchangeRate,
		DiscountType:   toModelDiscountType(d.DiscountType),
		DiscountValue:  d.DiscountValue,
		DiscountAmount: d.DiscountAmount,
		DiscountCode:   d.DiscountCode,
		TotalAmount:    d.TotalAmount,
		BaseAmount:     d.BaseAmount,
		PaidAmount:     d.PaidAmount,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale header to domain.
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:         m.SaleID,
		CustomerID:     m.CustomerID,
		SaleDate:       m.SaleDate,
		CurrencyID:     m.CurrencyID,
		ExchangeRate:   m.ExchangeRate,
		DiscountType:   toDomainDiscountType(m.DiscountType),
		DiscountValue:  m.DiscountValue,
		DiscountAmount: m.DiscountAmount,
		DiscountCode:   m.DiscountCode,
		TotalAmount:    m.TotalAmount,
		BaseAmount:     m.BaseAmount,
		PaidAmount:     m.PaidAmount,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSaleItem converts a domain SaleItem to a model row.
func ToModelSaleItem(d domain.SaleItem) models.SaleItem {
	return models.SaleItem{
		SaleItemID:     d.SaleItemID,
		SaleID:         d.SaleID,
		ProductID:      d.ProductID,
		UnitID:         d.UnitID,
		PurchaseItemID: d.PurchaseItemID,
		PerPrice:       d.PerPrice,
		Amount:         d.Amount,
		DiscountType:   toModelDiscountType(d.DiscountType),
		DiscountValue:  d.DiscountValue,
		Total:          d.Total,
	}
}

// ToDomainSaleItem converts a model SaleItem to domain.
func ToDomainSaleItem(m models.SaleItem) domain.SaleItem {
	return domain.SaleItem{
		SaleItemID:     m.SaleItemID,
		SaleID:         m.SaleID,
		ProductID:      m.ProductID,
		UnitID:         m.UnitID,
		PurchaseItemID: m.PurchaseItemID,
		PerPrice:       m.PerPrice,
		Amount:         m.Amount,
		DiscountType:   toDomainDiscountType(m.DiscountType),
		DiscountValue:  m.DiscountValue,
		Total:          m.Total,
	}
}

// ToModelSaleServiceItem converts a domain SaleServiceItem to a model row.
func ToModelSaleServiceItem(d domain.SaleServiceItem) models.SaleServiceItem {
	return models.SaleServiceItem{
		ServiceItemID: d.ServiceItemID,
		SaleID:        d.SaleID,
		Title:         d.Title,
		PerPrice:      d.PerPrice,
		Amount:        d.Amount,
		DiscountType:  toModelDiscountType(d.DiscountType),
		DiscountValue: d.DiscountValue,
		Total:         d.Total,
	}
}

// ToDomainSaleServiceItem converts a model SaleServiceItem to domain.
func ToDomainSaleServiceItem(m models.SaleServiceItem) domain.SaleServiceItem {
	return domain.SaleServiceItem{
		ServiceItemID: m.ServiceItemID,
		SaleID:        m.SaleID,
		Title:         m.Title,
		PerPrice:      m.PerPrice,
		Amount:        m.Amount,
		DiscountType:  toDomainDiscountType(m.DiscountType),
		DiscountValue: m.DiscountValue,
		Total:         m.Total,
	}
}

// ToModelSalePayment converts a domain SalePayment to a model row.
func ToModelSalePayment(d domain.SalePayment) models.SalePayment {
	return models.SalePayment{
		PaymentID:   d.PaymentID,
		SaleID:      d.SaleID,
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

// ToDomainSalePayment converts a model SalePayment to domain.
func ToDomainSalePayment(m models.SalePayment) domain.SalePayment {
	return domain.SalePayment{
		PaymentID:   m.PaymentID,
		SaleID:      m.SaleID,
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

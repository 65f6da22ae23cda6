package mapping

import (
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/models"
)

// ToModelProduct converts a domain Product to a model row.
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:   d.ProductID,
		Name:        d.Name,
		SKU:         d.SKU,
		UnitID:      d.UnitID,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to domain.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		SKU:         m.SKU,
		UnitID:      m.UnitID,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCustomer converts a domain Customer to a model row.
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		Name:        d.Name,
		Phone:       d.Phone,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to domain.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Name:        m.Name,
		Phone:       m.Phone,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSupplier converts a domain Supplier to a model row.
func ToModelSupplier(d domain.Supplier) models.Supplier {
	return models.Supplier{
		SupplierID:  d.SupplierID,
		Name:        d.Name,
		Phone:       d.Phone,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSupplier converts a model Supplier to domain.
func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:  m.SupplierID,
		Name:        m.Name,
		Phone:       m.Phone,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCOACategory converts a domain COACategory to a model row.
func ToModelCOACategory(d domain.COACategory) models.COACategory {
	return models.COACategory{
		CategoryID:  d.CategoryID,
		Name:        d.Name,
		ParentID:    d.ParentID,
		Level:       d.Level,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCOACategory converts a model COACategory to domain.
func ToDomainCOACategory(m models.COACategory) domain.COACategory {
	return domain.COACategory{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		ParentID:    m.ParentID,
		Level:       m.Level,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

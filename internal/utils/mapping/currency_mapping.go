package mapping

import (
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency.
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyID:  d.CurrencyID,
		Name:        d.Name,
		Symbol:      d.Symbol,
		Rate:        d.Rate,
		IsBase:      d.IsBase,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID:  m.CurrencyID,
		Name:        m.Name,
		Symbol:      m.Symbol,
		Rate:        m.Rate,
		IsBase:      m.IsBase,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelUnit converts a domain Unit to a model Unit.
func ToModelUnit(d domain.Unit) models.Unit {
	return models.Unit{
		UnitID:      d.UnitID,
		Name:        d.Name,
		GroupID:     d.GroupID,
		Ratio:       d.Ratio,
		IsBase:      d.IsBase,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUnit converts a model Unit to a domain Unit.
func ToDomainUnit(m models.Unit) domain.Unit {
	return domain.Unit{
		UnitID:      m.UnitID,
		Name:        m.Name,
		GroupID:     m.GroupID,
		Ratio:       m.Ratio,
		IsBase:      m.IsBase,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

package domain

import "github.com/shopspring/decimal"

// Unit represents a measurement unit. Ratio converts 1 unit to the base unit
// of its group and must be positive.
type Unit struct {
	UnitID  string          `json:"unitID"`
	Name    string          `json:"name"`
	GroupID *string         `json:"groupID"`
	Ratio   decimal.Decimal `json:"ratio"`
	IsBase  bool            `json:"isBase"`
	AuditFields
}

package domain

// Product represents a sellable/purchasable good.
type Product struct {
	ProductID string  `json:"productID"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	UnitID    *string `json:"unitID"` // default unit for display, optional
	IsActive  bool    `json:"isActive"`
	AuditFields
}

// Customer is a sale counterparty.
type Customer struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes"`
	AuditFields
}

// Supplier is a purchase counterparty.
type Supplier struct {
	SupplierID string `json:"supplierID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes"`
	AuditFields
}

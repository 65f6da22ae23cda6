package models

// Product is the products table row.
type Product struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	SKU       string  `db:"sku"`
	UnitID    *string `db:"unit_id"`
	IsActive  bool    `db:"is_active"`
	AuditFields
}

// Customer is the customers table row.
type Customer struct {
	CustomerID string `db:"customer_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	Notes      string `db:"notes"`
	AuditFields
}

// Supplier is the suppliers table row.
type Supplier struct {
	SupplierID string `db:"supplier_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	Notes      string `db:"notes"`
	AuditFields
}

// COACategory is the coa_categories table row.
type COACategory struct {
	CategoryID string  `db:"category_id"`
	Name       string  `db:"name"`
	ParentID   *string `db:"parent_id"`
	Level      int     `db:"level"`
	AuditFields
}

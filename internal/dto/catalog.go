package dto

import (
	"time"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// CreateProductRequest defines the data needed to create a product.
type CreateProductRequest struct {
	Name   string  `json:"name" binding:"required"`
	SKU    string  `json:"sku"`
	UnitID *string `json:"unitID"`
}

// UpdateProductRequest defines the data allowed for updating a product.
type UpdateProductRequest struct {
	Name     *string `json:"name"`
	SKU      *string `json:"sku"`
	UnitID   *string `json:"unitID"`
	IsActive *bool   `json:"isActive"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID     string    `json:"productID"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	UnitID        *string   `json:"unitID"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	ListParams
	Search string `form:"search"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Name:          p.Name,
		SKU:           p.SKU,
		UnitID:        p.UnitID,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToListProductResponse converts a slice of domain.Product to DTOs
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}

// CreateContactRequest defines the data needed to create a customer or
// supplier.
type CreateContactRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// UpdateContactRequest defines the data allowed for updating a contact.
type UpdateContactRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

// ContactResponse defines the data returned for a customer or supplier.
type ContactResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListContactsParams defines query parameters for listing contacts.
type ListContactsParams struct {
	ListParams
	Search string `form:"search"`
}

// ToCustomerResponse converts a domain.Customer to ContactResponse DTO
func ToCustomerResponse(c *domain.Customer) ContactResponse {
	return ContactResponse{
		ID:            c.CustomerID,
		Name:          c.Name,
		Phone:         c.Phone,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToSupplierResponse converts a domain.Supplier to ContactResponse DTO
func ToSupplierResponse(s *domain.Supplier) ContactResponse {
	return ContactResponse{
		ID:            s.SupplierID,
		Name:          s.Name,
		Phone:         s.Phone,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		LastUpdatedAt: s.LastUpdatedAt,
	}
}

// CreateCOACategoryRequest defines the data needed to create a chart of
// accounts category. Level is derived from the parent, never accepted.
type CreateCOACategoryRequest struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parentID"`
}

// UpdateCOACategoryRequest defines the data allowed for updating a category.
type UpdateCOACategoryRequest struct {
	Name *string `json:"name"`
}

// COACategoryResponse defines the data returned for a category.
type COACategoryResponse struct {
	CategoryID string  `json:"categoryID"`
	Name       string  `json:"name"`
	ParentID   *string `json:"parentID"`
	Level      int     `json:"level"`
}

// ToCOACategoryResponse converts a domain.COACategory to DTO
func ToCOACategoryResponse(c *domain.COACategory) COACategoryResponse {
	return COACategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		ParentID:   c.ParentID,
		Level:      c.Level,
	}
}

// ToListCOACategoryResponse converts a slice of domain.COACategory to DTOs
func ToListCOACategoryResponse(categories []domain.COACategory) []COACategoryResponse {
	res := make([]COACategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCOACategoryResponse(&categories[i])
	}
	return res
}

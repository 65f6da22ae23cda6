package services

import (
	"context"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// ProductSvcFacade defines product catalog operations.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// CustomerSvcFacade defines customer operations.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateContactRequest, userID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, params dto.ListContactsParams) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateContactRequest, userID string) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

// SupplierSvcFacade defines supplier operations.
type SupplierSvcFacade interface {
	CreateSupplier(ctx context.Context, req dto.CreateContactRequest, userID string) (*domain.Supplier, error)
	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, params dto.ListContactsParams) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateContactRequest, userID string) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, supplierID string) error
}

// COACategorySvcFacade defines chart-of-accounts category operations.
type COACategorySvcFacade interface {
	// CreateCategory persists a new category, deriving its level from the parent.
	CreateCategory(ctx context.Context, req dto.CreateCOACategoryRequest, userID string) (*domain.COACategory, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.COACategory, error)
	ListCategories(ctx context.Context) ([]domain.COACategory, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCOACategoryRequest, userID string) (*domain.COACategory, error)
	// DeleteCategory removes a leaf category with no accounts attached.
	DeleteCategory(ctx context.Context, categoryID string) error
}

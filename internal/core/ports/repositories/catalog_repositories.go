package repositories

import (
	"context"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// ProductRepositoryFacade defines persistence for products.
type ProductRepositoryFacade interface {
	// FindProductByID retrieves a specific product by its identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a paginated list of products, optionally
	// filtered by a case-insensitive name/SKU search term.
	ListProducts(ctx context.Context, search string, limit int, offset int) ([]domain.Product, error)

	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates an existing product's details.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeleteProduct removes a product. Fails with ErrConflict when the
	// product appears on purchase or sale lines.
	DeleteProduct(ctx context.Context, productID string) error
}

// CustomerRepositoryFacade defines persistence for customers.
type CustomerRepositoryFacade interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, search string, limit int, offset int) ([]domain.Customer, error)
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	DeleteCustomer(ctx context.Context, customerID string) error
}

// SupplierRepositoryFacade defines persistence for suppliers.
type SupplierRepositoryFacade interface {
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, search string, limit int, offset int) ([]domain.Supplier, error)
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) error
	DeleteSupplier(ctx context.Context, supplierID string) error
}

// COACategoryRepositoryFacade defines persistence for chart-of-accounts
// categories.
type COACategoryRepositoryFacade interface {
	// FindCategoryByID retrieves a specific category by its identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.COACategory, error)

	// ListCategories retrieves every category, ordered by level then name.
	ListCategories(ctx context.Context) ([]domain.COACategory, error)

	// HasChildren reports whether any category references the given one as parent.
	HasChildren(ctx context.Context, categoryID string) (bool, error)

	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.COACategory) error

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, category domain.COACategory) error

	// DeleteCategory removes a category. Fails with ErrConflict when it has
	// children or accounts attached.
	DeleteCategory(ctx context.Context, categoryID string) error
}

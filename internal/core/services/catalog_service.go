package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// productService provides product catalog operations.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
	unitRepo    portsrepo.UnitRepositoryFacade
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, unitRepo portsrepo.UnitRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo, unitRepo: unitRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	if req.UnitID != nil {
		if _, err := s.unitRepo.FindUnitByID(ctx, *req.UnitID); err != nil {
			return nil, fmt.Errorf("%w: unit %s does not exist", apperrors.ErrValidation, *req.UnitID)
		}
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID: uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		SKU:       strings.TrimSpace(req.SKU),
		UnitID:    req.UnitID,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, strings.TrimSpace(params.Search), params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.SKU != nil {
		product.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.UnitID != nil {
		if _, err := s.unitRepo.FindUnitByID(ctx, *req.UnitID); err != nil {
			return nil, fmt.Errorf("%w: unit %s does not exist", apperrors.ErrValidation, *req.UnitID)
		}
		product.UnitID = req.UnitID
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = userID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	if _, err := s.productRepo.FindProductByID(ctx, productID); err != nil {
		return err
	}
	return s.productRepo.DeleteProduct(ctx, productID)
}

// customerService provides customer operations.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateContactRequest, userID string) (*domain.Customer, error) {
	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, params dto.ListContactsParams) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, strings.TrimSpace(params.Search), params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateContactRequest, userID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = userID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return err
	}
	return s.customerRepo.DeleteCustomer(ctx, customerID)
}

// supplierService provides supplier operations.
type supplierService struct {
	supplierRepo portsrepo.SupplierRepositoryFacade
}

// NewSupplierService creates a new SupplierService.
func NewSupplierService(supplierRepo portsrepo.SupplierRepositoryFacade) portssvc.SupplierSvcFacade {
	return &supplierService{supplierRepo: supplierRepo}
}

var _ portssvc.SupplierSvcFacade = (*supplierService)(nil)

func (s *supplierService) CreateSupplier(ctx context.Context, req dto.CreateContactRequest, userID string) (*domain.Supplier, error) {
	now := time.Now().UTC()
	supplier := domain.Supplier{
		SupplierID: uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.supplierRepo.SaveSupplier(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return &supplier, nil
}

func (s *supplierService) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) ListSuppliers(ctx context.Context, params dto.ListContactsParams) ([]domain.Supplier, error) {
	suppliers, err := s.supplierRepo.ListSuppliers(ctx, strings.TrimSpace(params.Search), params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	if suppliers == nil {
		return []domain.Supplier{}, nil
	}
	return suppliers, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateContactRequest, userID string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		supplier.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		supplier.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Notes != nil {
		supplier.Notes = *req.Notes
	}
	supplier.LastUpdatedAt = time.Now().UTC()
	supplier.LastUpdatedBy = userID

	if err := s.supplierRepo.UpdateSupplier(ctx, *supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, supplierID string) error {
	if _, err := s.supplierRepo.FindSupplierByID(ctx, supplierID); err != nil {
		return err
	}
	return s.supplierRepo.DeleteSupplier(ctx, supplierID)
}

// coaCategoryService provides chart-of-accounts category operations.
type coaCategoryService struct {
	coaRepo portsrepo.COACategoryRepositoryFacade
}

// NewCOACategoryService creates a new COACategoryService.
func NewCOACategoryService(coaRepo portsrepo.COACategoryRepositoryFacade) portssvc.COACategorySvcFacade {
	return &coaCategoryService{coaRepo: coaRepo}
}

var _ portssvc.COACategorySvcFacade = (*coaCategoryService)(nil)

// CreateCategory persists a new category, deriving its level from the parent.
func (s *coaCategoryService) CreateCategory(ctx context.Context, req dto.CreateCOACategoryRequest, userID string) (*domain.COACategory, error) {
	level := 0
	if req.ParentID != nil {
		parent, err := s.coaRepo.FindCategoryByID(ctx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("%w: parent category %s does not exist", apperrors.ErrValidation, *req.ParentID)
		}
		level = parent.Level + 1
	}

	now := time.Now().UTC()
	category := domain.COACategory{
		CategoryID: uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		ParentID:   req.ParentID,
		Level:      level,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.coaRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (s *coaCategoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.COACategory, error) {
	category, err := s.coaRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *coaCategoryService) ListCategories(ctx context.Context) ([]domain.COACategory, error) {
	categories, err := s.coaRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.COACategory{}, nil
	}
	return categories, nil
}

func (s *coaCategoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCOACategoryRequest, userID string) (*domain.COACategory, error) {
	category, err := s.coaRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = userID

	if err := s.coaRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a leaf category with no accounts attached.
func (s *coaCategoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	if _, err := s.coaRepo.FindCategoryByID(ctx, categoryID); err != nil {
		return err
	}
	hasChildren, err := s.coaRepo.HasChildren(ctx, categoryID)
	if err != nil {
		return err
	}
	if hasChildren {
		return fmt.Errorf("%w: category %s has child categories", apperrors.ErrConflict, categoryID)
	}
	return s.coaRepo.DeleteCategory(ctx, categoryID)
}

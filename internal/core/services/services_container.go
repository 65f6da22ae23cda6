package services

import (
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first: every document service that touches money
	// depends on its ledger primitive.
	container.Account = NewAccountService(repos.AccountRepo, repos.CurrencyRepo, repos.COACategoryRepo)

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Unit = NewUnitService(repos.UnitRepo)
	container.Product = NewProductService(repos.ProductRepo, repos.UnitRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Supplier = NewSupplierService(repos.SupplierRepo)
	container.COACategory = NewCOACategoryService(repos.COACategoryRepo)

	container.Discount = NewDiscountService(repos.DiscountCodeRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo, repos.ProductRepo, repos.UnitRepo)

	container.Purchase = NewPurchaseService(
		repos.PurchaseRepo,
		repos.SequenceRepo,
		repos.CurrencyRepo,
		repos.SupplierRepo,
		repos.ProductRepo,
		repos.UnitRepo,
		container.Account,
	)
	container.Sale = NewSaleService(
		repos.SaleRepo,
		repos.InventoryRepo,
		repos.CurrencyRepo,
		repos.CustomerRepo,
		repos.ProductRepo,
		repos.UnitRepo,
		container.Discount,
		container.Account,
	)
	container.Journal = NewJournalService(repos.JournalRepo, repos.SequenceRepo, repos.CurrencyRepo, container.Account)

	// Expense and payroll writes share the account repo's transaction manager
	// so their ledger movements commit atomically with the document row.
	container.Expense = NewExpenseService(repos.ExpenseTypeRepo, repos.ExpenseRepo, repos.CurrencyRepo, repos.AccountRepo, container.Account)
	container.Payroll = NewPayrollService(repos.EmployeeRepo, repos.SalaryRepo, repos.CurrencyRepo, repos.AccountRepo, container.Account)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(repos.UserRepo, container.Token)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}

package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryWithTx
	UnitRepo         UnitRepositoryFacade
	ProductRepo      ProductRepositoryFacade
	CustomerRepo     CustomerRepositoryFacade
	SupplierRepo     SupplierRepositoryFacade
	COACategoryRepo  COACategoryRepositoryFacade
	AccountRepo      AccountRepositoryWithTx
	PurchaseRepo     PurchaseRepositoryWithTx
	SaleRepo         SaleRepositoryWithTx
	InventoryRepo    InventoryRepository
	JournalRepo      JournalRepositoryWithTx
	SequenceRepo     SequenceRepository
	DiscountCodeRepo DiscountCodeRepositoryFacade
	ExpenseTypeRepo  ExpenseTypeRepositoryFacade
	ExpenseRepo      ExpenseRepositoryFacade
	EmployeeRepo     EmployeeRepositoryFacade
	SalaryRepo       SalaryRepositoryFacade
	UserRepo         UserRepositoryFacade
	ReportingRepo    ReportingRepository
}

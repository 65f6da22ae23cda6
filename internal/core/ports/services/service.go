package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Currency    CurrencySvcFacade
	Unit        UnitSvcFacade
	Product     ProductSvcFacade
	Customer    CustomerSvcFacade
	Supplier    SupplierSvcFacade
	COACategory COACategorySvcFacade
	Account     AccountSvcFacade
	Purchase    PurchaseSvcFacade
	Sale        SaleSvcFacade
	Inventory   InventorySvcFacade
	Journal     JournalSvcFacade
	Discount    DiscountSvcFacade
	Expense     ExpenseSvcFacade
	Payroll     PayrollSvcFacade
	User        UserSvcFacade
	Auth        AuthSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
	Reporting   ReportingService
}

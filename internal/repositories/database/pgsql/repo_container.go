package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		UnitRepo:         newPgxUnitRepository(dbPool),
		ProductRepo:      newPgxProductRepository(dbPool),
		CustomerRepo:     newPgxCustomerRepository(dbPool),
		SupplierRepo:     newPgxSupplierRepository(dbPool),
		COACategoryRepo:  newPgxCOACategoryRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		PurchaseRepo:     newPgxPurchaseRepository(dbPool),
		SaleRepo:         newPgxSaleRepository(dbPool),
		InventoryRepo:    newPgxInventoryRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		SequenceRepo:     newPgxSequenceRepository(dbPool),
		DiscountCodeRepo: newPgxDiscountCodeRepository(dbPool),
		ExpenseTypeRepo:  newPgxExpenseTypeRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		EmployeeRepo:     newPgxEmployeeRepository(dbPool),
		SalaryRepo:       newPgxSalaryRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		ReportingRepo:    newPgxReportingRepository(dbPool),
	}
}

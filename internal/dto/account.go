package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	CurrencyID     string             `json:"currencyID" binding:"required"`
	COACategoryID  *string            `json:"coaCategoryID"`
	AccountCode    *string            `json:"accountCode"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name          *string `json:"name"`
	CurrencyID    *string `json:"currencyID"`
	COACategoryID *string `json:"coaCategoryID"`
	AccountCode   *string `json:"accountCode"`
	IsActive      *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string                    `json:"accountID"`
	Name           string                    `json:"name"`
	CurrencyID     string                    `json:"currencyID"`
	COACategoryID  *string                   `json:"coaCategoryID"`
	AccountCode    *string                   `json:"accountCode"`
	AccountType    domain.AccountType        `json:"accountType"`
	InitialBalance decimal.Decimal           `json:"initialBalance"`
	CurrentBalance decimal.Decimal           `json:"currentBalance"`
	IsActive       bool                      `json:"isActive"`
	CreatedAt      time.Time                 `json:"createdAt"`
	LastUpdatedAt  time.Time                 `json:"lastUpdatedAt"`
	Balances       []CurrencyBalanceResponse `json:"balances,omitempty"`
}

// CurrencyBalanceResponse is one per-currency ledger row of an account.
type CurrencyBalanceResponse struct {
	CurrencyID string          `json:"currencyID"`
	Balance    decimal.Decimal `json:"balance"`
}

// CreateAccountTransactionRequest defines the data needed for a deposit or
// withdrawal. Rate defaults to the currency's configured rate when omitted.
// IsFull on a withdrawal drains the currency balance; on a deposit it settles
// a negative currency balance back to zero. Amount is ignored when IsFull is
// set.
type CreateAccountTransactionRequest struct {
	Amount          decimal.Decimal  `json:"amount"`
	CurrencyID      string           `json:"currencyID" binding:"required"`
	Rate            *decimal.Decimal `json:"rate"`
	TransactionDate string           `json:"transactionDate" binding:"required,datetime=2006-01-02"`
	IsFull          bool             `json:"isFull"`
	Notes           string           `json:"notes"`
}

// AccountTransactionResponse defines the data returned for a movement.
type AccountTransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyID      string          `json:"currencyID"`
	Rate            decimal.Decimal `json:"rate"`
	Total           decimal.Decimal `json:"total"`
	TransactionDate time.Time       `json:"transactionDate"`
	IsFull          bool            `json:"isFull"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Name:           acc.Name,
		CurrencyID:     acc.CurrencyID,
		COACategoryID:  acc.COACategoryID,
		AccountCode:    acc.AccountCode,
		AccountType:    acc.AccountType,
		InitialBalance: acc.InitialBalance,
		CurrentBalance: acc.CurrentBalance,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		LastUpdatedAt:  acc.LastUpdatedAt,
	}
}

// ToAccountResponseWithBalances converts an account plus its ledger rows.
func ToAccountResponseWithBalances(acc *domain.Account, balances []domain.AccountCurrencyBalance) AccountResponse {
	resp := ToAccountResponse(acc)
	resp.Balances = make([]CurrencyBalanceResponse, len(balances))
	for i, b := range balances {
		resp.Balances[i] = CurrencyBalanceResponse{CurrencyID: b.CurrencyID, Balance: b.Balance}
	}
	return resp
}

// ToListAccountResponse converts a slice of domain.Account to DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ToAccountTransactionResponse converts a domain.AccountTransaction to DTO
func ToAccountTransactionResponse(txn *domain.AccountTransaction) AccountTransactionResponse {
	return AccountTransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		Type:            string(txn.Type),
		Amount:          txn.Amount,
		CurrencyID:      txn.CurrencyID,
		Rate:            txn.Rate,
		Total:           txn.Total,
		TransactionDate: txn.TransactionDate,
		IsFull:          txn.IsFull,
		Notes:           txn.Notes,
		CreatedAt:       txn.CreatedAt,
	}
}

// ToListAccountTransactionResponse converts movements to DTOs
func ToListAccountTransactionResponse(txns []domain.AccountTransaction) []AccountTransactionResponse {
	res := make([]AccountTransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToAccountTransactionResponse(&txns[i])
	}
	return res
}

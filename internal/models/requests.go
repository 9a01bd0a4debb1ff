package models

import "github.com/shopspring/decimal"

// CreateAccountRequest is the body of an account creation call.
type CreateAccountRequest struct {
	AccountID string           `json:"accountId" validate:"required,notblank"`
	Balance   *decimal.Decimal `json:"balance" validate:"required,dgte0"`
}

// TransferRequest represents an intent to move money between two accounts.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountId" validate:"required,notblank"`
	ToAccountID   string          `json:"toAccountId" validate:"required,notblank"`
	Amount        decimal.Decimal `json:"amount" validate:"dgt0"`
}

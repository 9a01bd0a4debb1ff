package errors

var (
	ErrAccountNotFound = &DomainError{
		Code:    "ACCOUNT_NOT_FOUND",
		Message: "Account does not exist.",
	}
	ErrDuplicateAccountID = &DomainError{
		Code:    "DUPLICATE_ACCOUNT_ID",
		Message: "duplicate account id",
	}
	ErrNegativeBalance = &DomainError{
		Code:    "NEGATIVE_BALANCE",
		Message: "Initial balance must be positive.",
	}
)

package errors

var (
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "Insufficient Balance",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "Transfer amount must be greater than zero.",
	}
	ErrSelfTransfer = &DomainError{
		Code:    "SELF_TRANSFER",
		Message: "Cannot transfer to the same account.",
	}
)

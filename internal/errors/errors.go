// Package errors holds the domain error taxonomy shared by the ledger,
// the storage layer and the HTTP edge.
package errors

// DomainError is a stable, machine readable failure. Two DomainErrors match
// under errors.Is when their codes are equal.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// WithMessage returns a copy of e with a more specific message.
func (e *DomainError) WithMessage(msg string) *DomainError {
	return &DomainError{Code: e.Code, Message: msg}
}

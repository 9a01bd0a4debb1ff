package models

import (
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"
)

// Account is a single ledger account. The balance is only read or written
// while mu is held. The identifier is fixed at creation because lock
// ordering depends on it.
type Account struct {
	id      string
	mu      sync.Mutex      // serializes balance reads and writes
	balance decimal.Decimal // never negative
}

// NewAccount returns an account with the given opening balance.
func NewAccount(id string, balance decimal.Decimal) *Account {
	return &Account{
		id:      id,
		balance: balance,
	}
}

// ID returns the account identifier.
func (a *Account) ID() string { return a.id }

// Lock acquires the account's mutex. Every Lock must be paired with Unlock.
func (a *Account) Lock() { a.mu.Lock() }

// Unlock releases the account's mutex.
func (a *Account) Unlock() { a.mu.Unlock() }

// Balance returns a consistent snapshot of the balance. It must not be
// called while the caller already holds the account lock.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// BalanceLocked returns the balance. The caller must hold the lock.
func (a *Account) BalanceLocked() decimal.Decimal {
	return a.balance
}

// SetBalanceLocked replaces the balance. The caller must hold the lock.
func (a *Account) SetBalanceLocked(balance decimal.Decimal) {
	a.balance = balance
}

type accountJSON struct {
	AccountID string          `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
}

// MarshalJSON renders the account with a balance snapshot.
func (a *Account) MarshalJSON() ([]byte, error) {
	return json.Marshal(accountJSON{
		AccountID: a.id,
		Balance:   a.Balance(),
	})
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	errs "github.com/sheikh-saqib/accounts-transfer-service/internal/errors"
	interfaces "github.com/sheikh-saqib/accounts-transfer-service/internal/interfaces"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/models"
)

// MemoryAccountStore is an in-memory implementation of interfaces.AccountStore.
// mu guards the map only; account balances are guarded by each account's
// own lock.
type MemoryAccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

// NewMemoryAccountStore creates an empty store.
func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{
		accounts: make(map[string]*models.Account),
	}
}

// CreateAccount registers a new account. Identifiers are unique and
// opening balances may not be negative.
func (m *MemoryAccountStore) CreateAccount(ctx context.Context, account *models.Account) error {
	// opening balance is read through the account lock, before the map lock
	if account.Balance().LessThan(decimal.Zero) {
		return errs.ErrNegativeBalance
	}

	m.mu.Lock()         // lock the map for the check-then-insert
	defer m.mu.Unlock() // unlock automatically when function exits

	if _, exists := m.accounts[account.ID()]; exists {
		return errs.ErrDuplicateAccountID.WithMessage(fmt.Sprintf("Account id %s already exists!", account.ID()))
	}
	m.accounts[account.ID()] = account
	return nil
}

// GetAccount returns the shared account record for accountID.
func (m *MemoryAccountStore) GetAccount(ctx context.Context, accountID string) (*models.Account, bool) {
	m.mu.RLock()         // readers share the map, writers wait
	defer m.mu.RUnlock() // unlock automatically at the end

	account, ok := m.accounts[accountID]
	return account, ok
}

// Accounts returns every account ordered by identifier.
func (m *MemoryAccountStore) Accounts() []*models.Account {
	// copy the pointers out so sorting happens without the map lock
	m.mu.RLock()
	result := make([]*models.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		result = append(result, a)
	}
	m.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

// ClearAccounts drops every account.
func (m *MemoryAccountStore) ClearAccounts() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accounts = make(map[string]*models.Account)
}

// Compile-time check: ensure MemoryAccountStore implements AccountStore interface
var _ interfaces.AccountStore = (*MemoryAccountStore)(nil)

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // registers the "postgres" driver
	"github.com/shopspring/decimal"

	interfaces "github.com/sheikh-saqib/accounts-transfer-service/internal/interfaces"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/models"
)

// Open connects to databaseURL with lib/pq and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// AccountSeeder loads opening balances from an accounts table. It only reads;
// balances changed at runtime are not written back.
type AccountSeeder struct {
	db *sql.DB
}

func NewAccountSeeder(db *sql.DB) *AccountSeeder {
	return &AccountSeeder{
		db: db,
	}
}

// LoadAccounts reads every row of the accounts table ordered by ID.
func (s *AccountSeeder) LoadAccounts(ctx context.Context) ([]*models.Account, error) {
	const query = `SELECT account_id, balance FROM accounts ORDER BY account_id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		var (
			id      string
			balance decimal.Decimal
		)
		if err := rows.Scan(&id, &balance); err != nil {
			return nil, err
		}
		accounts = append(accounts, models.NewAccount(id, balance))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Seed loads every account and registers it in store. It stops at the
// first account the store rejects.
func (s *AccountSeeder) Seed(ctx context.Context, store interfaces.AccountStore) (int, error) {
	accounts, err := s.LoadAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("load accounts: %w", err)
	}
	return SeedAccounts(ctx, store, accounts)
}

// SeedAccounts registers accounts in store in order.
func SeedAccounts(ctx context.Context, store interfaces.AccountStore, accounts []*models.Account) (int, error) {
	for i, account := range accounts {
		if err := store.CreateAccount(ctx, account); err != nil {
			return i, fmt.Errorf("seed account %s: %w", account.ID(), err)
		}
	}
	return len(accounts), nil
}

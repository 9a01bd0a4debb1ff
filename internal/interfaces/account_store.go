package interfaces

import (
	"context"

	"github.com/sheikh-saqib/accounts-transfer-service/internal/models"
)

// AccountStore holds the canonical set of accounts keyed by identifier.
// It hands out shared references; callers lock the account itself before
// touching its balance.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, accountID string) (*models.Account, bool)
}

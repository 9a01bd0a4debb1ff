package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	errs "github.com/sheikh-saqib/accounts-transfer-service/internal/errors"
	interfaces "github.com/sheikh-saqib/accounts-transfer-service/internal/interfaces"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/models"
)

// DefaultCurrencyLabel prefixes amounts in notification messages.
const DefaultCurrencyLabel = "Rs"

// Ledger coordinates account creation, lookup and transfers.
// It borrows account records from the store and never owns them.
type Ledger struct {
	store         interfaces.AccountStore
	notifier      interfaces.NotificationSink
	logger        *zap.Logger
	currencyLabel string
}

// Option customizes a Ledger.
type Option func(*Ledger)

// WithCurrencyLabel sets the label printed before amounts in notifications.
func WithCurrencyLabel(label string) Option {
	return func(l *Ledger) {
		l.currencyLabel = label
	}
}

// NewLedger creates a Ledger over the given store and notification sink.
func NewLedger(store interfaces.AccountStore, notifier interfaces.NotificationSink, logger *zap.Logger, opts ...Option) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Ledger{
		store:         store,
		notifier:      notifier,
		logger:        logger,
		currencyLabel: DefaultCurrencyLabel,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateAccount registers a new account in the store.
func (l *Ledger) CreateAccount(ctx context.Context, account *models.Account) error {
	if err := l.store.CreateAccount(ctx, account); err != nil {
		l.logger.Info("account creation rejected", zap.String("account_id", account.ID()), zap.Error(err))
		return err
	}
	l.logger.Info("account created", zap.String("account_id", account.ID()))
	return nil
}

// GetAccount returns the account for accountID or ErrAccountNotFound.
func (l *Ledger) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	account, ok := l.store.GetAccount(ctx, accountID)
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	return account, nil
}

// Transfer moves amount from one account to another. Both account locks are
// taken in canonical order and held across validation, the balance update
// and the two notifications, so the movement is all-or-nothing and no other
// transfer touching either account can observe an intermediate state.
//
// ctx is passed through to the notification sink; it does not cancel a
// pending lock acquisition.
func (l *Ledger) Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal) error {
	logger := l.logger.With(
		zap.String("from_account", fromAccountID),
		zap.String("to_account", toAccountID),
		zap.String("amount", amount.String()),
	)

	// Non-positive amounts never reach the accounts
	if amount.Cmp(decimal.Zero) <= 0 {
		logger.Info("transfer rejected", zap.Error(errs.ErrInvalidAmount))
		return errs.ErrInvalidAmount
	}

	// Resolve both accounts before anything else; no locks are held yet
	fromAccount, fromOK := l.store.GetAccount(ctx, fromAccountID)
	toAccount, toOK := l.store.GetAccount(ctx, toAccountID)
	if !fromOK || !toOK {
		logger.Info("transfer rejected", zap.Error(errs.ErrAccountNotFound))
		return errs.ErrAccountNotFound
	}

	// A single account would be locked twice
	if fromAccountID == toAccountID {
		logger.Info("transfer rejected", zap.Error(errs.ErrSelfTransfer))
		return errs.ErrSelfTransfer
	}

	// Lock in canonical order to avoid deadlocks; deferred unlocks cover every exit
	first, second := lockOrder(fromAccount, toAccount)
	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()

	// Re-read the sender's balance under lock
	fromBalance := fromAccount.BalanceLocked()
	if fromBalance.LessThan(amount) {
		logger.Info("transfer rejected", zap.Error(errs.ErrInsufficientBalance))
		return errs.ErrInsufficientBalance
	}

	// Debit the sender, credit the receiver
	fromAccount.SetBalanceLocked(fromBalance.Sub(amount))
	toAccount.SetBalanceLocked(toAccount.BalanceLocked().Add(amount))

	// Both parties are notified before the locks are released
	l.notifier.Notify(ctx, fromAccount, l.message(amount, "to", toAccount.ID()))
	l.notifier.Notify(ctx, toAccount, l.message(amount, "from", fromAccount.ID()))

	logger.Info("transfer completed")
	return nil
}

func (l *Ledger) message(amount decimal.Decimal, direction, counterpartyID string) string {
	text := fmt.Sprintf("%s transferred %s account %s", amount.String(), direction, counterpartyID)
	if l.currencyLabel == "" {
		return text
	}
	return l.currencyLabel + " " + text
}

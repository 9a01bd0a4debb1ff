package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	errs "github.com/sheikh-saqib/accounts-transfer-service/internal/errors"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/models"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/storage/memory"
)

type sentNotification struct {
	AccountID string
	Message   string
	Balance   decimal.Decimal // balance seen while the lock is held
}

type recordingSink struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (r *recordingSink) Notify(_ context.Context, account *models.Account, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentNotification{
		AccountID: account.ID(),
		Message:   message,
		Balance:   account.BalanceLocked(),
	})
}

func (r *recordingSink) notifications() []sentNotification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sentNotification, len(r.sent))
	copy(out, r.sent)
	return out
}

func newTestLedger(t *testing.T, balances map[string]string) (*Ledger, *memory.MemoryAccountStore, *recordingSink) {
	t.Helper()

	store := memory.NewMemoryAccountStore()
	for id, balance := range balances {
		require.NoError(t, store.CreateAccount(context.Background(), models.NewAccount(id, decimal.RequireFromString(balance))))
	}
	sink := &recordingSink{}
	return NewLedger(store, sink, zap.NewNop()), store, sink
}

func balanceOf(t *testing.T, l *Ledger, id string) decimal.Decimal {
	t.Helper()

	acc, err := l.GetAccount(context.Background(), id)
	require.NoError(t, err)
	return acc.Balance()
}

func TestCreateAndGetAccount(t *testing.T) {
	l, _, _ := newTestLedger(t, nil)
	acc := models.NewAccount("Id-123", decimal.NewFromInt(1000))

	require.NoError(t, l.CreateAccount(context.Background(), acc))

	got, err := l.GetAccount(context.Background(), "Id-123")
	require.NoError(t, err)
	assert.Same(t, acc, got)
}

func TestCreateAccountFailsOnDuplicateID(t *testing.T) {
	l, _, _ := newTestLedger(t, nil)
	acc := models.NewAccount("Id-99", decimal.Zero)
	require.NoError(t, l.CreateAccount(context.Background(), acc))

	err := l.CreateAccount(context.Background(), acc)
	assert.True(t, errors.Is(err, errs.ErrDuplicateAccountID))
	assert.Equal(t, "Account id Id-99 already exists!", err.Error())
}

func TestGetAccountNotFound(t *testing.T) {
	l, _, _ := newTestLedger(t, nil)

	_, err := l.GetAccount(context.Background(), "Id-1")
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestTransfer(t *testing.T) {
	l, _, sink := newTestLedger(t, map[string]string{"A": "1000", "B": "1000"})

	require.NoError(t, l.Transfer(context.Background(), "A", "B", decimal.NewFromInt(500)))

	assert.True(t, balanceOf(t, l, "A").Equal(decimal.NewFromInt(500)))
	assert.True(t, balanceOf(t, l, "B").Equal(decimal.NewFromInt(1500)))

	sent := sink.notifications()
	require.Len(t, sent, 2)
	assert.Equal(t, "A", sent[0].AccountID)
	assert.Equal(t, "Rs 500 transferred to account B", sent[0].Message)
	assert.Equal(t, "B", sent[1].AccountID)
	assert.Equal(t, "Rs 500 transferred from account A", sent[1].Message)
}

func TestTransferNotifiesInsideCriticalSection(t *testing.T) {
	l, _, sink := newTestLedger(t, map[string]string{"A": "10", "B": "0"})

	require.NoError(t, l.Transfer(context.Background(), "A", "B", decimal.NewFromInt(4)))

	sent := sink.notifications()
	require.Len(t, sent, 2)
	assert.True(t, sent[0].Balance.Equal(decimal.NewFromInt(6)), "sender sees applied balance")
	assert.True(t, sent[1].Balance.Equal(decimal.NewFromInt(4)), "receiver sees applied balance")
}

func TestTransferFailures(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		amount  string
		wantErr error
	}{
		{name: "insufficient balance", from: "A", to: "B", amount: "2000", wantErr: errs.ErrInsufficientBalance},
		{name: "unknown sender", from: "X", to: "B", amount: "1", wantErr: errs.ErrAccountNotFound},
		{name: "unknown receiver", from: "A", to: "X", amount: "1", wantErr: errs.ErrAccountNotFound},
		{name: "zero amount", from: "A", to: "B", amount: "0", wantErr: errs.ErrInvalidAmount},
		{name: "negative amount", from: "A", to: "B", amount: "-5", wantErr: errs.ErrInvalidAmount},
		{name: "self transfer", from: "A", to: "A", amount: "1", wantErr: errs.ErrSelfTransfer},
		{name: "unknown self transfer", from: "X", to: "X", amount: "1", wantErr: errs.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _, sink := newTestLedger(t, map[string]string{"A": "123.45", "B": "100"})

			err := l.Transfer(context.Background(), tt.from, tt.to, decimal.RequireFromString(tt.amount))

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, balanceOf(t, l, "A").Equal(decimal.RequireFromString("123.45")))
			assert.True(t, balanceOf(t, l, "B").Equal(decimal.NewFromInt(100)))
			assert.Empty(t, sink.notifications())
		})
	}
}

func TestTransferErrorMessages(t *testing.T) {
	l, _, _ := newTestLedger(t, map[string]string{"Id-1234": "1000", "Id-4567": "1000"})

	err := l.Transfer(context.Background(), "Id-1234", "Id-4567", decimal.NewFromInt(2000))
	assert.EqualError(t, err, "Insufficient Balance")

	err = l.Transfer(context.Background(), "Id-123", "Id-456", decimal.NewFromInt(20))
	assert.EqualError(t, err, "Account does not exist.")

	err = l.Transfer(context.Background(), "Id-123", "Id-123", decimal.NewFromInt(1000))
	assert.EqualError(t, err, "Account does not exist.")
}

func TestTransferExactDecimalArithmetic(t *testing.T) {
	l, _, _ := newTestLedger(t, map[string]string{"A": "0.3", "B": "0"})

	require.NoError(t, l.Transfer(context.Background(), "A", "B", decimal.RequireFromString("0.1")))
	require.NoError(t, l.Transfer(context.Background(), "A", "B", decimal.RequireFromString("0.2")))

	assert.True(t, balanceOf(t, l, "A").IsZero())
	assert.True(t, balanceOf(t, l, "B").Equal(decimal.RequireFromString("0.3")))
}

func TestTransferDrainsToExactlyZero(t *testing.T) {
	l, _, _ := newTestLedger(t, map[string]string{"A": "50", "B": "0"})

	require.NoError(t, l.Transfer(context.Background(), "A", "B", decimal.NewFromInt(50)))
	assert.True(t, balanceOf(t, l, "A").IsZero())

	err := l.Transfer(context.Background(), "A", "B", decimal.RequireFromString("0.01"))
	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
}

func TestTransferOppositeDirectionsDoNotDeadlock(t *testing.T) {
	l, _, _ := newTestLedger(t, map[string]string{"A": "100000", "B": "100000"})
	const rounds = 500

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < rounds; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				assert.NoError(t, l.Transfer(context.Background(), "A", "B", decimal.NewFromInt(3)))
			}()
			go func() {
				defer wg.Done()
				assert.NoError(t, l.Transfer(context.Background(), "B", "A", decimal.NewFromInt(2)))
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("opposite transfers did not complete")
	}

	assert.True(t, balanceOf(t, l, "A").Equal(decimal.NewFromInt(100000-rounds)))
	assert.True(t, balanceOf(t, l, "B").Equal(decimal.NewFromInt(100000+rounds)))
}

func TestTransferNoLostUpdates(t *testing.T) {
	const n = 200
	l, _, sink := newTestLedger(t, map[string]string{"A": fmt.Sprint(n * 5), "B": "0"})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Transfer(context.Background(), "A", "B", decimal.NewFromInt(5)))
		}()
	}
	wg.Wait()

	assert.True(t, balanceOf(t, l, "A").IsZero())
	assert.True(t, balanceOf(t, l, "B").Equal(decimal.NewFromInt(n*5)))
	assert.Len(t, sink.notifications(), 2*n)
}

func TestTransferNeverOverdrawsUnderContention(t *testing.T) {
	l, _, _ := newTestLedger(t, map[string]string{"A": "100", "B": "0", "C": "0"})

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 50; i++ {
		to := "B"
		if i%2 == 0 {
			to = "C"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.Transfer(context.Background(), "A", to, decimal.NewFromInt(10))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.True(t, balanceOf(t, l, "A").IsZero())
	total := balanceOf(t, l, "B").Add(balanceOf(t, l, "C"))
	assert.True(t, total.Equal(decimal.NewFromInt(100)))
}

func TestTransferConservesTotalAcrossRing(t *testing.T) {
	ids := []string{"acc-1", "acc-2", "acc-3", "acc-4"}
	balances := make(map[string]string, len(ids))
	for _, id := range ids {
		balances[id] = "1000"
	}
	l, _, _ := newTestLedger(t, balances)

	var wg sync.WaitGroup
	for i := 0; i < 400; i++ {
		from := ids[i%len(ids)]
		to := ids[(i+1)%len(ids)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.Transfer(context.Background(), from, to, decimal.RequireFromString("7.25"))
			if err != nil {
				assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
			}
		}()
	}
	wg.Wait()

	total := decimal.Zero
	for _, id := range ids {
		b := balanceOf(t, l, id)
		assert.False(t, b.IsNegative())
		total = total.Add(b)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(4000)))
}

func TestWithCurrencyLabel(t *testing.T) {
	store := memory.NewMemoryAccountStore()
	require.NoError(t, store.CreateAccount(context.Background(), models.NewAccount("A", decimal.NewFromInt(10))))
	require.NoError(t, store.CreateAccount(context.Background(), models.NewAccount("B", decimal.Zero)))
	sink := &recordingSink{}

	l := NewLedger(store, sink, nil, WithCurrencyLabel(""))
	require.NoError(t, l.Transfer(context.Background(), "A", "B", decimal.RequireFromString("2.50")))

	sent := sink.notifications()
	require.Len(t, sent, 2)
	assert.Equal(t, "2.5 transferred to account B", sent[0].Message)
}

func TestTransferLogsOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	store := memory.NewMemoryAccountStore()
	require.NoError(t, store.CreateAccount(context.Background(), models.NewAccount("A", decimal.NewFromInt(1))))
	require.NoError(t, store.CreateAccount(context.Background(), models.NewAccount("B", decimal.Zero)))

	l := NewLedger(store, &recordingSink{}, zap.New(core))
	_ = l.Transfer(context.Background(), "A", "B", decimal.NewFromInt(5))
	_ = l.Transfer(context.Background(), "A", "B", decimal.NewFromInt(1))

	assert.Equal(t, 1, logs.FilterMessage("transfer rejected").Len())
	assert.Equal(t, 1, logs.FilterMessage("transfer completed").Len())

	entry := logs.FilterMessage("transfer rejected").All()[0]
	assert.Equal(t, "A", entry.ContextMap()["from_account"])
	assert.Equal(t, "5", entry.ContextMap()["amount"])
}

// Package notification delivers transfer notifications to account holders
// without blocking the transfer that produced them.
package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sheikh-saqib/accounts-transfer-service/internal/models/events"
)

// Notification is a single message addressed to one account holder.
type Notification struct {
	ID        string
	AccountID string
	Message   string
	CreatedAt time.Time
}

// New stamps a notification with a fresh ID and the current time.
func New(accountID, message string) Notification {
	return Notification{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

// Event converts n into its published form.
func (n Notification) Event() events.TransferNotification {
	return events.TransferNotification{
		NotificationID: n.ID,
		AccountID:      n.AccountID,
		Message:        n.Message,
		OccurredAt:     n.CreatedAt,
	}
}

// Deliverer performs the actual out-of-band delivery.
type Deliverer interface {
	Deliver(ctx context.Context, n Notification) error
}

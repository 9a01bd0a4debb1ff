package events

import (
	"time"
)

// TransferNotification is the payload published for every notification
// produced by a completed transfer.
type TransferNotification struct {
	NotificationID string    `json:"notification_id"`
	AccountID      string    `json:"account_id"`
	Message        string    `json:"message"`
	OccurredAt     time.Time `json:"occurred_at"`
}

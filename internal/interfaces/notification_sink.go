package interfaces

import (
	"context"

	"github.com/sheikh-saqib/accounts-transfer-service/internal/models"
)

// NotificationSink delivers a message to an account holder out of band.
// Delivery failures are never reported back to the caller. Notify runs
// while the account lock is held, so implementations must not lock it.
type NotificationSink interface {
	Notify(ctx context.Context, account *models.Account, message string)
}

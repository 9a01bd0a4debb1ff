package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogDeliverer writes notifications to the application log. It stands in
// for a real mail or push channel.
type LogDeliverer struct {
	logger *zap.Logger
}

func NewLogDeliverer(logger *zap.Logger) *LogDeliverer {
	return &LogDeliverer{logger: logger}
}

func (d *LogDeliverer) Deliver(_ context.Context, n Notification) error {
	d.logger.Info("sending notification",
		zap.String("notification_id", n.ID),
		zap.String("account_id", n.AccountID),
		zap.String("message", n.Message),
	)
	return nil
}

var _ Deliverer = (*LogDeliverer)(nil)

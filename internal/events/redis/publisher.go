package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sheikh-saqib/accounts-transfer-service/internal/notification"
)

// DefaultChannelPrefix namespaces per-account notification channels.
const DefaultChannelPrefix = "notifications"

// Publisher delivers notifications over Redis pub/sub, one channel per
// account: <prefix>:<accountId>.
type Publisher struct {
	client goredis.UniversalClient
	prefix string
}

func NewPublisher(client goredis.UniversalClient, prefix string) *Publisher {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &Publisher{client: client, prefix: prefix}
}

// Channel returns the channel notifications for accountID are published on.
func (p *Publisher) Channel(accountID string) string {
	return p.prefix + ":" + accountID
}

func (p *Publisher) Deliver(ctx context.Context, n notification.Notification) error {
	data, err := json.Marshal(n.Event())
	if err != nil {
		return err
	}

	if err := p.client.Publish(ctx, p.Channel(n.AccountID), data).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

var _ notification.Deliverer = (*Publisher)(nil)

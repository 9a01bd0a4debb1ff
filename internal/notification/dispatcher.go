package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/accounts-transfer-service/internal/interfaces"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/models"
)

const (
	DefaultWorkers         = 4
	DefaultQueueSize       = 1024
	DefaultDeliveryTimeout = 5 * time.Second
)

// DispatcherConfig sizes the worker pool and queue.
type DispatcherConfig struct {
	Workers         int
	QueueSize       int
	DeliveryTimeout time.Duration
}

func (c DispatcherConfig) withDefaults() DispatcherConfig {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.DeliveryTimeout <= 0 {
		c.DeliveryTimeout = DefaultDeliveryTimeout
	}
	return c
}

// Dispatcher implements interfaces.NotificationSink on top of a Deliverer.
// Notify only enqueues, so it is safe to call from inside a critical
// section; a pool of workers performs delivery. Failed and dropped
// notifications are logged and never reported to the caller.
type Dispatcher struct {
	deliverer Deliverer
	logger    *zap.Logger
	timeout   time.Duration

	queue chan Notification
	wg    sync.WaitGroup

	mu     sync.RWMutex // guards closed and sends on queue
	closed bool
}

// NewDispatcher starts the worker pool.
func NewDispatcher(deliverer Deliverer, logger *zap.Logger, cfg DispatcherConfig) *Dispatcher {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dispatcher{
		deliverer: deliverer,
		logger:    logger,
		timeout:   cfg.DeliveryTimeout,
		queue:     make(chan Notification, cfg.QueueSize),
	}
	d.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go d.run()
	}
	return d
}

// Notify queues message for account. It never blocks: if the queue is full
// or the dispatcher is closed the notification is dropped.
func (d *Dispatcher) Notify(_ context.Context, account *models.Account, message string) {
	n := New(account.ID(), message)

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("notification dropped, dispatcher closed", zap.String("account_id", n.AccountID))
		return
	}
	select {
	case d.queue <- n:
	default:
		d.logger.Warn("notification dropped, queue full",
			zap.String("account_id", n.AccountID),
			zap.String("notification_id", n.ID),
		)
	}
}

// Close stops accepting notifications, delivers everything already queued
// and waits for the workers to exit.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.deliverer.Deliver(ctx, n); err != nil {
		d.logger.Error("notification delivery failed",
			zap.String("account_id", n.AccountID),
			zap.String("notification_id", n.ID),
			zap.Error(err),
		)
	}
}

var _ interfaces.NotificationSink = (*Dispatcher)(nil)

package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/edumarket/edumarket-backend/internal/metrics"
	"github.com/edumarket/edumarket-backend/internal/models"
	repo "github.com/edumarket/edumarket-backend/internal/repository"
	"github.com/edumarket/edumarket-backend/internal/worker"
)

// Dispatcher drains the outbox and hands events to the worker pool.
// Settlements only ever write outbox rows inside their own transaction;
// delivery lives here, so a dead sink can never fail or roll back a sale.
type Dispatcher struct {
	outbox   repo.Outbox
	notifier Notifier
	pool     *worker.Pool
	interval time.Duration
	batch    int
}

func NewDispatcher(outbox repo.Outbox, notifier Notifier, pool *worker.Pool, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Dispatcher{outbox: outbox, notifier: notifier, pool: pool, interval: interval, batch: 50}
}

// Run polls until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	t := time.NewTicker(d.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			d.drain(ctx)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	events, err := d.outbox.FetchPending(ctx, d.batch)
	if err != nil {
		slog.Warn("outbox fetch failed", "err", err)
		return
	}
	for _, e := range events {
		// Mark before handing off so the next tick doesn't pick it up again.
		if err := d.outbox.MarkDispatched(ctx, e.ID); err != nil {
			slog.Warn("outbox mark failed", "event_id", e.ID, "err", err)
			continue
		}
		ev := e
		d.pool.Submit(func() { d.deliver(ev) })
	}
}

func (d *Dispatcher) deliver(e models.OutboxEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var p Payload
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		slog.Warn("outbox payload unreadable", "event_id", e.ID, "err", err)
		d.fail(ctx, e.ID)
		return
	}
	err := d.notifier.Notify(ctx, models.Notification{
		UserID:  p.UserID,
		Title:   p.Title,
		Message: p.Message,
		Type:    p.Type,
	})
	if err != nil {
		slog.Warn("notification delivery failed", "event_id", e.ID, "user_id", p.UserID, "err", err)
		d.fail(ctx, e.ID)
		return
	}
	metrics.NotificationsDispatched.WithLabelValues("ok").Inc()
}

func (d *Dispatcher) fail(ctx context.Context, id string) {
	metrics.NotificationsDispatched.WithLabelValues("failed").Inc()
	if err := d.outbox.MarkFailed(ctx, id); err != nil {
		slog.Warn("outbox mark failed", "event_id", id, "err", err)
	}
}

package sse

import (
	"context"
	"time"
)

// Broadcaster periodically produces a payload and broadcasts it. Ticks with no
// connected clients are skipped without calling the producer.
type Broadcaster struct {
	mgr      *Manager
	event    string
	interval time.Duration
	produce  Producer
}

// NewBroadcaster creates a Broadcaster that ticks every interval.
func NewBroadcaster(mgr *Manager, event string, interval time.Duration, produce Producer) *Broadcaster {
	return &Broadcaster{mgr: mgr, event: event, interval: interval, produce: produce}
}

// Run broadcasts until ctx is done.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Tick(ctx)
		}
	}
}

// Tick performs one broadcast round. It reports whether a message was sent.
func (b *Broadcaster) Tick(ctx context.Context) bool {
	if !b.mgr.HasClients() {
		return false
	}
	data, err := b.produce(ctx)
	if err != nil {
		b.mgr.logger.Error("sse producer failed", "event", b.event, "err", err)
		return false
	}
	b.mgr.Broadcast(Message{Event: b.event, Data: data})
	return true
}

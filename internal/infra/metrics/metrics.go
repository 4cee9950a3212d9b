package metrics

import "sync/atomic"

type Counters struct {
	PaymentsCreated     uint64
	IdempotentHits      uint64
	SettlementsApproved uint64
	SettlementsDeclined uint64
	WebhooksDelivered   uint64
	WebhooksExhausted   uint64
	TasksRejected       uint64
}

func (c *Counters) IncPaymentsCreated() {
	atomic.AddUint64(&c.PaymentsCreated, 1)
}

func (c *Counters) IncIdempotentHits() {
	atomic.AddUint64(&c.IdempotentHits, 1)
}

func (c *Counters) IncSettlementsApproved() {
	atomic.AddUint64(&c.SettlementsApproved, 1)
}

func (c *Counters) IncSettlementsDeclined() {
	atomic.AddUint64(&c.SettlementsDeclined, 1)
}

func (c *Counters) IncWebhooksDelivered() {
	atomic.AddUint64(&c.WebhooksDelivered, 1)
}

func (c *Counters) IncWebhooksExhausted() {
	atomic.AddUint64(&c.WebhooksExhausted, 1)
}

func (c *Counters) IncTasksRejected() {
	atomic.AddUint64(&c.TasksRejected, 1)
}

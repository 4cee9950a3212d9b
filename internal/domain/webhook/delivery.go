package webhook

import "time"

// Delivery tracks the attempts made to notify a merchant endpoint of a
// single event. The payload and signature are immutable once created; only
// the attempt counter, delivered flag and last-attempt timestamp change.
type Delivery struct {
	ID            string
	EventID       string
	EventType     string
	PaymentID     string
	TargetURL     string
	Payload       []byte
	Signature     string
	Attempts      int
	Delivered     bool
	LastAttemptAt *time.Time
	CreatedAt     time.Time
}

package merchant

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type Merchant struct {
	ID         string
	Name       string
	WebhookURL string
	// Interest is the per-installment rate applied by the card strategy,
	// e.g. 0.02 for 2%.
	Interest   decimal.Decimal
	ClientID   string
	SecretHash string
	Status     Status
	CreatedAt  time.Time
}

func (m *Merchant) Active() bool {
	return m.Status == StatusActive
}

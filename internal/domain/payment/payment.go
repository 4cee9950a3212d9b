package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusDeclined Status = "DECLINED"
	StatusRefunded Status = "REFUNDED"
)

type Method string

const (
	MethodCard   Method = "CARD"
	MethodPix    Method = "PIX"
	MethodBoleto Method = "BOLETO"
)

type Payment struct {
	ID              string
	MerchantID      string
	Method          Method
	Amount          decimal.Decimal
	Currency        string
	IdempotencyKey  string
	MetadataOrderID string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DetailsJSON     string
}

func (p *Payment) BelongsTo(merchantID string) bool {
	return p.MerchantID == merchantID
}

// Settled reports whether the payment has left PENDING. Transitions are
// monotonic: a settled payment never re-enters PENDING.
func (p *Payment) Settled() bool {
	return p.Status != StatusPending
}

// CardDetails is the method-specific detail blob for card payments,
// serialized into Payment.DetailsJSON by the card strategy.
type CardDetails struct {
	Installments      int             `json:"installments"`
	BaseAmount        decimal.Decimal `json:"baseAmount"`
	InterestAmount    decimal.Decimal `json:"interestAmount"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
}

type BoletoDetails struct {
	DueDate time.Time `json:"dueDate"`
}

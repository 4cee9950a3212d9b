package payment

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zoobzio/clockz"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/merchant"
	domainPayment "github.com/rcarvalho-pb/fiadopay-go/internal/domain/payment"
)

func newPendingPayment(req Request, m *merchant.Merchant, idempotencyKey string, now time.Time) *domainPayment.Payment {
	return &domainPayment.Payment{
		ID:              "pay_" + uuid.NewString(),
		MerchantID:      m.ID,
		Method:          req.Method,
		Amount:          req.Amount,
		Currency:        req.Currency,
		IdempotencyKey:  idempotencyKey,
		MetadataOrderID: req.OrderID,
		Status:          domainPayment.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CardStrategy computes the installment breakdown using the merchant's
// per-installment interest rate. A single installment carries no interest.
type CardStrategy struct {
	Clock clockz.Clock
}

func (s *CardStrategy) Method() domainPayment.Method {
	return domainPayment.MethodCard
}

func (s *CardStrategy) Process(req Request, m *merchant.Merchant, idempotencyKey string) (*domainPayment.Payment, error) {
	p := newPendingPayment(req, m, idempotencyKey, s.Clock.Now().UTC())

	installments := req.Installments
	if installments < 1 {
		installments = 1
	}

	base := req.Amount
	interest := decimal.Zero
	if installments > 1 {
		extra := decimal.NewFromInt(int64(installments - 1))
		interest = base.Mul(m.Interest).Mul(extra).Round(2)
	}

	total := base.Add(interest)
	details := domainPayment.CardDetails{
		Installments:      installments,
		BaseAmount:        base,
		InterestAmount:    interest,
		InstallmentAmount: total.DivRound(decimal.NewFromInt(int64(installments)), 2),
	}

	blob, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	p.DetailsJSON = string(blob)
	return p, nil
}

type PixStrategy struct {
	Clock clockz.Clock
}

func (s *PixStrategy) Method() domainPayment.Method {
	return domainPayment.MethodPix
}

func (s *PixStrategy) Process(req Request, m *merchant.Merchant, idempotencyKey string) (*domainPayment.Payment, error) {
	return newPendingPayment(req, m, idempotencyKey, s.Clock.Now().UTC()), nil
}

// BoletoStrategy stamps the boleto due date three days out.
type BoletoStrategy struct {
	Clock clockz.Clock
}

func (s *BoletoStrategy) Method() domainPayment.Method {
	return domainPayment.MethodBoleto
}

func (s *BoletoStrategy) Process(req Request, m *merchant.Merchant, idempotencyKey string) (*domainPayment.Payment, error) {
	now := s.Clock.Now().UTC()
	p := newPendingPayment(req, m, idempotencyKey, now)

	blob, err := json.Marshal(domainPayment.BoletoDetails{
		DueDate: now.AddDate(0, 0, 3),
	})
	if err != nil {
		return nil, err
	}
	p.DetailsJSON = string(blob)
	return p, nil
}

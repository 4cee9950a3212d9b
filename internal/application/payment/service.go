package payment

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/merchant"
	domainPayment "github.com/rcarvalho-pb/fiadopay-go/internal/domain/payment"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/logging"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/metrics"
)

var (
	ErrMissingMerchant = errors.New("merchant information is missing")
	// ErrPaymentNotOwned covers both "not found" and "not owned" so callers
	// cannot probe for other merchants' payment ids.
	ErrPaymentNotOwned = errors.New("payment does not exist or does not belong to this merchant")
)

// Settler runs the settlement pipeline for one payment id.
type Settler interface {
	Process(paymentID string) (*domainPayment.Payment, error)
}

type Submitter interface {
	Submit(func()) error
}

// View is the caller-facing snapshot of a payment.
type View struct {
	ID        string               `json:"id"`
	Amount    decimal.Decimal      `json:"amount"`
	Currency  string               `json:"currency"`
	Method    domainPayment.Method `json:"method"`
	Status    domainPayment.Status `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	Details   json.RawMessage      `json:"details,omitempty"`
	OrderID   string               `json:"orderId,omitempty"`
}

type RefundReceipt struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Service is the payment orchestrator: idempotency short-circuit, strategy
// dispatch, persistence and fire-and-forget settlement scheduling.
type Service struct {
	Payments   domainPayment.Repository
	Strategies *Registry
	Window     *TransactionWindow
	Settler    Settler
	Pool       Submitter
	Logger     logging.Logger
	Metrics    *metrics.Counters
}

// CreatePayment returns the pending payment view immediately; settlement
// runs in the background and the caller never blocks on it.
func (s *Service) CreatePayment(m *merchant.Merchant, idempotencyKey string, req Request) (*View, error) {
	if m == nil || m.ID == "" {
		return nil, ErrMissingMerchant
	}

	if err := s.Window.Check(req.Amount); err != nil {
		return nil, err
	}

	if idempotencyKey != "" {
		existing, err := s.Payments.FindByIdempotencyKey(m.ID, idempotencyKey)
		if err == nil {
			s.Metrics.IncIdempotentHits()
			return toView(existing), nil
		}
		if !errors.Is(err, domainPayment.ErrNotFound) {
			return nil, err
		}
	}

	strategy, err := s.Strategies.Resolve(req.Method)
	if err != nil {
		return nil, err
	}

	p, err := strategy.Process(req, m, idempotencyKey)
	if err != nil {
		return nil, err
	}

	if idempotencyKey == "" {
		if err := s.Payments.Save(p); err != nil {
			return nil, err
		}
	} else {
		inserted, err := s.Payments.SaveIfNotExist(p)
		if err != nil {
			return nil, err
		}
		if !inserted {
			// a concurrent request with the same key won the insert race;
			// return its payment instead of surfacing the conflict
			winner, err := s.Payments.FindByIdempotencyKey(m.ID, idempotencyKey)
			if err != nil {
				return nil, err
			}
			s.Metrics.IncIdempotentHits()
			return toView(winner), nil
		}
	}

	s.Metrics.IncPaymentsCreated()

	paymentID := p.ID
	if err := s.Pool.Submit(func() { s.settle(paymentID) }); err != nil {
		// bounded-queue policy: the payment stays PENDING and the rejection
		// is logged; the caller still gets its view
		s.Logger.Error("settlement submission rejected", map[string]any{
			"payment_id": paymentID,
			"error":      err.Error(),
		})
	}

	return toView(p), nil
}

func (s *Service) GetPayment(id string, m *merchant.Merchant) (*View, error) {
	if m == nil || m.ID == "" {
		return nil, ErrMissingMerchant
	}

	p, err := s.Payments.FindByID(id)
	if err != nil {
		if errors.Is(err, domainPayment.ErrNotFound) {
			return nil, ErrPaymentNotOwned
		}
		return nil, err
	}
	if !p.BelongsTo(m.ID) {
		return nil, ErrPaymentNotOwned
	}

	return toView(p), nil
}

// Refund is a non-functional stub: it acknowledges the request without
// moving any money or changing payment state.
func (s *Service) Refund(m *merchant.Merchant, paymentID string) (*RefundReceipt, error) {
	if m == nil || m.ID == "" {
		return nil, ErrMissingMerchant
	}

	p, err := s.Payments.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, domainPayment.ErrNotFound) {
			return nil, ErrPaymentNotOwned
		}
		return nil, err
	}
	if !p.BelongsTo(m.ID) {
		return nil, ErrPaymentNotOwned
	}

	status := "PENDING"
	if p.Status == domainPayment.StatusRefunded {
		status = "ALREADY_REFUNDED"
	}

	return &RefundReceipt{
		ID:     "ref_" + uuid.NewString(),
		Status: status,
	}, nil
}

func (s *Service) settle(paymentID string) {
	if _, err := s.Settler.Process(paymentID); err != nil {
		s.Logger.Error("settlement failed", map[string]any{
			"payment_id": paymentID,
			"error":      err.Error(),
		})
	}
}

func toView(p *domainPayment.Payment) *View {
	v := &View{
		ID:        p.ID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Method:    p.Method,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		OrderID:   p.MetadataOrderID,
	}
	if p.DetailsJSON != "" {
		v.Details = json.RawMessage(p.DetailsJSON)
	}
	return v
}

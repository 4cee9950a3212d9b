package worker

import (
	"errors"
	"math/rand"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/rcarvalho-pb/fiadopay-go/internal/application/contracts"
	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/event"
	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/payment"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/logging"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/metrics"
)

// SettlementProcessor simulates the acquirer decision. It is the only
// component that moves a payment out of PENDING, and it runs at most once
// per payment: there is no settlement retry.
type SettlementProcessor struct {
	Payments    payment.Repository
	Recorder    contracts.EventRecorder
	Clock       clockz.Clock
	Delay       time.Duration
	FailureRate float64
	// Rand returns a value in [0, 1). Defaults to math/rand.
	Rand    func() float64
	Logger  logging.Logger
	Metrics *metrics.Counters
}

// Process settles the payment after the simulated latency. A missing
// payment is not an error: the pipeline is aborted silently.
func (s *SettlementProcessor) Process(paymentID string) (*payment.Payment, error) {
	if s.Delay > 0 {
		<-s.Clock.After(s.Delay)
	}

	p, err := s.Payments.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			s.Logger.Info("payment gone before settlement, skipping", map[string]any{
				"payment_id": paymentID,
			})
			return nil, nil
		}
		return nil, err
	}

	status := payment.StatusDeclined
	// rand is in [0, 1): rate 0 always approves, rate 1 always declines
	if s.random() >= s.FailureRate {
		status = payment.StatusApproved
	}

	updatedAt := s.Clock.Now().UTC()
	if err := s.Payments.UpdateStatus(p.ID, status, updatedAt); err != nil {
		return nil, err
	}

	p.Status = status
	p.UpdatedAt = updatedAt

	if status == payment.StatusApproved {
		s.Metrics.IncSettlementsApproved()
	} else {
		s.Metrics.IncSettlementsDeclined()
	}

	s.Logger.Info("payment settled", map[string]any{
		"payment_id": p.ID,
		"status":     string(status),
	})

	if err := s.Recorder.Record(event.Event{
		Type: event.PaymentSettled,
		Payload: event.PaymentSettledPayload{
			PaymentID: p.ID,
			Status:    string(status),
		},
	}); err != nil {
		s.Logger.Error("recording settlement event failed", map[string]any{
			"payment_id": p.ID,
			"error":      err.Error(),
		})
		return p, err
	}

	return p, nil
}

func (s *SettlementProcessor) random() float64 {
	if s.Rand != nil {
		return s.Rand()
	}
	return rand.Float64()
}

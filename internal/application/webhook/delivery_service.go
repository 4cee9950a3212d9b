package webhook

import (
	"errors"
	"time"

	"github.com/zoobzio/clockz"

	domainWebhook "github.com/rcarvalho-pb/fiadopay-go/internal/domain/webhook"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/logging"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/metrics"
)

// Sender performs one HTTP delivery. ok reports whether the endpoint
// answered with a 2xx status; transport failures come back as err.
type Sender interface {
	Send(d *domainWebhook.Delivery) (ok bool, err error)
}

type Submitter interface {
	Submit(func()) error
}

// DeliveryService owns WebhookDelivery records: it persists them, attempts
// HTTP delivery through the pool and retries with linear backoff. Attempts
// for one delivery are strictly sequential; the backoff wait is a delayed
// re-submission, so no pool worker sits idle during it.
type DeliveryService struct {
	Deliveries  domainWebhook.Repository
	Sender      Sender
	Pool        Submitter
	Clock       clockz.Clock
	MaxAttempts int
	BackoffBase time.Duration
	Logger      logging.Logger
	Metrics     *metrics.Counters
}

// Schedule persists the delivery row and enqueues the first attempt.
func (s *DeliveryService) Schedule(d *domainWebhook.Delivery) error {
	d.Attempts = 0
	d.Delivered = false

	if err := s.Deliveries.Save(d); err != nil {
		return err
	}

	return s.submit(d.ID)
}

func (s *DeliveryService) submit(deliveryID string) error {
	err := s.Pool.Submit(func() { s.attempt(deliveryID) })
	if err != nil {
		s.Logger.Error("webhook attempt rejected", map[string]any{
			"delivery_id": deliveryID,
			"error":       err.Error(),
		})
	}
	return err
}

func (s *DeliveryService) attempt(deliveryID string) {
	d, err := s.Deliveries.FindByID(deliveryID)
	if err != nil {
		if !errors.Is(err, domainWebhook.ErrNotFound) {
			s.Logger.Error("loading webhook delivery failed", map[string]any{
				"delivery_id": deliveryID,
				"error":       err.Error(),
			})
		}
		return
	}

	ok, sendErr := s.Sender.Send(d)

	d.Attempts++
	now := s.Clock.Now().UTC()
	d.LastAttemptAt = &now
	d.Delivered = ok && sendErr == nil

	if err := s.Deliveries.Update(d); err != nil {
		s.Logger.Error("persisting webhook attempt failed", map[string]any{
			"delivery_id": deliveryID,
			"error":       err.Error(),
		})
		return
	}

	if d.Delivered {
		s.Metrics.IncWebhooksDelivered()
		return
	}

	if d.Attempts >= s.MaxAttempts {
		s.Metrics.IncWebhooksExhausted()
		s.Logger.Error("webhook delivery exhausted", map[string]any{
			"delivery_id": deliveryID,
			"payment_id":  d.PaymentID,
			"attempts":    d.Attempts,
		})
		return
	}

	s.retryLater(deliveryID, d.Attempts, sendErr)
}

// retryLater re-submits the delivery after attempts × base. The next attempt
// only runs once this one's state is persisted, keeping retries sequential
// per delivery id.
func (s *DeliveryService) retryLater(deliveryID string, attempts int, sendErr error) {
	fields := map[string]any{
		"delivery_id": deliveryID,
		"attempt":     attempts,
	}
	if sendErr != nil {
		fields["error"] = sendErr.Error()
	}
	s.Logger.Info("webhook attempt failed, retrying", fields)

	delay := time.Duration(attempts) * s.BackoffBase

	go func() {
		<-s.Clock.After(delay)
		_ = s.submit(deliveryID)
	}()
}

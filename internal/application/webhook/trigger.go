package webhook

import (
	"errors"

	"github.com/google/uuid"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/event"
	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/merchant"
	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/payment"
	domainWebhook "github.com/rcarvalho-pb/fiadopay-go/internal/domain/webhook"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/logging"
)

// Trigger reacts to settled payments: it builds the notification payload,
// signs it and hands the delivery to the DeliveryService. Everything here
// fails closed: a payment whose webhook cannot be built or signed is
// logged and skipped, never half-sent.
type Trigger struct {
	Payments  payment.Repository
	Merchants merchant.Repository
	Factory   *EventFactory
	Signer    *Signer
	Delivery  *DeliveryService
	Logger    logging.Logger
}

func (t *Trigger) Handle(evt event.Event) error {
	if evt.Type != event.PaymentSettled {
		return nil
	}

	payload, ok := evt.Payload.(event.PaymentSettledPayload)
	if !ok {
		return errors.New("invalid payload for payment.settled")
	}

	p, err := t.Payments.FindByID(payload.PaymentID)
	if err != nil {
		t.Logger.Info("payment gone before webhook, skipping", map[string]any{
			"payment_id": payload.PaymentID,
		})
		return nil
	}

	m, err := t.Merchants.FindByID(p.MerchantID)
	if err != nil || m.WebhookURL == "" {
		return nil
	}

	eventID, body, err := t.Factory.PaymentUpdated(p)
	if err != nil {
		t.Logger.Error("building webhook payload failed", map[string]any{
			"payment_id": p.ID,
			"error":      err.Error(),
		})
		return nil
	}

	signature, err := t.Signer.Sign(body)
	if err != nil {
		t.Logger.Error("signing webhook payload failed", map[string]any{
			"payment_id": p.ID,
			"error":      err.Error(),
		})
		return nil
	}

	d := &domainWebhook.Delivery{
		ID:        "del_" + uuid.NewString(),
		EventID:   eventID,
		EventType: EventTypePaymentUpdated,
		PaymentID: p.ID,
		TargetURL: m.WebhookURL,
		Payload:   body,
		Signature: signature,
		CreatedAt: t.Factory.Clock.Now().UTC(),
	}

	if err := t.Delivery.Schedule(d); err != nil {
		t.Logger.Error("scheduling webhook delivery failed", map[string]any{
			"payment_id":  p.ID,
			"delivery_id": d.ID,
			"error":       err.Error(),
		})
	}
	return nil
}

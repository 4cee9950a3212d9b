package webhook

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/payment"
)

const EventTypePaymentUpdated = "payment.updated"

type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

type EventData struct {
	PaymentID  string `json:"paymentId"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurredAt"`
}

// EventFactory builds the canonical notification payload for a payment
// state change. Each call generates a fresh event id and occurrence
// timestamp, so the payload must be built exactly once per delivery.
type EventFactory struct {
	Clock clockz.Clock
}

func (f *EventFactory) PaymentUpdated(p *payment.Payment) (eventID string, payload []byte, err error) {
	eventID = "evt_" + uuid.NewString()[:8]

	evt := Event{
		ID:   eventID,
		Type: EventTypePaymentUpdated,
		Data: EventData{
			PaymentID:  p.ID,
			Status:     string(p.Status),
			OccurredAt: f.Clock.Now().UTC().Format(time.RFC3339),
		},
	}

	payload, err = json.Marshal(evt)
	if err != nil {
		return "", nil, err
	}

	return eventID, payload, nil
}

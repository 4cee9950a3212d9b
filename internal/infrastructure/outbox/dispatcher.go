package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rcarvalho-pb/fiadopay-go/internal/application/contracts"
	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/event"
)

type Dispatcher struct {
	Repo         Repository
	EventBus     contracts.EventPublisher
	PollInterval time.Duration
	BatchSize    int
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.DispatchOnce()
		}
	}
}

func (d *Dispatcher) DispatchOnce() {
	events, err := d.Repo.FindUnpublished(d.BatchSize)
	if err != nil {
		return
	}

	for _, evt := range events {
		payload, err := decodePayload(evt.Type, evt.Payload)
		if err != nil {
			continue
		}

		domainEvent := event.Event{
			Type:    evt.Type,
			Payload: payload,
		}

		if err := d.EventBus.Publish(domainEvent); err != nil {
			continue
		}

		_ = d.Repo.MarkPublished(evt.ID)
	}
}

// decodePayload restores the typed payload so subscribers can assert on the
// concrete type instead of a raw map.
func decodePayload(t event.Type, data []byte) (any, error) {
	switch t {
	case event.PaymentSettled:
		var p event.PaymentSettledPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", t)
	}
}

package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/event"
)

type Recorder struct {
	Repo Repository
}

func generateOutboxID() string {
	return fmt.Sprintf("outbox_%s", uuid.NewString())
}

func (r *Recorder) Record(evt event.Event) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return err
	}

	return r.Repo.Save(OutboxEvent{
		ID:        generateOutboxID(),
		Type:      evt.Type,
		Payload:   payload,
		CreatedAt: time.Now(),
	})
}

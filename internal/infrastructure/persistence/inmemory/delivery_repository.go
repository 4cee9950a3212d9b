package inmemory

import (
	"sync"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/webhook"
)

type DeliveryRepository struct {
	mu         sync.RWMutex
	deliveries map[string]webhook.Delivery
}

func NewDeliveryRepository() *DeliveryRepository {
	return &DeliveryRepository{
		deliveries: make(map[string]webhook.Delivery),
	}
}

func (r *DeliveryRepository) Save(d *webhook.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deliveries[d.ID] = *d
	return nil
}

func (r *DeliveryRepository) FindByID(id string) (*webhook.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.deliveries[id]
	if !ok {
		return nil, webhook.ErrNotFound
	}
	return &d, nil
}

func (r *DeliveryRepository) Update(d *webhook.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deliveries[d.ID]; !ok {
		return webhook.ErrNotFound
	}
	r.deliveries[d.ID] = *d
	return nil
}

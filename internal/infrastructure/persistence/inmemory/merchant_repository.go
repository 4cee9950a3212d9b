package inmemory

import (
	"sync"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/merchant"
)

type MerchantRepository struct {
	mu        sync.RWMutex
	merchants map[string]merchant.Merchant
	byClient  map[string]string
}

func NewMerchantRepository() *MerchantRepository {
	return &MerchantRepository{
		merchants: make(map[string]merchant.Merchant),
		byClient:  make(map[string]string),
	}
}

func (r *MerchantRepository) Save(m *merchant.Merchant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.merchants[m.ID] = *m
	r.byClient[m.ClientID] = m.ID
	return nil
}

func (r *MerchantRepository) FindByID(id string) (*merchant.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.merchants[id]
	if !ok {
		return nil, merchant.ErrNotFound
	}
	return &m, nil
}

func (r *MerchantRepository) FindByClientID(clientID string) (*merchant.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byClient[clientID]
	if !ok {
		return nil, merchant.ErrNotFound
	}
	m, ok := r.merchants[id]
	if !ok {
		return nil, merchant.ErrNotFound
	}
	return &m, nil
}

func (r *MerchantRepository) ExistsByName(name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.merchants {
		if m.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *MerchantRepository) ExistsByWebhookURL(url string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.merchants {
		if m.WebhookURL == url {
			return true, nil
		}
	}
	return false, nil
}

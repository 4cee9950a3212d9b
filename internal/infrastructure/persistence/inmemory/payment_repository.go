package inmemory

import (
	"sync"
	"time"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/payment"
)

type idempotencyRef struct {
	merchantID string
	key        string
}

// PaymentRepository stores value snapshots: callers always get copies, so a
// background task can never observe another task's in-progress mutation.
type PaymentRepository struct {
	mu              sync.RWMutex
	payments        map[string]payment.Payment
	idempotencyKeys map[idempotencyRef]string
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		payments:        make(map[string]payment.Payment),
		idempotencyKeys: make(map[idempotencyRef]string),
	}
}

func (r *PaymentRepository) Save(p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.payments[p.ID] = *p
	if p.IdempotencyKey != "" {
		r.idempotencyKeys[idempotencyRef{p.MerchantID, p.IdempotencyKey}] = p.ID
	}
	return nil
}

func (r *PaymentRepository) SaveIfNotExist(p *payment.Payment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref := idempotencyRef{p.MerchantID, p.IdempotencyKey}
	if p.IdempotencyKey != "" {
		if _, exists := r.idempotencyKeys[ref]; exists {
			return false, nil
		}
	}

	r.payments[p.ID] = *p
	if p.IdempotencyKey != "" {
		r.idempotencyKeys[ref] = p.ID
	}
	return true, nil
}

func (r *PaymentRepository) FindByID(id string) (*payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, payment.ErrNotFound
	}
	return &p, nil
}

func (r *PaymentRepository) FindByIdempotencyKey(merchantID, key string) (*payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idempotencyKeys[idempotencyRef{merchantID, key}]
	if !ok {
		return nil, payment.ErrNotFound
	}
	p, ok := r.payments[id]
	if !ok {
		return nil, payment.ErrNotFound
	}
	return &p, nil
}

func (r *PaymentRepository) UpdateStatus(id string, status payment.Status, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return payment.ErrNotFound
	}

	p.Status = status
	p.UpdatedAt = updatedAt
	r.payments[id] = p
	return nil
}

func (r *PaymentRepository) Payments() map[string]payment.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]payment.Payment, len(r.payments))
	for id, p := range r.payments {
		out[id] = p
	}
	return out
}

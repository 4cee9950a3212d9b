package payment

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("payment not found")

type Repository interface {
	Save(*Payment) error
	// SaveIfNotExist inserts the payment unless another payment already holds
	// the same (merchant, idempotency key) pair. Returns false on conflict.
	SaveIfNotExist(*Payment) (bool, error)
	FindByID(string) (*Payment, error)
	FindByIdempotencyKey(merchantID, key string) (*Payment, error)
	UpdateStatus(id string, status Status, updatedAt time.Time) error
}

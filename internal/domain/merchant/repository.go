package merchant

import "errors"

var ErrNotFound = errors.New("merchant not found")

type Repository interface {
	Save(*Merchant) error
	FindByID(string) (*Merchant, error)
	FindByClientID(string) (*Merchant, error)
	ExistsByName(string) (bool, error)
	ExistsByWebhookURL(string) (bool, error)
}

package webhook

import "errors"

var ErrNotFound = errors.New("webhook delivery not found")

type Repository interface {
	Save(*Delivery) error
	FindByID(string) (*Delivery, error)
	// Update persists the mutable attempt state (attempts, delivered,
	// last attempt time) of an existing delivery.
	Update(*Delivery) error
}

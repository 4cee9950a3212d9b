package payment

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/merchant"
	domainPayment "github.com/rcarvalho-pb/fiadopay-go/internal/domain/payment"
)

var ErrUnsupportedMethod = errors.New("payment method not supported")

type Request struct {
	Method       domainPayment.Method
	Amount       decimal.Decimal
	Currency     string
	Installments int
	OrderID      string
}

// Strategy constructs a pending payment for one method. Construction is
// pure: no persistence, no side effects.
type Strategy interface {
	Method() domainPayment.Method
	Process(req Request, m *merchant.Merchant, idempotencyKey string) (*domainPayment.Payment, error)
}

// Registry is a fixed method-to-strategy mapping built once at startup.
type Registry struct {
	strategies map[domainPayment.Method]Strategy
}

func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{
		strategies: make(map[domainPayment.Method]Strategy, len(strategies)),
	}
	for _, s := range strategies {
		r.strategies[s.Method()] = s
	}
	return r
}

func (r *Registry) Resolve(method domainPayment.Method) (Strategy, error) {
	s, ok := r.strategies[method]
	if !ok {
		return nil, ErrUnsupportedMethod
	}
	return s, nil
}

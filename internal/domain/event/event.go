package event

type Type string

const (
	PaymentSettled Type = "payment.settled"
)

type Event struct {
	Type    Type
	Payload any
}

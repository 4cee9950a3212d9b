package event

type PaymentSettledPayload struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
}

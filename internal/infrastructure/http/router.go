package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(merchants *MerchantHandler, payments *PaymentHandler, auth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Route("/fiadopay", func(r chi.Router) {
		r.Post("/merchants", merchants.Create)
		r.Post("/merchants/basic-token", merchants.BasicToken)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/payments", payments.Create)
			r.Get("/payments/{id}", payments.Get)
			r.Post("/payments/{id}/refund", payments.Refund)
		})
	})

	return r
}

package httpapi

import (
	"context"
	"net/http"

	merchantApplication "github.com/rcarvalho-pb/fiadopay-go/internal/application/merchant"
	domainMerchant "github.com/rcarvalho-pb/fiadopay-go/internal/domain/merchant"
)

type contextKey string

const merchantKey contextKey = "merchant"

// BasicAuth resolves the authenticated merchant from the client id/secret
// carried in the Authorization header and stores it in the request context.
func BasicAuth(merchants *merchantApplication.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID, clientSecret, ok := r.BasicAuth()
			if !ok {
				http.Error(w, "missing credentials", http.StatusUnauthorized)
				return
			}

			m, err := merchants.VerifyCredentials(clientID, clientSecret)
			if err != nil {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), merchantKey, m)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func merchantFrom(r *http.Request) *domainMerchant.Merchant {
	m, _ := r.Context().Value(merchantKey).(*domainMerchant.Merchant)
	return m
}

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	merchantApplication "github.com/rcarvalho-pb/fiadopay-go/internal/application/merchant"
	paymentApplication "github.com/rcarvalho-pb/fiadopay-go/internal/application/payment"
	domainPayment "github.com/rcarvalho-pb/fiadopay-go/internal/domain/payment"
)

type MerchantHandler struct {
	Service *merchantApplication.Service
}

type CreateMerchantRequest struct {
	Name       string          `json:"name"`
	WebhookURL string          `json:"webhookUrl"`
	Interest   decimal.Decimal `json:"interest"`
}

func (h *MerchantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMerchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.WebhookURL == "" {
		http.Error(w, "name and webhookUrl are required", http.StatusBadRequest)
		return
	}

	creds, err := h.Service.Create(merchantApplication.CreateInput{
		Name:       req.Name,
		WebhookURL: req.WebhookURL,
		Interest:   req.Interest,
	})
	if err != nil {
		if errors.Is(err, merchantApplication.ErrMerchantConflict) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, creds)
}

func (h *MerchantHandler) BasicToken(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")
	clientSecret := r.URL.Query().Get("clientSecret")

	if _, err := h.Service.VerifyCredentials(clientID, clientSecret); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token := h.Service.BasicToken(clientID, clientSecret)
	writeJSON(w, http.StatusOK, map[string]string{
		"authorization_header": token,
		"format":               "Authorization: " + token,
	})
}

type PaymentHandler struct {
	Service *paymentApplication.Service
}

type CreatePaymentRequest struct {
	Method       string          `json:"method"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Installments int             `json:"installments"`
	OrderID      string          `json:"orderId"`
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.Service.CreatePayment(
		merchantFrom(r),
		r.Header.Get("Idempotency-Key"),
		paymentApplication.Request{
			Method:       domainPayment.Method(req.Method),
			Amount:       req.Amount,
			Currency:     req.Currency,
			Installments: req.Installments,
			OrderID:      req.OrderID,
		},
	)
	if err != nil {
		writePaymentError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.GetPayment(chi.URLParam(r, "id"), merchantFrom(r))
	if err != nil {
		writePaymentError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.Service.Refund(merchantFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writePaymentError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}

func writePaymentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, paymentApplication.ErrUnsupportedMethod):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, paymentApplication.ErrOutsideWindow):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, paymentApplication.ErrMissingMerchant):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, paymentApplication.ErrPaymentNotOwned):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

package merchant

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zoobzio/clockz"
	"golang.org/x/crypto/bcrypt"

	domainMerchant "github.com/rcarvalho-pb/fiadopay-go/internal/domain/merchant"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/logging"
)

var (
	ErrMerchantConflict   = errors.New("merchant name or webhook url already exists")
	ErrInvalidCredentials = errors.New("invalid client credentials")
)

type CreateInput struct {
	Name       string
	WebhookURL string
	Interest   decimal.Decimal
}

// Credentials carries the plaintext client secret. It is returned exactly
// once, at registration; only the bcrypt hash is stored.
type Credentials struct {
	MerchantID   string `json:"merchantId"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

type Service struct {
	Merchants domainMerchant.Repository
	Clock     clockz.Clock
	Logger    logging.Logger
}

func (s *Service) Create(in CreateInput) (*Credentials, error) {
	taken, err := s.Merchants.ExistsByName(in.Name)
	if err != nil {
		return nil, err
	}
	if !taken {
		taken, err = s.Merchants.ExistsByWebhookURL(in.WebhookURL)
		if err != nil {
			return nil, err
		}
	}
	if taken {
		return nil, ErrMerchantConflict
	}

	clientID := "cli_" + uuid.NewString()
	clientSecret := "sec_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	hash, err := bcrypt.GenerateFromPassword([]byte(clientSecret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	m := &domainMerchant.Merchant{
		ID:         "mer_" + uuid.NewString(),
		Name:       in.Name,
		WebhookURL: in.WebhookURL,
		Interest:   in.Interest,
		ClientID:   clientID,
		SecretHash: string(hash),
		Status:     domainMerchant.StatusActive,
		CreatedAt:  s.Clock.Now().UTC(),
	}

	if err := s.Merchants.Save(m); err != nil {
		return nil, err
	}

	s.Logger.Info("merchant registered", map[string]any{
		"merchant_id": m.ID,
		"name":        m.Name,
	})

	return &Credentials{
		MerchantID:   m.ID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}, nil
}

// VerifyCredentials authenticates a client id/secret pair and rejects
// inactive merchants.
func (s *Service) VerifyCredentials(clientID, clientSecret string) (*domainMerchant.Merchant, error) {
	m, err := s.Merchants.FindByClientID(clientID)
	if err != nil {
		if errors.Is(err, domainMerchant.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(m.SecretHash), []byte(clientSecret)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !m.Active() {
		return nil, ErrInvalidCredentials
	}

	return m, nil
}

func (s *Service) BasicToken(clientID, clientSecret string) string {
	raw := clientID + ":" + clientSecret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

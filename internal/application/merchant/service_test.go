package merchant_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"

	"github.com/rcarvalho-pb/fiadopay-go/internal/application/merchant"
	domainMerchant "github.com/rcarvalho-pb/fiadopay-go/internal/domain/merchant"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infrastructure/persistence/inmemory"
)

type noopLogger struct{}

func (n *noopLogger) Info(string, map[string]any)  {}
func (n *noopLogger) Error(string, map[string]any) {}

func newService() (*merchant.Service, *inmemory.MerchantRepository) {
	repo := inmemory.NewMerchantRepository()
	return &merchant.Service{
		Merchants: repo,
		Clock:     clockz.RealClock,
		Logger:    &noopLogger{},
	}, repo
}

func registration() merchant.CreateInput {
	return merchant.CreateInput{
		Name:       "Loja do Zé",
		WebhookURL: "http://loja.example/hook",
		Interest:   decimal.RequireFromString("0.02"),
	}
}

func TestMerchant_CreateIssuesCredentials(t *testing.T) {
	service, repo := newService()

	creds, err := service.Create(registration())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(creds.MerchantID, "mer_"), "got %s", creds.MerchantID)
	require.True(t, strings.HasPrefix(creds.ClientID, "cli_"), "got %s", creds.ClientID)
	require.True(t, strings.HasPrefix(creds.ClientSecret, "sec_"), "got %s", creds.ClientSecret)

	stored, err := repo.FindByClientID(creds.ClientID)
	require.NoError(t, err)
	require.Equal(t, domainMerchant.StatusActive, stored.Status)
	require.Equal(t, "Loja do Zé", stored.Name)

	// only the hash is persisted
	if stored.SecretHash == creds.ClientSecret {
		t.Error("client secret must not be stored in plaintext")
	}
	require.NotEmpty(t, stored.SecretHash)
}

func TestMerchant_CreateRejectsDuplicateName(t *testing.T) {
	service, _ := newService()

	_, err := service.Create(registration())
	require.NoError(t, err)

	in := registration()
	in.WebhookURL = "http://other.example/hook"
	_, err = service.Create(in)
	require.ErrorIs(t, err, merchant.ErrMerchantConflict)
}

func TestMerchant_CreateRejectsDuplicateWebhookURL(t *testing.T) {
	service, _ := newService()

	_, err := service.Create(registration())
	require.NoError(t, err)

	in := registration()
	in.Name = "Outra Loja"
	_, err = service.Create(in)
	require.ErrorIs(t, err, merchant.ErrMerchantConflict)
}

func TestMerchant_VerifyCredentials(t *testing.T) {
	service, _ := newService()

	creds, err := service.Create(registration())
	require.NoError(t, err)

	m, err := service.VerifyCredentials(creds.ClientID, creds.ClientSecret)
	require.NoError(t, err)
	require.Equal(t, creds.MerchantID, m.ID)
}

func TestMerchant_VerifyCredentialsWrongSecret(t *testing.T) {
	service, _ := newService()

	creds, err := service.Create(registration())
	require.NoError(t, err)

	_, err = service.VerifyCredentials(creds.ClientID, "sec_wrong")
	require.ErrorIs(t, err, merchant.ErrInvalidCredentials)
}

func TestMerchant_VerifyCredentialsUnknownClient(t *testing.T) {
	service, _ := newService()

	_, err := service.VerifyCredentials("cli_ghost", "sec_whatever")
	require.ErrorIs(t, err, merchant.ErrInvalidCredentials)
}

func TestMerchant_VerifyCredentialsInactiveMerchant(t *testing.T) {
	service, repo := newService()

	creds, err := service.Create(registration())
	require.NoError(t, err)

	stored, err := repo.FindByClientID(creds.ClientID)
	require.NoError(t, err)
	stored.Status = domainMerchant.StatusInactive
	require.NoError(t, repo.Save(stored))

	_, err = service.VerifyCredentials(creds.ClientID, creds.ClientSecret)
	require.ErrorIs(t, err, merchant.ErrInvalidCredentials)
}

func TestMerchant_BasicToken(t *testing.T) {
	service, _ := newService()

	token := service.BasicToken("cli_1", "sec_1")
	require.True(t, strings.HasPrefix(token, "Basic "))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(token, "Basic "))
	require.NoError(t, err)
	require.Equal(t, "cli_1:sec_1", string(decoded))
}

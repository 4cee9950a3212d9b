package sqlite_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/merchant"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infrastructure/persistence/sqlite"
)

func storedMerchant() *merchant.Merchant {
	return &merchant.Merchant{
		ID:         "mer_1",
		Name:       "Loja do Zé",
		WebhookURL: "http://loja.example/hook",
		Interest:   decimal.RequireFromString("0.02"),
		ClientID:   "cli_1",
		SecretHash: "$2a$10$hash",
		Status:     merchant.StatusActive,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func TestMerchantRepository_SaveAndLookups(t *testing.T) {
	repo := sqlite.NewMerchantRepository(setupTestDB(t))

	m := storedMerchant()
	require.NoError(t, repo.Save(m))

	byID, err := repo.FindByID("mer_1")
	require.NoError(t, err)
	require.Equal(t, m.Name, byID.Name)
	require.True(t, m.Interest.Equal(byID.Interest))
	require.Equal(t, merchant.StatusActive, byID.Status)

	byClient, err := repo.FindByClientID("cli_1")
	require.NoError(t, err)
	require.Equal(t, "mer_1", byClient.ID)
}

func TestMerchantRepository_Exists(t *testing.T) {
	repo := sqlite.NewMerchantRepository(setupTestDB(t))

	require.NoError(t, repo.Save(storedMerchant()))

	taken, err := repo.ExistsByName("Loja do Zé")
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = repo.ExistsByWebhookURL("http://loja.example/hook")
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = repo.ExistsByName("Outra Loja")
	require.NoError(t, err)
	require.False(t, taken)
}

func TestMerchantRepository_NotFound(t *testing.T) {
	repo := sqlite.NewMerchantRepository(setupTestDB(t))

	_, err := repo.FindByID("mer_ghost")
	require.ErrorIs(t, err, merchant.ErrNotFound)

	_, err = repo.FindByClientID("cli_ghost")
	require.ErrorIs(t, err, merchant.ErrNotFound)
}

package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/payment"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infrastructure/persistence/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqlite.RunMigrations(db))
	return db
}

func storedPayment(id, merchantID, idempotencyKey string) *payment.Payment {
	now := time.Now().UTC().Truncate(time.Second)
	return &payment.Payment{
		ID:              id,
		MerchantID:      merchantID,
		Method:          payment.MethodCard,
		Amount:          decimal.RequireFromString("104.00"),
		Currency:        "BRL",
		IdempotencyKey:  idempotencyKey,
		MetadataOrderID: "order-77",
		Status:          payment.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		DetailsJSON:     `{"installments":3}`,
	}
}

func TestPaymentRepository_SaveAndFindByID(t *testing.T) {
	repo := sqlite.NewPaymentRepository(setupTestDB(t))

	p := storedPayment("pay_1", "mer_1", "idem-1")
	require.NoError(t, repo.Save(p))

	got, err := repo.FindByID("pay_1")
	require.NoError(t, err)

	require.Equal(t, p.ID, got.ID)
	require.Equal(t, p.MerchantID, got.MerchantID)
	require.Equal(t, p.Method, got.Method)
	require.True(t, p.Amount.Equal(got.Amount), "amount %s != %s", p.Amount, got.Amount)
	require.Equal(t, p.IdempotencyKey, got.IdempotencyKey)
	require.Equal(t, p.MetadataOrderID, got.MetadataOrderID)
	require.Equal(t, p.Status, got.Status)
	require.Equal(t, p.DetailsJSON, got.DetailsJSON)
}

func TestPaymentRepository_FindByIDNotFound(t *testing.T) {
	repo := sqlite.NewPaymentRepository(setupTestDB(t))

	_, err := repo.FindByID("pay_ghost")
	require.ErrorIs(t, err, payment.ErrNotFound)
}

func TestPaymentRepository_SaveIfNotExistRejectsDuplicateKey(t *testing.T) {
	repo := sqlite.NewPaymentRepository(setupTestDB(t))

	inserted, err := repo.SaveIfNotExist(storedPayment("pay_1", "mer_1", "idem-1"))
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = repo.SaveIfNotExist(storedPayment("pay_2", "mer_1", "idem-1"))
	require.NoError(t, err)
	require.False(t, inserted, "second insert with the same (merchant, key) must lose")

	// the losing row must not exist
	_, err = repo.FindByID("pay_2")
	require.ErrorIs(t, err, payment.ErrNotFound)
}

func TestPaymentRepository_SameKeyDifferentMerchantsBothInsert(t *testing.T) {
	repo := sqlite.NewPaymentRepository(setupTestDB(t))

	inserted, err := repo.SaveIfNotExist(storedPayment("pay_1", "mer_1", "idem-1"))
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = repo.SaveIfNotExist(storedPayment("pay_2", "mer_2", "idem-1"))
	require.NoError(t, err)
	require.True(t, inserted, "the key is scoped per merchant")
}

func TestPaymentRepository_NullKeysNeverCollide(t *testing.T) {
	repo := sqlite.NewPaymentRepository(setupTestDB(t))

	for _, id := range []string{"pay_1", "pay_2", "pay_3"} {
		inserted, err := repo.SaveIfNotExist(storedPayment(id, "mer_1", ""))
		require.NoError(t, err)
		require.True(t, inserted, "payments without idempotency key must all insert")
	}
}

func TestPaymentRepository_FindByIdempotencyKey(t *testing.T) {
	repo := sqlite.NewPaymentRepository(setupTestDB(t))

	require.NoError(t, repo.Save(storedPayment("pay_1", "mer_1", "idem-1")))

	got, err := repo.FindByIdempotencyKey("mer_1", "idem-1")
	require.NoError(t, err)
	require.Equal(t, "pay_1", got.ID)

	_, err = repo.FindByIdempotencyKey("mer_2", "idem-1")
	require.ErrorIs(t, err, payment.ErrNotFound)
}

func TestPaymentRepository_UpdateStatus(t *testing.T) {
	repo := sqlite.NewPaymentRepository(setupTestDB(t))

	p := storedPayment("pay_1", "mer_1", "idem-1")
	require.NoError(t, repo.Save(p))

	settledAt := p.UpdatedAt.Add(time.Second)
	require.NoError(t, repo.UpdateStatus("pay_1", payment.StatusApproved, settledAt))

	got, err := repo.FindByID("pay_1")
	require.NoError(t, err)
	require.Equal(t, payment.StatusApproved, got.Status)
	require.True(t, got.UpdatedAt.After(p.UpdatedAt))
}

func TestPaymentRepository_UpdateStatusUnknownPayment(t *testing.T) {
	repo := sqlite.NewPaymentRepository(setupTestDB(t))

	err := repo.UpdateStatus("pay_ghost", payment.StatusApproved, time.Now())
	require.ErrorIs(t, err, payment.ErrNotFound)
}

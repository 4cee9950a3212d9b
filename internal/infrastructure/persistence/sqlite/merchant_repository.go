package sqlite

import (
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/merchant"
)

type MerchantRepository struct {
	db *sql.DB
}

func NewMerchantRepository(db *sql.DB) *MerchantRepository {
	return &MerchantRepository{db: db}
}

func (r *MerchantRepository) Save(m *merchant.Merchant) error {
	_, err := r.db.Exec(
		`INSERT INTO merchants
		 (id, name, webhook_url, interest, client_id, secret_hash, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.Name,
		m.WebhookURL,
		m.Interest.String(),
		m.ClientID,
		m.SecretHash,
		string(m.Status),
		m.CreatedAt,
	)
	return err
}

func (r *MerchantRepository) FindByID(id string) (*merchant.Merchant, error) {
	row := r.db.QueryRow(selectMerchant+` WHERE id = ?`, id)
	return scanMerchant(row)
}

func (r *MerchantRepository) FindByClientID(clientID string) (*merchant.Merchant, error) {
	row := r.db.QueryRow(selectMerchant+` WHERE client_id = ?`, clientID)
	return scanMerchant(row)
}

func (r *MerchantRepository) ExistsByName(name string) (bool, error) {
	return r.exists(`SELECT COUNT(1) FROM merchants WHERE name = ?`, name)
}

func (r *MerchantRepository) ExistsByWebhookURL(url string) (bool, error) {
	return r.exists(`SELECT COUNT(1) FROM merchants WHERE webhook_url = ?`, url)
}

func (r *MerchantRepository) exists(query, arg string) (bool, error) {
	var count int
	if err := r.db.QueryRow(query, arg).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

const selectMerchant = `SELECT id, name, webhook_url, interest, client_id,
	secret_hash, status, created_at
	FROM merchants`

func scanMerchant(row *sql.Row) (*merchant.Merchant, error) {
	var m merchant.Merchant
	var interest, status string

	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.WebhookURL,
		&interest,
		&m.ClientID,
		&m.SecretHash,
		&status,
		&m.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, merchant.ErrNotFound
		}
		return nil, err
	}

	rate, err := decimal.NewFromString(interest)
	if err != nil {
		return nil, err
	}

	m.Interest = rate
	m.Status = merchant.Status(status)
	return &m, nil
}

package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/payment"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Save(p *payment.Payment) error {
	_, err := r.db.Exec(
		`INSERT INTO payments
		 (id, merchant_id, method, amount, currency, idempotency_key,
		  metadata_order_id, status, created_at, updated_at, details_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.MerchantID,
		string(p.Method),
		p.Amount.String(),
		p.Currency,
		nullable(p.IdempotencyKey),
		nullable(p.MetadataOrderID),
		string(p.Status),
		p.CreatedAt,
		p.UpdatedAt,
		nullable(p.DetailsJSON),
	)
	return err
}

func (r *PaymentRepository) SaveIfNotExist(p *payment.Payment) (bool, error) {
	res, err := r.db.Exec(
		`INSERT OR IGNORE INTO payments
		 (id, merchant_id, method, amount, currency, idempotency_key,
		  metadata_order_id, status, created_at, updated_at, details_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.MerchantID,
		string(p.Method),
		p.Amount.String(),
		p.Currency,
		nullable(p.IdempotencyKey),
		nullable(p.MetadataOrderID),
		string(p.Status),
		p.CreatedAt,
		p.UpdatedAt,
		nullable(p.DetailsJSON),
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// 0 rows = another payment already holds this (merchant, key) pair
	return affected == 1, nil
}

func (r *PaymentRepository) FindByID(id string) (*payment.Payment, error) {
	row := r.db.QueryRow(selectPayment+` WHERE id = ?`, id)
	return scanPayment(row)
}

func (r *PaymentRepository) FindByIdempotencyKey(merchantID, key string) (*payment.Payment, error) {
	row := r.db.QueryRow(
		selectPayment+` WHERE merchant_id = ? AND idempotency_key = ?`,
		merchantID,
		key,
	)
	return scanPayment(row)
}

func (r *PaymentRepository) UpdateStatus(id string, status payment.Status, updatedAt time.Time) error {
	res, err := r.db.Exec(
		`UPDATE payments
		 SET status = ?, updated_at = ?
		 WHERE id = ?`,
		string(status),
		updatedAt,
		id,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return payment.ErrNotFound
	}

	return nil
}

const selectPayment = `SELECT id, merchant_id, method, amount, currency,
	idempotency_key, metadata_order_id, status, created_at, updated_at, details_json
	FROM payments`

func scanPayment(row *sql.Row) (*payment.Payment, error) {
	var p payment.Payment
	var method, amount, status string
	var idemKey, orderID, details sql.NullString

	if err := row.Scan(
		&p.ID,
		&p.MerchantID,
		&method,
		&amount,
		&p.Currency,
		&idemKey,
		&orderID,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
		&details,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrNotFound
		}
		return nil, err
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}

	p.Method = payment.Method(method)
	p.Amount = value
	p.IdempotencyKey = idemKey.String
	p.MetadataOrderID = orderID.String
	p.Status = payment.Status(status)
	p.DetailsJSON = details.String
	return &p, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

package sqlite

import (
	"database/sql"
	"errors"

	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/webhook"
)

type DeliveryRepository struct {
	db *sql.DB
}

func NewDeliveryRepository(db *sql.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

func (r *DeliveryRepository) Save(d *webhook.Delivery) error {
	_, err := r.db.Exec(
		`INSERT INTO webhook_deliveries
		 (id, event_id, event_type, payment_id, target_url, payload, signature,
		  attempts, delivered, last_attempt_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID,
		d.EventID,
		d.EventType,
		d.PaymentID,
		d.TargetURL,
		d.Payload,
		d.Signature,
		d.Attempts,
		boolToInt(d.Delivered),
		d.LastAttemptAt,
		d.CreatedAt,
	)
	return err
}

func (r *DeliveryRepository) FindByID(id string) (*webhook.Delivery, error) {
	row := r.db.QueryRow(
		`SELECT id, event_id, event_type, payment_id, target_url, payload,
		        signature, attempts, delivered, last_attempt_at, created_at
		 FROM webhook_deliveries
		 WHERE id = ?`,
		id,
	)

	var d webhook.Delivery
	var delivered int
	var lastAttempt sql.NullTime

	if err := row.Scan(
		&d.ID,
		&d.EventID,
		&d.EventType,
		&d.PaymentID,
		&d.TargetURL,
		&d.Payload,
		&d.Signature,
		&d.Attempts,
		&delivered,
		&lastAttempt,
		&d.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, webhook.ErrNotFound
		}
		return nil, err
	}

	d.Delivered = delivered == 1
	if lastAttempt.Valid {
		t := lastAttempt.Time
		d.LastAttemptAt = &t
	}
	return &d, nil
}

func (r *DeliveryRepository) Update(d *webhook.Delivery) error {
	res, err := r.db.Exec(
		`UPDATE webhook_deliveries
		 SET attempts = ?, delivered = ?, last_attempt_at = ?
		 WHERE id = ?`,
		d.Attempts,
		boolToInt(d.Delivered),
		d.LastAttemptAt,
		d.ID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return webhook.ErrNotFound
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

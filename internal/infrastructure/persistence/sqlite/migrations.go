package sqlite

import "database/sql"

func RunMigrations(db *sql.DB) error {
	stmts := []string{

		`CREATE TABLE IF NOT EXISTS merchants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			webhook_url TEXT NOT NULL UNIQUE,
			interest TEXT NOT NULL,
			client_id TEXT NOT NULL UNIQUE,
			secret_hash TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS payments (
			id TEXT PRIMARY KEY,
			merchant_id TEXT NOT NULL,
			method TEXT NOT NULL,
			amount TEXT NOT NULL,
			currency TEXT NOT NULL,
			idempotency_key TEXT,
			metadata_order_id TEXT,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			details_json TEXT
		);`,

		// NULL keys are exempt from the constraint, so payments without an
		// idempotency key never collide.
		`CREATE UNIQUE INDEX IF NOT EXISTS uk_payment_merchant_idempotency
			ON payments (merchant_id, idempotency_key);`,

		`CREATE INDEX IF NOT EXISTS idx_payments_merchant ON payments (merchant_id);`,
		`CREATE INDEX IF NOT EXISTS idx_payments_status ON payments (status);`,

		`CREATE TABLE IF NOT EXISTS webhook_deliveries (
			id TEXT PRIMARY KEY,
			event_id TEXT NOT NULL UNIQUE,
			event_type TEXT NOT NULL,
			payment_id TEXT NOT NULL,
			target_url TEXT NOT NULL,
			payload BLOB NOT NULL,
			signature TEXT NOT NULL,
			attempts INTEGER NOT NULL,
			delivered INTEGER NOT NULL,
			last_attempt_at DATETIME,
			created_at DATETIME NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS outbox_events (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			payload BLOB NOT NULL,
			published INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

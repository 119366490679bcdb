package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate applies idempotent Postgres constraints and indexes on top of
// AutoMigrate:
// - Money column types (NUMERIC(12,2))
// - Indexes (payments, invoice_items, bookings)
// - Basic CHECK constraints
func Migrate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE rooms              ALTER COLUMN price       TYPE numeric(12,2)`,
			`ALTER TABLE services           ALTER COLUMN price       TYPE numeric(12,2)`,
			`ALTER TABLE bookings           ALTER COLUMN total_price TYPE numeric(12,2)`,
			`ALTER TABLE invoices           ALTER COLUMN total_amount TYPE numeric(12,2)`,
			`ALTER TABLE invoices           ALTER COLUMN grand_total TYPE numeric(12,2)`,
			`ALTER TABLE invoices           ALTER COLUMN paid_total  TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items      ALTER COLUMN unit_price  TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items      ALTER COLUMN total_price TYPE numeric(12,2)`,
			`ALTER TABLE service_bill_items ALTER COLUMN unit_price  TYPE numeric(12,2)`,
			`ALTER TABLE service_bill_items ALTER COLUMN total_price TYPE numeric(12,2)`,
			`ALTER TABLE payments           ALTER COLUMN amount      TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_payments_invoice_paid_at ON payments (invoice_id, paid_at)`,
			`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items (invoice_id)`,
			`CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings (user_id)`,
			`CREATE INDEX IF NOT EXISTS idx_bookings_room ON bookings (room_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_booking ON invoices (booking_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'services'::regclass
					  AND conname  = 'chk_services_price_nonneg'
				) THEN
					ALTER TABLE services
					ADD CONSTRAINT chk_services_price_nonneg
					CHECK (price >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'payments'::regclass
					  AND conname  = 'chk_payments_amount_nonneg'
				) THEN
					ALTER TABLE payments
					ADD CONSTRAINT chk_payments_amount_nonneg
					CHECK (amount >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoice_items'::regclass
					  AND conname  = 'chk_invoice_items_quantity_nonneg'
				) THEN
					ALTER TABLE invoice_items
					ADD CONSTRAINT chk_invoice_items_quantity_nonneg
					CHECK (quantity >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}

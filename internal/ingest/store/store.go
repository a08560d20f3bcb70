package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dakotalabs/glstream/internal/ledger"
)

// sourceTag marks rows loaded by this service, so window reloads never touch
// records loaded by other tools.
const sourceTag = "glstream-api"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema bootstraps the raw landing table.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS raw_gl_records (
			gl_entry_id       BIGINT PRIMARY KEY,
			journal_batch     TEXT NOT NULL,
			journal_entry     TEXT NOT NULL,
			transaction_date  DATE NOT NULL,
			posting_date      DATE NOT NULL,
			account_code      TEXT NOT NULL,
			account_name      TEXT NOT NULL,
			account_type      TEXT NOT NULL,
			debit_amount      DOUBLE PRECISION NOT NULL,
			credit_amount     DOUBLE PRECISION NOT NULL,
			net_amount        DOUBLE PRECISION NOT NULL,
			well_id           TEXT NOT NULL,
			lease_name        TEXT NOT NULL,
			property_id       TEXT NOT NULL,
			afe_number        TEXT,
			jib_number        TEXT,
			cost_center       TEXT NOT NULL,
			journal_source    TEXT NOT NULL,
			transaction_type  TEXT NOT NULL,
			description       TEXT NOT NULL,
			fiscal_period     TEXT NOT NULL,
			fiscal_year       INT NOT NULL,
			fiscal_month      INT NOT NULL,
			state             TEXT NOT NULL,
			county            TEXT NOT NULL,
			basin             TEXT NOT NULL,
			created_timestamp TIMESTAMPTZ NOT NULL,
			created_by        TEXT NOT NULL,
			last_modified     TIMESTAMPTZ NOT NULL,
			ingested_at       TIMESTAMPTZ NOT NULL,
			source            TEXT NOT NULL
		)
	`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating raw_gl_records: %w", err)
	}

	return nil
}

// MaxEntryID returns the current watermark, 0 for an empty warehouse.
func (s *Store) MaxEntryID(ctx context.Context) (int64, error) {
	var maxID int64

	query := `SELECT COALESCE(MAX(gl_entry_id), 0) FROM raw_gl_records WHERE source = $1`
	if err := s.db.QueryRowContext(ctx, query, sourceTag).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("querying max entry id: %w", err)
	}

	return maxID, nil
}

// InsertRecords writes a batch inside one transaction.
func (s *Store) InsertRecords(ctx context.Context, records []ledger.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO raw_gl_records (
			gl_entry_id, journal_batch, journal_entry, transaction_date, posting_date,
			account_code, account_name, account_type,
			debit_amount, credit_amount, net_amount,
			well_id, lease_name, property_id, afe_number, jib_number, cost_center,
			journal_source, transaction_type, description,
			fiscal_period, fiscal_year, fiscal_month,
			state, county, basin,
			created_timestamp, created_by, last_modified,
			ingested_at, source
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31
		)
	`

	now := time.Now().UTC()

	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, query,
			rec.EntryID, rec.JournalBatch, rec.JournalEntry, rec.TransactionDate, rec.PostingDate,
			rec.AccountCode, rec.AccountName, rec.AccountType,
			rec.DebitAmount, rec.CreditAmount, rec.NetAmount,
			rec.WellID, rec.LeaseName, rec.PropertyID, rec.AFENumber, rec.JIBNumber, rec.CostCenter,
			rec.JournalSource, rec.TransactionType, rec.Description,
			rec.FiscalPeriod, rec.FiscalYear, rec.FiscalMonth,
			rec.State, rec.County, rec.Basin,
			rec.CreatedTimestamp, rec.CreatedBy, rec.LastModified,
			now, sourceTag,
		); err != nil {
			return fmt.Errorf("inserting record %d: %w", rec.EntryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing insert: %w", err)
	}

	return nil
}

// DeleteWindow removes this service's rows with start <= transaction_date <
// end and reports how many were dropped.
func (s *Store) DeleteWindow(ctx context.Context, start, end time.Time) (int64, error) {
	query := `
		DELETE FROM raw_gl_records
		WHERE transaction_date >= $1 AND transaction_date < $2 AND source = $3
	`

	res, err := s.db.ExecContext(ctx, query, start, end, sourceTag)
	if err != nil {
		return 0, fmt.Errorf("deleting window: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted rows: %w", err)
	}

	return deleted, nil
}

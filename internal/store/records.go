package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Archit-bit/voice-diary-app/internal/journal"
)

const createdAtFormat = "2006-01-02 15:04:05"

// Order controls the log_date sort direction of range queries: list views
// want recency first, trend views want chronological order.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Upsert inserts or replaces the record for (owner, logDate). The conflict
// target is the composite key, so a repeated submission overwrites the
// transcript and extracted payload in place while the original row keeps its
// id and created_at.
func (s *Store) Upsert(owner, logDate string, transcript *string, extracted *journal.ExtractedPayload) (*journal.DailyRecord, error) {
	if extracted == nil {
		extracted = &journal.ExtractedPayload{SchemaVersion: 1}
	}

	encoded, err := extracted.Encode()
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`
		INSERT INTO daily_records (id, owner, log_date, transcript, extracted)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(owner, log_date) DO UPDATE SET
			transcript = excluded.transcript,
			extracted = excluded.extracted
	`, uuid.NewString(), owner, logDate, transcript, string(encoded))
	if err != nil {
		return nil, err
	}

	return s.GetByDate(owner, logDate)
}

// GetByDate returns the record for (owner, logDate), or ErrNotFound.
func (s *Store) GetByDate(owner, logDate string) (*journal.DailyRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, owner, log_date, transcript, extracted, created_at
		FROM daily_records
		WHERE owner = ? AND log_date = ?
	`, owner, logDate)

	return scanRecord(row)
}

// HasRecord reports whether the owner already journaled on logDate.
func (s *Store) HasRecord(owner, logDate string) (bool, error) {
	var count int

	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM daily_records WHERE owner = ? AND log_date = ?
	`, owner, logDate).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// ListByDateRange returns the owner's records with log_date in [from, to]
// inclusive, sorted by log_date in the requested order.
func (s *Store) ListByDateRange(owner, from, to string, order Order) ([]*journal.DailyRecord, error) {
	query := `
		SELECT id, owner, log_date, transcript, extracted, created_at
		FROM daily_records
		WHERE owner = ? AND log_date >= ? AND log_date <= ?
		ORDER BY log_date DESC`
	if order == OrderAsc {
		query = `
		SELECT id, owner, log_date, transcript, extracted, created_at
		FROM daily_records
		WHERE owner = ? AND log_date >= ? AND log_date <= ?
		ORDER BY log_date ASC`
	}

	rows, err := s.db.Query(query, owner, from, to)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var records []*journal.DailyRecord

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// UpdateExtracted replaces the extracted payload of exactly one record by
// id, scoped to the owner. A missing or foreign id yields ErrNotFound and
// no other row is touched.
func (s *Store) UpdateExtracted(owner, id string, extracted *journal.ExtractedPayload) (*journal.DailyRecord, error) {
	encoded, err := extracted.Encode()
	if err != nil {
		return nil, err
	}

	result, err := s.db.Exec(`
		UPDATE daily_records SET extracted = ?
		WHERE id = ? AND owner = ?
	`, string(encoded), id, owner)
	if err != nil {
		return nil, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, ErrNotFound
	}

	row := s.db.QueryRow(`
		SELECT id, owner, log_date, transcript, extracted, created_at
		FROM daily_records
		WHERE id = ? AND owner = ?
	`, id, owner)

	return scanRecord(row)
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (*journal.DailyRecord, error) {
	var rec journal.DailyRecord
	var transcript sql.NullString
	var extracted string
	var createdAt string

	err := row.Scan(&rec.ID, &rec.Owner, &rec.LogDate, &transcript, &extracted, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if transcript.Valid {
		rec.Transcript = &transcript.String
	}

	payload, err := journal.ParsePayload([]byte(extracted))
	if err != nil {
		return nil, err
	}
	rec.Extracted = payload

	rec.CreatedAt, _ = time.Parse(createdAtFormat, createdAt)

	return &rec, nil
}

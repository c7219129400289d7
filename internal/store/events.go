package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
)

// ReplaceRecords swaps the stored events of a sheet for records in one
// transaction and returns the id of the new run.
func (s *SQLiteStore) ReplaceRecords(ctx context.Context, sheetID string, records []models.ExtractedRecord) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning replace transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM sheets WHERE id = ?`, sheetID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrSheetNotFound, sheetID)
	}
	if err != nil {
		return "", fmt.Errorf("looking up sheet: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE sheet_id = ?`, sheetID); err != nil {
		return "", fmt.Errorf("clearing events: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (sheet_id, run_id, title, name, phone, date, time, procedure, facility, source_row)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing event insert: %w", err)
	}
	defer stmt.Close()

	runID := uuid.NewString()
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			sheetID, runID, r.Title(), r.Name, r.Phone,
			r.Date.String(), r.Time.String(), r.Procedure, r.Facility, r.SourceRowIndex,
		); err != nil {
			return "", fmt.Errorf("inserting event for row %d: %w", r.SourceRowIndex, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE sheets SET last_run_id = ?, updated_at = ? WHERE id = ?`,
		runID, formatTime(s.now()), sheetID,
	); err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing replace: %w", err)
	}
	return runID, nil
}

// ListEvents returns stored events ordered by date and time.
func (s *SQLiteStore) ListEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	var (
		where []string
		args  []any
	)
	if !filter.From.IsZero() {
		where = append(where, "e.date >= ?")
		args = append(args, filter.From.String())
	}
	if !filter.To.IsZero() {
		where = append(where, "e.date <= ?")
		args = append(args, filter.To.String())
	}
	if filter.SheetID != "" {
		where = append(where, "e.sheet_id = ?")
		args = append(args, filter.SheetID)
	}

	query := `
		SELECT e.id, e.sheet_id, e.run_id, e.title, e.name, e.phone, e.date, e.time,
		       e.procedure, e.facility, e.source_row, s.color
		FROM events e
		JOIN sheets s ON s.id = e.sheet_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY e.date, e.time, e.id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e           Event
			date, clock string
		)
		if err := rows.Scan(&e.ID, &e.SheetID, &e.RunID, &e.Title, &e.Name, &e.Phone, &date, &clock,
			&e.Procedure, &e.Facility, &e.SourceRow, &e.Color); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		if err := e.Date.UnmarshalText([]byte(date)); err != nil {
			return nil, fmt.Errorf("event %d date: %w", e.ID, err)
		}
		if err := e.Time.UnmarshalText([]byte(clock)); err != nil {
			return nil, fmt.Errorf("event %d time: %w", e.ID, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

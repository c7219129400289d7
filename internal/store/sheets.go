package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const sheetColumns = `s.id, s.source, s.name, s.color, s.last_run_id, s.created_at, s.updated_at,
	(SELECT COUNT(*) FROM events e WHERE e.sheet_id = s.id)`

// UpsertSheet returns the sheet registered for source and name, creating
// it when absent. A non-empty color replaces the stored one.
func (s *SQLiteStore) UpsertSheet(ctx context.Context, source, name, color string) (*Sheet, error) {
	color = strings.TrimSpace(color)
	now := formatTime(s.now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning sheet transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM sheets WHERE source = ? AND name = ?`, source, name,
	).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if color == "" {
			color = DefaultColor
		}
		id = uuid.NewString()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sheets (id, source, name, color, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			id, source, name, color, now, now,
		); err != nil {
			return nil, fmt.Errorf("inserting sheet: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("looking up sheet: %w", err)
	case color != "":
		if _, err := tx.ExecContext(ctx,
			`UPDATE sheets SET color = ?, updated_at = ? WHERE id = ?`, color, now, id,
		); err != nil {
			return nil, fmt.Errorf("updating sheet color: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing sheet: %w", err)
	}
	return s.GetSheet(ctx, id)
}

// GetSheet returns one sheet by id.
func (s *SQLiteStore) GetSheet(ctx context.Context, id string) (*Sheet, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sheetColumns+` FROM sheets s WHERE s.id = ?`, id)
	sh, err := scanSheet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting sheet: %w", err)
	}
	return sh, nil
}

// ListSheets returns all sheets ordered by source and name.
func (s *SQLiteStore) ListSheets(ctx context.Context) ([]Sheet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sheetColumns+` FROM sheets s ORDER BY s.source, s.name`)
	if err != nil {
		return nil, fmt.Errorf("listing sheets: %w", err)
	}
	defer rows.Close()

	var sheets []Sheet
	for rows.Next() {
		sh, err := scanSheet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sheet row: %w", err)
		}
		sheets = append(sheets, *sh)
	}
	return sheets, rows.Err()
}

// DeleteSheet removes a sheet and its events.
func (s *SQLiteStore) DeleteSheet(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sheets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting sheet: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting sheet: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSheet(sc scanner) (*Sheet, error) {
	var (
		sh               Sheet
		created, updated string
	)
	if err := sc.Scan(&sh.ID, &sh.Source, &sh.Name, &sh.Color, &sh.LastRunID, &created, &updated, &sh.EventCount); err != nil {
		return nil, err
	}
	sh.CreatedAt = parseTime(created)
	sh.UpdatedAt = parseTime(updated)
	return &sh, nil
}

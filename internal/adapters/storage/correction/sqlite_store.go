package correction

import (
	"context"
	"database/sql"
	"time"

	"sequoia/internal/adapters/storage"
	domain "sequoia/internal/domain/correction"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const correctionColumns = `id, voyage_id, name, email, message, status, created_at`

// GetByID retrieves a correction by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Correction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+correctionColumns+` FROM correction WHERE id = ?`, id)
	return scanCorrection(row)
}

// Save inserts or updates a correction.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, c domain.Correction) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO correction (id, voyage_id, name, email, message, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   voyage_id=excluded.voyage_id, name=excluded.name, email=excluded.email,
		   message=excluded.message, status=excluded.status, created_at=excluded.created_at`,
		c.ID, c.VoyageID, c.Name, c.Email, c.Message, c.Status,
		c.CreatedAt.UTC().Format(timeLayout))
	return err
}

// List returns corrections matching the filter, newest first.
// PRE: filter has valid parameters
// POST: Returns matching corrections ordered by created_at DESC
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Correction, error) {
	query := `SELECT ` + correctionColumns + ` FROM correction WHERE 1=1`
	args := []any{}

	if filter.VoyageID > 0 {
		query += ` AND voyage_id = ?`
		args = append(args, filter.VoyageID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Correction
	for rows.Next() {
		c, err := scanCorrectionRows(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCorrection(row *sql.Row) (domain.Correction, error) {
	var c domain.Correction
	var createdAt string
	if err := row.Scan(&c.ID, &c.VoyageID, &c.Name, &c.Email, &c.Message, &c.Status, &createdAt); err != nil {
		return domain.Correction{}, err
	}
	c.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return c, nil
}

func scanCorrectionRows(rows *sql.Rows) (domain.Correction, error) {
	var c domain.Correction
	var createdAt string
	if err := rows.Scan(&c.ID, &c.VoyageID, &c.Name, &c.Email, &c.Message, &c.Status, &createdAt); err != nil {
		return domain.Correction{}, err
	}
	c.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return c, nil
}

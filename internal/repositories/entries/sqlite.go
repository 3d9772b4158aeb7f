package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/dbx"
	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert writes the entry in a single statement, so repeated saves of the
// same date never trip the primary key.
func (r *SQLiteRepository) Upsert(ctx context.Context, e *models.Entry) error {
	query := `INSERT INTO diary (date, content, nonce)
			VALUES (?, ?, ?)
			ON CONFLICT(date) DO UPDATE SET content = excluded.content,
				nonce = excluded.nonce`

	if _, err := r.db.ExecContext(ctx, query, e.Date, e.Content, e.Nonce); err != nil {
		return fmt.Errorf("failed to upsert entry %d: %w", e.Date, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByDate(ctx context.Context, date int64) (*models.Entry, error) {
	query := `SELECT date, content, nonce FROM diary WHERE date = ?`

	e := &models.Entry{}
	err := r.db.QueryRowContext(ctx, query, date).Scan(&e.Date, &e.Content, &e.Nonce)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %d: %w", date, err)
	}
	return e, nil
}

func (r *SQLiteRepository) DeleteByDate(ctx context.Context, date int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM diary WHERE date = ?`, date); err != nil {
		return fmt.Errorf("failed to delete entry %d: %w", date, err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, content, nonce FROM diary ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []*models.Entry
	for rows.Next() {
		e := &models.Entry{}
		if err := rows.Scan(&e.Date, &e.Content, &e.Nonce); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entry rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM diary`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

package entries

import (
	"context"

	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// Repository describes persistence of sealed diary rows keyed by date.
type Repository interface {
	// Upsert inserts the entry, or replaces content and nonce when the date
	// already exists.
	Upsert(ctx context.Context, entry *models.Entry) error

	// GetByDate returns the row for date or common.ErrorNotFound.
	GetByDate(ctx context.Context, date int64) (*models.Entry, error)

	// DeleteByDate removes the row for date. Deleting an absent date is not
	// an error.
	DeleteByDate(ctx context.Context, date int64) error

	// GetAll returns every row, most recent date first.
	GetAll(ctx context.Context) ([]*models.Entry, error)

	// Count returns the number of stored rows.
	Count(ctx context.Context) (int, error)
}

package diary

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/cryptox"
	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// sealed is the JSON payload encrypted into the content column.
type sealed struct {
	Content string `json:"content"`
}

// Search returns the dates whose decimal form or content contains query,
// ignoring case, most recent first. An empty query matches every entry.
func (s *Store) Search(ctx context.Context, query string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.acquire()
	if err != nil {
		return nil, err
	}
	return s.search(ctx, u, query)
}

func (s *Store) search(ctx context.Context, u *unlocked, query string) ([]int64, error) {
	rows, err := u.entries.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageReadFailed, err)
	}

	needle := strings.ToLower(query)
	dates := make([]int64, 0, len(rows))

	for _, row := range rows {
		if strings.Contains(strconv.FormatInt(row.Date, 10), needle) {
			dates = append(dates, row.Date)
			continue
		}

		content, err := u.unseal(row)
		if err != nil {
			return nil, err
		}
		if strings.Contains(strings.ToLower(content), needle) {
			dates = append(dates, row.Date)
		}
	}

	return dates, nil
}

// GetContent returns the content stored for date.
func (s *Store) GetContent(ctx context.Context, date int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.acquire()
	if err != nil {
		return "", err
	}

	row, err := u.entries.GetByDate(ctx, date)
	if errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("%w: %d", ErrEntryNotFound, date)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorageReadFailed, err)
	}

	return u.unseal(row)
}

// SaveContent creates the entry for date or replaces its content.
func (s *Store) SaveContent(ctx context.Context, date int64, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.acquire()
	if err != nil {
		return err
	}

	ciphertext, nonce, err := cryptox.EncryptEntry(sealed{Content: content}, u.key)
	if err != nil {
		return fmt.Errorf("%w: encrypt: %w", ErrStorageWriteFailed, err)
	}

	err = u.entries.Upsert(ctx, &models.Entry{Date: date, Content: ciphertext, Nonce: nonce})
	if err != nil {
		s.logger.Error(ctx, "save failed", "date", date, "error", err)
		return fmt.Errorf("%w: %w", ErrStorageWriteFailed, err)
	}

	s.logger.Debug(ctx, "entry saved", "date", date)
	return nil
}

// DeleteContent removes the entry for date. Deleting a date that has no
// entry succeeds.
func (s *Store) DeleteContent(ctx context.Context, date int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.acquire()
	if err != nil {
		return err
	}

	if err := u.entries.DeleteByDate(ctx, date); err != nil {
		s.logger.Error(ctx, "delete failed", "date", date, "error", err)
		return fmt.Errorf("%w: %w", ErrStorageWriteFailed, err)
	}

	s.logger.Debug(ctx, "entry deleted", "date", date)
	return nil
}

// unseal decrypts a stored row. A row that does not open with the session
// key is corrupt, since the key was verified on unlock.
func (u *unlocked) unseal(row *models.Entry) (string, error) {
	var v sealed
	if err := cryptox.DecryptEntry(row.Content, row.Nonce, u.key, &v); err != nil {
		return "", fmt.Errorf("%w: entry %d: %w", ErrStorageReadFailed, row.Date, err)
	}
	return v.Content, nil
}

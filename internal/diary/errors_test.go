package diary

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophdiary/internal/cryptox"
	"github.com/dmitrijs2005/gophdiary/internal/repositories/entries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockedStore returns a store with an unlocked session over sqlmock.
func newMockedStore(t *testing.T) (*Store, sqlmock.Sqlmock, []byte) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	key := bytes.Repeat([]byte{3}, cryptox.KeySize)
	s := NewStore("mock.db")
	s.sess = &unlocked{
		db:      db,
		key:     append([]byte(nil), key...),
		entries: entries.NewSQLiteRepository(db),
	}
	return s, mock, key
}

var (
	qSelectAll = regexp.QuoteMeta(`SELECT date, content, nonce FROM diary ORDER BY date DESC`)
	qSelectOne = regexp.QuoteMeta(`SELECT date, content, nonce FROM diary WHERE date = ?`)
	qUpsert    = `INSERT INTO diary`
	qDelete    = regexp.QuoteMeta(`DELETE FROM diary WHERE date = ?`)
)

func TestSaveContent_WriteFailure(t *testing.T) {
	s, mock, _ := newMockedStore(t)

	mock.ExpectExec(qUpsert).
		WithArgs(int64(20240101), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("disk I/O error"))

	err := s.SaveContent(context.Background(), 20240101, "x")
	require.ErrorIs(t, err, ErrStorageWriteFailed)
	assert.Contains(t, err.Error(), "disk I/O error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteContent_WriteFailure(t *testing.T) {
	s, mock, _ := newMockedStore(t)

	mock.ExpectExec(qDelete).
		WithArgs(int64(20240101)).
		WillReturnError(errors.New("database is locked"))

	err := s.DeleteContent(context.Background(), 20240101)
	require.ErrorIs(t, err, ErrStorageWriteFailed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteContent_NoRowsIsSuccess(t *testing.T) {
	s, mock, _ := newMockedStore(t)

	mock.ExpectExec(qDelete).
		WithArgs(int64(20240101)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.DeleteContent(context.Background(), 20240101))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetContent_ErrorMapping(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		s, mock, _ := newMockedStore(t)
		mock.ExpectQuery(qSelectOne).
			WithArgs(int64(20240101)).
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetContent(context.Background(), 20240101)
		require.ErrorIs(t, err, ErrEntryNotFound)
		assert.NotErrorIs(t, err, ErrStorageReadFailed)
	})

	t.Run("read failure", func(t *testing.T) {
		s, mock, _ := newMockedStore(t)
		mock.ExpectQuery(qSelectOne).
			WithArgs(int64(20240101)).
			WillReturnError(errors.New("disk I/O error"))

		_, err := s.GetContent(context.Background(), 20240101)
		require.ErrorIs(t, err, ErrStorageReadFailed)
	})

	t.Run("corrupt row", func(t *testing.T) {
		s, mock, _ := newMockedStore(t)
		rows := sqlmock.NewRows([]string{"date", "content", "nonce"}).
			AddRow(int64(20240101), []byte("not ciphertext"), make([]byte, cryptox.NonceSize))
		mock.ExpectQuery(qSelectOne).WithArgs(int64(20240101)).WillReturnRows(rows)

		_, err := s.GetContent(context.Background(), 20240101)
		require.ErrorIs(t, err, ErrStorageReadFailed)
	})

	t.Run("decrypts stored row", func(t *testing.T) {
		s, mock, key := newMockedStore(t)
		ct, nonce, err := cryptox.EncryptEntry(sealed{Content: "from mock"}, key)
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"date", "content", "nonce"}).
			AddRow(int64(20240101), ct, nonce)
		mock.ExpectQuery(qSelectOne).WithArgs(int64(20240101)).WillReturnRows(rows)

		got, err := s.GetContent(context.Background(), 20240101)
		require.NoError(t, err)
		assert.Equal(t, "from mock", got)
	})
}

func TestSearch_ErrorMapping(t *testing.T) {
	t.Run("query failure", func(t *testing.T) {
		s, mock, _ := newMockedStore(t)
		mock.ExpectQuery(qSelectAll).WillReturnError(errors.New("disk I/O error"))

		_, err := s.Search(context.Background(), "")
		require.ErrorIs(t, err, ErrStorageReadFailed)
	})

	t.Run("date match skips decryption", func(t *testing.T) {
		s, mock, _ := newMockedStore(t)
		rows := sqlmock.NewRows([]string{"date", "content", "nonce"}).
			AddRow(int64(20240115), []byte("garbage"), []byte("bad"))
		mock.ExpectQuery(qSelectAll).WillReturnRows(rows)

		dates, err := s.Search(context.Background(), "0115")
		require.NoError(t, err)
		assert.Equal(t, []int64{20240115}, dates)
	})

	t.Run("content match on corrupt row", func(t *testing.T) {
		s, mock, _ := newMockedStore(t)
		rows := sqlmock.NewRows([]string{"date", "content", "nonce"}).
			AddRow(int64(20240115), []byte("garbage"), []byte("bad"))
		mock.ExpectQuery(qSelectAll).WillReturnRows(rows)

		_, err := s.Search(context.Background(), "walk")
		require.ErrorIs(t, err, ErrStorageReadFailed)
	})
}

func TestUnlock_OpenFailure(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string) (*sql.DB, error) {
		return nil, errors.New("driver exploded")
	}

	s := NewStore(filepath.Join(t.TempDir(), "diary.db"))
	_, err := s.Unlock(context.Background(), []byte("secret"))
	require.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, Locked, s.State())

	// the file lock was given back
	openDB = orig
	_, err = s.Unlock(context.Background(), []byte("secret"))
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestUnlock_SchemaReadFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string) (*sql.DB, error) { return db, nil }

	mock.ExpectPing()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM metadata WHERE key = ?`)).
		WithArgs("salt").
		WillReturnError(errors.New("file is not a database"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM sqlite_master`)).
		WillReturnError(errors.New("file is not a database"))
	mock.ExpectClose()

	s := NewStore(filepath.Join(t.TempDir(), "diary.db"))
	_, err = s.Unlock(context.Background(), []byte("secret"))
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Equal(t, Locked, s.State())
	require.NoError(t, mock.ExpectationsWereMet())
}

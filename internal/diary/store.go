package diary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/repositories/entries"
	"github.com/gofrs/flock"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// openDB is a test seam for sql.Open.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("sqlite", dsn)
}

// Store is the diary session: zero or one unlocked connection to the file
// at a fixed path. The zero value is not usable; use NewStore.
type Store struct {
	mu   sync.Mutex
	sess session

	path        string
	busyTimeout time.Duration
	logger      logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithBusyTimeout sets how long SQLite waits on a lock held by another
// connection before failing. Zero keeps the driver default.
func WithBusyTimeout(d time.Duration) Option {
	return func(s *Store) { s.busyTimeout = d }
}

// NewStore returns a Locked store for the database file at path. Nothing
// is opened until Unlock.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		sess:   locked{},
		path:   path,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("path", path)
	return s
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// State reports whether the store currently holds an unlocked connection.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.state()
}

// Unlock opens the database file with password and returns every stored
// date, most recent first.
//
// Any connection held from an earlier Unlock is closed first. When the
// password does not match the file, ErrAuthenticationFailed is returned and
// the store stays Locked. A file that does not exist yet, or exists but is
// empty, is initialised with password as its key.
func (s *Store) Unlock(ctx context.Context, password []byte) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.release(); err != nil {
		s.logger.Warn(ctx, "closing previous connection", "error", err)
	}

	u, err := s.open(ctx)
	if err != nil {
		s.logger.Error(ctx, "cannot open database", "error", err)
		return nil, err
	}

	salt := s.applyKey(ctx, u, password)

	if err := s.verify(ctx, u, salt); err != nil {
		if cerr := u.close(); cerr != nil {
			s.logger.Warn(ctx, "closing rejected connection", "error", cerr)
		}
		s.logger.Warn(ctx, "unlock rejected", "error", err)
		return nil, err
	}

	s.sess = u

	dates, err := s.search(ctx, u, "")
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "diary unlocked", "entries", len(dates))
	return dates, nil
}

// Close drops the connection, if any, and returns the store to Locked.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.release()
}

// release must be called with mu held.
func (s *Store) release() error {
	u, ok := s.sess.(*unlocked)
	s.sess = locked{}
	if !ok {
		return nil
	}
	return u.close()
}

// acquire must be called with mu held.
func (s *Store) acquire() (*unlocked, error) {
	switch sess := s.sess.(type) {
	case *unlocked:
		return sess, nil
	default:
		return nil, ErrNotUnlocked
	}
}

// open takes the advisory file lock and connects to the file. It does not
// read any data, so it cannot tell a wrong password from a right one.
func (s *Store) open(ctx context.Context) (*unlocked, error) {
	lock := flock.New(s.path + ".lock")

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is in use by another process", ErrStorageUnavailable, s.path)
	}

	db, err := openDB(s.dsn())
	if err == nil {
		err = db.PingContext(ctx)
	}
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		_ = lock.Unlock()
		if isNotADatabase(err) {
			return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return &unlocked{
		db:      db,
		lock:    lock,
		entries: entries.NewSQLiteRepository(db),
	}, nil
}

// isNotADatabase reports whether err says the file exists but does not read
// as a database. The driver may touch the file while connecting, so a file
// that cannot be decrypted can fail here instead of in verify.
func isNotADatabase(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_NOTADB
}

func (s *Store) dsn() string {
	if s.busyTimeout <= 0 {
		return s.path
	}
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)", s.path, s.busyTimeout.Milliseconds())
}

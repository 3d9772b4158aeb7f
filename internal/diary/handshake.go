package diary

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/cryptox"
	"github.com/dmitrijs2005/gophdiary/internal/dbx"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/migrations"
	"github.com/dmitrijs2005/gophdiary/internal/repositories/metadata"
	"github.com/pressly/goose/v3"
)

// applyKey derives the master key for u from password and the salt stored
// in the file and returns the salt it used. It never fails: when the salt
// cannot be read a fresh one is generated, and verify decides whether that
// is a new file or a wrong password.
func (s *Store) applyKey(ctx context.Context, u *unlocked, password []byte) []byte {
	salt, err := metadata.NewSQLiteRepository(u.db).Get(ctx, metadata.KeySalt)
	if err != nil || len(salt) == 0 {
		salt = common.GenerateRandByteArray(cryptox.SaltSize)
	}

	u.key = cryptox.DeriveMasterKey(password, salt)
	return salt
}

// verify proves that u.key opens the file. The schema-introspection read is
// the first statement that touches file content; if it fails the file is
// not a readable diary for this key.
func (s *Store) verify(ctx context.Context, u *unlocked, salt []byte) error {
	var objects int
	if err := u.db.QueryRowContext(ctx, `SELECT count(*) FROM sqlite_master`).Scan(&objects); err != nil {
		return fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	if objects == 0 {
		return s.initialise(ctx, u, salt)
	}

	stored, err := metadata.NewSQLiteRepository(u.db).Get(ctx, metadata.KeyVerifier)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}

	if stored == nil {
		// Schema without key material: an initialisation that stopped after
		// the migrations. Finish it only if no entry could be lost.
		n, err := u.entries.Count(ctx)
		if err != nil || n > 0 {
			return fmt.Errorf("%w: %w", ErrAuthenticationFailed, common.ErrorNoVerifier)
		}
		return s.initialise(ctx, u, salt)
	}

	if subtle.ConstantTimeCompare(stored, cryptox.MakeVerifier(u.key)) == 0 {
		return ErrAuthenticationFailed
	}
	return nil
}

// initialise creates the schema and stores salt and verifier, making the
// current key the key of the file.
func (s *Store) initialise(ctx context.Context, u *unlocked, salt []byte) error {
	if err := runMigrations(ctx, u.db, s.logger); err != nil {
		return fmt.Errorf("%w: create schema: %w", ErrStorageWriteFailed, err)
	}

	err := dbx.WithTx(ctx, u.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeySalt, salt); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyVerifier, cryptox.MakeVerifier(u.key))
	})
	if err != nil {
		return fmt.Errorf("%w: store key material: %w", ErrStorageWriteFailed, err)
	}

	s.logger.Info(ctx, "initialised new diary")
	return nil
}

// gooseMu guards goose's package-level settings, shared by every Store in
// the process.
var gooseMu sync.Mutex

// runMigrations applies the embedded schema with goose.
func runMigrations(ctx context.Context, db *sql.DB, logger logging.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(gooseLogger{ctx: ctx, l: logger})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// gooseLogger routes goose output to the structured logger at debug level.
type gooseLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Debug(g.ctx, fmt.Sprintf(format, v...), "component", "goose")
}

// Fatalf only logs. goose returns the failure from UpContext as well, and
// the store reports it to the caller.
func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(g.ctx, fmt.Sprintf(format, v...), "component", "goose")
}

// Package entries provides the persistence layer for diary rows.
//
// # Overview
//
// The package defines a Repository interface over models.Entry and a
// SQLite-backed implementation (SQLiteRepository) that works on a
// dbx.DBTX, i.e. either *sql.DB or *sql.Tx.
//
// # Data Model
//
// The diary table has one row per date (INTEGER PRIMARY KEY, YYYYMMDD).
// Content is stored sealed together with its nonce; the repository never
// sees plaintext and does no filtering of its own. Listing is always
// ordered by date descending.
//
// Typical Usage
//
//	repo := entries.NewSQLiteRepository(db)
//	_ = repo.Upsert(ctx, &models.Entry{Date: 20240115, Content: ct, Nonce: nonce})
//	e, err := repo.GetByDate(ctx, 20240115)
//	all, _ := repo.GetAll(ctx)
//	_ = repo.DeleteByDate(ctx, 20240115)
package entries

// Package diary is the encrypted diary store: it owns the single database
// connection of the process and serves unlock, search, read, upsert and
// delete over entries keyed by a YYYYMMDD date.
//
// # Lifecycle
//
// A Store starts Locked. Unlock opens the file, applies the password and
// only then proves it by reading the file: applying a key never fails on
// its own, a wrong password is detected by the verification read. On
// success the new connection replaces any previous one; on failure the
// store is left Locked. Close drops the connection at process exit.
//
// # On-disk format
//
// One SQLite file with two tables. `diary` maps the date to the content
// sealed with AES-256-GCM under a master key derived from the password
// with argon2id. `metadata` holds the argon2 salt and a verifier of the
// master key. Nothing else is needed to unlock the file. A `<file>.lock`
// next to it keeps a second process out while the store is unlocked.
//
// # Concurrency
//
// Every exported method takes the store mutex for its whole duration, so
// at most one operation touches the connection at a time.
package diary

package diary

import (
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/repositories/entries"
	"github.com/gofrs/flock"
)

// State is the observable state of a Store.
type State int

const (
	Locked State = iota
	Unlocked
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// session is either locked{} or *unlocked. Operations switch on it instead
// of testing a nil connection.
type session interface {
	state() State
}

type locked struct{}

func (locked) state() State { return Locked }

// unlocked is a verified connection together with everything derived from
// the password.
type unlocked struct {
	db      *sql.DB
	key     []byte
	entries entries.Repository
	lock    *flock.Flock
}

func (*unlocked) state() State { return Unlocked }

// close releases the connection, the file lock and wipes the key.
func (u *unlocked) close() error {
	common.WipeByteArray(u.key)

	var errs []error
	if u.db != nil {
		errs = append(errs, u.db.Close())
	}
	if u.lock != nil {
		errs = append(errs, u.lock.Unlock())
	}
	return errors.Join(errs...)
}

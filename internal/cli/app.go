package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/config"
	"github.com/dmitrijs2005/gophdiary/internal/diary"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
)

// diaryStore is the part of *diary.Store the shell uses.
type diaryStore interface {
	Unlock(ctx context.Context, password []byte) ([]int64, error)
	Search(ctx context.Context, query string) ([]int64, error)
	GetContent(ctx context.Context, date int64) (string, error)
	SaveContent(ctx context.Context, date int64, content string) error
	DeleteContent(ctx context.Context, date int64) error
	State() diary.State
	Path() string
	Close() error
}

type App struct {
	config *config.Config
	logger logging.Logger
	store  diaryStore
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp builds the logger and the diary store described by c. The store
// stays locked until the user enters the password in Run.
func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stderr, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("error initializing logger: %w", err)
	}

	store := diary.NewStore(c.DatabasePath,
		diary.WithLogger(logger),
		diary.WithBusyTimeout(c.BusyTimeout),
	)

	return &App{
		config: c,
		logger: logger,
		store:  store,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		now:    time.Now,
	}, nil
}

// Run asks for the password, then serves commands until exit, end of
// input or cancellation of ctx. The database is closed on return.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintf(a.out, "Diary - %s (type 'help' for commands)\n", a.fileName())

	if err := a.Unlock(ctx); err != nil {
		reportError(err)
	}

	runREPL(ctx, a, a.status, a.reader)

	if err := a.store.Close(); err != nil {
		a.logger.Error(ctx, "closing database", "error", err)
		return err
	}
	return nil
}

func (a *App) fileName() string {
	return filepath.Base(a.store.Path())
}

func (a *App) status() string {
	return fmt.Sprintf("%s, %s", a.fileName(), a.store.State())
}

func (a *App) isUnlocked() bool {
	return a.store.State() == diary.Unlocked
}

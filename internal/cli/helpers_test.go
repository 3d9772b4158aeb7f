package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/config"
	"github.com/dmitrijs2005/gophdiary/internal/diary"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
)

// fakeStore is an in-memory diaryStore.
type fakeStore struct {
	path     string
	password string
	state    diary.State
	entries  map[int64]string

	seenPassword string
	lastPassword []byte
	closed       bool
	saveErr      error
}

func newFakeStore(entries map[int64]string) *fakeStore {
	if entries == nil {
		entries = map[int64]string{}
	}
	return &fakeStore{path: "/tmp/x/diary.db", password: "secret", entries: entries}
}

func (f *fakeStore) Unlock(_ context.Context, pw []byte) ([]int64, error) {
	f.seenPassword = string(pw)
	f.lastPassword = pw
	if string(pw) != f.password {
		f.state = diary.Locked
		return nil, diary.ErrAuthenticationFailed
	}
	f.state = diary.Unlocked
	return f.match(""), nil
}

func (f *fakeStore) Search(_ context.Context, q string) ([]int64, error) {
	if f.state != diary.Unlocked {
		return nil, diary.ErrNotUnlocked
	}
	return f.match(q), nil
}

func (f *fakeStore) match(q string) []int64 {
	q = strings.ToLower(q)
	out := []int64{}
	for d, c := range f.entries {
		if strings.Contains(strconv.FormatInt(d, 10), q) || strings.Contains(strings.ToLower(c), q) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

func (f *fakeStore) GetContent(_ context.Context, d int64) (string, error) {
	if f.state != diary.Unlocked {
		return "", diary.ErrNotUnlocked
	}
	c, ok := f.entries[d]
	if !ok {
		return "", fmt.Errorf("%w: %d", diary.ErrEntryNotFound, d)
	}
	return c, nil
}

func (f *fakeStore) SaveContent(_ context.Context, d int64, c string) error {
	if f.state != diary.Unlocked {
		return diary.ErrNotUnlocked
	}
	if f.saveErr != nil {
		return f.saveErr
	}
	f.entries[d] = c
	return nil
}

func (f *fakeStore) DeleteContent(_ context.Context, d int64) error {
	if f.state != diary.Unlocked {
		return diary.ErrNotUnlocked
	}
	delete(f.entries, d)
	return nil
}

func (f *fakeStore) State() diary.State { return f.state }
func (f *fakeStore) Path() string       { return f.path }
func (f *fakeStore) Close() error {
	f.closed = true
	f.state = diary.Locked
	return nil
}

var testNow = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

// newTestApp wires an App to store, reading input and writing to the
// returned buffer. Passwords are read from input as plain lines.
func newTestApp(t *testing.T, store diaryStore, input string) (*App, *bytes.Buffer) {
	t.Helper()

	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	var out bytes.Buffer
	return &App{
		config: &config.Config{},
		logger: logging.Discard(),
		store:  store,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    &out,
		now:    func() time.Time { return testNow },
	}, &out
}

// capturePrints replaces the REPL output seams and returns what was printed.
func capturePrints(t *testing.T) *[]string {
	t.Helper()

	var lines []string
	origPrintln, origPrint := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	printFn = func(a ...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn, printFn = origPrintln, origPrint })

	return &lines
}

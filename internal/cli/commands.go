package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/diary"
)

// Indirections over the interactive input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Unlock prompts for the password and opens the diary with it. The
// password is wiped before returning.
func (a *App) Unlock(ctx context.Context) error {
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	dates, err := a.store.Unlock(ctx, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Unlocked %s: %d entries\n", a.fileName(), len(dates))
	a.printDates(dates, "No entries yet, type 'write' to start one")
	return nil
}

func (a *App) List(ctx context.Context) error {
	dates, err := a.store.Search(ctx, "")
	if err != nil {
		return err
	}
	a.printDates(dates, "No entries")
	return nil
}

// Search lists the dates matching query, asking for it when empty.
func (a *App) Search(ctx context.Context, query string) error {
	if !a.isUnlocked() {
		return diary.ErrNotUnlocked
	}

	if query == "" {
		var err error
		if query, err = getSimpleText(a.reader, "Search for", a.out); err != nil {
			return err
		}
	}

	dates, err := a.store.Search(ctx, query)
	if err != nil {
		return err
	}
	a.printDates(dates, "No matches")
	return nil
}

func (a *App) Show(ctx context.Context, arg string) error {
	date, err := diary.ParseDate(arg, a.now())
	if err != nil {
		return err
	}

	content, err := a.store.GetContent(ctx, date)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "--- %s ---\n%s\n", diary.FormatDate(date), content)
	return nil
}

// Write replaces the text of the entry for arg, creating it if needed.
// Empty input leaves the entry as it was.
func (a *App) Write(ctx context.Context, arg string) error {
	date, err := diary.ParseDate(arg, a.now())
	if err != nil {
		return err
	}

	current, err := a.store.GetContent(ctx, date)
	switch {
	case errors.Is(err, diary.ErrEntryNotFound):
		// new entry
	case err != nil:
		return err
	default:
		fmt.Fprintf(a.out, "Current text:\n%s\n", current)
	}

	text, err := getMultiline(a.reader, fmt.Sprintf("Text for %s", diary.FormatDate(date)), a.out)
	if err != nil {
		return err
	}
	if text == "" {
		fmt.Fprintln(a.out, "Nothing written, entry unchanged")
		return nil
	}

	if err := a.store.SaveContent(ctx, date, text); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s\n", diary.FormatDate(date))
	return nil
}

// Delete removes the entry for arg after the user confirms.
func (a *App) Delete(ctx context.Context, arg string) error {
	date, err := diary.ParseDate(arg, a.now())
	if err != nil {
		return err
	}
	if !a.isUnlocked() {
		return diary.ErrNotUnlocked
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Delete entry %s?", diary.FormatDate(date)), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.store.DeleteContent(ctx, date); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", diary.FormatDate(date))
	return nil
}

func (a *App) printDates(dates []int64, empty string) {
	if len(dates) == 0 {
		fmt.Fprintln(a.out, empty)
		return
	}
	for _, d := range dates {
		fmt.Fprintln(a.out, diary.FormatDate(d))
	}
}

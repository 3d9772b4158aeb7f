package diary

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned by ParseDate.
var ErrInvalidDate = errors.New("invalid date")

// DateKey encodes the calendar day of t as YYYYMMDD.
func DateKey(t time.Time) int64 {
	y, m, d := t.Date()
	return int64(y)*10000 + int64(m)*100 + int64(d)
}

// ParseDate turns user input into a date key. It accepts YYYYMMDD,
// YYYY-MM-DD and the words today and yesterday (relative to now); empty
// input means today.
func ParseDate(s string, now time.Time) (int64, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	switch s {
	case "", "today":
		return DateKey(now), nil
	case "yesterday":
		return DateKey(now.AddDate(0, 0, -1)), nil
	}

	for _, layout := range []string{"20060102", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateKey(t), nil
		}
	}

	return 0, fmt.Errorf("%w: %q (want YYYYMMDD or YYYY-MM-DD)", ErrInvalidDate, s)
}

// FormatDate renders a date key as YYYY-MM-DD. Keys that are not a valid
// calendar day are printed as plain numbers.
func FormatDate(date int64) string {
	t, err := time.Parse("20060102", strconv.FormatInt(date, 10))
	if err != nil {
		return strconv.FormatInt(date, 10)
	}
	return t.Format("2006-01-02")
}

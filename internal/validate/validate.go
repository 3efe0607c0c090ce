// Package validate holds the pure field checks the dialog flows apply before
// accepting an input. Every function is side-effect free; callers translate
// the sentinel errors into re-prompts.
package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const MaxAmount = 1_000_000_000

// MaxRangeDays bounds a custom report window.
const MaxRangeDays = 365

var (
	ErrTooShort      = errors.New("text too short")
	ErrBadPhone      = errors.New("phone must be 10 digits starting with 0")
	ErrNotANumber    = errors.New("amount is not a number")
	ErrNotPositive   = errors.New("amount must be positive")
	ErrTooLarge      = errors.New("amount exceeds limit")
	ErrBadRangeFmt   = errors.New("range must be yyyy-mm-dd to yyyy-mm-dd")
	ErrStartAfterEnd = errors.New("range start is after end")
	ErrRangeTooLong  = errors.New("range longer than 365 days")
)

var phoneRe = regexp.MustCompile(`^0\d{9}$`)

// Name accepts a trimmed customer name of at least 2 characters.
func Name(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len([]rune(s)) < 2 {
		return "", ErrTooShort
	}
	return s, nil
}

// Phone accepts exactly 10 ASCII digits with a leading zero.
func Phone(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !phoneRe.MatchString(s) {
		return "", ErrBadPhone
	}
	return s, nil
}

// Service has the same rule as Name.
func Service(s string) (string, error) {
	return Name(s)
}

// Category has the same rule as Name.
func Category(s string) (string, error) {
	return Name(s)
}

func stripSeparators(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	return strings.ReplaceAll(s, ".", "")
}

// SaleAmount parses a whole-đồng amount after stripping , and . thousands
// separators, then enforces 0 < amount <= MaxAmount.
func SaleAmount(s string) (int64, error) {
	n, err := strconv.ParseInt(stripSeparators(s), 10, 64)
	if err != nil {
		return 0, ErrNotANumber
	}
	if n <= 0 {
		return 0, ErrNotPositive
	}
	if n > MaxAmount {
		return 0, ErrTooLarge
	}
	return n, nil
}

// ExpenseAmount parses an expense amount with the same separator stripping
// and bounds as SaleAmount, as a decimal.
func ExpenseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(stripSeparators(s))
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}
	if d.Sign() <= 0 {
		return decimal.Zero, ErrNotPositive
	}
	if d.GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return decimal.Zero, ErrTooLarge
	}
	return d, nil
}

// Note canonicalizes a bill note: "-", "skip" and "bỏ qua" (any case) mean
// no note and map to the empty string; anything else is kept trimmed.
func Note(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "-", "skip", "bỏ qua":
		return ""
	}
	return s
}

// ExpenseNote is the expense-flow variant: only the literal "-" and "skip"
// are treated as no note.
func ExpenseNote(s string) string {
	s = strings.TrimSpace(s)
	if s == "-" || s == "skip" {
		return ""
	}
	return s
}

// DateRange parses "yyyy-mm-dd to yyyy-mm-dd" (separator case-insensitive)
// and enforces start <= end and a span of at most MaxRangeDays.
func DateRange(s string) (start, end time.Time, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), " to ")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, ErrBadRangeFmt
	}
	start, err = time.Parse("2006-01-02", strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadRangeFmt
	}
	end, err = time.Parse("2006-01-02", strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadRangeFmt
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, ErrStartAfterEnd
	}
	if end.Sub(start) > MaxRangeDays*24*time.Hour {
		return time.Time{}, time.Time{}, ErrRangeTooLong
	}
	return start, end, nil
}

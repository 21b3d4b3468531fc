package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/people360/internal/domain"
)

// DateLayout formato de fechas sin hora en la API.
const DateLayout = "2006-01-02"

// ParseDate interpreta YYYY-MM-DD en UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q no tiene formato YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// ParseOptionalDate "" → nil.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate YYYY-MM-DD; fecha cero → "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatDatePtr nil → "".
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

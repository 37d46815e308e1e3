// Package legacydate переводит даты между форматом файлов выгрузки (YYYYMMDD)
// и форматом API (YYYY-MM-DD).
package legacydate

import (
	"fmt"
	"time"
)

const (
	// LegacyLayout задаёт формат даты в файле фиксированной ширины.
	LegacyLayout = "20060102"
	// APILayout задаёт формат даты во внешнем API.
	APILayout = "2006-01-02"
)

// Parse разбирает дату в формате YYYYMMDD. Результат всегда в UTC, полночь.
func Parse(s string) (time.Time, error) {
	const op = "legacydate.Parse"
	if len(s) != len(LegacyLayout) {
		return time.Time{}, fmt.Errorf("%s: expected %d digits, got %q", op, len(LegacyLayout), s)
	}
	t, err := time.Parse(LegacyLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// ParseAPI разбирает дату в формате YYYY-MM-DD.
func ParseAPI(s string) (time.Time, error) {
	const op = "legacydate.ParseAPI"
	t, err := time.Parse(APILayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// FormatAPI печатает дату в формате YYYY-MM-DD.
func FormatAPI(t time.Time) string {
	return t.Format(APILayout)
}

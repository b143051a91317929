package story

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFallback(t *testing.T) {
	today := time.Date(2024, 8, 15, 10, 0, 0, 0, time.UTC)
	cfg := Fallback(today)

	assert.Equal(t, "2024-06-01", cfg.StartDate)
	assert.Equal(t, "2024-08-15", cfg.EndDate)
	assert.NotEmpty(t, cfg.Slides)
	assert.Equal(t, DefaultTheme, cfg.Theme)
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"same day", "2024-06-01", "2024-06-01", 0},
		{"one day", "2024-06-01", "2024-06-02", 1},
		{"summer window", "2024-06-01", "2024-08-31", 91},
		{"reversed arguments", "2024-08-31", "2024-06-01", 91},
		{"bad input", "junk", "2024-06-01", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.start, tt.end))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "June 10, 2024", FormatDate("2024-06-10", nil))
	assert.Equal(t, "not-a-date", FormatDate("not-a-date", nil))
}

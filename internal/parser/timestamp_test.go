package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			"epoch seconds",
			`1719878400`,
			time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			"fractional epoch seconds",
			`1719878400.5`,
			time.Date(2024, 7, 2, 0, 0, 0, 500000000, time.UTC),
		},
		{
			"rfc3339",
			`"2024-06-15T12:30:00Z"`,
			time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC),
		},
		{
			"rfc3339 with offset normalizes to UTC",
			`"2024-06-15T07:30:00-05:00"`,
			time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC),
		},
		{
			"date only",
			`"2024-06-15"`,
			time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{"zero epoch", `0`, time.Time{}},
		{"garbage string", `"next tuesday"`, time.Time{}},
		{"null", `null`, time.Time{}},
		{"object", `{"sec": 1}`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTime(gjson.Parse(tt.raw)))
		})
	}
}

func TestFirstTime(t *testing.T) {
	create := gjson.Parse(`"garbage"`)
	update := gjson.Parse(`1719878400`)
	got := firstTime(create, update)
	assert.Equal(t, time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC), got)

	assert.True(t, firstTime(gjson.Parse(`null`)).IsZero())
}

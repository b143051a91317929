package parser

import (
	"math"
	"time"

	"github.com/tidwall/gjson"
)

// timeLayouts are tried in order when a timestamp arrives as a
// string rather than epoch seconds.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime converts an export timestamp value to UTC. Exports
// carry either epoch seconds (possibly fractional) or a date
// string. Unparseable or absent values yield the zero time.
func ParseTime(v gjson.Result) time.Time {
	switch v.Type {
	case gjson.Number:
		return epochSeconds(v.Num)
	case gjson.String:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v.Str); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}

func epochSeconds(sec float64) time.Time {
	if sec == 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		return time.Time{}
	}
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC()
}

// firstTime returns the first non-zero time among candidates.
func firstTime(candidates ...gjson.Result) time.Time {
	for _, c := range candidates {
		if t := ParseTime(c); !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}

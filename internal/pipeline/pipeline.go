// Package pipeline runs the full wrapped computation: raw
// export bytes in, metrics and slide descriptors out. It is the
// error boundary between the two failure classes: invalid JSON
// is a hard, user-displayable error; every other degeneracy
// (unrecognized shape, no in-window data) resolves to the
// zero-valued metrics shape.
package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/wrapview/wrapview/internal/parser"
	"github.com/wrapview/wrapview/internal/slides"
	"github.com/wrapview/wrapview/internal/summer"
)

// ErrInvalidJSON is the hard parse failure: the input is not a
// syntactically valid JSON document.
var ErrInvalidJSON = errors.New("input is not valid JSON")

// Options forwards aggregator knobs through the pipeline. Now
// must be the caller's current time; it feeds only the
// empty-input fallback year.
type Options struct {
	Year    int
	Aliases []string
	Now     time.Time
}

// Result is the full pipeline output for one export document.
type Result struct {
	Metrics summer.Metrics `json:"metrics"`
	Slides  []slides.Slide `json:"slides"`
	Threads int            `json:"threads"`
}

// Run normalizes raw export bytes and computes the wrapped
// metrics and slides. The only error it returns wraps
// ErrInvalidJSON; recognized-but-empty input yields a Result
// with zero threads and empty-state metrics.
func Run(raw []byte, opts Options) (Result, error) {
	doc := string(stripBOM(raw))
	if !gjson.Valid(doc) {
		return Result{}, fmt.Errorf("normalize: %w", ErrInvalidJSON)
	}

	export := parser.Normalize(gjson.Parse(doc))
	metrics := summer.Compute(export.Threads, summer.Options{
		Year:    opts.Year,
		Aliases: opts.Aliases,
		Now:     opts.Now,
	})

	return Result{
		Metrics: metrics,
		Slides:  slides.Build(metrics),
		Threads: len(export.Threads),
	}, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func stripBOM(raw []byte) []byte {
	return bytes.TrimPrefix(raw, utf8BOM)
}

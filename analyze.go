package linecov

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/bits"
	"strconv"

	"github.com/farcloser/linecov/internal/jacoco"
	"github.com/farcloser/linecov/internal/types"
)

/*
Usage:

result, err := linecov.Analyze(reader)
if err != nil {
    return err
}

if result.HasData() {
    fmt.Println(result)
}

*/

var (
	// ErrReadReport is returned when the report cannot be opened or read.
	ErrReadReport = errors.New("cannot read report")
	// ErrMalformedReport is returned when the report is not well-formed markup.
	ErrMalformedReport = errors.New("malformed report")
	// ErrInvalidCounter is returned when the selected line counter has missing or non-numeric values.
	ErrInvalidCounter = errors.New("invalid line counter")
)

// Result is the report-level line coverage.
type Result struct {
	// Counter is the selected line counter, nil when the report has none.
	Counter *types.Counter

	// Matches is the number of line counters seen in the report.
	Matches int

	// Offset is the input byte offset just past the selected counter's start tag.
	Offset int64

	Total   uint64
	Percent uint64
}

// HasData reports whether the result carries a meaningful percentage.
func (r *Result) HasData() bool {
	return r.Counter != nil && r.Total > 0
}

func (r *Result) String() string {
	if !r.HasData() {
		return ""
	}

	return fmt.Sprintf("%d%%: %d/%d lines", r.Percent, r.Counter.Covered, r.Total)
}

// Analyze reads a coverage report and selects the last line counter in document order.
// Nested scopes each carry their own counter and the report-level total comes last, so the
// last match is authoritative. Counters are never summed.
func Analyze(reader io.Reader) (*Result, error) {
	slog.Debug("linecov.Analyze", "stage", "start")

	match, err := jacoco.Scan(reader, types.KindLine)
	if err != nil {
		if errors.Is(err, jacoco.ErrSyntax) || errors.Is(err, jacoco.ErrNoRoot) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedReport, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrReadReport, err)
	}

	result := &Result{}

	if match == nil {
		slog.Debug("linecov.Analyze", "stage", "no line counter")

		return result, nil
	}

	result.Matches = match.Count
	result.Offset = match.Offset

	missed, err := parseCount("missed", match.Missed, match.HasMissed)
	if err != nil {
		return nil, err
	}

	covered, err := parseCount("covered", match.Covered, match.HasCovered)
	if err != nil {
		return nil, err
	}

	total, carry := bits.Add64(missed, covered, 0)
	if carry != 0 {
		return nil, fmt.Errorf("%w: missed %d + covered %d overflows", ErrInvalidCounter, missed, covered)
	}

	result.Counter = &types.Counter{Kind: types.KindLine, Missed: missed, Covered: covered}
	result.Total = total

	if total == 0 {
		slog.Debug("linecov.Analyze", "stage", "zero total")

		return result, nil
	}

	result.Percent = floorPercent(covered, total)

	slog.Debug("linecov.Analyze", "stage", "selected", "matches", result.Matches, "percent", result.Percent)

	return result, nil
}

func parseCount(name, raw string, present bool) (uint64, error) {
	if !present {
		return 0, fmt.Errorf("%w: missing %q attribute", ErrInvalidCounter, name)
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a non-negative integer", ErrInvalidCounter, name, raw)
	}

	return value, nil
}

// floorPercent returns floor(covered*100/total) for covered <= total != 0.
// The 128-bit product keeps the quotient exact for any uint64 input.
func floorPercent(covered, total uint64) uint64 {
	hi, lo := bits.Mul64(covered, 100) //nolint:mnd // percent
	quo, _ := bits.Div64(hi, lo, total)

	return quo
}

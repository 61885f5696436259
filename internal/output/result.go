// Package output renders analysis results.
package output

import (
	"fmt"
	"io"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/linecov"
)

const (
	// FormatText prints the bare summary line.
	FormatText = "text"

	noData = "no line coverage data"
)

// Text writes the summary line, or nothing when the result has no data.
func Text(writer io.Writer, result *linecov.Result) error {
	if !result.HasData() {
		return nil
	}

	_, err := fmt.Fprintln(writer, result.String())

	return err
}

// Print writes the result through the named primordium formatter (console, json, markdown).
// Unlike Text, structured formats always emit a record so that consumers can tell "no data" apart
// from "no output".
func Print(writer io.Writer, formatName, object string, result *linecov.Result, debug bool) error {
	if formatName == FormatText {
		return Text(writer, result)
	}

	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	data := &format.Data{
		Object: object,
		Meta:   ResultToMap(result, debug),
	}

	return formatter.PrintAll([]*format.Data{data}, writer)
}

// ResultToMap converts a result into the map structure used for structured output.
func ResultToMap(result *linecov.Result, debug bool) map[string]any {
	meta := map[string]any{
		"summary": noData,
	}

	if counter := result.Counter; counter != nil {
		meta["missed"] = counter.Missed
		meta["covered"] = counter.Covered
		meta["total"] = result.Total
	}

	if result.HasData() {
		meta["summary"] = result.String()
		meta["percent"] = result.Percent
	}

	if debug {
		meta["line_counters"] = result.Matches

		if result.Counter != nil {
			meta["offset"] = result.Offset
		}
	}

	return meta
}

// Validate checks that formatName names a supported format.
func Validate(formatName string) error {
	if formatName == FormatText {
		return nil
	}

	_, err := format.GetFormatter(formatName)

	return err
}

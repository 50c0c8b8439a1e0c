// Package timecode converts between human-readable timestamp strings and
// seconds. Parsing is deliberately lenient: user-typed timestamps must never
// fail outright, so malformed input degrades to zero instead of erroring.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse reads `H`, `M:S`, or `H:M:S`, each optionally followed by `.mmm`
// fractional digits, and returns the value in seconds. Fields that do not
// parse as numbers are dropped before the remaining count selects the unit
// interpretation; empty or fully invalid input yields 0.
func Parse(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	parts := strings.Split(text, ".")
	seconds := parseUnitFields(parts[0])
	if len(parts) > 1 {
		seconds += parseMillis(parts[1])
	}
	return seconds
}

func parseUnitFields(whole string) float64 {
	fields := make([]float64, 0, 3)
	for _, field := range strings.Split(whole, ":") {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		fields = append(fields, value)
	}

	switch len(fields) {
	case 1:
		return fields[0]
	case 2:
		return fields[0]*60 + fields[1]
	case 3:
		return fields[0]*3600 + fields[1]*60 + fields[2]
	default:
		return 0
	}
}

func parseMillis(digits string) float64 {
	digits = strings.TrimSpace(digits)
	if digits == "" {
		return 0
	}
	for len(digits) < 3 {
		digits += "0"
	}

	value, err := strconv.ParseFloat(digits, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value / 1000
}

// Format renders seconds as zero-padded `HH:MM:SS.mmm`. Negative and
// non-finite input clamps to zero; the fractional remainder is truncated to
// whole milliseconds, not rounded. The hour field widens past two digits
// above 99 hours so Parse(Format(x)) stays exact there too.
func Format(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}

	// The 1e-6 ms bias absorbs float representation error on
	// millisecond-quantized values without disturbing genuine truncation.
	total := int64(seconds*1000 + 1e-6)
	hours := total / 3_600_000
	minutes := (total % 3_600_000) / 60_000
	secs := (total % 60_000) / 1000
	millis := total % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}

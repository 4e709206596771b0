// Package format turns raw game values into display strings.
package format

import (
	"math"
	"strconv"
	"strings"
)

// HMS renders a duration in milliseconds as e.g. "1h1m1s", dropping zero
// units. Fractions of a second are truncated.
func HMS(ms int64) string {
	seconds := ms / 1000
	hours := seconds / 3600
	minutes := seconds % 3600 / 60
	seconds %= 60

	var b strings.Builder
	if hours > 0 {
		b.WriteString(strconv.FormatInt(hours, 10) + "h")
	}
	if minutes > 0 {
		b.WriteString(strconv.FormatInt(minutes, 10) + "m")
	}
	if seconds > 0 {
		b.WriteString(strconv.FormatInt(seconds, 10) + "s")
	}
	return b.String()
}

// MsToSeconds converts milliseconds to seconds with one decimal place.
func MsToSeconds(ms int64) float64 {
	return math.Floor(float64(ms)/100+0.5) / 10
}

// ScalarToPercent renders a multiplier as a signed change, 1.25 as "+25%".
func ScalarToPercent(scalar float64) string {
	percent := int64(math.Floor((scalar-1)*100 + 0.5))
	if percent < 0 {
		return "-" + strconv.FormatInt(-percent, 10) + "%"
	}
	return "+" + strconv.FormatInt(percent, 10) + "%"
}

// List joins entries with ", ".
func List[S ~string](entries []S) S {
	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(entry))
	}
	return S(b.String())
}

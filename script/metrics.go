// Package script holds the script value helpers and the read-only
// catalogs (voice profiles, script ideas) shown in the booth UI.
package script

import (
	"fmt"
	"strings"
	"time"
)

// WordCount returns the number of whitespace-delimited words in s.
// An empty or all-whitespace script counts as zero words.
func WordCount(s string) int {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	return len(strings.Fields(trimmed))
}

// EstimateSeconds estimates the spoken duration of a script in seconds,
// assuming roughly one word per second at rate 1.0. The result is
// formatted to one decimal place. A zero rate yields "0.0".
func EstimateSeconds(words int, rate float64) string {
	if rate == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(words)/rate)
}

// FormatTakeDuration formats a non-negative duration as M:SS with the
// seconds zero-padded to two digits. Sub-second precision is rounded to
// the nearest whole second.
func FormatTakeDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

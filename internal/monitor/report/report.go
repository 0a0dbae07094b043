package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Due reports whether the given instant falls inside the reporting part of
// the hour. The scheduler runs the job at a fixed sub-hourly cadence, and
// the first invocation after each hour boundary (minute < cutoff) is the
// one that flushes the window.
func Due(now time.Time, cutoffMinute int) bool {
	return now.Minute() < cutoffMinute
}

// Format builds the hourly report message: a header naming the window and
// threshold, then the risers in ascending lexicographic order, one per line.
func Format(hour int, thresholdPct decimal.Decimal, symbols map[string]struct{}) string {
	sorted := make([]string, 0, len(symbols))
	for sym := range symbols {
		sorted = append(sorted, sym)
	}
	sort.Strings(sorted)

	var b strings.Builder
	fmt.Fprintf(&b, "Coins up %s%% or more over the past hour (as of %02d:00)\n", thresholdPct, hour)
	b.WriteString(strings.Join(sorted, "\n"))
	return b.String()
}

// FormatScanAlert builds the best-effort error notification sent when the
// ticker scan fails.
func FormatScanAlert(err error) string {
	return "Scan error: " + err.Error()
}

// Welcome is the one-time message sent on the very first invocation.
func Welcome() string {
	return "Upbit monitor started.\nConnection is up and running!"
}

// Package stats shapes raw aggregation buckets into the summary payloads
// returned by the stats endpoint.
package stats

import (
	"sort"
	"time"

	"github.com/jonathan/jobtrack/internal/query"
)

// TrendMonths is the number of most recent (year, month) buckets kept in the
// monthly trend.
const TrendMonths = 6

// MonthBucket is one (calendar year, calendar month) grouping with its record
// count, as produced by the storage aggregation.
type MonthBucket struct {
	Year  int
	Month time.Month
	Count int
}

// MonthlyCount is one labeled entry of the monthly trend.
type MonthlyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Distribution builds the status distribution from grouped counts. It starts
// from a template with every known status at zero, then overwrites each with
// its observed count. Statuses outside the known set are dropped.
func Distribution(counts map[string]int) map[string]int {
	dist := make(map[string]int, len(query.Statuses()))
	for _, status := range query.Statuses() {
		dist[status] = counts[status]
	}
	return dist
}

// Trend keeps the max most recent buckets and returns them oldest-first with
// human labels ("Jan 2006" style). The input order does not matter.
func Trend(buckets []MonthBucket, max int) []MonthlyCount {
	sorted := make([]MonthBucket, len(buckets))
	copy(sorted, buckets)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year > sorted[j].Year
		}
		return sorted[i].Month > sorted[j].Month
	})

	if max > 0 && len(sorted) > max {
		sorted = sorted[:max]
	}

	// Most recent first so far; the chart wants oldest first.
	trend := make([]MonthlyCount, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		b := sorted[i]
		trend = append(trend, MonthlyCount{
			Date:  time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006"),
			Count: b.Count,
		})
	}
	return trend
}

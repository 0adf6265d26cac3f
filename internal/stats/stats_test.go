package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDistribution_FillsTemplate(t *testing.T) {
	dist := Distribution(map[string]int{"pending": 2, "interview": 1})

	assert.Equal(t, map[string]int{
		"pending":   2,
		"interview": 1,
		"declined":  0,
	}, dist)
}

func TestDistribution_Empty(t *testing.T) {
	dist := Distribution(nil)

	assert.Equal(t, map[string]int{
		"pending":   0,
		"interview": 0,
		"declined":  0,
	}, dist)
}

func TestDistribution_DropsUnknownStatuses(t *testing.T) {
	dist := Distribution(map[string]int{"pending": 1, "ghosted": 4})

	assert.Equal(t, map[string]int{
		"pending":   1,
		"interview": 0,
		"declined":  0,
	}, dist)
}

func TestTrend_OldestFirstWithLabels(t *testing.T) {
	buckets := []MonthBucket{
		{Year: 2024, Month: time.February, Count: 1},
		{Year: 2024, Month: time.January, Count: 2},
	}

	trend := Trend(buckets, TrendMonths)

	assert.Equal(t, []MonthlyCount{
		{Date: "Jan 2024", Count: 2},
		{Date: "Feb 2024", Count: 1},
	}, trend)
}

func TestTrend_KeepsOnlyMostRecentBuckets(t *testing.T) {
	var buckets []MonthBucket
	for m := time.January; m <= time.September; m++ {
		buckets = append(buckets, MonthBucket{Year: 2024, Month: m, Count: int(m)})
	}

	trend := Trend(buckets, TrendMonths)

	assert.Len(t, trend, TrendMonths)
	assert.Equal(t, "Apr 2024", trend[0].Date)
	assert.Equal(t, "Sep 2024", trend[len(trend)-1].Date)
}

func TestTrend_YearBoundary(t *testing.T) {
	buckets := []MonthBucket{
		{Year: 2024, Month: time.January, Count: 3},
		{Year: 2023, Month: time.December, Count: 5},
		{Year: 2023, Month: time.November, Count: 1},
	}

	trend := Trend(buckets, TrendMonths)

	assert.Equal(t, []MonthlyCount{
		{Date: "Nov 2023", Count: 1},
		{Date: "Dec 2023", Count: 5},
		{Date: "Jan 2024", Count: 3},
	}, trend)
}

func TestTrend_Empty(t *testing.T) {
	assert.Empty(t, Trend(nil, TrendMonths))
}

func TestTrend_DoesNotMutateInput(t *testing.T) {
	buckets := []MonthBucket{
		{Year: 2024, Month: time.January, Count: 2},
		{Year: 2024, Month: time.March, Count: 1},
	}

	_ = Trend(buckets, TrendMonths)

	assert.Equal(t, time.January, buckets[0].Month)
	assert.Equal(t, time.March, buckets[1].Month)
}

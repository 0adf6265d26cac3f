package query

// GroupKey identifies the field an aggregation groups records by.
type GroupKey string

// Supported grouping keys.
const (
	GroupByStatus GroupKey = "status"
	GroupByMonth  GroupKey = "month" // calendar (year, month) of created_at
)

// Aggregation is a backend-agnostic grouping request. Storage backends
// translate it into their native grouping mechanism. A Limit of zero means
// no limit.
type Aggregation struct {
	GroupBy    GroupKey
	Descending bool // sort buckets by group key descending
	Limit      int
}

// StatusDistribution groups an owner's records by status with no limit.
func StatusDistribution() Aggregation {
	return Aggregation{GroupBy: GroupByStatus}
}

// MonthlyTrend groups an owner's records by (year, month) of creation,
// most recent buckets first, keeping at most limit buckets.
func MonthlyTrend(limit int) Aggregation {
	return Aggregation{GroupBy: GroupByMonth, Descending: true, Limit: limit}
}

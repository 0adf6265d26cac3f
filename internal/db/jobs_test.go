package db

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/jobtrack/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildJobFilter_OwnerScopeOnly(t *testing.T) {
	ownerID := uuid.New()
	spec := query.Build(ownerID, url.Values{})

	where, args := buildJobFilter(spec)

	assert.Equal(t, "created_by = $1", where)
	assert.Equal(t, []any{ownerID}, args)
}

func TestBuildJobFilter_AllFilters(t *testing.T) {
	ownerID := uuid.New()
	spec := query.Build(ownerID, url.Values{
		"search":  {"engineer"},
		"status":  {"pending"},
		"jobType": {"contract"},
	})

	where, args := buildJobFilter(spec)

	assert.Equal(t, "created_by = $1 AND position ILIKE $2 AND status = $3 AND job_type = $4", where)
	assert.Equal(t, []any{ownerID, "%engineer%", "pending", "contract"}, args)
}

func TestBuildJobFilter_OwnerScopeAlwaysFirst(t *testing.T) {
	spec := query.Build(uuid.New(), url.Values{"status": {"declined"}})

	where, _ := buildJobFilter(spec)

	assert.Contains(t, where, "created_by = $1")
}

func TestBuildJobFilter_EscapesLikeMetacharacters(t *testing.T) {
	spec := query.Build(uuid.New(), url.Values{"search": {"100%_dev"}})

	_, args := buildJobFilter(spec)

	require.Len(t, args, 2)
	assert.Equal(t, `%100\%\_dev%`, args[1])
}

func TestTranslateAggregation_Status(t *testing.T) {
	sql, err := translateAggregation(query.StatusDistribution())
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT status, COUNT(*) FROM jobs WHERE created_by = $1 GROUP BY status ORDER BY status ASC",
		sql)
}

func TestTranslateAggregation_Month(t *testing.T) {
	sql, err := translateAggregation(query.MonthlyTrend(6))
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT EXTRACT(YEAR FROM created_at)::int, EXTRACT(MONTH FROM created_at)::int, COUNT(*) "+
			"FROM jobs WHERE created_by = $1 GROUP BY 1, 2 ORDER BY 1 DESC, 2 DESC LIMIT 6",
		sql)
}

func TestTranslateAggregation_UnknownGroupKey(t *testing.T) {
	_, err := translateAggregation(query.Aggregation{GroupBy: "company"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported aggregation group key")
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLike(tt.in), "input %q", tt.in)
	}
}

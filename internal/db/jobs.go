package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/jobtrack/internal/query"
	"github.com/jonathan/jobtrack/internal/stats"
)

const jobColumns = "id, created_by, company, position, status, job_type, created_at, updated_at"

// ListJobs returns one page of the owner's jobs matching the spec, plus the
// total number of matching records across all pages. The owner scope from the
// spec is always applied; no filter combination can widen it.
func (db *DB) ListJobs(ctx context.Context, spec query.Spec) ([]Job, int, error) {
	where, args := buildJobFilter(spec)

	var total int
	err := db.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM jobs WHERE "+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	if total == 0 {
		return []Job{}, 0, nil
	}

	field, descending := spec.OrderBy()
	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	// Secondary key keeps pagination deterministic when primary keys tie.
	sql := fmt.Sprintf(
		"SELECT %s FROM jobs WHERE %s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d",
		jobColumns, where, field, direction, len(args)+1, len(args)+2,
	)
	args = append(args, spec.Limit, spec.Offset())

	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		var j Job
		if err := scanJob(rows, &j); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read jobs: %w", err)
	}

	return jobs, total, nil
}

// GetJob retrieves one job by id, scoped to its owner. Returns nil when the
// job does not exist or belongs to someone else.
func (db *DB) GetJob(ctx context.Context, id, ownerID uuid.UUID) (*Job, error) {
	var j Job
	err := scanJob(db.pool.QueryRow(ctx,
		"SELECT "+jobColumns+" FROM jobs WHERE id = $1 AND created_by = $2",
		id, ownerID,
	), &j)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// CreateJob inserts a job record owned by ownerID.
func (db *DB) CreateJob(ctx context.Context, ownerID uuid.UUID, input JobInput) (*Job, error) {
	var j Job
	err := scanJob(db.pool.QueryRow(ctx,
		`INSERT INTO jobs (created_by, company, position, status, job_type)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+jobColumns,
		ownerID, input.Company, input.Position, input.Status, input.JobType,
	), &j)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &j, nil
}

// UpdateJob updates a job's writable fields, scoped to its owner. Returns nil
// when the job does not exist or belongs to someone else.
func (db *DB) UpdateJob(ctx context.Context, id, ownerID uuid.UUID, input JobInput) (*Job, error) {
	var j Job
	err := scanJob(db.pool.QueryRow(ctx,
		`UPDATE jobs
		 SET company = $3, position = $4, status = $5, job_type = $6, updated_at = NOW()
		 WHERE id = $1 AND created_by = $2
		 RETURNING `+jobColumns,
		id, ownerID, input.Company, input.Position, input.Status, input.JobType,
	), &j)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return &j, nil
}

// DeleteJob removes a job, scoped to its owner. Returns false when the job
// does not exist or belongs to someone else.
func (db *DB) DeleteJob(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		"DELETE FROM jobs WHERE id = $1 AND created_by = $2",
		id, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountJobsByStatus groups all of the owner's jobs by status.
func (db *DB) CountJobsByStatus(ctx context.Context, ownerID uuid.UUID) (map[string]int, error) {
	sql, err := translateAggregation(query.StatusDistribution())
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx, sql, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read status counts: %w", err)
	}

	return counts, nil
}

// CountJobsByMonth groups all of the owner's jobs by the (year, month) of
// their creation, most recent buckets first, keeping at most limit buckets.
func (db *DB) CountJobsByMonth(ctx context.Context, ownerID uuid.UUID, limit int) ([]stats.MonthBucket, error) {
	sql, err := translateAggregation(query.MonthlyTrend(limit))
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx, sql, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs by month: %w", err)
	}
	defer rows.Close()

	var buckets []stats.MonthBucket
	for rows.Next() {
		var year, month, count int
		if err := rows.Scan(&year, &month, &count); err != nil {
			return nil, fmt.Errorf("failed to scan month bucket: %w", err)
		}
		buckets = append(buckets, stats.MonthBucket{Year: year, Month: time.Month(month), Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read month buckets: %w", err)
	}

	return buckets, nil
}

// buildJobFilter renders a query spec as a WHERE clause over the jobs table.
// The owner scope is always the first clause.
func buildJobFilter(spec query.Spec) (string, []any) {
	clauses := []string{"created_by = $1"}
	args := []any{spec.OwnerID}

	if spec.Search != "" {
		args = append(args, "%"+escapeLike(spec.Search)+"%")
		clauses = append(clauses, fmt.Sprintf("position ILIKE $%d", len(args)))
	}
	if spec.Status != "" {
		args = append(args, spec.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if spec.JobType != "" {
		args = append(args, spec.JobType)
		clauses = append(clauses, fmt.Sprintf("job_type = $%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

// translateAggregation renders a backend-agnostic aggregation request as SQL
// over the jobs table, scoped to one owner ($1).
func translateAggregation(agg query.Aggregation) (string, error) {
	var selectCols string
	var groupCols []string

	switch agg.GroupBy {
	case query.GroupByStatus:
		selectCols = "status, COUNT(*)"
		groupCols = []string{"status"}
	case query.GroupByMonth:
		selectCols = "EXTRACT(YEAR FROM created_at)::int, EXTRACT(MONTH FROM created_at)::int, COUNT(*)"
		groupCols = []string{"1", "2"}
	default:
		return "", fmt.Errorf("unsupported aggregation group key: %s", agg.GroupBy)
	}

	direction := "ASC"
	if agg.Descending {
		direction = "DESC"
	}
	orderCols := make([]string, len(groupCols))
	for i, col := range groupCols {
		orderCols[i] = col + " " + direction
	}

	sql := fmt.Sprintf(
		"SELECT %s FROM jobs WHERE created_by = $1 GROUP BY %s ORDER BY %s",
		selectCols, strings.Join(groupCols, ", "), strings.Join(orderCols, ", "),
	)
	if agg.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", agg.Limit)
	}

	return sql, nil
}

// escapeLike escapes LIKE metacharacters so a search term matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

func scanJob(row pgx.Row, j *Job) error {
	return row.Scan(&j.ID, &j.CreatedBy, &j.Company, &j.Position, &j.Status, &j.JobType, &j.CreatedAt, &j.UpdatedAt)
}

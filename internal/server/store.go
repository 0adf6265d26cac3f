// Package server provides the HTTP REST API for the job tracker.
package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/jobtrack/internal/db"
	"github.com/jonathan/jobtrack/internal/query"
	"github.com/jonathan/jobtrack/internal/stats"
)

// JobStore is the storage surface the job handlers depend on. *db.DB
// implements it; tests substitute fakes.
type JobStore interface {
	ListJobs(ctx context.Context, spec query.Spec) ([]db.Job, int, error)
	GetJob(ctx context.Context, id, ownerID uuid.UUID) (*db.Job, error)
	CreateJob(ctx context.Context, ownerID uuid.UUID, input db.JobInput) (*db.Job, error)
	UpdateJob(ctx context.Context, id, ownerID uuid.UUID, input db.JobInput) (*db.Job, error)
	DeleteJob(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
	CountJobsByStatus(ctx context.Context, ownerID uuid.UUID) (map[string]int, error)
	CountJobsByMonth(ctx context.Context, ownerID uuid.UUID, limit int) ([]stats.MonthBucket, error)
}

// UserStore is the storage surface the user service depends on.
type UserStore interface {
	CreateUser(ctx context.Context, input db.UserInput, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input db.UserInput) (*db.User, error)
}

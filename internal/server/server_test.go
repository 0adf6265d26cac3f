package server

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/jobtrack/internal/config"
	"github.com/jonathan/jobtrack/internal/db"
	"github.com/jonathan/jobtrack/internal/query"
	"github.com/jonathan/jobtrack/internal/server/ratelimit"
	"github.com/jonathan/jobtrack/internal/stats"
)

// fakeJobStore is an in-memory JobStore that records the calls made to it.
type fakeJobStore struct {
	jobs  []db.Job
	calls []string

	lastSpec query.Spec

	statusCounts map[string]int
	monthBuckets []stats.MonthBucket

	err error
}

func (f *fakeJobStore) ListJobs(_ context.Context, spec query.Spec) ([]db.Job, int, error) {
	f.calls = append(f.calls, "ListJobs")
	f.lastSpec = spec
	if f.err != nil {
		return nil, 0, f.err
	}

	var matching []db.Job
	for _, j := range f.jobs {
		if j.CreatedBy == spec.OwnerID {
			matching = append(matching, j)
		}
	}
	total := len(matching)

	start := spec.Offset()
	if start > total {
		start = total
	}
	end := start + spec.Limit
	if end > total {
		end = total
	}
	return matching[start:end], total, nil
}

func (f *fakeJobStore) GetJob(_ context.Context, id, ownerID uuid.UUID) (*db.Job, error) {
	f.calls = append(f.calls, "GetJob")
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.jobs {
		if f.jobs[i].ID == id && f.jobs[i].CreatedBy == ownerID {
			return &f.jobs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeJobStore) CreateJob(_ context.Context, ownerID uuid.UUID, input db.JobInput) (*db.Job, error) {
	f.calls = append(f.calls, "CreateJob")
	if f.err != nil {
		return nil, f.err
	}
	job := db.Job{
		ID:        uuid.New(),
		CreatedBy: ownerID,
		Company:   input.Company,
		Position:  input.Position,
		Status:    input.Status,
		JobType:   input.JobType,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.jobs = append(f.jobs, job)
	return &job, nil
}

func (f *fakeJobStore) UpdateJob(_ context.Context, id, ownerID uuid.UUID, input db.JobInput) (*db.Job, error) {
	f.calls = append(f.calls, "UpdateJob")
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.jobs {
		if f.jobs[i].ID == id && f.jobs[i].CreatedBy == ownerID {
			f.jobs[i].Company = input.Company
			f.jobs[i].Position = input.Position
			f.jobs[i].Status = input.Status
			f.jobs[i].JobType = input.JobType
			return &f.jobs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeJobStore) DeleteJob(_ context.Context, id, ownerID uuid.UUID) (bool, error) {
	f.calls = append(f.calls, "DeleteJob")
	if f.err != nil {
		return false, f.err
	}
	for i := range f.jobs {
		if f.jobs[i].ID == id && f.jobs[i].CreatedBy == ownerID {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeJobStore) CountJobsByStatus(_ context.Context, _ uuid.UUID) (map[string]int, error) {
	f.calls = append(f.calls, "CountJobsByStatus")
	return f.statusCounts, f.err
}

func (f *fakeJobStore) CountJobsByMonth(_ context.Context, _ uuid.UUID, _ int) ([]stats.MonthBucket, error) {
	f.calls = append(f.calls, "CountJobsByMonth")
	return f.monthBuckets, f.err
}

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	users map[uuid.UUID]*db.User
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, input db.UserInput, passwordHash string) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	id := uuid.New()
	f.users[id] = &db.User{
		ID:           id,
		Name:         input.Name,
		LastName:     input.LastName,
		Email:        input.Email,
		Location:     input.Location,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	return id, nil
}

func (f *fakeUserStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	u, _ := f.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func (f *fakeUserStore) UpdateUser(_ context.Context, id uuid.UUID, input db.UserInput) (*db.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	u.Name = input.Name
	u.LastName = input.LastName
	u.Email = input.Email
	u.Location = input.Location
	return u, nil
}

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:   "test-secret-key-for-jwt-signing-minimum-32-bytes",
		Lifetime: time.Hour,
	})
}

// newTestServer builds a Server around fakes, with no database connection.
func newTestServer(jobs JobStore, users UserStore) *Server {
	return &Server{
		jobs:           jobs,
		userService:    NewUserService(users, &config.PasswordConfig{BcryptCost: 10}),
		jwtService:     testJWTService(),
		validator:      validator.New(),
		rateLimiter:    ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
		requestTimeout: time.Second,
	}
}

// seedJobs inserts n jobs for the owner with distinct positions and creation
// times, newest last.
func seedJobs(store *fakeJobStore, ownerID uuid.UUID, n int) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		store.jobs = append(store.jobs, db.Job{
			ID:        uuid.New(),
			CreatedBy: ownerID,
			Company:   fmt.Sprintf("company-%02d", i),
			Position:  fmt.Sprintf("position-%02d", i),
			Status:    query.StatusPending,
			JobType:   query.TypeFullTime,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
}

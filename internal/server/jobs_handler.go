// Package server provides the HTTP REST API for the job tracker.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/jobtrack/internal/db"
	"github.com/jonathan/jobtrack/internal/query"
	"github.com/jonathan/jobtrack/internal/server/middleware"
	"github.com/jonathan/jobtrack/internal/stats"
	"golang.org/x/sync/errgroup"
)

// JobRequest is the request body for creating or updating a job record.
type JobRequest struct {
	Company  string `json:"company" validate:"required,max=100"`
	Position string `json:"position" validate:"required,max=200"`
	Status   string `json:"status" validate:"omitempty,oneof=pending interview declined"`
	JobType  string `json:"jobType" validate:"omitempty,oneof=full-time part-time internship contract"`
}

// ListJobsResponse is the response for listing jobs.
type ListJobsResponse struct {
	Jobs       []db.Job `json:"jobs"`
	TotalJobs  int      `json:"totalJobs"`
	NumOfPages int      `json:"numOfPages"`
}

// JobResponse wraps a single job record.
type JobResponse struct {
	Job *db.Job `json:"job"`
}

// StatsResponse is the response for the stats endpoint.
type StatsResponse struct {
	DefaultStats        map[string]int       `json:"defaultStats"`
	MonthlyApplications []stats.MonthlyCount `json:"monthlyApplications"`
}

func (r *JobRequest) input() db.JobInput {
	input := db.JobInput{
		Company:  r.Company,
		Position: r.Position,
		Status:   r.Status,
		JobType:  r.JobType,
	}
	if input.Status == "" {
		input.Status = query.StatusPending
	}
	if input.JobType == "" {
		input.JobType = query.TypeFullTime
	}
	return input
}

// handleListJobs lists the principal's jobs with filters, sorting and
// pagination taken from the query string.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication invalid")
		return
	}

	spec := query.Build(principal.UserID, r.URL.Query())

	ctx, cancel := s.requestContext(r)
	defer cancel()

	jobs, total, err := s.jobs.ListJobs(ctx, spec)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{
		Jobs:       jobs,
		TotalJobs:  total,
		NumOfPages: query.PageCount(total, spec.Limit),
	})
}

// handleGetJob retrieves one of the principal's jobs by id.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication invalid")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	job, err := s.jobs.GetJob(ctx, jobID, principal.UserID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if job == nil {
		s.serviceError(w, &ErrJobNotFound{JobID: jobID})
		return
	}

	s.jsonResponse(w, http.StatusOK, JobResponse{Job: job})
}

// handleCreateJob creates a job record owned by the principal.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication invalid")
		return
	}

	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	job, err := s.jobs.CreateJob(ctx, principal.UserID, req.input())
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, JobResponse{Job: job})
}

// handleUpdateJob updates one of the principal's jobs.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication invalid")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	job, err := s.jobs.UpdateJob(ctx, jobID, principal.UserID, req.input())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if job == nil {
		s.serviceError(w, &ErrJobNotFound{JobID: jobID})
		return
	}

	s.jsonResponse(w, http.StatusOK, JobResponse{Job: job})
}

// handleDeleteJob deletes one of the principal's jobs.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication invalid")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	deleted, err := s.jobs.DeleteJob(ctx, jobID, principal.UserID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if !deleted {
		s.serviceError(w, &ErrJobNotFound{JobID: jobID})
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleShowStats summarizes the principal's whole collection: a status
// distribution and a monthly trend of the most recent buckets. The two
// aggregations run concurrently; neither is ever cached.
func (s *Server) handleShowStats(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication invalid")
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	var (
		statusCounts map[string]int
		buckets      []stats.MonthBucket
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		statusCounts, err = s.jobs.CountJobsByStatus(gctx, principal.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		buckets, err = s.jobs.CountJobsByMonth(gctx, principal.UserID, stats.TrendMonths)
		return err
	})
	if err := g.Wait(); err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, StatsResponse{
		DefaultStats:        stats.Distribution(statusCounts),
		MonthlyApplications: stats.Trend(buckets, stats.TrendMonths),
	})
}

// Package query builds validated, owner-scoped query specifications from raw
// request parameters.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Sort identifies a result ordering for job listings.
type Sort string

// Supported sort keys. Each maps to a field and direction; ties are broken by
// record id ascending so pagination stays stable across requests.
const (
	SortLatest    Sort = "latest" // created_at descending
	SortOldest    Sort = "oldest" // created_at ascending
	SortAlphaAsc  Sort = "a-z"    // position ascending
	SortAlphaDesc Sort = "z-a"    // position descending
)

// Pagination defaults and the categorical filter sentinel meaning "no filter".
const (
	DefaultPage  = 1
	DefaultLimit = 10
	FilterAll    = "all"
)

// Job status values.
const (
	StatusPending   = "pending"
	StatusInterview = "interview"
	StatusDeclined  = "declined"
)

// Job type values.
const (
	TypeFullTime   = "full-time"
	TypePartTime   = "part-time"
	TypeInternship = "internship"
	TypeContract   = "contract"
)

// Statuses lists the known job statuses in their canonical order.
func Statuses() []string {
	return []string{StatusPending, StatusInterview, StatusDeclined}
}

// JobTypes lists the known job types.
func JobTypes() []string {
	return []string{TypeFullTime, TypePartTime, TypeInternship, TypeContract}
}

// Spec is an immutable, owner-scoped query specification. It is built once
// from validated request parameters and handed to storage as a single unit.
// Empty filter fields mean "no filter".
type Spec struct {
	OwnerID uuid.UUID
	Search  string
	Status  string
	JobType string
	Sort    Sort
	Page    int
	Limit   int
}

// Build constructs a Spec for the given owner from raw query parameters.
// Unknown or empty filter values are treated as "no filter", an unrecognized
// sort key falls back to SortLatest, and unparseable pagination values fall
// back to the defaults. Build never fails: the owner scope is mandatory and
// everything else degrades to a defined default.
func Build(ownerID uuid.UUID, params url.Values) Spec {
	spec := Spec{
		OwnerID: ownerID,
		Sort:    SortLatest,
		Page:    parsePositiveInt(params.Get("page"), DefaultPage),
		Limit:   parsePositiveInt(params.Get("limit"), DefaultLimit),
	}

	spec.Search = strings.TrimSpace(params.Get("search"))

	if status := params.Get("status"); status != "" && status != FilterAll && isKnown(status, Statuses()) {
		spec.Status = status
	}

	if jobType := params.Get("jobType"); jobType != "" && jobType != FilterAll && isKnown(jobType, JobTypes()) {
		spec.JobType = jobType
	}

	if sort := Sort(params.Get("sort")); sort.valid() {
		spec.Sort = sort
	}

	return spec
}

// Offset returns the number of records to skip for the requested page.
func (s Spec) Offset() int {
	return (s.Page - 1) * s.Limit
}

// OrderBy returns the primary sort field and direction for the spec.
func (s Spec) OrderBy() (field string, descending bool) {
	switch s.Sort {
	case SortOldest:
		return "created_at", false
	case SortAlphaAsc:
		return "position", false
	case SortAlphaDesc:
		return "position", true
	default:
		return "created_at", true
	}
}

// PageCount returns the total number of pages for a result set. A total of
// zero yields zero pages.
func PageCount(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func (s Sort) valid() bool {
	switch s {
	case SortLatest, SortOldest, SortAlphaAsc, SortAlphaDesc:
		return true
	}
	return false
}

func isKnown(value string, known []string) bool {
	for _, k := range known {
		if value == k {
			return true
		}
	}
	return false
}

// parsePositiveInt parses a positive integer, falling back to def when the
// value is absent, unparseable, or less than 1.
func parsePositiveInt(value string, def int) int {
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return def
	}
	return n
}

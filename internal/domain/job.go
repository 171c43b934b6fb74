package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// JobStatus tracks where an application is in the hiring pipeline.
// Any transition between statuses is legal.
type JobStatus string

const (
	StatusApplied   JobStatus = "applied"
	StatusInterview JobStatus = "interview"
	StatusOffer     JobStatus = "offer"
	StatusRejected  JobStatus = "rejected"
)

// JobType classifies the kind of employment.
type JobType string

const (
	TypeInternship JobType = "internship"
	TypeFullTime   JobType = "full-time"
	TypePartTime   JobType = "part-time"
	TypeContract   JobType = "contract"
)

// JobStatuses lists all valid statuses in display order.
var JobStatuses = []JobStatus{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// JobTypes lists all valid job types in display order.
var JobTypes = []JobType{TypeInternship, TypeFullTime, TypePartTime, TypeContract}

const maxDescriptionLen = 500

// Job is a single tracked job application, owned by exactly one user.
type Job struct {
	ID          int64
	Company     string
	Position    string
	Status      JobStatus
	JobType     JobType
	Description string
	Location    string
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobInput carries the caller-supplied fields for creating or replacing a job.
type JobInput struct {
	Company     string
	Position    string
	Status      string
	JobType     string
	Description string
	Location    string
}

// NewJob validates input and builds a Job owned by createdBy. Fields are
// trimmed, defaults are applied (status "applied", type "full-time",
// location "remote"), and enum values are checked. Returns ErrInvalidInput
// on empty company/position, unknown enum values, or an over-long
// description.
func NewJob(in JobInput, createdBy int64) (*Job, error) {
	company := strings.TrimSpace(in.Company)
	position := strings.TrimSpace(in.Position)
	if company == "" || position == "" {
		return nil, fmt.Errorf("%w: company and position are required", ErrInvalidInput)
	}

	status := StatusApplied
	if s := strings.TrimSpace(in.Status); s != "" {
		status = JobStatus(s)
		if !validStatus(status) {
			return nil, fmt.Errorf("%w: status must be one of applied, interview, offer, rejected", ErrInvalidInput)
		}
	}

	jobType := TypeFullTime
	if t := strings.TrimSpace(in.JobType); t != "" {
		jobType = JobType(t)
		if !validJobType(jobType) {
			return nil, fmt.Errorf("%w: jobType must be one of internship, full-time, part-time, contract", ErrInvalidInput)
		}
	}

	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, maxDescriptionLen)
	}

	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = "remote"
	}

	return &Job{
		Company:     company,
		Position:    position,
		Status:      status,
		JobType:     jobType,
		Description: description,
		Location:    location,
		CreatedBy:   createdBy,
	}, nil
}

func validStatus(s JobStatus) bool {
	for _, v := range JobStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func validJobType(t JobType) bool {
	for _, v := range JobTypes {
		if t == v {
			return true
		}
	}
	return false
}

// SortKey selects the ordering of a job listing.
type SortKey string

const (
	SortLatest SortKey = "latest"
	SortOldest SortKey = "oldest"
	SortAZ     SortKey = "a-z"
	SortZA     SortKey = "z-a"
)

// JobFilter is the caller-supplied criteria for listing jobs. The owning
// user is always supplied separately; no filter combination can widen the
// result beyond the owner's records.
type JobFilter struct {
	Search  string
	Status  string
	JobType string
	Sort    SortKey
	Page    int
	Limit   int
}

// Normalize applies listing defaults: page 1, limit 10, latest-first order.
func (f JobFilter) Normalize() JobFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	switch f.Sort {
	case SortLatest, SortOldest, SortAZ, SortZA:
	default:
		f.Sort = SortLatest
	}
	return f
}

// JobStats aggregates a user's jobs for the dashboard.
type JobStats struct {
	TotalJobs int64
	Applied   int64
	Interview int64
	Offer     int64
	Rejected  int64
}

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	// List returns one page of the user's jobs matching filter, plus the
	// total match count before pagination.
	List(ctx context.Context, userID int64, filter JobFilter) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	// DeleteOwned removes the job only if it exists and belongs to userID,
	// as a single atomic conditional statement, and returns the deleted
	// record. ErrNotFound covers both absence and foreign ownership.
	DeleteOwned(ctx context.Context, id, userID int64) (*Job, error)
	Stats(ctx context.Context, userID int64) (*JobStats, error)
}

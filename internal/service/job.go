package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aakib-hotelwala/Job-Tracker/internal/domain"
)

// JobPage is one page of a user's job listing.
type JobPage struct {
	Jobs        []domain.Job
	TotalJobs   int64
	NumOfPages  int
	CurrentPage int
}

// JobService handles job queries and mutations. Every operation is scoped
// to the calling user; no criteria combination can reach another user's
// records.
type JobService struct {
	jobs domain.JobRepository
}

// NewJobService creates a new JobService.
func NewJobService(jobs domain.JobRepository) *JobService {
	return &JobService{jobs: jobs}
}

// Create validates fields, applies defaults, and persists a new job owned
// by userID.
func (s *JobService) Create(ctx context.Context, userID int64, in domain.JobInput) (*domain.Job, error) {
	job, err := domain.NewJob(in, userID)
	if err != nil {
		return nil, err
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// List returns one page of the user's jobs matching filter. Pages past the
// last return an empty page, not an error.
func (s *JobService) List(ctx context.Context, userID int64, filter domain.JobFilter) (*JobPage, error) {
	filter = filter.Normalize()

	jobs, total, err := s.jobs.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	numOfPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &JobPage{
		Jobs:        jobs,
		TotalJobs:   total,
		NumOfPages:  numOfPages,
		CurrentPage: filter.Page,
	}, nil
}

// GetByID returns the job if it exists and belongs to userID. Reports
// ErrNotFound for an absent job and ErrForbidden when the job is owned by
// another user.
func (s *JobService) GetByID(ctx context.Context, userID, id int64) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != userID {
		return nil, domain.ErrForbidden
	}
	return job, nil
}

// Update replaces the mutable fields of the job in place. Checks run in
// order: existence, field validation, ownership.
func (s *JobService) Update(ctx context.Context, userID, id int64, in domain.JobInput) (*domain.Job, error) {
	existing, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	job, err := domain.NewJob(in, existing.CreatedBy)
	if err != nil {
		return nil, err
	}

	if existing.CreatedBy != userID {
		return nil, domain.ErrForbidden
	}

	job.ID = existing.ID
	job.CreatedAt = existing.CreatedAt

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// Delete removes the job and returns the deleted record. The repository
// performs a single combined existence and ownership check, so a job owned
// by another user is indistinguishable from a missing one.
func (s *JobService) Delete(ctx context.Context, userID, id int64) (*domain.Job, error) {
	job, err := s.jobs.DeleteOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete job: %w", err)
	}
	return job, nil
}

// Stats aggregates the user's jobs for the dashboard.
func (s *JobService) Stats(ctx context.Context, userID int64) (*domain.JobStats, error) {
	stats, err := s.jobs.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", err)
	}
	return stats, nil
}

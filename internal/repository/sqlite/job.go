package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Aakib-hotelwala/Job-Tracker/internal/domain"
)

// JobRepository implements domain.JobRepository using SQLite.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new SQLite-backed JobRepository.
func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{db: db.SqlDB}
}

const jobColumns = "id, company, position, status, job_type, description, location, created_by, created_at, updated_at"

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (company, position, status, job_type, description, location, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.Company, job.Position, job.Status, job.JobType,
		job.Description, job.Location, job.CreatedBy, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	job.ID = id
	job.CreatedAt = now
	job.UpdatedAt = now
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query job by id: %w", err)
	}
	return job, nil
}

// List returns one page of the user's jobs matching filter plus the total
// match count. The filter is assumed normalized; the query is always scoped
// to the owning user.
func (r *JobRepository) List(ctx context.Context, userID int64, filter domain.JobFilter) ([]domain.Job, int64, error) {
	where, args := buildJobFilter(userID, filter)

	var total int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM jobs WHERE "+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	query := "SELECT " + jobColumns + " FROM jobs WHERE " + where +
		" ORDER BY " + orderClause(filter.Sort) + " LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(&j.ID, &j.Company, &j.Position, &j.Status, &j.JobType,
			&j.Description, &j.Location, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET company = ?, position = ?, status = ?, job_type = ?, description = ?, location = ?, updated_at = ?
		 WHERE id = ?`,
		job.Company, job.Position, job.Status, job.JobType,
		job.Description, job.Location, now, job.ID,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	job.UpdatedAt = now
	return nil
}

// DeleteOwned deletes the job only if it exists and belongs to userID, in a
// single conditional statement so ownership cannot change between check and
// delete. Returns the deleted record, or ErrNotFound for both absence and
// foreign ownership.
func (r *JobRepository) DeleteOwned(ctx context.Context, id, userID int64) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx,
		"DELETE FROM jobs WHERE id = ? AND created_by = ? RETURNING "+jobColumns,
		id, userID)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete job: %w", err)
	}
	return job, nil
}

func (r *JobRepository) Stats(ctx context.Context, userID int64) (*domain.JobStats, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM jobs WHERE created_by = ? GROUP BY status", userID)
	if err != nil {
		return nil, fmt.Errorf("count jobs by status: %w", err)
	}
	defer rows.Close()

	stats := &domain.JobStats{}
	for rows.Next() {
		var status domain.JobStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		switch status {
		case domain.StatusApplied:
			stats.Applied = count
		case domain.StatusInterview:
			stats.Interview = count
		case domain.StatusOffer:
			stats.Offer = count
		case domain.StatusRejected:
			stats.Rejected = count
		}
		stats.TotalJobs += count
	}
	return stats, rows.Err()
}

// buildJobFilter composes the WHERE clause for List and its count query.
// The created_by predicate always comes first and cannot be overridden by
// any criteria combination.
func buildJobFilter(userID int64, filter domain.JobFilter) (string, []any) {
	where := "created_by = ?"
	args := []any{userID}

	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.JobType != "" {
		where += " AND job_type = ?"
		args = append(args, filter.JobType)
	}
	if filter.Search != "" {
		// SQLite LIKE is case-insensitive for ASCII.
		pattern := "%" + escapeLike(filter.Search) + "%"
		where += ` AND (company LIKE ? ESCAPE '\' OR position LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern)
	}
	return where, args
}

func orderClause(sort domain.SortKey) string {
	switch sort {
	case domain.SortOldest:
		return "created_at ASC, id ASC"
	case domain.SortAZ:
		return "company COLLATE NOCASE ASC, id ASC"
	case domain.SortZA:
		return "company COLLATE NOCASE DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

// escapeLike escapes LIKE wildcards so user-supplied search text matches
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

func scanJob(row *sql.Row) (*domain.Job, error) {
	j := &domain.Job{}
	err := row.Scan(&j.ID, &j.Company, &j.Position, &j.Status, &j.JobType,
		&j.Description, &j.Location, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return j, nil
}

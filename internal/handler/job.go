package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Aakib-hotelwala/Job-Tracker/internal/domain"
	"github.com/Aakib-hotelwala/Job-Tracker/internal/service"
)

// JobHandler handles job-related HTTP requests. All routes sit behind
// RequireAuth, so a user is always present in the context.
type JobHandler struct {
	jobs *service.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// jobRequest is the JSON body for creating or replacing a job.
type jobRequest struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Status      string `json:"status"`
	JobType     string `json:"jobType"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

func (req jobRequest) toInput() domain.JobInput {
	return domain.JobInput{
		Company:     req.Company,
		Position:    req.Position,
		Status:      req.Status,
		JobType:     req.JobType,
		Description: req.Description,
		Location:    req.Location,
	}
}

// HandleCreate persists a new job owned by the caller.
// POST /jobs
func (h *JobHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req jobRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	job, err := h.jobs.Create(r.Context(), user.ID, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Fill all the required details")
			return
		}
		slog.Error("create job", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"job": toJobDTO(job),
	})
}

// HandleList returns one page of the caller's jobs.
// GET /jobs?search=&status=&jobType=&sort=&page=&limit=
func (h *JobHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	q := r.URL.Query()
	filter := domain.JobFilter{
		Search:  q.Get("search"),
		Status:  q.Get("status"),
		JobType: q.Get("jobType"),
		Sort:    domain.SortKey(q.Get("sort")),
		Page:    intQuery(q.Get("page")),
		Limit:   intQuery(q.Get("limit")),
	}

	page, err := h.jobs.List(r.Context(), user.ID, filter)
	if err != nil {
		slog.Error("list jobs", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"jobs":        toJobDTOs(page.Jobs),
		"totalJobs":   page.TotalJobs,
		"numOfPages":  page.NumOfPages,
		"currentPage": page.CurrentPage,
	})
}

// HandleStats returns the caller's dashboard aggregates.
// GET /jobs/stats
func (h *JobHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	stats, err := h.jobs.Stats(r.Context(), user.ID)
	if err != nil {
		slog.Error("job stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{
		"totalJobs": stats.TotalJobs,
		"applied":   stats.Applied,
		"interview": stats.Interview,
		"offer":     stats.Offer,
		"rejected":  stats.Rejected,
	})
}

// HandleGet returns a single job by id.
// GET /jobs/{id}
func (h *JobHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, ok := jobID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}

	job, err := h.jobs.GetByID(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Job not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			writeError(w, http.StatusForbidden, "Not authorized to view this job")
			return
		}
		slog.Error("get job", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"job": toJobDTO(job),
	})
}

// HandleUpdate replaces a job's fields in place.
// PUT /jobs/{id}
func (h *JobHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, ok := jobID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}

	var req jobRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	job, err := h.jobs.Update(r.Context(), user.ID, id, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Job not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Fill all required fields")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			writeError(w, http.StatusForbidden, "Not authorized to update this job")
			return
		}
		slog.Error("update job", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"job": toJobDTO(job),
	})
}

// HandleDelete removes a job. Absence and foreign ownership both answer
// 404 so the endpoint never reveals another user's records.
// DELETE /jobs/{id}
func (h *JobHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, ok := jobID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}

	job, err := h.jobs.Delete(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Job not found or not authorized to delete")
			return
		}
		slog.Error("delete job", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"job": toJobDTO(job),
	})
}

// jobID parses the {id} path value. A malformed id is reported as not
// found, indistinguishable from an absent record.
func jobID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func intQuery(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

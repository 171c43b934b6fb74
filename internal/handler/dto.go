package handler

import (
	"time"

	"github.com/Aakib-hotelwala/Job-Tracker/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash never
// leaves the server.
type UserDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// JobDTO is the JSON representation of a job.
type JobDTO struct {
	ID          int64  `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Status      string `json:"status"`
	JobType     string `json:"jobType"`
	Description string `json:"description"`
	Location    string `json:"location"`
	CreatedBy   int64  `json:"createdBy"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toJobDTO(j *domain.Job) JobDTO {
	return JobDTO{
		ID:          j.ID,
		Company:     j.Company,
		Position:    j.Position,
		Status:      string(j.Status),
		JobType:     string(j.JobType),
		Description: j.Description,
		Location:    j.Location,
		CreatedBy:   j.CreatedBy,
		CreatedAt:   j.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   j.UpdatedAt.Format(time.RFC3339),
	}
}

func toJobDTOs(jobs []domain.Job) []JobDTO {
	dtos := make([]JobDTO, len(jobs))
	for i := range jobs {
		dtos[i] = toJobDTO(&jobs[i])
	}
	return dtos
}

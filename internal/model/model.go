package model

import "time"

type Role string

const (
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	PhotoURL       string `json:"photo_url,omitempty"`
	Specialization string `json:"specialization,omitempty"` // doctors only
}

type Doctor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	PhotoURL       string `json:"photo_url,omitempty"`
}

// Appointment is a read-only projection from the backend; only Status is
// externally mutable, and only through the update-status mutation.
type Appointment struct {
	ID        string    `json:"id"`
	DoctorID  string    `json:"doctorId"`
	PatientID string    `json:"patientId"`
	Date      string    `json:"date"`
	Status    Status    `json:"status"`
	Doctor    Doctor    `json:"doctor"`
	Patient   User      `json:"patient"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Pagination describes one page of a list response. Pages are 1-indexed.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is the paginated envelope the list endpoints return. A request past
// the last page yields an empty Data slice echoing the requested page.
type Page[T any] struct {
	Data       []T
	Pagination Pagination
}

// PageCount is ceil(total/limit).
func PageCount(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

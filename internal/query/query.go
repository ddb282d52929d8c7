// Package query binds the cache layer to the API client: read operations
// are cached per parameter tuple, mutations invalidate the affected
// resources only after the backend confirms success.
package query

import (
	"context"
	"strconv"

	"doctor-booking-client/internal/api"
	"doctor-booking-client/internal/cache"
	"doctor-booking-client/internal/model"
	"doctor-booking-client/internal/schema"
)

const (
	resourceDoctors             = "doctors"
	resourceSpecializations     = "specializations"
	resourcePatientAppointments = "patient-appointments"
	resourceDoctorAppointments  = "doctor-appointments"
)

type Client struct {
	api   *api.Client
	cache *cache.Cache
}

func New(apiClient *api.Client, c *cache.Cache) *Client {
	return &Client{api: apiClient, cache: c}
}

func (q *Client) Doctors(ctx context.Context, page, limit int, search, specialization string) (*model.Page[model.Doctor], error) {
	params := []string{strconv.Itoa(page), strconv.Itoa(limit), search, specialization}
	v, err := q.cache.Get(ctx, resourceDoctors, params, func(ctx context.Context) (any, error) {
		return q.api.ListDoctors(ctx, page, limit, search, specialization)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Page[model.Doctor]), nil
}

func (q *Client) Specializations(ctx context.Context) ([]string, error) {
	v, err := q.cache.Get(ctx, resourceSpecializations, nil, func(ctx context.Context) (any, error) {
		return q.api.ListSpecializations(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (q *Client) PatientAppointments(ctx context.Context, status model.Status, page, limit int) (*model.Page[model.Appointment], error) {
	params := []string{string(status), strconv.Itoa(page), strconv.Itoa(limit)}
	v, err := q.cache.Get(ctx, resourcePatientAppointments, params, func(ctx context.Context) (any, error) {
		return q.api.PatientAppointments(ctx, status, page, limit)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Page[model.Appointment]), nil
}

func (q *Client) DoctorAppointments(ctx context.Context, status model.Status, date string, page, limit int) (*model.Page[model.Appointment], error) {
	params := []string{string(status), date, strconv.Itoa(page), strconv.Itoa(limit)}
	v, err := q.cache.Get(ctx, resourceDoctorAppointments, params, func(ctx context.Context) (any, error) {
		return q.api.DoctorAppointments(ctx, status, date, page, limit)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Page[model.Appointment]), nil
}

// CreateAppointment books a slot with a doctor. The backend is
// authoritative on date validity and conflicts; on success every cached
// patient-appointments tuple is dropped so the next read refetches. On
// failure no cache entry is touched.
func (q *Client) CreateAppointment(ctx context.Context, in api.CreateAppointmentInput) (*model.Appointment, error) {
	if errs := schema.Appointment(in.DoctorID, in.Date); errs != nil {
		return nil, errs
	}
	a, err := q.api.CreateAppointment(ctx, in)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(resourcePatientAppointments)
	return a, nil
}

// UpdateAppointmentStatus transitions an appointment to COMPLETED or
// CANCELLED. Transitions are only valid away from PENDING; the backend
// enforces that, the client does not pre-check appointment state. Success
// invalidates both appointment resources, since doctor and patient views
// render the same rows.
func (q *Client) UpdateAppointmentStatus(ctx context.Context, in api.UpdateStatusInput) (*model.Appointment, error) {
	if in.Status != model.StatusCompleted && in.Status != model.StatusCancelled {
		return nil, schema.Errors{"status": "Status must be COMPLETED or CANCELLED"}
	}
	if in.AppointmentID == "" {
		return nil, schema.Errors{"appointment_id": "Appointment id required"}
	}
	a, err := q.api.UpdateAppointmentStatus(ctx, in)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(resourceDoctorAppointments, resourcePatientAppointments)
	return a, nil
}

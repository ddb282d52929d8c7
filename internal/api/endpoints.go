package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"doctor-booking-client/internal/model"
)

// pageEnvelope is the paginated variant of the response wrapper: data and
// pagination ride at the top level next to success.
type pageEnvelope struct {
	Success    bool             `json:"success"`
	Data       json.RawMessage  `json:"data"`
	Pagination model.Pagination `json:"pagination"`
	Message    string           `json:"message"`
}

func decodePage[T any](env *pageEnvelope) (*model.Page[T], error) {
	p := &model.Page[T]{Pagination: env.Pagination}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &p.Data); err != nil {
			return nil, err
		}
	}
	if p.Data == nil {
		p.Data = []T{}
	}
	return p, nil
}

func (c *Client) ListDoctors(ctx context.Context, page, limit int, search, specialization string) (*model.Page[model.Doctor], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("search", search)
	q.Set("specialization", specialization)

	var env pageEnvelope
	if err := c.do(ctx, http.MethodGet, "/doctors", q, nil, &env); err != nil {
		return nil, err
	}
	return decodePage[model.Doctor](&env)
}

func (c *Client) ListSpecializations(ctx context.Context) ([]string, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/specializations", nil, nil, &env); err != nil {
		return nil, err
	}
	var out []string
	if err := decodeData(&env, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PatientAppointments(ctx context.Context, status model.Status, page, limit int) (*model.Page[model.Appointment], error) {
	q := url.Values{}
	q.Set("status", string(status))
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var env pageEnvelope
	if err := c.do(ctx, http.MethodGet, "/appointments/patient", q, nil, &env); err != nil {
		return nil, err
	}
	return decodePage[model.Appointment](&env)
}

func (c *Client) DoctorAppointments(ctx context.Context, status model.Status, date string, page, limit int) (*model.Page[model.Appointment], error) {
	q := url.Values{}
	q.Set("status", string(status))
	q.Set("date", date)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var env pageEnvelope
	if err := c.do(ctx, http.MethodGet, "/appointments/doctor", q, nil, &env); err != nil {
		return nil, err
	}
	return decodePage[model.Appointment](&env)
}

type CreateAppointmentInput struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
}

func (c *Client) CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*model.Appointment, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, in, &env); err != nil {
		return nil, err
	}
	a := &model.Appointment{}
	if err := decodeData(&env, a); err != nil {
		return nil, err
	}
	return a, nil
}

type UpdateStatusInput struct {
	AppointmentID string       `json:"appointment_id"`
	Status        model.Status `json:"status"`
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, in UpdateStatusInput) (*model.Appointment, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPatch, "/appointments/update-status", nil, in, &env); err != nil {
		return nil, err
	}
	a := &model.Appointment{}
	if err := decodeData(&env, a); err != nil {
		return nil, err
	}
	return a, nil
}

type LoginInput struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// AuthResult is the login payload: the user snapshot replaced wholesale
// into the session, plus the bearer token.
type AuthResult struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

func (c *Client) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &env); err != nil {
		return nil, err
	}
	res := &AuthResult{}
	if err := decodeData(&env, res); err != nil {
		return nil, err
	}
	return res, nil
}

type RegisterPatientInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PhotoURL string `json:"photo_url,omitempty"`
}

func (c *Client) RegisterPatient(ctx context.Context, in RegisterPatientInput) error {
	return c.do(ctx, http.MethodPost, "/auth/register/patient", nil, in, nil)
}

type RegisterDoctorInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Specialization string `json:"specialization"`
	PhotoURL       string `json:"photo_url,omitempty"`
}

func (c *Client) RegisterDoctor(ctx context.Context, in RegisterDoctorInput) error {
	return c.do(ctx, http.MethodPost, "/auth/register/doctor", nil, in, nil)
}

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"

	"doctor-booking-client/internal/api"
	"doctor-booking-client/internal/model"
	"doctor-booking-client/internal/schema"
)

const pageLimit = 10

var (
	heading = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen)
	dim     = color.New(color.Faint)
)

func (a *app) authScreen(ctx context.Context) error {
	n, err := a.choose("Welcome to DocBook",
		"Login", "Register as patient", "Register as doctor", "Quit")
	if err != nil {
		return err
	}
	switch n {
	case 1:
		return a.loginScreen(ctx)
	case 2:
		return a.registerPatientScreen(ctx)
	case 3:
		return a.registerDoctorScreen(ctx)
	default:
		return errQuit
	}
}

func (a *app) loginScreen(ctx context.Context) error {
	email, err := a.prompt("email")
	if err != nil {
		return err
	}
	password, err := a.prompt("password")
	if err != nil {
		return err
	}
	roleRaw, err := a.prompt("role (DOCTOR/PATIENT)")
	if err != nil {
		return err
	}
	role := model.Role(roleRaw)

	if errs := schema.Login(email, password, role); errs != nil {
		notify(errs)
		return nil
	}

	res, err := a.api.Login(ctx, api.LoginInput{Email: email, Password: password, Role: role})
	if err != nil {
		notify(err)
		return nil
	}
	a.sess.Login(&res.User, res.Token)
	success.Printf("welcome back, %s\n", res.User.Name)
	return nil
}

func (a *app) registerPatientScreen(ctx context.Context) error {
	in := api.RegisterPatientInput{}
	var err error
	if in.Name, err = a.prompt("name"); err != nil {
		return err
	}
	if in.Email, err = a.prompt("email"); err != nil {
		return err
	}
	if in.Password, err = a.prompt("password"); err != nil {
		return err
	}
	if in.PhotoURL, err = a.prompt("photo url (optional)"); err != nil {
		return err
	}

	if errs := schema.PatientRegistration(in.Name, in.Email, in.Password, in.PhotoURL); errs != nil {
		notify(errs)
		return nil
	}
	if err := a.api.RegisterPatient(ctx, in); err != nil {
		notify(err)
		return nil
	}
	success.Println("registered, you can log in now")
	return nil
}

func (a *app) registerDoctorScreen(ctx context.Context) error {
	in := api.RegisterDoctorInput{}
	var err error
	if in.Name, err = a.prompt("name"); err != nil {
		return err
	}
	if in.Email, err = a.prompt("email"); err != nil {
		return err
	}
	if in.Password, err = a.prompt("password"); err != nil {
		return err
	}
	if in.Specialization, err = a.prompt("specialization"); err != nil {
		return err
	}
	if in.PhotoURL, err = a.prompt("photo url (optional)"); err != nil {
		return err
	}

	if errs := schema.DoctorRegistration(in.Name, in.Email, in.Password, in.Specialization, in.PhotoURL); errs != nil {
		notify(errs)
		return nil
	}
	if err := a.api.RegisterDoctor(ctx, in); err != nil {
		notify(err)
		return nil
	}
	success.Println("registered, you can log in now")
	return nil
}

// ----- patient screens -----

func (a *app) patientScreen(ctx context.Context) error {
	for ctx.Err() == nil {
		n, err := a.choose("Patient dashboard",
			"Browse doctors", "My appointments", "Book appointment", "Logout")
		if err != nil {
			return err
		}
		switch n {
		case 1:
			err = a.browseDoctors(ctx)
		case 2:
			err = a.patientAppointments(ctx)
		case 3:
			err = a.bookAppointment(ctx)
		case 4:
			a.sess.Logout()
			return nil
		}
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (a *app) browseDoctors(ctx context.Context) error {
	search, err := a.prompt("search (optional)")
	if err != nil {
		return err
	}
	spec, err := a.prompt("specialization (optional)")
	if err != nil {
		return err
	}

	page := 1
	for {
		res, err := a.queries.Doctors(ctx, page, pageLimit, search, spec)
		if err != nil {
			notify(err)
			return nil
		}
		if len(res.Data) == 0 {
			fmt.Println("no doctors found")
			return nil
		}
		heading.Println("Doctors")
		for _, d := range res.Data {
			fmt.Printf("  %-24s %-20s %s\n", d.Name, d.Specialization, dim.Sprint(d.ID))
		}
		next, done := a.pager(&page, res.Pagination)
		if done {
			return nil
		}
		page = next
	}
}

func (a *app) bookAppointment(ctx context.Context) error {
	doctorID, err := a.prompt("doctor id")
	if err != nil {
		return err
	}
	date, err := a.prompt("date (YYYY-MM-DD HH:MM)")
	if err != nil {
		return err
	}

	appt, err := a.queries.CreateAppointment(ctx, api.CreateAppointmentInput{DoctorID: doctorID, Date: date})
	if err != nil {
		notify(err)
		return nil
	}
	success.Printf("booked with %s on %s (%s)\n", appt.Doctor.Name, appt.Date, appt.Status)
	return nil
}

func (a *app) patientAppointments(ctx context.Context) error {
	status, err := a.statusFilter()
	if err != nil {
		return err
	}

	page := 1
	for {
		res, err := a.queries.PatientAppointments(ctx, status, page, pageLimit)
		if err != nil {
			notify(err)
			return nil
		}
		if len(res.Data) == 0 {
			fmt.Println("no appointments found")
			return nil
		}
		heading.Println("My appointments")
		for _, ap := range res.Data {
			fmt.Printf("  %-24s %-20s %-10s %s\n", ap.Doctor.Name, ap.Date, ap.Status, dim.Sprint(ap.ID))
		}
		next, done := a.pager(&page, res.Pagination)
		if done {
			return nil
		}
		page = next
	}
}

// ----- doctor screens -----

func (a *app) doctorScreen(ctx context.Context) error {
	for ctx.Err() == nil {
		n, err := a.choose("Doctor dashboard",
			"My appointments", "Update appointment status", "Logout")
		if err != nil {
			return err
		}
		switch n {
		case 1:
			err = a.doctorAppointments(ctx)
		case 2:
			err = a.updateStatus(ctx)
		case 3:
			a.sess.Logout()
			return nil
		}
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (a *app) doctorAppointments(ctx context.Context) error {
	status, err := a.statusFilter()
	if err != nil {
		return err
	}
	date, err := a.prompt("date filter (optional, YYYY-MM-DD)")
	if err != nil {
		return err
	}

	page := 1
	for {
		res, err := a.queries.DoctorAppointments(ctx, status, date, page, pageLimit)
		if err != nil {
			notify(err)
			return nil
		}
		if len(res.Data) == 0 {
			fmt.Println("no appointments found for the selected criteria")
			return nil
		}
		heading.Println("Appointments")
		for _, ap := range res.Data {
			fmt.Printf("  %-24s %-20s %-10s %s\n", ap.Patient.Name, ap.Date, ap.Status, dim.Sprint(ap.ID))
		}
		next, done := a.pager(&page, res.Pagination)
		if done {
			return nil
		}
		page = next
	}
}

func (a *app) updateStatus(ctx context.Context) error {
	id, err := a.prompt("appointment id")
	if err != nil {
		return err
	}
	n, err := a.choose("New status", "COMPLETED", "CANCELLED")
	if err != nil {
		return err
	}
	status := model.StatusCompleted
	if n == 2 {
		status = model.StatusCancelled
	}

	appt, err := a.queries.UpdateAppointmentStatus(ctx, api.UpdateStatusInput{AppointmentID: id, Status: status})
	if err != nil {
		notify(err)
		return nil
	}
	success.Printf("appointment %s is now %s\n", appt.ID, appt.Status)
	return nil
}

// ----- shared -----

func (a *app) statusFilter() (model.Status, error) {
	n, err := a.choose("Filter by status",
		"All", "PENDING", "COMPLETED", "CANCELLED")
	if err != nil {
		return "", err
	}
	switch n {
	case 2:
		return model.StatusPending, nil
	case 3:
		return model.StatusCompleted, nil
	case 4:
		return model.StatusCancelled, nil
	}
	return "", nil
}

// pager prints the page footer and asks for navigation; done means leave
// the list screen.
func (a *app) pager(page *int, p model.Pagination) (int, bool) {
	if p.TotalPages <= 1 {
		return *page, true
	}
	dim.Printf("page %d of %d  [n]ext [p]rev [q]uit\n", p.Page, p.TotalPages)
	raw, err := a.prompt("nav")
	if err != nil {
		return *page, true
	}
	switch raw {
	case "n":
		if *page < p.TotalPages {
			return *page + 1, false
		}
	case "p":
		if *page > 1 {
			return *page - 1, false
		}
	case "q":
		return *page, true
	default:
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= p.TotalPages {
			return n, false
		}
	}
	return *page, false
}

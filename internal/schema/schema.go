// Package schema validates form input before any network dispatch.
// Failures surface per field and never reach the backend.
package schema

import (
	"fmt"
	"net/mail"
	"net/url"
	"sort"
	"strings"

	"doctor-booking-client/internal/model"
)

// Errors maps field name to a user-facing message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", f, e[f])
	}
	return b.String()
}

func Login(email, password string, role model.Role) Errors {
	errs := Errors{}
	if !validEmail(email) {
		errs["email"] = "Please enter a valid email address"
	}
	if len(password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	if role != model.RoleDoctor && role != model.RolePatient {
		errs["role"] = "Please select a role"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func PatientRegistration(name, email, password, photoURL string) Errors {
	errs := registration(name, email, password, photoURL)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func DoctorRegistration(name, email, password, specialization, photoURL string) Errors {
	errs := registration(name, email, password, photoURL)
	if len(specialization) < 2 {
		errs["specialization"] = "Please select a specialization"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func Appointment(doctorID, date string) Errors {
	errs := Errors{}
	if doctorID == "" {
		errs["doctorId"] = "Please select a doctor"
	}
	if date == "" {
		errs["date"] = "Please select a date"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func registration(name, email, password, photoURL string) Errors {
	errs := Errors{}
	if len(name) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	}
	if !validEmail(email) {
		errs["email"] = "Please enter a valid email address"
	}
	if len(password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	// photo is optional, empty passes
	if photoURL != "" && !validURL(photoURL) {
		errs["photo_url"] = "Please enter a valid URL"
	}
	return errs
}

func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

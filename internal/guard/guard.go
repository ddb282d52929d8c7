// Package guard gates role-scoped screens on session state. Decisions are
// pure functions over a session snapshot; the guard itself never touches
// storage or the network.
package guard

import (
	"doctor-booking-client/internal/model"
	"doctor-booking-client/internal/session"
)

type State int

const (
	// Unknown: rehydration pending. Render a neutral loading indicator,
	// no screen content, no redirect — redirecting here would flash every
	// authenticated user to the login screen on reload.
	Unknown State = iota
	// Checking is the instant between initialized and the auth decision;
	// Evaluate collapses through it, it never escapes as a result.
	Checking
	Denied
	Granted
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Checking:
		return "checking"
	case Denied:
		return "denied"
	case Granted:
		return "granted"
	}
	return "invalid"
}

const (
	LoginPath            = "/login"
	PatientDashboardPath = "/patient/dashboard"
	DoctorDashboardPath  = "/doctor/dashboard"
)

// Decision is the guard's verdict for one screen mount. Redirect is set
// only for Denied.
type Decision struct {
	State    State
	Redirect string
}

// Evaluate maps a snapshot onto the guard state machine. Denied and
// Granted are terminal for a mount; a logout flips the next evaluation
// from Granted back to Denied.
func Evaluate(s session.Snapshot) Decision {
	if !s.Initialized {
		return Decision{State: Unknown}
	}
	if !s.Authenticated {
		return Decision{State: Denied, Redirect: LoginPath}
	}
	return Decision{State: Granted}
}

// Landing resolves the role-scoped home screen once a session is Granted.
func Landing(u *model.User) string {
	if u == nil {
		return LoginPath
	}
	switch u.Role {
	case model.RolePatient:
		return PatientDashboardPath
	case model.RoleDoctor:
		return DoctorDashboardPath
	}
	return LoginPath
}

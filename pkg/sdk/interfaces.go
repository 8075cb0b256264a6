package sdk

import (
	"context"

	"github.com/celerix-dev/celerix-hrms/pkg/schema"
)

// --- Functional Interfaces (Interface Segregation) ---

// Authenticator manages the single session of a service.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (schema.Session, error)
	Logout() error
	// IsAuthorized reports whether a session exists and, when roles are
	// given, whether its role is one of them.
	IsAuthorized(roles ...schema.Role) bool
}

// EmployeeReader lists and fetches directory records.
type EmployeeReader interface {
	// ListEmployees matches query against name, email and department, ignoring case.
	ListEmployees(query string) ([]schema.Employee, error)
	GetEmployee(id string) (schema.Employee, error)
}

// EmployeeWriter mutates the directory.
type EmployeeWriter interface {
	AddEmployee(fields schema.EmployeeFields) (schema.Employee, error)
	UpdateEmployee(id string, patch schema.EmployeePatch) (schema.Employee, error)
	// DeleteEmployee also removes the employee's attendance entries.
	DeleteEmployee(id string) error
}

// AttendanceLog reads and appends to the attendance log.
type AttendanceLog interface {
	// ListAttendance returns entries for date, newest first; "" means every date.
	ListAttendance(date string) ([]schema.AttendanceEntry, error)
	RecordAttendance(fields schema.AttendanceFields) (schema.AttendanceEntry, error)
}

// Reporter exposes aggregate views.
type Reporter interface {
	Dashboard() (schema.Dashboard, error)
	Snapshot() (schema.Snapshot, error)
}

// --- Composite Interfaces ---

// HRStore is the domain surface without authentication.
type HRStore interface {
	EmployeeReader
	EmployeeWriter
	AttendanceLog
	Reporter
}

// Service is implemented by both the embedded application and the remote Client.
type Service interface {
	Authenticator
	HRStore
}

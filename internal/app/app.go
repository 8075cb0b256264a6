// Package app wires one auth store and one HR store into the application state
// served by the daemon and embedded by the SDK.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/celerix-dev/celerix-hrms/internal/auth"
	"github.com/celerix-dev/celerix-hrms/internal/hr"
	"github.com/celerix-dev/celerix-hrms/internal/seed"
	"github.com/celerix-dev/celerix-hrms/internal/storage"
	"github.com/celerix-dev/celerix-hrms/pkg/schema"
)

// Options configures New.
type Options struct {
	Persister   *storage.Persistence // nil runs in memory only
	Version     int                  // defaults to hr.SchemaVersion
	Credentials []schema.Credential  // defaults to seed.Credentials()
	Clock       hr.Clock
	NewID       func() string
	Logger      zerolog.Logger
}

// App is the explicit application state. It satisfies sdk.Service.
type App struct {
	Auth *auth.Store
	HR   *hr.Store
}

// New loads the persisted snapshot, falling back to seed data.
func New(opts Options) *App {
	if opts.Version == 0 {
		opts.Version = hr.SchemaVersion
	}
	if opts.Credentials == nil {
		opts.Credentials = seed.Credentials()
	}
	now := time.Now()
	if opts.Clock != nil {
		now = opts.Clock.Now()
	}

	initial := storage.Load(opts.Persister, opts.Version, seed.Snapshot(now.Format(schema.DateLayout)))

	return &App{
		Auth: auth.NewStore(opts.Credentials, opts.Logger),
		HR: hr.NewStore(initial, hr.Options{
			Persister: opts.Persister,
			Version:   opts.Version,
			NewID:     opts.NewID,
			Clock:     opts.Clock,
			Logger:    &opts.Logger,
		}),
	}
}

// --- Authenticator ---

func (a *App) Login(ctx context.Context, email, password string) (schema.Session, error) {
	return a.Auth.Login(ctx, email, password)
}

func (a *App) Logout() error {
	a.Auth.Logout()
	return nil
}

func (a *App) IsAuthorized(roles ...schema.Role) bool {
	return a.Auth.IsAuthorized(roles...)
}

// --- HRStore ---

func (a *App) ListEmployees(query string) ([]schema.Employee, error) {
	return a.HR.Employees(query), nil
}

func (a *App) GetEmployee(id string) (schema.Employee, error) {
	return a.HR.Employee(id)
}

func (a *App) AddEmployee(fields schema.EmployeeFields) (schema.Employee, error) {
	return a.HR.AddEmployee(fields), nil
}

func (a *App) UpdateEmployee(id string, patch schema.EmployeePatch) (schema.Employee, error) {
	return a.HR.UpdateEmployee(id, patch)
}

func (a *App) DeleteEmployee(id string) error {
	a.HR.DeleteEmployee(id)
	return nil
}

func (a *App) ListAttendance(date string) ([]schema.AttendanceEntry, error) {
	return a.HR.Attendance(date), nil
}

func (a *App) RecordAttendance(fields schema.AttendanceFields) (schema.AttendanceEntry, error) {
	return a.HR.RecordAttendance(fields), nil
}

func (a *App) Dashboard() (schema.Dashboard, error) {
	return a.HR.Dashboard(), nil
}

func (a *App) Snapshot() (schema.Snapshot, error) {
	return a.HR.Snapshot(), nil
}

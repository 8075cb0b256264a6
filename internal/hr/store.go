// Package hr holds the employee directory and the attendance log, mirrored
// write-through to the persisted snapshot.
package hr

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/celerix-dev/celerix-hrms/internal/storage"
	"github.com/celerix-dev/celerix-hrms/pkg/schema"
)

// SchemaVersion is the snapshot version this build reads and writes.
const SchemaVersion = 1

// Clock supplies "today" for the dashboard.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Options configures a Store. Zero values select the defaults.
type Options struct {
	Persister *storage.Persistence
	Version   int             // defaults to SchemaVersion
	NewID     func() string   // defaults to uuid.NewString
	Clock     Clock           // defaults to the system clock
	Logger    *zerolog.Logger // defaults to a no-op logger
}

// Store owns the employee and attendance collections for the process lifetime.
// Employees keep insertion order; attendance is newest first.
type Store struct {
	mu         sync.RWMutex
	employees  []schema.Employee
	attendance []schema.AttendanceEntry

	persister *storage.Persistence
	version   int
	newID     func() string
	clock     Clock
	log       zerolog.Logger
}

// NewStore starts from initial, which the caller has loaded or seeded.
func NewStore(initial schema.Snapshot, opts Options) *Store {
	s := &Store{
		employees:  slices.Clone(initial.Employees),
		attendance: slices.Clone(initial.Attendance),
		persister:  opts.Persister,
		version:    opts.Version,
		newID:      opts.NewID,
		clock:      opts.Clock,
		log:        zerolog.Nop(),
	}
	if s.version == 0 {
		s.version = SchemaVersion
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.clock == nil {
		s.clock = systemClock{}
	}
	if opts.Logger != nil {
		s.log = opts.Logger.With().Str("component", "hr").Logger()
	}
	return s
}

// Today is the clock's current date in schema.DateLayout.
func (s *Store) Today() string {
	return s.clock.Now().Format(schema.DateLayout)
}

// --- Mutations ---

func (s *Store) AddEmployee(fields schema.EmployeeFields) schema.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp := fields.Employee(s.newID())
	s.employees = append(s.employees, emp)
	s.persist("add_employee")
	return emp
}

// UpdateEmployee merges patch onto the employee with id.
// An unknown id changes nothing and returns schema.ErrEmployeeNotFound.
func (s *Store) UpdateEmployee(id string, patch schema.EmployeePatch) (schema.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return schema.Employee{}, schema.ErrEmployeeNotFound
	}

	patch.Apply(&s.employees[idx])
	s.persist("update_employee")
	return s.employees[idx], nil
}

// DeleteEmployee removes the employee and every attendance entry that
// references it, then persists once.
func (s *Store) DeleteEmployee(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.employees = slices.DeleteFunc(s.employees, func(e schema.Employee) bool {
		return e.ID == id
	})
	s.attendance = slices.DeleteFunc(s.attendance, func(a schema.AttendanceEntry) bool {
		return a.EmployeeID == id
	})
	s.persist("delete_employee")
}

// RecordAttendance puts the new entry at the front of the log.
func (s *Store) RecordAttendance(fields schema.AttendanceFields) schema.AttendanceEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := fields.Entry(s.newID())
	s.attendance = slices.Insert(s.attendance, 0, entry)
	s.persist("record_attendance")
	return entry
}

// persist writes the full snapshot. It MUST be called while holding s.mu.Lock.
// Failures are logged and swallowed; memory stays ahead of storage until the
// next successful write.
func (s *Store) persist(op string) {
	err := storage.Save(s.persister, s.version, s.snapshotLocked())
	switch {
	case err == nil:
	case s.persister == nil:
		// running without storage
	default:
		s.log.Warn().Err(err).Str("op", op).Msg("snapshot not persisted")
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.employees, func(e schema.Employee) bool { return e.ID == id })
}

// --- Reads ---

// Employees returns employees whose name, email or department contains query,
// ignoring case. An empty query returns everyone.
func (s *Store) Employees(query string) []schema.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]schema.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if q == "" ||
			strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Email), q) ||
			strings.Contains(strings.ToLower(e.Department), q) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) Employee(id string) (schema.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return schema.Employee{}, schema.ErrEmployeeNotFound
	}
	return s.employees[idx], nil
}

// Attendance returns entries for date, newest first. An empty date returns the whole log.
func (s *Store) Attendance(date string) []schema.AttendanceEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.attendanceOn(date)
}

func (s *Store) attendanceOn(date string) []schema.AttendanceEntry {
	out := make([]schema.AttendanceEntry, 0, len(s.attendance))
	for _, a := range s.attendance {
		if date == "" || a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) Dashboard() schema.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.Today()
	d := schema.Dashboard{
		Date:           today,
		TotalEmployees: len(s.employees),
		Today:          s.attendanceOn(today),
	}
	for _, e := range s.employees {
		if e.Status == schema.EmployeeActive {
			d.ActiveEmployees++
		}
	}
	d.AttendanceToday = len(d.Today)
	return d
}

// Snapshot returns a copy of both collections.
func (s *Store) Snapshot() schema.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() schema.Snapshot {
	return schema.Snapshot{
		Employees:  append([]schema.Employee{}, s.employees...),
		Attendance: append([]schema.AttendanceEntry{}, s.attendance...),
	}
}

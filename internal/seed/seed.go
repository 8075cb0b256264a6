// Package seed holds the fixed demo accounts and the initial HR data used when
// no accepted snapshot is stored.
package seed

import "github.com/celerix-dev/celerix-hrms/pkg/schema"

// Credentials returns the three demo accounts, one per role.
func Credentials() []schema.Credential {
	return []schema.Credential{
		{User: schema.User{ID: "u1", Name: "Alice Admin", Email: "admin@demo.com", Role: schema.RoleAdmin}, Password: "admin123"},
		{User: schema.User{ID: "u2", Name: "Manny Manager", Email: "manager@demo.com", Role: schema.RoleManager}, Password: "manager123"},
		{User: schema.User{ID: "u3", Name: "Eve Employee", Email: "employee@demo.com", Role: schema.RoleEmployee}, Password: "employee123"},
	}
}

func Employees() []schema.Employee {
	return []schema.Employee{
		{
			ID:         "e1",
			Name:       "Eve Employee",
			Email:      "employee@demo.com",
			Department: "Engineering",
			Title:      "Frontend Developer",
			Status:     schema.EmployeeActive,
			JoinDate:   "2023-02-15",
			Manager:    "Manny Manager",
		},
		{
			ID:         "e2",
			Name:       "Sam Support",
			Email:      "sam.support@demo.com",
			Department: "Customer Success",
			Title:      "Support Specialist",
			Status:     schema.EmployeeActive,
			JoinDate:   "2022-07-01",
			Manager:    "Manny Manager",
		},
		{
			ID:         "e3",
			Name:       "Pat People",
			Email:      "pat.people@demo.com",
			Department: "HR",
			Title:      "HR Business Partner",
			Status:     schema.EmployeeInactive,
			JoinDate:   "2021-11-20",
			Manager:    "Alice Admin",
		},
	}
}

// Attendance returns two entries dated today (YYYY-MM-DD), both recorded by the manager.
func Attendance(today string) []schema.AttendanceEntry {
	return []schema.AttendanceEntry{
		{ID: "a1", EmployeeID: "e1", Date: today, Status: schema.AttendancePresent, Notes: "Onsite", RecordedBy: "u2"},
		{ID: "a2", EmployeeID: "e2", Date: today, Status: schema.AttendanceRemote, Notes: "Working from home", RecordedBy: "u2"},
	}
}

// Snapshot bundles the seed employees and attendance.
func Snapshot(today string) schema.Snapshot {
	return schema.Snapshot{Employees: Employees(), Attendance: Attendance(today)}
}

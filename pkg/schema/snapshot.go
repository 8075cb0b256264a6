package schema

// Snapshot is the full HR payload, persisted and exported as one unit.
type Snapshot struct {
	Employees  []Employee        `json:"employees" yaml:"employees"`
	Attendance []AttendanceEntry `json:"attendance" yaml:"attendance"`
}

// Dashboard summarises the directory and today's attendance.
type Dashboard struct {
	Date            string            `json:"date" yaml:"date"`
	ActiveEmployees int               `json:"activeEmployees" yaml:"activeEmployees"`
	TotalEmployees  int               `json:"totalEmployees" yaml:"totalEmployees"`
	AttendanceToday int               `json:"attendanceToday" yaml:"attendanceToday"`
	Today           []AttendanceEntry `json:"today" yaml:"today"`
}

package schema

// AttendanceStatus is the recorded presence for one employee on one day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceRemote  AttendanceStatus = "remote"
)

// AttendanceEntry is one line of the attendance log.
// EmployeeID is not checked against the directory and may dangle.
type AttendanceEntry struct {
	ID         string           `json:"id" yaml:"id"`
	EmployeeID string           `json:"employeeId" yaml:"employeeId"`
	Date       string           `json:"date" yaml:"date"`
	Status     AttendanceStatus `json:"status" yaml:"status"`
	Notes      string           `json:"notes,omitempty" yaml:"notes,omitempty"`
	RecordedBy string           `json:"recordedBy" yaml:"recordedBy"`
}

// Fields drops the id.
func (a AttendanceEntry) Fields() AttendanceFields {
	return AttendanceFields{
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		Status:     a.Status,
		Notes:      a.Notes,
		RecordedBy: a.RecordedBy,
	}
}

// AttendanceFields holds everything needed to record an entry.
type AttendanceFields struct {
	EmployeeID string           `json:"employeeId"`
	Date       string           `json:"date"`
	Status     AttendanceStatus `json:"status"`
	Notes      string           `json:"notes,omitempty"`
	RecordedBy string           `json:"recordedBy"`
}

// Entry builds a log entry with the given id.
func (f AttendanceFields) Entry(id string) AttendanceEntry {
	return AttendanceEntry{
		ID:         id,
		EmployeeID: f.EmployeeID,
		Date:       f.Date,
		Status:     f.Status,
		Notes:      f.Notes,
		RecordedBy: f.RecordedBy,
	}
}

package schema

// DateLayout is the calendar date format used for join and attendance dates.
const DateLayout = "2006-01-02"

// EmployeeStatus marks whether an employee is currently employed.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Employee is a directory record. Manager is a free-text name, not a reference.
type Employee struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Email      string         `json:"email" yaml:"email"`
	Department string         `json:"department" yaml:"department"`
	Title      string         `json:"title" yaml:"title"`
	Status     EmployeeStatus `json:"status" yaml:"status"`
	JoinDate   string         `json:"joinDate" yaml:"joinDate"`
	Manager    string         `json:"manager,omitempty" yaml:"manager,omitempty"`
}

// Fields drops the id.
func (e Employee) Fields() EmployeeFields {
	return EmployeeFields{
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Title:      e.Title,
		Status:     e.Status,
		JoinDate:   e.JoinDate,
		Manager:    e.Manager,
	}
}

// EmployeeFields holds everything needed to create an employee.
type EmployeeFields struct {
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Department string         `json:"department"`
	Title      string         `json:"title"`
	Status     EmployeeStatus `json:"status"`
	JoinDate   string         `json:"joinDate"`
	Manager    string         `json:"manager,omitempty"`
}

// Employee builds a record with the given id.
func (f EmployeeFields) Employee(id string) Employee {
	return Employee{
		ID:         id,
		Name:       f.Name,
		Email:      f.Email,
		Department: f.Department,
		Title:      f.Title,
		Status:     f.Status,
		JoinDate:   f.JoinDate,
		Manager:    f.Manager,
	}
}

// EmployeePatch is a partial update. Nil fields are left untouched.
type EmployeePatch struct {
	Name       *string         `json:"name,omitempty"`
	Email      *string         `json:"email,omitempty"`
	Department *string         `json:"department,omitempty"`
	Title      *string         `json:"title,omitempty"`
	Status     *EmployeeStatus `json:"status,omitempty"`
	JoinDate   *string         `json:"joinDate,omitempty"`
	Manager    *string         `json:"manager,omitempty"`
}

// Apply merges the supplied fields onto e.
func (p EmployeePatch) Apply(e *Employee) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.JoinDate != nil {
		e.JoinDate = *p.JoinDate
	}
	if p.Manager != nil {
		e.Manager = *p.Manager
	}
}

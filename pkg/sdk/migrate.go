package sdk

import (
	"context"
	"fmt"
)

// Migrate copies every employee and attendance entry from src into dst.
// This works for:
// - Embedded -> Remote (seeding a daemon from a local data directory)
// - Remote -> Embedded (an offline copy)
//
// Both services must already be logged in with a role allowed to write.
// Employees get fresh ids in dst; attendance entries follow the new ids and
// are replayed oldest first so dst ends up in the same order.
func Migrate(ctx context.Context, src, dst Service) error {
	employees, err := src.ListEmployees("")
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}
	attendance, err := src.ListAttendance("")
	if err != nil {
		return fmt.Errorf("failed to list attendance: %w", err)
	}

	ids := make(map[string]string, len(employees))
	for _, e := range employees {
		if err := ctx.Err(); err != nil {
			return err
		}
		created, err := dst.AddEmployee(e.Fields())
		if err != nil {
			return fmt.Errorf("failed to add employee %s: %w", e.ID, err)
		}
		ids[e.ID] = created.ID
	}

	for i := len(attendance) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		a := attendance[i]
		fields := a.Fields()
		if newID, ok := ids[a.EmployeeID]; ok {
			fields.EmployeeID = newID
		}
		if _, err := dst.RecordAttendance(fields); err != nil {
			return fmt.Errorf("failed to record attendance %s: %w", a.ID, err)
		}
	}
	return nil
}

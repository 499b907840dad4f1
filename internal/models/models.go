package models

import (
	"strings"
	"time"
)

// Employee represents a field employee tasks can be handed to
type Employee struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Task represents a single task
type Task struct {
	ID   int64
	Name string
	// AssignedTo holds the employee's name at assignment time, nil while unassigned.
	// Employees sharing a name are told apart by AssignedEmployeeID.
	AssignedTo         *string
	AssignedEmployeeID *int64
	CreatedAt          time.Time
}

// Assigned reports whether the task has been handed to an employee
func (t Task) Assigned() bool {
	return t.AssignedTo != nil
}

// Assignee returns the assigned employee name or an empty string
func (t Task) Assignee() string {
	if t.AssignedTo == nil {
		return ""
	}
	return *t.AssignedTo
}

// FullName joins the trimmed, non-empty name parts in first, middle, last order
func FullName(first, middle, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, middle, last} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

package db

import (
	"fmt"

	"github.com/tgienger/dispatch/internal/models"
)

const taskColumns = "id, name, assigned_to, assigned_employee_id, created_at"

// CreateTask creates a new, unassigned task
func (db *DB) CreateTask(name string) (*models.Task, error) {
	result, err := db.execute("create task", "INSERT INTO Tasks (name) VALUES (?)", name)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("db: create task: %w", err)
	}

	return db.GetTask(id)
}

// GetTask retrieves a task by ID
func (db *DB) GetTask(id int64) (*models.Task, error) {
	t := &models.Task{}
	err := db.QueryRow("SELECT "+taskColumns+" FROM Tasks WHERE id = ?", id).
		Scan(&t.ID, &t.Name, &t.AssignedTo, &t.AssignedEmployeeID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db: get task %d: %w", id, err)
	}
	return t, nil
}

// ListTasks returns all tasks ordered by id
func (db *DB) ListTasks() ([]models.Task, error) {
	rows, err := db.Query("SELECT " + taskColumns + " FROM Tasks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("db: list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.AssignedTo, &t.AssignedEmployeeID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db: list tasks: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db: list tasks: %w", err)
	}
	return tasks, nil
}

// UnassignedTaskIDs returns the ids of tasks nobody has been assigned to yet
func (db *DB) UnassignedTaskIDs() ([]int64, error) {
	return db.fetchIDs("unassigned task ids", "SELECT id FROM Tasks WHERE assigned_to IS NULL ORDER BY id")
}

// AssignTasks hands each task in picks (task id -> employee id) to its employee.
// The employee's current name is copied into assigned_to. Tasks that already
// have an assignee are left alone. All updates share one transaction and the
// number of tasks actually assigned is returned.
func (db *DB) AssignTasks(picks map[int64]int64) (int64, error) {
	if len(picks) == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("db: assign tasks: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE Tasks
		SET assigned_to = (SELECT name FROM Employees WHERE id = ?),
		    assigned_employee_id = ?
		WHERE id = ? AND assigned_to IS NULL
		  AND EXISTS (SELECT 1 FROM Employees WHERE id = ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("db: assign tasks: prepare: %w", err)
	}
	defer stmt.Close()

	var assigned int64
	for taskID, employeeID := range picks {
		result, err := stmt.Exec(employeeID, employeeID, taskID, employeeID)
		if err != nil {
			return 0, fmt.Errorf("db: assign task %d to employee %d: %w", taskID, employeeID, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("db: assign task %d: %w", taskID, err)
		}
		assigned += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("db: assign tasks: commit: %w", err)
	}
	return assigned, nil
}

package db

import (
	"fmt"

	"github.com/tgienger/dispatch/internal/models"
)

// CreateEmployee creates a new employee
func (db *DB) CreateEmployee(name string) (*models.Employee, error) {
	result, err := db.execute("create employee", "INSERT INTO Employees (name) VALUES (?)", name)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("db: create employee: %w", err)
	}

	return db.GetEmployee(id)
}

// GetEmployee retrieves an employee by ID
func (db *DB) GetEmployee(id int64) (*models.Employee, error) {
	e := &models.Employee{}
	err := db.QueryRow(`
		SELECT id, name, created_at
		FROM Employees WHERE id = ?
	`, id).Scan(&e.ID, &e.Name, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db: get employee %d: %w", id, err)
	}
	return e, nil
}

// ListEmployees returns all employees in creation order
func (db *DB) ListEmployees() ([]models.Employee, error) {
	rows, err := db.Query(`
		SELECT id, name, created_at
		FROM Employees ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("db: list employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("db: list employees: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db: list employees: %w", err)
	}
	return employees, nil
}

// EmployeeIDs returns the ids of all employees
func (db *DB) EmployeeIDs() ([]int64, error) {
	return db.fetchIDs("employee ids", "SELECT id FROM Employees ORDER BY id")
}


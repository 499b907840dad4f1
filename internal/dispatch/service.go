// Package dispatch holds the user actions of the application: registering
// employees and tasks, listing them and distributing unassigned tasks.
// Front ends (terminal UI, CLI) call a Service and never touch the store.
package dispatch

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tgienger/dispatch/internal/models"
)

// Store is the persistence the service needs
type Store interface {
	CreateEmployee(name string) (*models.Employee, error)
	ListEmployees() ([]models.Employee, error)
	EmployeeIDs() ([]int64, error)
	CreateTask(name string) (*models.Task, error)
	ListTasks() ([]models.Task, error)
	UnassignedTaskIDs() ([]int64, error)
	AssignTasks(picks map[int64]int64) (int64, error)
}

// AddEmployeeRequest carries the employee form
type AddEmployeeRequest struct {
	FirstName  string `validate:"required"`
	MiddleName string
	LastName   string `validate:"required"`
}

// AddTaskRequest carries the task form
type AddTaskRequest struct {
	Name string `validate:"required"`
}

// AssignResult summarizes one assignment pass
type AssignResult struct {
	// Assigned is the number of tasks that received an employee
	Assigned int
	// Employees is the number of employees drawn from
	Employees int
}

// Service implements every user action
type Service struct {
	store    Store
	validate *validator.Validate
	rng      *rand.Rand
	logger   *slog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithRand sets the random source used to pick employees
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = r }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a service on top of store
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// AddEmployee registers an employee under "first middle last"
func (s *Service) AddEmployee(req AddEmployeeRequest) (*models.Employee, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.MiddleName = strings.TrimSpace(req.MiddleName)
	req.LastName = strings.TrimSpace(req.LastName)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Debug("employee rejected", "error", err)
		return nil, newValidationError("employee", err)
	}

	employee, err := s.store.CreateEmployee(models.FullName(req.FirstName, req.MiddleName, req.LastName))
	if err != nil {
		s.logger.Error("create employee failed", "error", err)
		return nil, err
	}
	s.logger.Info("employee added", "id", employee.ID, "name", employee.Name)
	return employee, nil
}

// AddTask registers a new unassigned task
func (s *Service) AddTask(req AddTaskRequest) (*models.Task, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Debug("task rejected", "error", err)
		return nil, newValidationError("task", err)
	}

	task, err := s.store.CreateTask(req.Name)
	if err != nil {
		s.logger.Error("create task failed", "error", err)
		return nil, err
	}
	s.logger.Info("task added", "id", task.ID, "name", task.Name)
	return task, nil
}

// ListTasks returns every task with its assignee
func (s *Service) ListTasks() ([]models.Task, error) {
	return s.store.ListTasks()
}

// ListEmployees returns every employee
func (s *Service) ListEmployees() ([]models.Employee, error) {
	return s.store.ListEmployees()
}

// AssignTasks gives every unassigned task to an employee picked uniformly at
// random, with replacement. Without employees nothing is touched and
// ErrInsufficientEmployees is returned.
func (s *Service) AssignTasks() (*AssignResult, error) {
	taskIDs, err := s.store.UnassignedTaskIDs()
	if err != nil {
		return nil, err
	}
	employeeIDs, err := s.store.EmployeeIDs()
	if err != nil {
		return nil, err
	}
	if len(employeeIDs) == 0 {
		s.logger.Warn("assignment skipped: no employees", "unassigned", len(taskIDs))
		return nil, ErrInsufficientEmployees
	}

	picks := make(map[int64]int64, len(taskIDs))
	for _, id := range taskIDs {
		picks[id] = employeeIDs[s.rng.IntN(len(employeeIDs))]
	}

	n, err := s.store.AssignTasks(picks)
	if err != nil {
		s.logger.Error("assign tasks failed", "error", err)
		return nil, err
	}

	s.logger.Info("tasks assigned", "assigned", n, "employees", len(employeeIDs))
	return &AssignResult{Assigned: int(n), Employees: len(employeeIDs)}, nil
}

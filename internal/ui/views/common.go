package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/dispatch/internal/dispatch"
	"github.com/tgienger/dispatch/internal/models"
	"github.com/tgienger/dispatch/internal/ui/styles"
)

// Dispatcher is the set of user actions the views trigger
type Dispatcher interface {
	AddEmployee(req dispatch.AddEmployeeRequest) (*models.Employee, error)
	AddTask(req dispatch.AddTaskRequest) (*models.Task, error)
	ListEmployees() ([]models.Employee, error)
	ListTasks() ([]models.Task, error)
	AssignTasks() (*dispatch.AssignResult, error)
}

// ShowTasks asks the app to switch to the task list
type ShowTasks struct{}

// ShowEmployees asks the app to switch to the employee list
type ShowEmployees struct{}

// errMsg carries a failed background load back to the view
type errMsg struct {
	err error
}

// modal is a blocking message box, closed by any key
type modal struct {
	title string
	body  string
}

func newModal(err error) *modal {
	title, body := dispatch.UserMessage(err)
	return &modal{title: title, body: body}
}

// Message returns the modal text, or empty strings when no modal is open
func (m *modal) Message() (string, string) {
	if m == nil {
		return "", ""
	}
	return m.title, m.body
}

func renderModal(s *styles.Styles, m *modal, width, height int) string {
	contentWidth := styles.ContentWidth(width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.ModalTitle.Render(m.title),
		"",
		m.body,
		"",
		s.ButtonPrimary.Render(" OK "),
		"",
		s.TitleMuted.Render("Press any key to close"),
	)

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(content),
	)
	return styles.CenterView(centered, width, height)
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

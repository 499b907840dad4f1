package views

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/dispatch/internal/db"
	"github.com/tgienger/dispatch/internal/dispatch"
	"github.com/tgienger/dispatch/internal/models"
)

func newTestService(t *testing.T) *dispatch.Service {
	t.Helper()

	store, err := db.Open(filepath.Join(t.TempDir(), "dispatch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return dispatch.NewService(store)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	save  = tea.KeyMsg{Type: tea.KeyCtrlS}
)

// runCmd executes cmd and feeds the view's own messages back into it
func runCmd(t *testing.T, m tea.Model, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}

	var forwarded []tea.Msg
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			forwarded = append(forwarded, runCmd(t, m, c)...)
		}
	case tasksLoadedMsg, employeesLoadedMsg, errMsg:
		_, next := m.Update(msg)
		forwarded = append(forwarded, runCmd(t, m, next)...)
	case nil:
	default:
		forwarded = append(forwarded, msg)
	}
	return forwarded
}

func press(t *testing.T, m tea.Model, msgs ...tea.KeyMsg) []tea.Msg {
	t.Helper()
	var out []tea.Msg
	for _, msg := range msgs {
		_, cmd := m.Update(msg)
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
			// typing into a text input only returns cursor commands
			continue
		}
		out = append(out, runCmd(t, m, cmd)...)
	}
	return out
}

func TestTaskListAddTask(t *testing.T) {
	svc := newTestService(t)
	v := NewTaskListView(svc)
	runCmd(t, v, v.Init())
	assert.Empty(t, v.Tasks())

	press(t, v, runes("n"))
	require.True(t, v.Creating())

	press(t, v, runes("Fix router"), enter)
	assert.False(t, v.Creating())
	require.Len(t, v.Tasks(), 1)
	assert.Equal(t, "Fix router", v.Tasks()[0].Name)
	assert.False(t, v.Tasks()[0].Assigned())
	assert.Contains(t, v.Status(), "Fix router")
	assert.Contains(t, v.View(), "Fix router")
}

func TestTaskListRejectsEmptyName(t *testing.T) {
	svc := newTestService(t)
	v := NewTaskListView(svc)
	runCmd(t, v, v.Init())

	press(t, v, runes("n"), save)
	title, body := v.Modal()
	assert.Equal(t, "Invalid task name", title)
	assert.Equal(t, "Task name cannot be empty", body)
	assert.True(t, v.Creating(), "form stays open so the user can correct it")
	assert.Contains(t, v.View(), "Task name cannot be empty")

	// any key closes the modal
	press(t, v, runes("x"))
	title, _ = v.Modal()
	assert.Empty(t, title)
	assert.True(t, v.Creating())

	tasks, err := svc.ListTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskListAssignWithoutEmployees(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.AddTask(dispatch.AddTaskRequest{Name: "Fix router"})
	require.NoError(t, err)

	v := NewTaskListView(svc)
	runCmd(t, v, v.Init())

	press(t, v, runes("a"))
	title, _ := v.Modal()
	assert.Equal(t, "Not enough employees", title)
	require.Len(t, v.Tasks(), 1)
	assert.False(t, v.Tasks()[0].Assigned())
}

func TestTaskListAssign(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.AddEmployee(dispatch.AddEmployeeRequest{FirstName: "Anna", LastName: "Ivanova"})
	require.NoError(t, err)
	for _, name := range []string{"Fix router", "Replace cable"} {
		_, err := svc.AddTask(dispatch.AddTaskRequest{Name: name})
		require.NoError(t, err)
	}

	v := NewTaskListView(svc)
	runCmd(t, v, v.Init())

	press(t, v, runes("a"))
	title, _ := v.Modal()
	assert.Empty(t, title)
	assert.Equal(t, "2 tasks assigned", v.Status())
	for _, task := range v.Tasks() {
		assert.Equal(t, "Anna Ivanova", task.Assignee())
	}

	press(t, v, runes("a"))
	assert.Equal(t, "No unassigned tasks", v.Status())
}

func TestTaskListNavigation(t *testing.T) {
	v := NewTaskListView(newTestService(t))
	v.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	v.Update(tasksLoadedMsg{tasks: []models.Task{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}})

	press(t, v, runes("j"), runes("j"))
	assert.Equal(t, 1, v.cursor)
	press(t, v, runes("k"))
	assert.Equal(t, 0, v.cursor)

	msgs := press(t, v, tab)
	assert.Contains(t, msgs, tea.Msg(ShowEmployees{}))
}

func TestTaskListShowsLoadErrors(t *testing.T) {
	v := NewTaskListView(newTestService(t))
	v.Update(errMsg{err: errors.New("db: list tasks: disk I/O error")})

	title, body := v.Modal()
	assert.Equal(t, "Database error", title)
	assert.Contains(t, body, "disk I/O error")
}

func TestEmployeeListAddEmployee(t *testing.T) {
	svc := newTestService(t)
	v := NewEmployeeListView(svc)
	runCmd(t, v, v.Init())
	assert.Empty(t, v.Employees())

	press(t, v, runes("n"))
	require.True(t, v.Creating())

	// first, middle (left empty), last, then the Create button
	press(t, v, runes("Anna"), enter, enter, runes("Ivanova"), enter, enter)
	assert.False(t, v.Creating())

	employees := v.Employees()
	require.Len(t, employees, 1)
	assert.Equal(t, "Anna Ivanova", employees[0].Name)
}

func TestEmployeeListRejectsMissingSurname(t *testing.T) {
	svc := newTestService(t)
	v := NewEmployeeListView(svc)
	runCmd(t, v, v.Init())

	press(t, v, runes("n"), runes("Anna"), save)
	title, body := v.Modal()
	assert.Equal(t, "Invalid name", title)
	assert.Equal(t, "First name and last name are required", body)
	assert.True(t, v.Creating())

	employees, err := svc.ListEmployees()
	require.NoError(t, err)
	assert.Empty(t, employees)

	// close the modal, fill the surname and retry
	press(t, v, runes("x"), tab, tab, runes("Ivanova"), save)
	require.Len(t, v.Employees(), 1)
	assert.Equal(t, "Anna Ivanova", v.Employees()[0].Name)
}

func TestEmployeeListCancelAndSwitch(t *testing.T) {
	v := NewEmployeeListView(newTestService(t))
	runCmd(t, v, v.Init())

	press(t, v, runes("n"), esc)
	assert.False(t, v.Creating())

	msgs := press(t, v, tab)
	assert.Contains(t, msgs, tea.Msg(ShowTasks{}))
}

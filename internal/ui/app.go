package ui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/dispatch/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewTasks View = iota
	ViewEmployees
)

const lastViewSetting = "last_view"

func (v View) String() string {
	if v == ViewEmployees {
		return "employees"
	}
	return "tasks"
}

// Settings persists small pieces of UI state between runs
type Settings interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

type App struct {
	settings     Settings
	logger       *slog.Logger
	currentView  View
	employeeList *views.EmployeeListView
	taskList     *views.TaskListView
	width        int
	height       int
}

// Creates a new application
func NewApp(svc views.Dispatcher, settings Settings, logger *slog.Logger) *App {
	return &App{
		settings:     settings,
		logger:       logger,
		currentView:  ViewTasks,
		employeeList: views.NewEmployeeListView(svc),
		taskList:     views.NewTaskListView(svc),
	}
}

// CurrentView returns the active view
func (a *App) CurrentView() View { return a.currentView }

func (a *App) Init() tea.Cmd {
	// Reopen the view used last time
	if last, err := a.settings.GetSetting(lastViewSetting); err == nil && last == ViewEmployees.String() {
		a.currentView = ViewEmployees
		return a.employeeList.Init()
	}
	return a.taskList.Init()
}

func (a *App) switchTo(view View) tea.Cmd {
	a.currentView = view
	if err := a.settings.SetSetting(lastViewSetting, view.String()); err != nil {
		a.logger.Warn("remember last view failed", "view", view.String(), "error", err)
	}

	var reload tea.Cmd
	if view == ViewTasks {
		reload = a.taskList.Init()
	} else {
		reload = a.employeeList.Init()
	}
	return tea.Batch(
		reload,
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Both views keep their size, only the active one gets other messages
		a.employeeList.Update(msg)
		a.taskList.Update(msg)
		return a, nil

	case views.ShowTasks:
		return a, a.switchTo(ViewTasks)

	case views.ShowEmployees:
		return a, a.switchTo(ViewEmployees)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewEmployees:
		_, cmd = a.employeeList.Update(msg)
	default:
		_, cmd = a.taskList.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	if a.currentView == ViewEmployees {
		return a.employeeList.View()
	}
	return a.taskList.View()
}

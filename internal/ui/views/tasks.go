package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/dispatch/internal/dispatch"
	"github.com/tgienger/dispatch/internal/models"
	"github.com/tgienger/dispatch/internal/ui/keys"
	"github.com/tgienger/dispatch/internal/ui/styles"
)

// TaskListView shows every task with its assignee and drives assignment
type TaskListView struct {
	svc    Dispatcher
	tasks  []models.Task
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	loaded  bool
	cursor  int
	scrollY int
	status  string

	// Task creation
	creating bool
	newName  textinput.Model
	focusIdx int // 0=name, 1=create

	modal *modal

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewTaskListView creates a new task list view
func NewTaskListView(svc Dispatcher) *TaskListView {
	newName := textinput.New()
	newName.Placeholder = "Task name"
	newName.CharLimit = 200

	return &TaskListView{
		svc:     svc,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		newName: newName,
	}
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	return v.loadTasks
}

type tasksLoadedMsg struct {
	tasks []models.Task
}

func (v *TaskListView) loadTasks() tea.Msg {
	tasks, err := v.svc.ListTasks()
	if err != nil {
		return errMsg{err: err}
	}
	return tasksLoadedMsg{tasks: tasks}
}

// Tasks returns the tasks currently shown
func (v *TaskListView) Tasks() []models.Task { return v.tasks }

// Creating reports whether the new task form is open
func (v *TaskListView) Creating() bool { return v.creating }

// Modal returns the title and body of the open message box, if any
func (v *TaskListView) Modal() (string, string) { return v.modal.Message() }

// Status returns the last status line
func (v *TaskListView) Status() string { return v.status }

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ensureVisible()
		return v, nil

	case tasksLoadedMsg:
		v.tasks = msg.tasks
		v.loaded = true
		if v.cursor >= len(v.tasks) {
			v.cursor = max(0, len(v.tasks)-1)
		}
		v.ensureVisible()
		return v, nil

	case errMsg:
		v.modal = newModal(msg.err)
		return v, nil

	case tea.KeyMsg:
		// Modal and help popup close on any key
		if v.modal != nil {
			v.modal = nil
			return v, nil
		}
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.creating {
			return v.updateCreating(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Tab):
		return v, func() tea.Msg { return ShowEmployees{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.creating = true
		v.focusIdx = 0
		v.newName.Reset()
		v.newName.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Assign):
		return v, v.assign()

	case key.Matches(msg, v.keys.Refresh):
		v.status = ""
		return v, v.loadTasks

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		v.newName.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.saveTask()

	case key.Matches(msg, v.keys.Tab), key.Matches(msg, v.keys.BackTab):
		v.focusIdx = (v.focusIdx + 1) % 2
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		return v, v.saveTask()
	}

	var cmd tea.Cmd
	if v.focusIdx == 0 {
		v.newName, cmd = v.newName.Update(msg)
	}
	return v, cmd
}

func (v *TaskListView) updateFocus() {
	v.newName.Blur()
	if v.focusIdx == 0 {
		v.newName.Focus()
	}
}

// saveTask submits the form. A rejected name keeps the form open behind the modal.
func (v *TaskListView) saveTask() tea.Cmd {
	task, err := v.svc.AddTask(dispatch.AddTaskRequest{Name: v.newName.Value()})
	if err != nil {
		v.modal = newModal(err)
		return nil
	}

	v.newName.Reset()
	v.newName.Blur()
	v.creating = false
	v.status = fmt.Sprintf("Task %q added", task.Name)
	return v.loadTasks
}

// assign distributes unassigned tasks and shows the refreshed list
func (v *TaskListView) assign() tea.Cmd {
	result, err := v.svc.AssignTasks()
	if err != nil {
		v.modal = newModal(err)
		return v.loadTasks
	}

	switch result.Assigned {
	case 0:
		v.status = "No unassigned tasks"
	case 1:
		v.status = "1 task assigned"
	default:
		v.status = fmt.Sprintf("%d tasks assigned", result.Assigned)
	}
	return v.loadTasks
}

func (v *TaskListView) visibleRows() int {
	// Header, title, status and help take about 10 lines
	return max(v.height-10, 1)
}

func (v *TaskListView) ensureVisible() {
	visible := v.visibleRows()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visible {
		v.scrollY = v.cursor - visible + 1
	}
}

// View renders the view
func (v *TaskListView) View() string {
	if v.modal != nil {
		return renderModal(v.styles, v.modal, v.width, v.height)
	}

	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.creating {
		return v.renderCreateForm()
	}

	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskTable())
	b.WriteString("\n")
	if v.status != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.StatusBar.Render(v.status))
	}
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles

	unassigned := 0
	for _, t := range v.tasks {
		if !t.Assigned() {
			unassigned++
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		s.Title.Render("Tasks"),
		"  ",
		s.TitleMuted.Render(fmt.Sprintf("%d total • %d unassigned", len(v.tasks), unassigned)),
	)
}

func (v *TaskListView) columnWidths() (idW, nameW, assigneeW int) {
	width := max(styles.ContentWidth(v.width)-4, 30)
	idW = 6
	assigneeW = clamp(width/3, 10, 30)
	nameW = width - idW - assigneeW
	return idW, nameW, assigneeW
}

func (v *TaskListView) renderTaskTable() string {
	s := v.styles

	if len(v.tasks) == 0 {
		return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
	}

	idW, nameW, assigneeW := v.columnWidths()
	header := s.TableHeader.Render(
		pad("ID", idW) + pad("Task", nameW) + pad("Assigned to", assigneeW),
	)

	rows := []string{header}
	end := min(v.scrollY+v.visibleRows(), len(v.tasks))
	for i := v.scrollY; i < end; i++ {
		rows = append(rows, v.renderTaskRow(v.tasks[i], i == v.cursor))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *TaskListView) renderTaskRow(task models.Task, selected bool) string {
	s := v.styles
	idW, nameW, assigneeW := v.columnWidths()

	assignee := s.Unassigned.Render(pad("unassigned", assigneeW))
	if task.Assigned() {
		assignee = s.Assignee.Render(pad(task.Assignee(), assigneeW))
	}
	line := pad(fmt.Sprintf("%d", task.ID), idW) + pad(task.Name, nameW) + assignee

	if selected {
		return s.ListSelected.Render(line)
	}
	return s.ListItem.Render(line)
}

// pad truncates or right-pads text to exactly width cells
func pad(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(text) > width-1 {
		runes := []rune(text)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width-1 {
			runes = runes[:len(runes)-1]
		}
		text = string(runes) + "…"
	}
	return text + strings.Repeat(" ", max(width-lipgloss.Width(text), 0))
}

func (v *TaskListView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	nameStyle := s.Input
	btnStyle := s.Button
	if v.focusIdx == 0 {
		nameStyle = s.InputFocused
	} else {
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("New Task"),
		"",
		"Name:",
		nameStyle.Width(inputWidth).Render(v.newName.View()),
		"",
		btnStyle.Render(" Create "),
		"",
		s.TitleMuted.Render("↵/Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s new • %s assign • %s refresh • %s employees • %s quit",
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("a"),
			v.styles.HelpKey.Render("r"),
			v.styles.HelpKey.Render("tab"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("n") + "      new task",
		s.HelpKey.Render("a") + "      assign unassigned tasks",
		s.HelpKey.Render("r") + "      refresh list",
		s.HelpKey.Render("↑/↓") + "    move",
		s.HelpKey.Render("tab") + "    employees",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Input.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

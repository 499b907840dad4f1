package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/dispatch/internal/dispatch"
	"github.com/tgienger/dispatch/internal/models"
	"github.com/tgienger/dispatch/internal/ui/keys"
	"github.com/tgienger/dispatch/internal/ui/styles"
)

type employeeItem struct {
	employee models.Employee
}

func (i employeeItem) Title() string       { return i.employee.Name }
func (i employeeItem) Description() string { return fmt.Sprintf("#%d", i.employee.ID) }
func (i employeeItem) FilterValue() string { return i.employee.Name }

type employeeDelegate struct {
	styles *styles.Styles
	width  int
}

func (d employeeDelegate) Height() int                               { return 1 }
func (d employeeDelegate) Spacing() int                              { return 0 }
func (d employeeDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d employeeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(employeeItem)
	if !ok {
		return
	}

	width := max(d.width-4, 20)
	style := d.styles.ListItem.Width(width)
	if index == m.Index() {
		style = d.styles.ListSelected.Width(width)
	}

	id := d.styles.TitleMuted.Render(fmt.Sprintf("%-6s", e.Description()))
	fmt.Fprint(w, style.Render(id+e.Title()))
}

// employee form fields, in focus order
const (
	fieldFirst = iota
	fieldMiddle
	fieldLast
	fieldCreate
	fieldCount
)

// EmployeeListView lists employees and hosts the new employee form
type EmployeeListView struct {
	svc      Dispatcher
	list     list.Model
	delegate *employeeDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	loaded   bool
	status   string

	creating bool
	inputs   [fieldCreate]textinput.Model
	focusIdx int

	modal *modal

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

func NewEmployeeListView(svc Dispatcher) *EmployeeListView {
	s := styles.NewStyles()

	var inputs [fieldCreate]textinput.Model
	for i, placeholder := range []string{"First name", "Middle name (optional)", "Last name"} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 100
		inputs[i] = in
	}

	delegate := &employeeDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Employees"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &EmployeeListView{
		svc:      svc,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		inputs:   inputs,
	}
}

func (v *EmployeeListView) Init() tea.Cmd {
	return v.loadEmployees
}

func (v *EmployeeListView) loadEmployees() tea.Msg {
	employees, err := v.svc.ListEmployees()
	if err != nil {
		return errMsg{err: err}
	}
	return employeesLoadedMsg{employees: employees}
}

type employeesLoadedMsg struct {
	employees []models.Employee
}

// Employees returns the employees currently listed
func (v *EmployeeListView) Employees() []models.Employee {
	items := v.list.Items()
	employees := make([]models.Employee, 0, len(items))
	for _, item := range items {
		if e, ok := item.(employeeItem); ok {
			employees = append(employees, e.employee)
		}
	}
	return employees
}

// Creating reports whether the new employee form is open
func (v *EmployeeListView) Creating() bool { return v.creating }

// Modal returns the title and body of the open message box, if any
func (v *EmployeeListView) Modal() (string, string) { return v.modal.Message() }

func (v *EmployeeListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, max(msg.Height-6, 1))
		return v, nil

	case employeesLoadedMsg:
		items := make([]list.Item, len(msg.employees))
		for i, e := range msg.employees {
			items[i] = employeeItem{employee: e}
		}
		v.loaded = true
		return v, v.list.SetItems(items)

	case errMsg:
		v.modal = newModal(msg.err)
		return v, nil

	case tea.KeyMsg:
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

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Tab), key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return ShowTasks{} }
		case key.Matches(msg, v.keys.New):
			v.startCreate()
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *EmployeeListView) startCreate() {
	v.creating = true
	v.focusIdx = fieldFirst
	for i := range v.inputs {
		v.inputs[i].Reset()
	}
	v.updateFocus()
}

func (v *EmployeeListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.saveEmployee()

	case key.Matches(msg, v.keys.BackTab):
		v.focusIdx = (v.focusIdx + fieldCount - 1) % fieldCount
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % fieldCount
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < fieldCreate {
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
		return v, v.saveEmployee()
	}

	var cmd tea.Cmd
	if v.focusIdx < fieldCreate {
		v.inputs[v.focusIdx], cmd = v.inputs[v.focusIdx].Update(msg)
	}
	return v, cmd
}

func (v *EmployeeListView) updateFocus() {
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
	if v.focusIdx < fieldCreate {
		v.inputs[v.focusIdx].Focus()
	}
}

// saveEmployee submits the form. Rejected input keeps the form open behind the modal.
func (v *EmployeeListView) saveEmployee() tea.Cmd {
	employee, err := v.svc.AddEmployee(dispatch.AddEmployeeRequest{
		FirstName:  v.inputs[fieldFirst].Value(),
		MiddleName: v.inputs[fieldMiddle].Value(),
		LastName:   v.inputs[fieldLast].Value(),
	})
	if err != nil {
		v.modal = newModal(err)
		return nil
	}

	for i := range v.inputs {
		v.inputs[i].Reset()
	}
	v.creating = false
	v.status = fmt.Sprintf("Employee %q added", employee.Name)
	return v.loadEmployees
}

// View renders the view
func (v *EmployeeListView) View() string {
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

	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n"
	if v.status != "" {
		content += v.styles.StatusBar.Render(v.status) + "\n"
	}
	content += v.renderHelp()
	return styles.CenterView(content, v.width, v.height)
}

func (v *EmployeeListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Employees"),
		"",
		s.TitleMuted.Render("Press 'n' to register your first employee"),
		"",
		s.ButtonPrimary.Render(" New Employee "),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *EmployeeListView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	labels := []string{"First name:", "Middle name:", "Last name:"}
	rows := []string{s.Title.Render("New Employee"), ""}
	for i, label := range labels {
		style := s.Input
		if v.focusIdx == i {
			style = s.InputFocused
		}
		rows = append(rows, label, style.Width(inputWidth).Render(v.inputs[i].View()), "")
	}

	btnStyle := s.Button
	if v.focusIdx == fieldCreate {
		btnStyle = s.ButtonFocused
	}
	rows = append(rows,
		btnStyle.Render(" Create "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *EmployeeListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s new • %s tasks • %s quit",
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("tab"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *EmployeeListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("n") + "      new employee",
		s.HelpKey.Render("↑/↓") + "    move",
		s.HelpKey.Render("tab") + "    tasks",
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

package overlay

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"taskflow/task"
)

// TaskFormOverlay is the create/edit task form overlay backed by huh.Form.
type TaskFormOverlay struct {
	form      *huh.Form
	titleVal  string
	descVal   string
	statusVal string
	priVal    string
	dueVal    string

	heading   string
	submitted bool
	canceled  bool
	width     int
}

// NewTaskFormOverlay creates an empty form for a new task.
func NewTaskFormOverlay(width int) *TaskFormOverlay {
	f := &TaskFormOverlay{
		heading:   "New task",
		width:     width,
		statusVal: string(task.StatusPending),
		priVal:    string(task.PriorityMedium),
	}
	f.build()
	return f
}

// NewTaskEditOverlay creates a form prefilled from an existing task.
func NewTaskEditOverlay(width int, t task.Task) *TaskFormOverlay {
	f := &TaskFormOverlay{
		heading:   "Edit task",
		width:     width,
		titleVal:  t.Title,
		descVal:   t.Description,
		statusVal: string(t.Status),
		priVal:    string(t.Priority),
	}
	if due, ok := t.Due(); ok {
		f.dueVal = due.Format("2006-01-02")
	}
	f.build()
	return f
}

func (f *TaskFormOverlay) build() {
	formWidth := f.width - 6
	if formWidth < 34 {
		formWidth = 34
	}

	statusOpts := make([]huh.Option[string], 0, len(task.Statuses))
	for _, s := range task.Statuses {
		statusOpts = append(statusOpts, huh.NewOption(string(s), string(s)))
	}
	priOpts := make([]huh.Option[string], 0, len(task.Priorities))
	for _, p := range task.Priorities {
		priOpts = append(priOpts, huh.NewOption(string(p), string(p)))
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("title").
				Value(&f.titleVal),
			huh.NewInput().
				Key("desc").
				Title("description (optional)").
				Value(&f.descVal),
			huh.NewSelect[string]().
				Key("status").
				Title("status").
				Options(statusOpts...).
				Value(&f.statusVal),
			huh.NewSelect[string]().
				Key("priority").
				Title("priority").
				Options(priOpts...).
				Value(&f.priVal),
			huh.NewInput().
				Key("due").
				Title("due date (YYYY-MM-DD, optional)").
				Value(&f.dueVal),
		),
	).
		WithTheme(ThemeRosePine()).
		WithWidth(formWidth).
		WithShowHelp(false).
		WithShowErrors(false)

	_ = f.form.Init()
}

func (f *TaskFormOverlay) updateForm(msg tea.Msg) {
	updated, _ := f.form.Update(msg)
	if form, ok := updated.(*huh.Form); ok {
		f.form = form
	}
}

// HandleKeyPress processes a key and returns true when the overlay should close.
func (f *TaskFormOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc:
		f.canceled = true
		return true

	case tea.KeyEnter:
		if strings.TrimSpace(f.titleVal) == "" {
			return false
		}
		if _, ok := f.dueDate(); !ok {
			return false
		}
		f.submitted = true
		return true

	case tea.KeyTab, tea.KeyDown:
		f.updateForm(huh.NextField())
		return false

	case tea.KeyShiftTab, tea.KeyUp:
		f.updateForm(huh.PrevField())
		return false

	default:
		f.updateForm(msg)
		return false
	}
}

// Render returns the styled overlay string.
func (f *TaskFormOverlay) Render() string {
	w := f.width
	if w < 40 {
		w = 40
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(colorIris).
		Bold(true).
		MarginBottom(1)

	hintStyle := lipgloss.NewStyle().
		Foreground(colorMuted).
		MarginTop(1)

	content := titleStyle.Render(f.heading) + "\n"
	content += f.form.View() + "\n"
	content += hintStyle.Render("tab/↑↓ navigate · enter save · esc cancel")

	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(colorIris).
		Padding(1, 2).
		Width(w)

	return style.Render(content)
}

// dueDate parses the due field. ok is false only when the field is non-empty
// and not a valid calendar date.
func (f *TaskFormOverlay) dueDate() (string, bool) {
	v := strings.TrimSpace(f.dueVal)
	if v == "" {
		return "", true
	}
	ts, err := time.Parse("2006-01-02", v)
	if err != nil {
		return "", false
	}
	return ts.UTC().Format(time.RFC3339), true
}

// TaskCreate returns the form contents as a create request.
func (f *TaskFormOverlay) TaskCreate() task.Create {
	due, _ := f.dueDate()
	return task.Create{
		Title:       strings.TrimSpace(f.titleVal),
		Description: strings.TrimSpace(f.descVal),
		Status:      task.Status(f.statusVal),
		Priority:    task.Priority(f.priVal),
		DueDate:     due,
	}
}

// TaskUpdate returns the form contents as a full update request.
func (f *TaskFormOverlay) TaskUpdate() task.Update {
	title := strings.TrimSpace(f.titleVal)
	desc := strings.TrimSpace(f.descVal)
	status := task.Status(f.statusVal)
	pri := task.Priority(f.priVal)
	due, _ := f.dueDate()
	return task.Update{
		Title:       &title,
		Description: &desc,
		Status:      &status,
		Priority:    &pri,
		DueDate:     &due,
	}
}

// IsSubmitted returns true when the form was submitted.
func (f *TaskFormOverlay) IsSubmitted() bool {
	return f.submitted
}

// IsCanceled returns true when the form was dismissed without submitting.
func (f *TaskFormOverlay) IsCanceled() bool {
	return f.canceled
}

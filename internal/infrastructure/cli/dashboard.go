package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("STUDYFLOW_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}
		p := tea.NewProgram(initialModel())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

// Styles
var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var statusDone = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var statusWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
var statusErr = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

type model struct {
	table   table.Model
	date    string
	locked  bool
	backlog float64
	missed  []string
	err     error
}

func initialModel() model {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return model{err: err}
	}

	today := schedule.Today(time.Now())
	view, err := services.Schedule.Day(today)
	if err != nil {
		return model{err: err}
	}

	backlog, err := services.Schedule.UnscheduledHours()
	if err != nil {
		return model{err: err}
	}

	items, _ := services.Schedule.CollectMissed()
	missedMsgs := []string{}
	for _, item := range items {
		missedMsgs = append(missedMsgs, fmt.Sprintf("%s #%d %s (%.2gh)",
			item.PlanDate, item.Session.SessionNumber, item.Task.Title, item.Session.AllocatedHours))
	}

	// Setup Table
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Time", Width: 12},
		{Title: "Status", Width: 12},
		{Title: "Hours", Width: 6},
		{Title: "Task", Width: 40},
	}

	rows := []table.Row{}
	for _, s := range view.Sessions {
		window := "-"
		if s.Session.StartTime != "" {
			window = s.Session.StartTime + "-" + s.Session.EndTime
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", s.Session.SessionNumber),
			window,
			string(s.Status),
			fmt.Sprintf("%.2g", s.Session.AllocatedHours),
			s.TaskTitle,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))

	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))

	t.SetStyles(s)

	return model{
		table:   t,
		date:    view.Date,
		locked:  view.IsLocked,
		backlog: backlog,
		missed:  missedMsgs,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading dashboard: %v\nPress q to quit.", m.err)
	}

	title := fmt.Sprintf("Studyflow %s", m.date)
	if m.locked {
		title += " [LOCKED]"
	}
	header := headerStyle.Render(title)

	backlogText := fmt.Sprintf("Unscheduled backlog: %.2gh", m.backlog)
	if m.backlog > 0 {
		backlogText = statusWarn.Render(backlogText)
	}

	missedView := ""
	if len(m.missed) > 0 {
		missedView = statusErr.Render("\nMISSED SESSIONS:\n")
		for _, msg := range m.missed {
			missedView += fmt.Sprintf("- %s\n", msg)
		}
	} else {
		missedView = statusDone.Render("\nNothing missed. All caught up.")
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			backlogText,
			"\nToday's Sessions:",
			m.table.View(),
			missedView,
			"\n[q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status [date]",
	Short: "Show a day's sessions with their current classification",
	Long: `Show a day's sessions with their current classification.

Each session is classified against the clock: completed, skipped, missed,
overdue, rescheduled or scheduled. Without a date the current day is shown.

Examples:
  studyflow status
  studyflow status 2026-09-01
  studyflow status --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatusCmd,
}

type statusJSONOutput struct {
	Date             string              `json:"date"`
	IsLocked         bool                `json:"is_locked"`
	Sessions         []statusSessionJSON `json:"sessions"`
	UnscheduledHours float64             `json:"unscheduled_hours"`
}

type statusSessionJSON struct {
	SessionNumber int     `json:"session_number"`
	TaskID        string  `json:"task_id"`
	TaskTitle     string  `json:"task_title"`
	Status        string  `json:"status"`
	StartTime     string  `json:"start_time,omitempty"`
	EndTime       string  `json:"end_time,omitempty"`
	Hours         float64 `json:"hours"`
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return err
	}

	date := schedule.Today(time.Now())
	if len(args) > 0 {
		if _, err := time.Parse(schedule.DateLayout, args[0]); err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", args[0])
		}
		date = args[0]
	}

	view, err := services.Schedule.Day(date)
	if err != nil {
		return MapError(fmt.Errorf("failed to load day: %w", err))
	}
	backlog, err := services.Schedule.UnscheduledHours()
	if err != nil {
		return MapError(fmt.Errorf("failed to compute unscheduled hours: %w", err))
	}

	if statusJSON {
		out := statusJSONOutput{
			Date:             view.Date,
			IsLocked:         view.IsLocked,
			Sessions:         []statusSessionJSON{},
			UnscheduledHours: backlog,
		}
		for _, s := range view.Sessions {
			out.Sessions = append(out.Sessions, statusSessionJSON{
				SessionNumber: s.Session.SessionNumber,
				TaskID:        s.Session.TaskID,
				TaskTitle:     s.TaskTitle,
				Status:        string(s.Status),
				StartTime:     s.Session.StartTime,
				EndTime:       s.Session.EndTime,
				Hours:         s.Session.AllocatedHours,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	lock := ""
	if view.IsLocked {
		lock = "  [LOCKED]"
	}
	fmt.Printf("Plan for %s%s\n", view.Date, lock)
	fmt.Println(strings.Repeat("-", 30))
	for _, s := range view.Sessions {
		window := "untimed"
		if s.Session.StartTime != "" {
			window = fmt.Sprintf("%s-%s", s.Session.StartTime, s.Session.EndTime)
		}
		fmt.Printf("  #%-3d %-11s %-12s %s (%.2gh)\n",
			s.Session.SessionNumber, window, s.Status, s.TaskTitle, s.Session.AllocatedHours)
	}
	if len(view.Sessions) == 0 {
		fmt.Println("  (no sessions)")
	}
	fmt.Printf("\nUnscheduled backlog: %.2gh\n", backlog)
	return nil
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(statusCmd)
}

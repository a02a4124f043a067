package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/domain"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage day plans and their sessions",
}

var planAddStart string

var planAddCmd = &cobra.Command{
	Use:   "add <date> <task-id> <hours>",
	Short: "Schedule a study session for a task on a day",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		hours, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid hours %q: %w", args[2], err)
		}

		start := planAddStart
		if start == "" {
			settings, err := services.Workspace.Repo.LoadSettings()
			if err != nil {
				return MapError(fmt.Errorf("failed to load settings: %w", err))
			}
			if settings == nil {
				settings = domain.DefaultSettings()
			}
			start = settings.DayStart
		}

		session, err := services.Session.Assign(args[0], args[1], hours, start, currentActor())
		if err != nil {
			return MapError(fmt.Errorf("failed to schedule session: %w", err))
		}
		fmt.Printf("Scheduled session %d on %s: %s %s-%s (%.2gh)\n",
			session.SessionNumber, args[0], session.TaskID, session.StartTime, session.EndTime, session.AllocatedHours)
		return nil
	},
}

func init() {
	planAddCmd.Flags().StringVar(&planAddStart, "at", "", "Start time (HH:MM, defaults to the configured day start)")

	planCmd.AddCommand(planAddCmd)
	RootCmd.AddCommand(planCmd)
}

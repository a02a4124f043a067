package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Mutate individual study sessions",
}

var sessionTaskID string

func parseSessionKey(args []string) (string, int, error) {
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return "", 0, fmt.Errorf("invalid session number %q: %w", args[1], err)
	}
	return args[0], n, nil
}

func createSessionCommand(use, short, action string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <date> <session-number>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := loadServicesForCurrentDir()
			if err != nil {
				return err
			}
			date, n, err := parseSessionKey(args)
			if err != nil {
				return err
			}
			actor := currentActor()

			switch action {
			case "done":
				err = services.Session.MarkDone(date, n, sessionTaskID, actor)
			case "skip":
				err = services.Session.Skip(date, n, sessionTaskID, actor)
			case "delete":
				err = services.Session.Delete(date, n, sessionTaskID, actor)
			}
			if err != nil {
				return MapError(fmt.Errorf("failed to %s session: %w", action, err))
			}
			fmt.Printf("Session %d on %s: %s.\n", n, date, action)
			return nil
		},
	}
}

var sessionRescheduleCmd = &cobra.Command{
	Use:   "reschedule <date> <session-number> <new-start>",
	Short: "Move a session to a new start time on the same day",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		date, n, err := parseSessionKey(args)
		if err != nil {
			return err
		}

		if err := services.Session.Reschedule(date, n, sessionTaskID, args[2], currentActor()); err != nil {
			return MapError(fmt.Errorf("failed to reschedule session: %w", err))
		}
		fmt.Printf("Session %d on %s moved to %s.\n", n, date, args[2])
		return nil
	},
}

func init() {
	sessionCmd.PersistentFlags().StringVarP(&sessionTaskID, "task", "t", "", "Disambiguate by task ID when session numbers collide")

	sessionCmd.AddCommand(createSessionCommand("done", "Mark a session as completed", "done"))
	sessionCmd.AddCommand(createSessionCommand("skip", "Mark a session as skipped", "skip"))
	sessionCmd.AddCommand(createSessionCommand("delete", "Remove a session from its day plan", "delete"))
	sessionCmd.AddCommand(sessionRescheduleCmd)
	RootCmd.AddCommand(sessionCmd)
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
)

var lockCmd = &cobra.Command{
	Use:   "lock <date>",
	Short: "Toggle the lock on a day, freezing or unfreezing its plan",
	Long: `Toggle the lock on a day, freezing or unfreezing its plan.

A locked day rejects every session mutation and is skipped as a
redistribution target. Locking a day that has no plan yet creates
an empty plan so the day can be reserved ahead of time.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if _, err := time.Parse(schedule.DateLayout, args[0]); err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", args[0])
		}

		locked, err := services.Session.ToggleLock(args[0], currentActor())
		if err != nil {
			return MapError(fmt.Errorf("failed to toggle lock: %w", err))
		}
		if locked {
			fmt.Printf("Day %s is now locked.\n", args[0])
		} else {
			fmt.Printf("Day %s is now unlocked.\n", args[0])
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(lockCmd)
}

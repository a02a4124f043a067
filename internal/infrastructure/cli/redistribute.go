package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/domain"
	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
)

var (
	redistributeMode   string
	redistributeDryRun bool
)

var redistributeCmd = &cobra.Command{
	Use:   "redistribute",
	Short: "Move missed study hours onto open future days",
	Long: `Move missed study hours onto open future days.

Legacy mode packs each missed session onto the nearest day with spare
capacity. Enhanced mode prioritizes important and long-overdue work,
reuses gaps between existing sessions, and splits hours across days
when no single day fits. Partial placement is normal: whatever could
not be placed stays in the backlog and is reported.

Examples:
  studyflow redistribute
  studyflow redistribute --mode legacy
  studyflow redistribute --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		modeName := redistributeMode
		if modeName == "" {
			settings, err := services.Workspace.Repo.LoadSettings()
			if err != nil {
				return MapError(fmt.Errorf("failed to load settings: %w", err))
			}
			if settings == nil {
				settings = domain.DefaultSettings()
			}
			modeName = settings.RedistributionMode
		}
		mode, ok := schedule.ParseMode(modeName)
		if !ok {
			return fmt.Errorf("invalid mode %q: use 'legacy' or 'enhanced'", modeName)
		}

		report, err := services.Schedule.Redistribute(mode, redistributeDryRun, currentActor())
		if err != nil {
			return MapError(fmt.Errorf("redistribution failed: %w", err))
		}

		verb := "Placed"
		if redistributeDryRun {
			verb = "Would place"
		}
		fmt.Printf("%s %d block(s) in %s mode\n", verb, len(report.Placed), report.Mode)
		fmt.Println(strings.Repeat("-", 35))
		for _, p := range report.Placed {
			fmt.Printf("  %s #%-3d %s %s-%s (%.2gh, from %s)\n",
				p.Date, p.SessionNumber, p.TaskID, p.StartTime, p.EndTime, p.Hours, p.SourceDate)
		}
		if len(report.Placed) == 0 {
			fmt.Println("  (nothing to place)")
		}

		if !report.FullyPlaced() {
			fmt.Printf("\nLeft unplaced (%d):\n", len(report.Unplaced))
			for _, u := range report.Unplaced {
				fmt.Printf("  %s from %s: %v\n", u.Item.Task.Title, u.Item.PlanDate, u.Reason)
			}
		}
		return nil
	},
}

func init() {
	redistributeCmd.Flags().StringVarP(&redistributeMode, "mode", "m", "", "Placement mode: legacy or enhanced (defaults to settings)")
	redistributeCmd.Flags().BoolVar(&redistributeDryRun, "dry-run", false, "Report placements without saving them")
	RootCmd.AddCommand(redistributeCmd)
}
